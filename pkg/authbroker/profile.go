package authbroker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cloudcarver/feedbackform/lib/httpx"
	"github.com/pkg/errors"
)

var ErrProfileFetchFailed = errors.New("failed to fetch profile")

// ProfileError is returned when the broker answers the profile request with
// a non-200 status.
type ProfileError struct {
	Status int
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("failed to get user profile - status: %d", e.Status)
}

func (e *ProfileError) Is(target error) bool {
	return target == ErrProfileFetchFailed
}

type Profile struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	UserID    string `json:"user_id"`

	// Extra holds the fields of the profile not mapped above
	Extra map[string]any `json:"-"`
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	type plain Profile
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, k := range []string{"email", "first_name", "last_name", "user_id"} {
		delete(all, k)
	}
	*p = Profile(known)
	if len(all) != 0 {
		p.Extra = all
	}
	return nil
}

func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (b *Broker) GetProfile(ctx context.Context, client *Client) (*Profile, error) {
	u, err := url.Parse(b.endpoints.ProfileURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid profile url")
	}
	hc := httpx.NewHTTPClient(u.Scheme+"://"+u.Host, client.HTTPClient())

	res, err := hc.Get(ctx, u.Path).WithHeader("Accept", "application/json").Do()
	if err != nil {
		if errors.Is(err, ErrAuthExpired) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrProfileFetchFailed, "%v", err)
	}
	if res.StatusCode != http.StatusOK {
		res.Close()
		return nil, &ProfileError{Status: res.StatusCode}
	}

	var profile Profile
	if err := res.JSON(&profile); err != nil {
		return nil, errors.Wrapf(ErrProfileFetchFailed, "%v", err)
	}
	if profile.Email == "" {
		return nil, errors.Wrap(ErrProfileFetchFailed, "profile has no email")
	}
	return &profile, nil
}
