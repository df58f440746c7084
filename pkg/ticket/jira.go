package ticket

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/cloudcarver/feedbackform/lib/httpx"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/form"
	"github.com/cloudcarver/feedbackform/pkg/utils"
	"go.uber.org/zap"
)

const (
	DefaultJiraSummary = "Content change request"

	JiraIssueType = "Task"
	JiraPriority  = "Medium"
)

type jiraRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type jiraIssueFields struct {
	Project     jiraRef `json:"project"`
	Summary     string  `json:"summary"`
	Description string  `json:"description"`
	IssueType   jiraRef `json:"issuetype"`
	Priority    jiraRef `json:"priority"`
}

type jiraCreateIssue struct {
	Fields jiraIssueFields `json:"fields"`
}

type jiraCreatedIssue struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

type Jira struct {
	client   *httpx.HTTPClient
	routing  *RoutingTable
	summary  string
	watchers []string
}

func NewJira(cfg *config.Jira, delegate httpx.HTTPDelegate) *Jira {
	client := httpx.NewHTTPClient(cfg.URL, delegate)
	client.SetBasicAuth(cfg.Username, cfg.Password)
	client.SetHeader("Accept", "application/json")

	return &Jira{
		client:   client,
		routing:  NewRoutingTable(cfg),
		summary:  utils.UnwrapOrDefault(cfg.Summary, DefaultJiraSummary),
		watchers: cfg.Watchers,
	}
}

func (j *Jira) Backend() string {
	return config.BackendJira
}

func (j *Jira) Submit(ctx context.Context, cr *form.ChangeRequest) (*Result, error) {
	project := j.routing.Project(cr.Action)

	res, err := j.client.Post(ctx, "/rest/api/2/issue").WithJSON(jiraCreateIssue{
		Fields: jiraIssueFields{
			Project:     jiraRef{ID: project},
			Summary:     j.summary,
			Description: cr.FormattedText(),
			IssueType:   jiraRef{Name: JiraIssueType},
			Priority:    jiraRef{Name: JiraPriority},
		},
	}).Do()
	if err != nil {
		return nil, failed("jira: %v", err)
	}
	if err := res.ExpectStatus(http.StatusCreated, http.StatusOK); err != nil {
		return nil, failed("jira: create issue in project %s: %v, body: %s", project, err, utils.TruncateString(res.Text(), 512))
	}
	var created jiraCreatedIssue
	if err := res.JSON(&created); err != nil {
		return nil, failed("jira: %v", err)
	}
	if created.Key == "" {
		return nil, failed("jira: response has no issue key")
	}
	log.Info("jira issue created", zap.String("issue", created.Key), zap.String("project", project))

	for _, a := range cr.Attachments {
		if err := j.attach(ctx, created.Key, &a); err != nil {
			return nil, err
		}
	}
	for _, w := range j.watchers {
		if err := j.addWatcher(ctx, created.Key, w); err != nil {
			return nil, err
		}
	}
	return &Result{TicketID: created.Key}, nil
}

func (j *Jira) attach(ctx context.Context, key string, a *form.Attachment) error {
	res, err := j.client.Post(ctx, "/rest/api/2/issue/"+key+"/attachments").
		WithHeader("X-Atlassian-Token", "no-check").
		WithMultipartForm(nil, []httpx.FileData{{Key: "file", Filename: a.Filename, Content: bytes.NewReader(a.Content)}}).
		Do()
	if err != nil {
		return failed("jira: issue %s: attach %s: %v", key, a.Filename, err)
	}
	if err := res.ExpectStatus(http.StatusOK); err != nil {
		return failed("jira: issue %s: attach %s: %v, body: %s", key, a.Filename, err, utils.TruncateString(res.Text(), 512))
	}
	res.Close()
	return nil
}

func (j *Jira) addWatcher(ctx context.Context, key, username string) error {
	res, err := j.client.Post(ctx, "/rest/api/2/issue/"+key+"/watchers").WithJSON(username).Do()
	if err != nil {
		return failed("jira: issue %s: add watcher %s: %v", key, username, err)
	}
	if err := res.ExpectStatus(http.StatusNoContent, http.StatusOK); err != nil {
		return failed("jira: issue %s: add watcher %s: %v, body: %s", key, username, err, utils.TruncateString(res.Text(), 512))
	}
	res.Close()
	return nil
}

// IssueURL builds the human facing link of an issue from a template holding
// a "{}" placeholder.
func IssueURL(template, key string) string {
	if template == "" || key == "" {
		return ""
	}
	return strings.ReplaceAll(template, "{}", key)
}
