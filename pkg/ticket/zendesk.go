package ticket

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cloudcarver/feedbackform/lib/httpx"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/form"
	"github.com/cloudcarver/feedbackform/pkg/utils"
	"go.uber.org/zap"
)

const (
	DefaultZendeskSubject = "Feedback form"
	DefaultZendeskService = "Content Delivery"

	DefaultServiceFieldID = 30041969
	DefaultEmailFieldID   = 45522485
	DefaultPhoneFieldID   = 360000188178
)

var DefaultZendeskTags = []string{"content delivery"}

type zendeskTicket struct {
	ID           int64                `json:"id,omitempty"`
	Subject      string               `json:"subject,omitempty"`
	Comment      *zendeskComment      `json:"comment,omitempty"`
	Requester    *zendeskRequester    `json:"requester,omitempty"`
	CustomFields []zendeskCustomField `json:"custom_fields,omitempty"`
	Tags         []string             `json:"tags,omitempty"`
}

type zendeskComment struct {
	Body    string   `json:"body"`
	Uploads []string `json:"uploads,omitempty"`
}

type zendeskRequester struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type zendeskCustomField struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

type zendeskTicketEnvelope struct {
	Ticket zendeskTicket `json:"ticket"`
}

type zendeskUploadEnvelope struct {
	Upload struct {
		Token string `json:"token"`
	} `json:"upload"`
}

type Zendesk struct {
	client  *httpx.HTTPClient
	subject string
	service string
	tags    []string
	fields  config.ZendeskFields
}

func NewZendesk(cfg *config.Zendesk, delegate httpx.HTTPDelegate) *Zendesk {
	base := cfg.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.zendesk.com", cfg.Subdomain)
	}
	client := httpx.NewHTTPClient(base, delegate)
	client.SetBasicAuth(cfg.Email+"/token", cfg.Token)
	client.SetHeader("Accept", "application/json")

	fields := config.ZendeskFields{
		Service: DefaultServiceFieldID,
		Email:   DefaultEmailFieldID,
		Phone:   DefaultPhoneFieldID,
	}
	if cfg.Fields != nil {
		fields = *cfg.Fields
	}

	tags := cfg.Tags
	if len(tags) == 0 {
		tags = DefaultZendeskTags
	}

	return &Zendesk{
		client:  client,
		subject: utils.UnwrapOrDefault(cfg.Subject, DefaultZendeskSubject),
		service: utils.UnwrapOrDefault(cfg.Service, DefaultZendeskService),
		tags:    tags,
		fields:  fields,
	}
}

func (z *Zendesk) Backend() string {
	return config.BackendZendesk
}

func (z *Zendesk) customFields(cr *form.ChangeRequest) []zendeskCustomField {
	var fields []zendeskCustomField
	add := func(id int64, value string) {
		if id != 0 {
			fields = append(fields, zendeskCustomField{ID: id, Value: value})
		}
	}
	add(z.fields.Service, z.service)
	add(z.fields.Email, cr.Email)
	add(z.fields.Phone, cr.Telephone)
	if cr.Variant == form.VariantChangeRequest {
		add(z.fields.Department, cr.Department)
		add(z.fields.Action, string(cr.Action))
		add(z.fields.DateExplanation, cr.DateExplanation)
	}
	return fields
}

func (z *Zendesk) Submit(ctx context.Context, cr *form.ChangeRequest) (*Result, error) {
	res, err := z.client.Post(ctx, "/api/v2/tickets.json").WithJSON(zendeskTicketEnvelope{
		Ticket: zendeskTicket{
			Subject:      z.subject,
			Comment:      &zendeskComment{Body: cr.FormattedText()},
			Requester:    &zendeskRequester{Name: cr.Name, Email: cr.Email},
			CustomFields: z.customFields(cr),
			Tags:         z.tags,
		},
	}).Do()
	if err != nil {
		return nil, failed("zendesk: %v", err)
	}
	if err := res.ExpectStatus(http.StatusCreated, http.StatusOK); err != nil {
		return nil, failed("zendesk: create ticket: %v, body: %s", err, utils.TruncateString(res.Text(), 512))
	}
	var created zendeskTicketEnvelope
	if err := res.JSON(&created); err != nil {
		return nil, failed("zendesk: %v", err)
	}
	if created.Ticket.ID == 0 {
		return nil, failed("zendesk: response has no ticket id")
	}
	ticketID := strconv.FormatInt(created.Ticket.ID, 10)
	log.Info("zendesk ticket created", zap.String("ticket", ticketID))

	if len(cr.Attachments) == 0 {
		return &Result{TicketID: ticketID}, nil
	}

	tokens := make([]string, 0, len(cr.Attachments))
	filenames := make([]string, 0, len(cr.Attachments))
	for _, a := range cr.Attachments {
		token, err := z.upload(ctx, &a)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		filenames = append(filenames, a.Filename)
	}

	res, err = z.client.Put(ctx, "/api/v2/tickets/"+ticketID+".json").WithJSON(zendeskTicketEnvelope{
		Ticket: zendeskTicket{
			Comment: &zendeskComment{Body: strings.Join(filenames, "\n"), Uploads: tokens},
		},
	}).Do()
	if err != nil {
		return nil, failed("zendesk: ticket %s: %v", ticketID, err)
	}
	if err := res.ExpectStatus(http.StatusOK); err != nil {
		return nil, failed("zendesk: ticket %s: attach uploads: %v, body: %s", ticketID, err, utils.TruncateString(res.Text(), 512))
	}
	res.Close()
	log.Info("zendesk uploads attached", zap.String("ticket", ticketID), zap.Int("count", len(tokens)))

	return &Result{TicketID: ticketID}, nil
}

func (z *Zendesk) upload(ctx context.Context, a *form.Attachment) (string, error) {
	res, err := z.client.Post(ctx, "/api/v2/uploads.json").
		WithQuery("filename", a.Filename).
		WithBody(bytes.NewReader(a.Content), a.ContentType).
		Do()
	if err != nil {
		return "", failed("zendesk: upload %s: %v", a.Filename, err)
	}
	if err := res.ExpectStatus(http.StatusCreated, http.StatusOK); err != nil {
		return "", failed("zendesk: upload %s: %v, body: %s", a.Filename, err, utils.TruncateString(res.Text(), 512))
	}
	var uploaded zendeskUploadEnvelope
	if err := res.JSON(&uploaded); err != nil {
		return "", failed("zendesk: upload %s: %v", a.Filename, err)
	}
	if uploaded.Upload.Token == "" {
		return "", failed("zendesk: upload %s: response has no token", a.Filename)
	}
	return uploaded.Upload.Token, nil
}
