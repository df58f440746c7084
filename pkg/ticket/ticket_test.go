package ticket

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/form"
	"github.com/cloudcarver/feedbackform/pkg/ticket/tickettest"
	"github.com/stretchr/testify/require"
)

func testChangeRequest(n int) *form.ChangeRequest {
	cr := &form.ChangeRequest{
		Variant:     form.VariantFeedback,
		Name:        "Jane Doe",
		Email:       "jane.doe@example.com",
		Telephone:   "0207 123 4567",
		Description: "The search page returns nothing.",
	}
	for i := 0; i < n; i++ {
		cr.Attachments = append(cr.Attachments, form.Attachment{
			Field:       fmt.Sprintf("attachment%d", i+1),
			Filename:    fmt.Sprintf("file-%d.txt", i+1),
			ContentType: "text/plain",
			Content:     []byte(fmt.Sprintf("content-%d", i+1)),
		})
	}
	return cr
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func newTestZendesk(t *testing.T, cfg config.Zendesk) (*tickettest.Zendesk, *Zendesk) {
	t.Helper()
	fake := tickettest.NewZendesk()
	t.Cleanup(fake.Close)
	cfg.BaseURL = fake.URL
	cfg.Email = "support@example.com"
	cfg.Token = "api-token"
	return fake, NewZendesk(&cfg, nil)
}

func TestZendeskWithoutAttachments(t *testing.T) {
	fake, z := newTestZendesk(t, config.Zendesk{})
	cr := testChangeRequest(0)

	res, err := z.Submit(context.Background(), cr)
	require.NoError(t, err)
	require.Equal(t, "3543", res.TicketID)

	require.Len(t, fake.Requests, 1)
	created := fake.RequestsTo("POST", "/api/v2/tickets.json")
	require.Len(t, created, 1)
	require.Equal(t, basicAuth("support@example.com/token", "api-token"), created[0].Header.Get("Authorization"))

	var payload map[string]map[string]any
	require.NoError(t, json.Unmarshal(created[0].Body, &payload))
	tk := payload["ticket"]
	require.Equal(t, DefaultZendeskSubject, tk["subject"])
	require.Equal(t, map[string]any{"body": cr.FormattedText()}, tk["comment"])
	require.Equal(t, map[string]any{"name": "Jane Doe", "email": "jane.doe@example.com"}, tk["requester"])
	require.Equal(t, []any{"content delivery"}, tk["tags"])
	require.Equal(t, []any{
		map[string]any{"id": float64(DefaultServiceFieldID), "value": "Content Delivery"},
		map[string]any{"id": float64(DefaultEmailFieldID), "value": "jane.doe@example.com"},
		map[string]any{"id": float64(DefaultPhoneFieldID), "value": "0207 123 4567"},
	}, tk["custom_fields"])
}

func TestZendeskUploadsEveryAttachment(t *testing.T) {
	fake, z := newTestZendesk(t, config.Zendesk{})

	res, err := z.Submit(context.Background(), testChangeRequest(3))
	require.NoError(t, err)
	require.Equal(t, "3543", res.TicketID)

	uploads := fake.RequestsTo("POST", "/api/v2/uploads.json")
	require.Len(t, uploads, 3)
	for i, u := range uploads {
		require.Equal(t, fmt.Sprintf("filename=file-%d.txt", i+1), u.Query)
		require.Equal(t, fmt.Sprintf("content-%d", i+1), string(u.Body))
		require.Equal(t, "text/plain", u.Header.Get("Content-Type"))
	}

	updates := fake.RequestsTo("PUT", "/api/v2/tickets/3543.json")
	require.Len(t, updates, 1)
	var payload struct {
		Ticket struct {
			Comment struct {
				Body    string   `json:"body"`
				Uploads []string `json:"uploads"`
			} `json:"comment"`
		} `json:"ticket"`
	}
	require.NoError(t, json.Unmarshal(updates[0].Body, &payload))
	require.Len(t, payload.Ticket.Comment.Uploads, 3)
	require.Equal(t, "file-1.txt\nfile-2.txt\nfile-3.txt", payload.Ticket.Comment.Body)
}

func TestZendeskChangeRequestFields(t *testing.T) {
	subject := "Content change"
	fake, z := newTestZendesk(t, config.Zendesk{
		Subject: &subject,
		Tags:    []string{"cms", "change"},
		Fields:  &config.ZendeskFields{Service: 1, Department: 4, Action: 5, DateExplanation: 6},
	})
	cr := testChangeRequest(0)
	cr.Variant = form.VariantChangeRequest
	cr.Department = "Analysis"
	cr.Action = form.ActionAddGovUK
	cr.DateExplanation = "Before the launch on Monday"

	_, err := z.Submit(context.Background(), cr)
	require.NoError(t, err)

	var payload map[string]map[string]any
	require.NoError(t, json.Unmarshal(fake.Requests[0].Body, &payload))
	tk := payload["ticket"]
	require.Equal(t, subject, tk["subject"])
	require.Equal(t, []any{"cms", "change"}, tk["tags"])
	// fields without an id are not sent
	require.Equal(t, []any{
		map[string]any{"id": float64(1), "value": "Content Delivery"},
		map[string]any{"id": float64(4), "value": "Analysis"},
		map[string]any{"id": float64(5), "value": string(form.ActionAddGovUK)},
		map[string]any{"id": float64(6), "value": "Before the launch on Monday"},
	}, tk["custom_fields"])
}

func TestZendeskFailures(t *testing.T) {
	for _, failPath := range []string{"/api/v2/tickets.json", "/api/v2/uploads.json", "/api/v2/tickets/"} {
		t.Run(failPath, func(t *testing.T) {
			fake, z := newTestZendesk(t, config.Zendesk{})
			fake.FailPath = failPath

			_, err := z.Submit(context.Background(), testChangeRequest(2))
			require.ErrorIs(t, err, ErrSubmissionFailed)
		})
	}
}

func newTestJira(t *testing.T, watchers ...string) (*tickettest.Jira, *Jira) {
	t.Helper()
	fake := tickettest.NewJira()
	t.Cleanup(fake.Close)
	return fake, NewJira(&config.Jira{
		URL:                fake.URL,
		Username:           "svc",
		Password:           "secret",
		ContentProjectID:   "100",
		WorkspaceProjectID: "200",
		Watchers:           watchers,
	}, nil)
}

func TestJiraRouting(t *testing.T) {
	testCases := []struct {
		action  form.Action
		project string
	}{
		{action: form.ActionAddGovUK, project: "100"},
		{action: form.ActionUpdateGovUK, project: "100"},
		{action: form.ActionAddGreat, project: "100"},
		{action: form.ActionUpdateGreat, project: "100"},
		{action: form.ActionAddWorkspace, project: "200"},
		{action: form.ActionUpdateWorkspace, project: "200"},
		{action: "", project: "100"},
	}
	for _, tc := range testCases {
		t.Run(string(tc.action), func(t *testing.T) {
			fake, j := newTestJira(t)
			cr := testChangeRequest(0)
			cr.Action = tc.action

			res, err := j.Submit(context.Background(), cr)
			require.NoError(t, err)
			require.Equal(t, "P"+tc.project+"-1", res.TicketID)

			created := fake.RequestsTo("POST", "/rest/api/2/issue")
			require.Len(t, created, 1)
			require.Equal(t, basicAuth("svc", "secret"), created[0].Header.Get("Authorization"))

			var payload jiraCreateIssue
			require.NoError(t, json.Unmarshal(created[0].Body, &payload))
			require.Equal(t, tc.project, payload.Fields.Project.ID)
			require.Equal(t, JiraIssueType, payload.Fields.IssueType.Name)
			require.Equal(t, JiraPriority, payload.Fields.Priority.Name)
			require.Equal(t, DefaultJiraSummary, payload.Fields.Summary)
			require.Equal(t, cr.FormattedText(), payload.Fields.Description)
		})
	}
}

func TestJiraAttachmentsAndWatchers(t *testing.T) {
	fake, j := newTestJira(t, "alice", "bob")

	res, err := j.Submit(context.Background(), testChangeRequest(2))
	require.NoError(t, err)

	attachments := fake.RequestsTo("POST", "/attachments")
	require.Len(t, attachments, 2)
	for i, a := range attachments {
		require.Equal(t, "/rest/api/2/issue/"+res.TicketID+"/attachments", a.Path)
		require.Equal(t, "no-check", a.Header.Get("X-Atlassian-Token"))
		require.Equal(t, fmt.Sprintf("file-%d.txt", i+1), a.Filename)
		require.Equal(t, fmt.Sprintf("content-%d", i+1), string(a.Body))
	}

	watchers := fake.RequestsTo("POST", "/watchers")
	require.Len(t, watchers, 2)
	require.Equal(t, `"alice"`, string(watchers[0].Body))
	require.Equal(t, `"bob"`, string(watchers[1].Body))
}

func TestJiraFailures(t *testing.T) {
	for _, failPath := range []string{"/rest/api/2/issue", "/attachments", "/watchers"} {
		t.Run(failPath, func(t *testing.T) {
			fake, j := newTestJira(t, "alice")
			fake.FailPath = failPath

			_, err := j.Submit(context.Background(), testChangeRequest(1))
			require.ErrorIs(t, err, ErrSubmissionFailed)
		})
	}
}

func TestRoutingTableDefaults(t *testing.T) {
	r := NewRoutingTable(&config.Jira{ContentProjectID: "100", DefaultProjectID: "300"})
	require.Equal(t, "100", r.Project(form.ActionAddGovUK))
	// no workspace project, the default one receives workspace changes
	require.Equal(t, "300", r.Project(form.ActionAddWorkspace))
	require.Equal(t, "300", r.Project(""))
	require.Equal(t, "300", r.Project("unknown"))
}

func TestNewSubmitter(t *testing.T) {
	s, err := NewSubmitter(&config.Config{})
	require.NoError(t, err)
	require.Equal(t, config.BackendZendesk, s.Backend())

	s, err = NewSubmitter(&config.Config{Backend: config.BackendJira})
	require.NoError(t, err)
	require.Equal(t, config.BackendJira, s.Backend())

	_, err = NewSubmitter(&config.Config{Backend: "trello"})
	require.Error(t, err)
}

func TestIssueURL(t *testing.T) {
	require.Equal(t, "https://jira.example.com/browse/P100-1", IssueURL("https://jira.example.com/browse/{}", "P100-1"))
	require.Empty(t, IssueURL("", "P100-1"))
}
