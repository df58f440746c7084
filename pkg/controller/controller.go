package controller

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cloudcarver/feedbackform/pkg/auth"
	"github.com/cloudcarver/feedbackform/pkg/authbroker"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/form"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/cloudcarver/feedbackform/pkg/service"
	"github.com/cloudcarver/feedbackform/pkg/ticket"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var log = logger.NewLogAgent("controller")

const (
	SuccessPath = "/success/"

	IssueNotSpecified = "Not specified"
)

type FormPage struct {
	Definition  *form.Definition
	Values      map[string]string
	Errors      form.Errors
	Attachments []string
}

type SuccessPage struct {
	Issue    string
	IssueURL string
}

type Controller struct {
	svc      service.ServiceInterface
	auth     auth.AuthInterface
	issueURL string
}

func NewController(cfg *config.Config, s service.ServiceInterface, auth auth.AuthInterface) *Controller {
	return &Controller{
		svc:      s,
		auth:     auth,
		issueURL: cfg.Jira.IssueURL,
	}
}

func (controller *Controller) formPage(values map[string]string, errs form.Errors) FormPage {
	return FormPage{
		Definition:  controller.svc.Definition(),
		Values:      values,
		Errors:      errs,
		Attachments: form.AttachmentFields(),
	}
}

// GetForm renders the empty form, pre-filled with the name and email of the
// logged in user.
func (controller *Controller) GetForm(c *fiber.Ctx) error {
	values := map[string]string{}

	profile, err := controller.auth.Profile(c)
	switch {
	case err == nil:
		values[form.FieldName] = profile.FullName()
		values[form.FieldEmail] = profile.Email
	case errors.Is(err, authbroker.ErrAuthExpired), errors.Is(err, authbroker.ErrProfileFetchFailed):
		log.Info("profile unavailable, sending the user to login", zap.Error(err))
		return c.Redirect(auth.LoginPath, http.StatusFound)
	default:
		log.Warn("rendering the form without profile", zap.Error(err))
	}

	return c.Render("form", controller.formPage(values, nil))
}

func (controller *Controller) PostForm(c *fiber.Ctx) error {
	raw, err := controller.rawForm(c)
	if err != nil {
		return err
	}

	result, errs, err := controller.svc.SubmitChangeRequest(c.UserContext(), raw)
	if err != nil {
		return err
	}
	if len(errs) != 0 {
		return c.Status(fiber.StatusOK).Render("form", controller.formPage(raw.Values, errs))
	}

	return c.Redirect(SuccessPath+"?issue="+result.TicketID, http.StatusFound)
}

func (controller *Controller) rawForm(c *fiber.Ctx) (*form.Raw, error) {
	raw := &form.Raw{
		Values: map[string]string{},
		Files:  map[string][]*multipart.FileHeader{},
	}
	for _, f := range controller.svc.Definition().Fields {
		raw.Values[f.Name] = strings.Clone(c.FormValue(f.Name))
	}

	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return raw, nil
	}
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Malformed form data")
	}
	for _, name := range form.AttachmentFields() {
		if files := mf.File[name]; len(files) != 0 {
			raw.Files[name] = files
		}
	}
	return raw, nil
}

func (controller *Controller) Success(c *fiber.Ctx) error {
	issue := strings.Clone(c.Query("issue", IssueNotSpecified))
	page := SuccessPage{Issue: issue}
	if issue != IssueNotSpecified {
		page.IssueURL = ticket.IssueURL(controller.issueURL, issue)
	}
	return c.Render("success", page)
}

func (controller *Controller) LoggedOut(c *fiber.Ctx) error {
	return c.Render("logged_out", nil)
}
