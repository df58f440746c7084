package form

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/cloudcarver/feedbackform/lib/httpx"
	"github.com/cloudcarver/feedbackform/pkg/config"
	"github.com/cloudcarver/feedbackform/pkg/logger"
	"github.com/cloudcarver/feedbackform/pkg/scanner"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var log = logger.NewLogAgent("form")

const (
	msgRequired     = "This field is required."
	msgEmail        = "Enter a valid email address."
	msgChoice       = "Select a valid choice. %s is not one of the available choices."
	msgTooLong      = "Ensure this value has at most %s characters (it has %d)."
	msgInvalid      = "Enter a valid value."
	msgFilenameLong = "Ensure this filename has at most %d characters (it has %d)."
	msgEmptyFile    = "The submitted file is empty."
	msgOneFile      = "Upload a single file."
	msgInfected     = "The file %s was rejected by the virus scanner."
	msgUnscannable  = "The file %s could not be checked for viruses, please try again later."
	msgUnreadable   = "The file %s could not be read."
)

// Raw is a submitted form before validation.
type Raw struct {
	Values map[string]string
	Files  map[string][]*multipart.FileHeader
}

// submission holds the text fields of a form. Fields missing from the
// variant stay empty, so their rules only apply when they are shown.
type submission struct {
	Variant         string
	Name            string `form:"name" validate:"required,max=255"`
	Email           string `form:"email" validate:"required,max=255,email"`
	Telephone       string `form:"telephone" validate:"max=255"`
	Description     string `form:"description" validate:"required,max=10000"`
	Department      string `form:"department" validate:"max=255"`
	Action          string `form:"action" validate:"required_if=Variant change-request,omitempty,action"`
	DateExplanation string `form:"date_explanation" validate:"max=10000"`
}

type Validator struct {
	def      *Definition
	scanner  scanner.ScannerInterface
	validate *validator.Validate
}

func NewValidator(cfg *config.Config, scanner scanner.ScannerInterface) (*Validator, error) {
	def, err := NewDefinition(cfg.Form.Variant)
	if err != nil {
		return nil, err
	}
	validate, err := newValidate()
	if err != nil {
		return nil, err
	}
	return &Validator{def: def, scanner: scanner, validate: validate}, nil
}

func newValidate() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	if err := validate.RegisterValidation("action", func(fl validator.FieldLevel) bool {
		return Action(fl.Field().String()).Valid()
	}); err != nil {
		return nil, errors.Wrap(err, "failed to register action validation")
	}
	return validate, nil
}

func (v *Validator) Definition() *Definition {
	return v.def
}

// Validate checks the submission. It returns either the change request or
// the errors per field, never both.
func (v *Validator) Validate(ctx context.Context, raw *Raw) (*ChangeRequest, Errors) {
	values := map[string]string{}
	for _, f := range v.def.Fields {
		values[f.Name] = strings.TrimSpace(raw.Values[f.Name])
	}
	sub := submission{
		Variant:         v.def.Variant,
		Name:            values[FieldName],
		Email:           values[FieldEmail],
		Telephone:       values[FieldTelephone],
		Description:     values[FieldDescription],
		Department:      values[FieldDepartment],
		Action:          values[FieldAction],
		DateExplanation: values[FieldDateExplanation],
	}

	errs := Errors{}
	if err := v.validate.StructCtx(ctx, &sub); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			log.Error("failed to validate form", zap.Error(err))
			errs.Add("", msgInvalid)
		}
		for _, fe := range verrs {
			errs.Add(fe.Field(), message(fe))
		}
	}

	attachments := v.attachments(ctx, raw, errs)

	if len(errs) != 0 {
		return nil, errs
	}
	return &ChangeRequest{
		Variant:         sub.Variant,
		Name:            sub.Name,
		Email:           sub.Email,
		Telephone:       sub.Telephone,
		Description:     sub.Description,
		Department:      sub.Department,
		Action:          Action(sub.Action),
		DateExplanation: sub.DateExplanation,
		Attachments:     attachments,
	}, nil
}

func message(fe validator.FieldError) string {
	val, _ := fe.Value().(string)
	switch fe.Tag() {
	case "required", "required_if":
		return msgRequired
	case "email":
		return msgEmail
	case "max":
		return fmt.Sprintf(msgTooLong, fe.Param(), utf8.RuneCountInString(val))
	case "action":
		return fmt.Sprintf(msgChoice, val)
	default:
		return msgInvalid
	}
}

func (v *Validator) attachments(ctx context.Context, raw *Raw, errs Errors) []Attachment {
	var attachments []Attachment
	for _, field := range AttachmentFields() {
		files := raw.Files[field]
		if len(files) == 0 {
			continue
		}
		if len(files) > 1 {
			errs.Add(field, msgOneFile)
			continue
		}
		fh := files[0]
		if n := utf8.RuneCountInString(fh.Filename); n > MaxFilenameLength {
			errs.Add(field, fmt.Sprintf(msgFilenameLong, MaxFilenameLength, n))
			continue
		}
		if fh.Size == 0 {
			errs.Add(field, msgEmptyFile)
			continue
		}
		content, err := readFile(fh)
		if err != nil {
			log.Warn("failed to read attachment", zap.String("field", field), zap.Error(err))
			errs.Add(field, fmt.Sprintf(msgUnreadable, fh.Filename))
			continue
		}

		res, err := v.scanner.Scan(ctx, fh.Filename, content)
		if err != nil {
			log.Error("failed to scan attachment", zap.String("filename", fh.Filename), zap.Error(err))
			errs.Add(field, fmt.Sprintf(msgUnscannable, fh.Filename))
			continue
		}
		if res.Malware {
			log.Warn("rejected infected attachment", zap.String("filename", fh.Filename), zap.String("reason", res.Reason))
			errs.Add(field, fmt.Sprintf(msgInfected, fh.Filename))
			continue
		}

		contentType := fh.Header.Get("Content-Type")
		if contentType == "" || contentType == "application/octet-stream" {
			contentType = httpx.ContentTypeFromFilename(fh.Filename)
		}
		attachments = append(attachments, Attachment{
			Field:       field,
			Filename:    fh.Filename,
			ContentType: contentType,
			Content:     content,
		})
	}
	return attachments
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()
	return io.ReadAll(f)
}
