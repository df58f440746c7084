package form

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const (
	VariantFeedback      = "feedback"
	VariantChangeRequest = "change-request"
	VariantBasic         = "basic"
)

const (
	MaxLineLength     = 255
	MaxTextLength     = 10000
	MaxAttachments    = 5
	MaxFilenameLength = 255
)

const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldTelephone       = "telephone"
	FieldDescription     = "description"
	FieldDepartment      = "department"
	FieldAction          = "action"
	FieldDateExplanation = "date_explanation"
)

var ErrUnknownVariant = errors.New("unknown form variant")

type Action string

const (
	ActionAddGovUK        Action = "Add new content to Gov.uk"
	ActionUpdateGovUK     Action = "Update or remove content on Gov.uk"
	ActionAddGreat        Action = "Add new content to Great.gov.uk"
	ActionUpdateGreat     Action = "Update or remove content on Great.gov.uk"
	ActionAddWorkspace    Action = "Add new content to Digital Workspace"
	ActionUpdateWorkspace Action = "Update or remove content on Digital Workspace"
)

var Actions = []Action{
	ActionAddGovUK,
	ActionUpdateGovUK,
	ActionAddGreat,
	ActionUpdateGreat,
	ActionAddWorkspace,
	ActionUpdateWorkspace,
}

func (a Action) Valid() bool {
	for _, v := range Actions {
		if a == v {
			return true
		}
	}
	return false
}

// IsWorkspace reports whether the change targets the Digital Workspace
// intranet rather than the public sites.
func (a Action) IsWorkspace() bool {
	return a == ActionAddWorkspace || a == ActionUpdateWorkspace
}

type Field struct {
	Name      string
	Label     string
	Help      string
	Required  bool
	Multiline bool
	MaxLength int
	Choices   []string
}

// Definition lists the fields of one form variant in display order.
type Definition struct {
	Variant string
	Fields  []Field
}

func NewDefinition(variant string) (*Definition, error) {
	if variant == "" {
		variant = VariantFeedback
	}

	name := Field{Name: FieldName, Label: "Your full name", Required: true, MaxLength: MaxLineLength}
	email := Field{Name: FieldEmail, Label: "Your email address", Required: true, MaxLength: MaxLineLength}
	telephone := Field{
		Name:      FieldTelephone,
		Label:     "Phone number",
		Help:      "Please provide a direct number in case we need to discuss your feedback.",
		MaxLength: MaxLineLength,
	}
	description := Field{
		Name:      FieldDescription,
		Label:     "What's your feedback?",
		Help:      "If you're reporting a bug, please include enough step by step instructions for us to experience the bug, what you've already tried and your aim.",
		Required:  true,
		Multiline: true,
		MaxLength: MaxTextLength,
	}

	switch variant {
	case VariantFeedback:
		return &Definition{Variant: variant, Fields: []Field{name, email, telephone, description}}, nil
	case VariantBasic:
		return &Definition{Variant: variant, Fields: []Field{name, email, description}}, nil
	case VariantChangeRequest:
		choices := make([]string, 0, len(Actions))
		for _, a := range Actions {
			choices = append(choices, string(a))
		}
		description.Label = "Describe the change you need"
		return &Definition{Variant: variant, Fields: []Field{
			name,
			email,
			telephone,
			{Name: FieldDepartment, Label: "Your department or team", MaxLength: MaxLineLength},
			{Name: FieldAction, Label: "What would you like to do?", Required: true, Choices: choices},
			description,
			{
				Name:      FieldDateExplanation,
				Label:     "Does the change need to happen by a certain date?",
				Help:      "Tell us the date and why it matters.",
				Multiline: true,
				MaxLength: MaxTextLength,
			},
		}}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownVariant, "%s", variant)
	}
}

func (d *Definition) HasField(name string) bool {
	for _, f := range d.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// AttachmentFields returns the names of the file inputs, attachment1 to attachment5.
func AttachmentFields() []string {
	names := make([]string, MaxAttachments)
	for i := range names {
		names[i] = fmt.Sprintf("attachment%d", i+1)
	}
	return names
}

type Attachment struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

// ChangeRequest is a validated form submission.
type ChangeRequest struct {
	Variant         string
	Name            string
	Email           string
	Telephone       string
	Description     string
	Department      string
	Action          Action
	DateExplanation string
	Attachments     []Attachment
}

// FormattedText is the plain text ticket body shared by all backends.
func (cr *ChangeRequest) FormattedText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", cr.Name)
	fmt.Fprintf(&b, "Email: %s\n", cr.Email)
	if cr.Variant != VariantBasic {
		fmt.Fprintf(&b, "Telephone: %s\n", cr.Telephone)
	}
	fmt.Fprintf(&b, "Description: %s", cr.Description)
	return b.String()
}
