package model

import (
	"github.com/taamulcredit/formrelay/internal/validation"
)

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    Field
	Email   Field
	Phone   Field
	Company Field
	Subject Field
	Message Field

	// Website is the honeypot; people never see it, bots fill it in.
	Website Field
}

// NewContactRequest picks the contact fields out of a decoded body.
func NewContactRequest(s Submission) *ContactRequest {
	return &ContactRequest{
		Name:    s.Field(validation.FieldName),
		Email:   s.Field(validation.FieldEmail),
		Phone:   s.Field(validation.FieldPhone),
		Company: s.Field(validation.FieldCompany),
		Subject: s.Field(validation.FieldSubject),
		Message: s.Field(validation.FieldMessage),
		Website: s.Field(validation.FieldWebsite),
	}
}

func (r *ContactRequest) Values() map[string]any {
	return map[string]any{
		validation.FieldName:    r.Name.Raw(),
		validation.FieldEmail:   r.Email.Raw(),
		validation.FieldPhone:   r.Phone.Raw(),
		validation.FieldCompany: r.Company.Raw(),
		validation.FieldSubject: r.Subject.Raw(),
		validation.FieldMessage: r.Message.Raw(),
	}
}

func (r *ContactRequest) Validate() validation.Verdict {
	return validation.ContactRules.Check(r.Values())
}

func (r *ContactRequest) IsSpam() bool {
	return r.Website.Truthy()
}

// Payload builds the sanitized upstream payload.
func (r *ContactRequest) Payload() ContactPayload {
	return ContactPayload{
		Type:    TypeContact,
		Name:    r.Name.Sanitized(),
		Email:   r.Email.Sanitized(),
		Phone:   r.Phone.Sanitized(),
		Company: r.Company.Sanitized(),
		Subject: r.Subject.Sanitized(),
		Message: r.Message.Sanitized(),
	}
}

// CallbackRequest is the body of POST /api/callback.
type CallbackRequest struct {
	Name          Field
	Phone         Field
	PreferredTime Field
	Website       Field
}

// NewCallbackRequest picks the callback fields out of a decoded body.
func NewCallbackRequest(s Submission) *CallbackRequest {
	return &CallbackRequest{
		Name:          s.Field(validation.FieldName),
		Phone:         s.Field(validation.FieldPhone),
		PreferredTime: s.Field(validation.FieldPreferredTime),
		Website:       s.Field(validation.FieldWebsite),
	}
}

func (r *CallbackRequest) Values() map[string]any {
	return map[string]any{
		validation.FieldName:          r.Name.Raw(),
		validation.FieldPhone:         r.Phone.Raw(),
		validation.FieldPreferredTime: r.PreferredTime.Raw(),
	}
}

func (r *CallbackRequest) Validate() validation.Verdict {
	return validation.CallbackRules.Check(r.Values())
}

func (r *CallbackRequest) IsSpam() bool {
	return r.Website.Truthy()
}

func (r *CallbackRequest) Payload() CallbackPayload {
	return CallbackPayload{
		Type:          TypeCallback,
		Name:          r.Name.Sanitized(),
		Phone:         r.Phone.Sanitized(),
		PreferredTime: r.PreferredTime.Sanitized(),
	}
}

// NewsletterRequest is the body of POST /api/newsletter. It has no honeypot.
type NewsletterRequest struct {
	Email Field
}

// NewNewsletterRequest picks the newsletter field out of a decoded body.
func NewNewsletterRequest(s Submission) *NewsletterRequest {
	return &NewsletterRequest{
		Email: s.Field(validation.FieldEmail),
	}
}

func (r *NewsletterRequest) Values() map[string]any {
	return map[string]any{
		validation.FieldEmail: r.Email.Raw(),
	}
}

func (r *NewsletterRequest) Validate() validation.Verdict {
	return validation.NewsletterRules.Check(r.Values())
}

func (r *NewsletterRequest) Payload() NewsletterPayload {
	return NewsletterPayload{
		Type:  TypeNewsletter,
		Email: r.Email.Sanitized(),
	}
}

// ContactPayload is forwarded upstream for a contact submission.
type ContactPayload struct {
	Type    SubmissionType `json:"type"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Company string         `json:"company"`
	Subject string         `json:"subject"`
	Message string         `json:"message"`
}

// CallbackPayload is forwarded upstream for a callback request.
type CallbackPayload struct {
	Type          SubmissionType `json:"type"`
	Name          string         `json:"name"`
	Phone         string         `json:"phone"`
	PreferredTime string         `json:"preferredTime"`
}

// NewsletterPayload is forwarded upstream for a newsletter subscription.
type NewsletterPayload struct {
	Type  SubmissionType `json:"type"`
	Email string         `json:"email"`
}
