package validation

// Field names shared by the request records and the rule lists.
const (
	FieldName          = "name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldCompany       = "company"
	FieldSubject       = "subject"
	FieldMessage       = "message"
	FieldPreferredTime = "preferredTime"
	FieldWebsite       = "website"
)

// Preferred callback windows.
var PreferredTimes = []string{"morning", "afternoon", "evening"}

// Verdict is the outcome of validating one submission.
// Valid is true iff Errors is empty.
type Verdict struct {
	Valid  bool
	Errors map[string]string
}

// Rule checks one field and carries the message reported when it fails.
type Rule struct {
	Field   string
	Message string
	Check   func(value any) bool
}

// Rules is an ordered list of field rules. Every rule is evaluated;
// the order has no effect on the resulting Verdict.
type Rules []Rule

// Check evaluates every rule against values and aggregates all failures.
// A missing key is checked as nil.
func (rs Rules) Check(values map[string]any) Verdict {
	errors := make(map[string]string)

	for _, r := range rs {
		if !r.Check(values[r.Field]) {
			errors[r.Field] = r.Message
		}
	}

	return Verdict{
		Valid:  len(errors) == 0,
		Errors: errors,
	}
}

var (
	ContactRules = Rules{
		{Field: FieldName, Message: "Name is required", Check: IsNonBlankString},
		{Field: FieldEmail, Message: "Valid email is required", Check: IsValidEmail},
		{Field: FieldPhone, Message: "Valid phone number is required", Check: IsValidPhone},
		{Field: FieldSubject, Message: "Subject is required", Check: IsString},
		{Field: FieldMessage, Message: "Message is required", Check: IsNonBlankString},
	}

	CallbackRules = Rules{
		{Field: FieldName, Message: "Name is required", Check: IsNonBlankString},
		{Field: FieldPhone, Message: "Valid phone number is required", Check: IsValidPhone},
		{Field: FieldPreferredTime, Message: "Preferred time must be morning, afternoon or evening", Check: OneOf(PreferredTimes...)},
	}

	NewsletterRules = Rules{
		{Field: FieldEmail, Message: "Valid email is required", Check: IsValidEmail},
	}
)

// ValidateContact validates a contact form submission.
func ValidateContact(values map[string]any) Verdict {
	return ContactRules.Check(values)
}

// ValidateCallback validates a callback request submission.
func ValidateCallback(values map[string]any) Verdict {
	return CallbackRules.Check(values)
}

// ValidateNewsletter validates a newsletter subscription.
func ValidateNewsletter(values map[string]any) Verdict {
	return NewsletterRules.Check(values)
}
