package auth

import (
	"regexp"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"
)

var (
	reUpper   = regexp.MustCompile(`[A-Z]`)
	reLower   = regexp.MustCompile(`[a-z]`)
	reDigit   = regexp.MustCompile(`[0-9]`)
	reSpecial = regexp.MustCompile(`[^A-Za-z0-9]`)
)

// FieldIssue is one validation failure as reported to the client.
type FieldIssue struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 100),
			validation.Match(reUpper).Error("must contain an uppercase letter"),
			validation.Match(reLower).Error("must contain a lowercase letter"),
			validation.Match(reDigit).Error("must contain a digit"),
			validation.Match(reSpecial).Error("must contain a special character"),
		),
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
	)
}

// FormatValidationIssues flattens an ozzo error map into the wire
// shape. Output is sorted by field so responses are stable.
func FormatValidationIssues(err error) []FieldIssue {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return []FieldIssue{{Field: "", Code: "invalid", Message: err.Error()}}
	}

	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	issues := make([]FieldIssue, 0, len(fields))
	for _, field := range fields {
		issues = append(issues, FieldIssue{
			Field:   field,
			Code:    "invalid",
			Message: verrs[field].Error(),
		})
	}

	return issues
}

// NormalizePhone canonicalizes a phone number to E.164, defaulting to
// the US region for bare national numbers. An empty input stays empty;
// a number that cannot be parsed or is not valid is rejected.
func NormalizePhone(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}

	num, err := phonenumbers.Parse(raw, "US")
	if err != nil {
		return "", NewSchemaValidationError([]FieldIssue{{
			Field:   "phone",
			Code:    "invalid",
			Message: "must be a valid phone number",
		}})
	}

	if !phonenumbers.IsValidNumber(num) {
		return "", NewSchemaValidationError([]FieldIssue{{
			Field:   "phone",
			Code:    "invalid",
			Message: "must be a valid phone number",
		}})
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
