package flow

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"golang.org/x/text/unicode/norm"
)

// Validation happens on the client before any network call so that
// shape errors never cost a round trip. Error keys follow the json
// tags, matching the field the message should attach to.

type credentials struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name,
			validation.Required.Error("Name is required"),
			validation.Length(1, 50).Error("Name is too long"),
		),
		validation.Field(&c.Email,
			validation.Required.Error("Invalid email address format"),
			is.Email.Error("Invalid email address format"),
		),
		validation.Field(&c.Password, passwordRules()...),
	)
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l loginPayload) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Email,
			validation.Required.Error("Please enter a valid email address"),
			is.Email.Error("Please enter a valid email address"),
		),
		validation.Field(&l.Password, passwordRules()...),
	)
}

type recoveryEmail struct {
	Email string `json:"email"`
}

func (r recoveryEmail) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Invalid email address format"),
			is.Email.Error("Invalid email address format"),
		),
	)
}

type otpCode struct {
	Code string `json:"otp"`
}

func (o otpCode) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Code,
			validation.Required.Error("Your one-time password must be 6 characters."),
			validation.Length(6, 6).Error("Your one-time password must be 6 characters."),
		),
	)
}

type newPassword struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (p newPassword) Validate() error {
	confirmRules := append(passwordRules(),
		validation.By(stringEquals(p.Password, "Passwords don't match")))

	return validation.ValidateStruct(&p,
		validation.Field(&p.Password, passwordRules()...),
		validation.Field(&p.ConfirmPassword, confirmRules...),
	)
}

func passwordRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Password must be at least 8 characters"),
		validation.Length(8, 0).Error("Password must be at least 8 characters"),
		validation.Length(0, 50).Error("Password must be at most 50 characters"),
	}
}

func stringEquals(expected, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != expected {
			return errors.New(msg)
		}
		return nil
	}
}

// normalizeInput trims and NFC-normalizes user-entered text before
// validation, so composed and decomposed forms compare equal on the
// server side.
func normalizeInput(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// fieldErrorMap flattens a validation error into field → message.
// Returns nil for non-validation errors.
func fieldErrorMap(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		out[field] = ferr.Error()
	}

	return out
}
