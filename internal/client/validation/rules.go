// Package validation implements the client-side form rules. Rules are pure
// and synchronous: they inspect field values only, never the network or the
// session store. A failed rule blocks submission and yields a fixed,
// field-scoped message for the view to render next to the input.
package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/amishiro/userportal/internal/client/models"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string // wire name of the field, e.g. "userId"
	Message string // user-facing message
}

// Report collects the failures of one form check. An empty report means the
// form may be submitted.
type Report []FieldError

// Message returns the message for the named field, or "".
func (r Report) Message(field string) string {
	for _, fe := range r {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// ForField narrows the report to one field. Views use it to validate a field
// as soon as it is entered, before the whole form is checked at submit.
func (r Report) ForField(field string) Report {
	var out Report
	for _, fe := range r {
		if fe.Field == field {
			out = append(out, fe)
		}
	}
	return out
}

const (
	MsgUserIDRequired          = "userId is required"
	MsgUserNameRequired        = "userName is required"
	MsgPasswordRequired        = "password is required"
	MsgConfirmPasswordRequired = "confirmPassword is required"
	MsgPasswordMismatch        = "passwords do not match"
)

// Rules evaluates form inputs against the configured policy.
type Rules struct {
	passwordMinLen int
	v              *validator.Validate
}

// NewRules builds a rule set. passwordMinLen below 1 is raised to 1 so an
// empty password can never slip through as "long enough".
func NewRules(passwordMinLen int) *Rules {
	if passwordMinLen < 1 {
		passwordMinLen = 1
	}
	return &Rules{
		passwordMinLen: passwordMinLen,
		v:              validator.New(validator.WithRequiredStructEnabled()),
	}
}

// PasswordMinLen reports the active minimum password length.
func (r *Rules) PasswordMinLen() int { return r.passwordMinLen }

func (r *Rules) passwordTooShortMsg() string {
	return fmt.Sprintf("password must be at least %d characters", r.passwordMinLen)
}

// CheckLogin validates login credentials. Field order in the report follows
// the form layout: userId first, then password.
func (r *Rules) CheckLogin(in *models.Credentials) Report {
	var rep Report
	if err := r.v.Struct(in); err != nil {
		rep = append(rep, r.translate(err)...)
	}
	rep = append(rep, r.checkPasswordLength(in.Password)...)
	return rep
}

// CheckRegistration validates registration input, including the cross-field
// confirmPassword equality.
func (r *Rules) CheckRegistration(in *models.RegistrationInput) Report {
	var rep Report
	if err := r.v.Struct(in); err != nil {
		rep = append(rep, r.translate(err)...)
	}
	rep = append(rep, r.checkPasswordLength(in.Password)...)
	return rep
}

// checkPasswordLength applies the configured minimum. The required rule owns
// the empty case, so an empty password reports only "required".
func (r *Rules) checkPasswordLength(password string) Report {
	if password == "" {
		return nil
	}
	if err := r.v.Var(password, fmt.Sprintf("min=%d", r.passwordMinLen)); err != nil {
		return Report{{Field: "password", Message: r.passwordTooShortMsg()}}
	}
	return nil
}

// translate maps validator failures onto the fixed per-field messages.
func (r *Rules) translate(err error) Report {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Only struct inputs are validated, so this is unreachable in
		// practice; report it against the form rather than panic.
		return Report{{Field: "", Message: err.Error()}}
	}

	var rep Report
	for _, fe := range verrs {
		switch fe.StructField() {
		case "UserID":
			rep = append(rep, FieldError{Field: "userId", Message: MsgUserIDRequired})
		case "UserName":
			rep = append(rep, FieldError{Field: "userName", Message: MsgUserNameRequired})
		case "Password":
			rep = append(rep, FieldError{Field: "password", Message: MsgPasswordRequired})
		case "ConfirmPassword":
			if fe.Tag() == "eqfield" {
				rep = append(rep, FieldError{Field: "confirmPassword", Message: MsgPasswordMismatch})
			} else {
				rep = append(rep, FieldError{Field: "confirmPassword", Message: MsgConfirmPasswordRequired})
			}
		}
	}
	return rep
}
