package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Validation constants
const (
	MinUsernameLength = 5
	MaxUsernameLength = 20
	MaxNameLength     = 20
	MinPasswordLength = 5
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.com$`)

// User represents a registered account
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Hash      string    `json:"-"` // bcrypt hash, never exposed
	Interests []string  `json:"interests,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Feedback is a free-text note submitted by a user
type Feedback struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedOn time.Time `json:"created_on"`
}

// ValidateEmail checks the address against the account email pattern.
func ValidateEmail(raw string) (string, *FieldError) {
	if !emailPattern.MatchString(raw) {
		return "", &FieldError{Field: "email", Message: fmt.Sprintf("invalid email %q", raw)}
	}
	return raw, nil
}

// ValidateUsername checks 5..20 chars, not blank, no "@".
func ValidateUsername(raw string) (string, *FieldError) {
	if strings.TrimSpace(raw) == "" {
		return "", &FieldError{Field: "username", Message: "username is blank"}
	}
	if len(raw) < MinUsernameLength || len(raw) > MaxUsernameLength {
		return "", &FieldError{
			Field:   "username",
			Message: fmt.Sprintf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength),
		}
	}
	if strings.Contains(raw, "@") {
		return "", &FieldError{Field: "username", Message: "username must not contain @"}
	}
	return raw, nil
}

// ValidateName checks 1..20 chars, not blank, no "@".
func ValidateName(raw string) (string, *FieldError) {
	if strings.TrimSpace(raw) == "" {
		return "", &FieldError{Field: "name", Message: "name is blank"}
	}
	if len(raw) > MaxNameLength {
		return "", &FieldError{
			Field:   "name",
			Message: fmt.Sprintf("name must be between 1 and %d characters", MaxNameLength),
		}
	}
	if strings.Contains(raw, "@") {
		return "", &FieldError{Field: "name", Message: "name must not contain @"}
	}
	return raw, nil
}

// ValidatePassword evaluates the four safety predicates independently and
// reports every violated one.
func ValidatePassword(raw string) []FieldError {
	var errs []FieldError
	if len(raw) < MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "password is too short"})
	}
	var hasDigit, hasUpper, hasSpecial bool
	for _, r := range raw {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}
	if !hasDigit {
		errs = append(errs, FieldError{Field: "password", Message: "password has no number"})
	}
	if !hasUpper {
		errs = append(errs, FieldError{Field: "password", Message: "password has no uppercase letter"})
	}
	if !hasSpecial {
		errs = append(errs, FieldError{Field: "password", Message: "password has no special character"})
	}
	return errs
}

// RegisterRequest carries the raw fields for account registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ValidatedRegisterInput is the fully validated composite of a register
// request. The password is still the raw secret; hashing happens in the
// service layer.
type ValidatedRegisterInput struct {
	Email    string
	Username string
	Name     string
	Password string
}

// Validate runs every field validator and collects all failures.
func (r *RegisterRequest) Validate() (*ValidatedRegisterInput, []FieldError) {
	var errs []FieldError
	input := &ValidatedRegisterInput{Password: r.Password}

	var fe *FieldError
	input.Email, fe = ValidateEmail(r.Email)
	if fe != nil {
		errs = append(errs, *fe)
	}
	input.Username, fe = ValidateUsername(r.Username)
	if fe != nil {
		errs = append(errs, *fe)
	}
	input.Name, fe = ValidateName(r.Name)
	if fe != nil {
		errs = append(errs, *fe)
	}
	errs = append(errs, ValidatePassword(r.Password)...)

	if len(errs) > 0 {
		return nil, errs
	}
	return input, nil
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
