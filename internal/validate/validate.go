// Package validate implements client-side form validation.
//
// Functions return message keys from package i18n; an empty string means valid.
package validate

import (
	"regexp"
	"strings"

	"tasktrack/internal/i18n"
)

var (
	// loosely "something@something.something", used by login and forgot-password
	looseEmail = regexp.MustCompile(`\S+@\S+\.\S+`)
	// stricter registration pattern: no whitespace or extra @ in any part
	strictEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	upperRe  = regexp.MustCompile(`[A-Z]`)
	digitRe  = regexp.MustCompile(`[0-9]`)
	symbolRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// FieldErrors maps a form field name to a message key.
type FieldErrors map[string]string

// Set records msg for field when msg is non-empty.
func (f FieldErrors) Set(field, msg string) {
	if msg != "" {
		f[field] = msg
	}
}

// Empty reports whether no field has an error.
func (f FieldErrors) Empty() bool {
	for _, msg := range f {
		if msg != "" {
			return false
		}
	}
	return true
}

// Email validates an email with the loose pattern.
func Email(email string) string {
	if email == "" {
		return i18n.EmailRequired
	}
	if !looseEmail.MatchString(email) {
		return i18n.EmailInvalid
	}
	return ""
}

// EmailStrict validates an email with the registration pattern.
func EmailStrict(email string) string {
	if email == "" {
		return i18n.EmailRequired
	}
	if !strictEmail.MatchString(email) {
		return i18n.EmailInvalid
	}
	return ""
}

// Name validates a display name.
func Name(name string) string {
	if strings.TrimSpace(name) == "" {
		return i18n.NameRequired
	}
	return ""
}

// Password checks the four hard rules in order and reports the first failure.
func Password(password string) string {
	switch {
	case password == "":
		return i18n.PasswordRequired
	case len(password) < MinPasswordLength:
		return i18n.PasswordTooShort
	case !upperRe.MatchString(password):
		return i18n.PasswordNoUpper
	case !symbolRe.MatchString(password):
		return i18n.PasswordNoSymbol
	case !digitRe.MatchString(password):
		return i18n.PasswordNoDigit
	}
	return ""
}

// Confirmation checks that the confirmation field is filled and matches.
func Confirmation(password, confirm string) string {
	if confirm == "" {
		return i18n.ConfirmRequired
	}
	if password != confirm {
		return i18n.PasswordMismatch
	}
	return ""
}

// Checklist reports which password rules are satisfied, for the hint list.
type Checklist struct {
	Length bool
	Upper  bool
	Symbol bool
	Digit  bool
}

// Check evaluates every rule independently.
func Check(password string) Checklist {
	return Checklist{
		Length: len(password) >= MinPasswordLength,
		Upper:  upperRe.MatchString(password),
		Symbol: symbolRe.MatchString(password),
		Digit:  digitRe.MatchString(password),
	}
}

// Score counts satisfied rules.
func (c Checklist) Score() int {
	n := 0
	for _, ok := range []bool{c.Length, c.Upper, c.Symbol, c.Digit} {
		if ok {
			n++
		}
	}
	return n
}

// Strength is the meter shown next to password fields. It never accepts or
// rejects a password on its own.
type Strength struct {
	Score int
	Label string
}

var strengthLabels = [...]string{
	i18n.StrengthVeryWeak,
	i18n.StrengthWeak,
	i18n.StrengthMedium,
	i18n.StrengthStrong,
	i18n.StrengthVeryStrong,
}

// PasswordStrength classifies a password by the number of satisfied rules.
func PasswordStrength(password string) Strength {
	score := Check(password).Score()
	return Strength{Score: score, Label: strengthLabels[score]}
}
