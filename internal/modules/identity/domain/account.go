package domain

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

const MinPasswordLength = 6

const (
	MsgInvalidEmail  = "Please enter a valid email"
	MsgShortPassword = "Password must be at least 6 characters"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Account struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the durable signed-in user.
type Identity struct {
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	SignedInAt time.Time `json:"signed_in_at"`
}

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + f[k]
	}
	return strings.Join(parts, "; ")
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateCredentials returns FieldErrors for a malformed email or a short
// password, or nil.
func ValidateCredentials(email, password string) error {
	errs := FieldErrors{}
	if !emailPattern.MatchString(NormalizeEmail(email)) {
		errs["email"] = MsgInvalidEmail
	}
	if len([]rune(password)) < MinPasswordLength {
		errs["password"] = MsgShortPassword
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
