// Package lead defines the sales records the console works on: leads loaded
// from the seed list and the opportunities created by converting them.
package lead

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// Status is a lead's qualification state.
type Status string

const (
	StatusNew       Status = "new"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusLost      Status = "lost"
)

// Statuses lists every lead status in display order.
func Statuses() []Status {
	return []Status{StatusNew, StatusContacted, StatusQualified, StatusLost}
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusLost:
		return true
	}
	return false
}

// Label returns the capitalized status for display ("new" -> "New").
func (s Status) Label() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Next cycles to the following status, wrapping after the last one.
func (s Status) Next() Status {
	all := Statuses()
	for i, st := range all {
		if st == s {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// Prev cycles to the preceding status, wrapping before the first one.
func (s Status) Prev() Status {
	all := Statuses()
	for i, st := range all {
		if st == s {
			return all[(i-1+len(all))%len(all)]
		}
	}
	return all[len(all)-1]
}

// ParseStatus converts a raw value into a Status (case-insensitive).
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// Lead is a prospective customer record. Only Email and Status are editable.
type Lead struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Source  string `json:"source"`
	Score   int    `json:"score"`
	Status  Status `json:"status"`
}

// Update is the editable subset of a lead.
type Update struct {
	Email  string
	Status Status
}

// Apply returns a copy of l with the update applied.
func (l Lead) Apply(u Update) Lead {
	l.Email = u.Email
	l.Status = u.Status
	return l
}

// ErrInvalidEmail is returned when an email address fails the format check.
var ErrInvalidEmail = errors.New("invalid email address")

// InvalidEmailText is the inline message shown under a rejected email field.
const InvalidEmailText = "Please enter a valid email address"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email has the shape local@domain.tld. Any
// Unicode space is rejected, not only the ASCII ones \s matches.
func ValidEmail(email string) bool {
	if strings.IndexFunc(email, isSpace) >= 0 {
		return false
	}
	return emailPattern.MatchString(email)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// Validate checks the update before it may be saved.
func (u Update) Validate() error {
	if !ValidEmail(u.Email) {
		return ErrInvalidEmail
	}
	if !u.Status.Valid() {
		return errors.New("unknown lead status " + string(u.Status))
	}
	return nil
}
