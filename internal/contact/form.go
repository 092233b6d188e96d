// Package contact validates the contact form and turns it into a mail-compose
// action. Nothing is sent over the network.
package contact

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrMissingFields = errors.New("contact: missing required field")
	ErrInvalidEmail  = errors.New("contact: invalid email address")
)

// UserMessage is the notification text shown for a validation error.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingFields):
		return "Please fill in all required fields"
	case errors.Is(err, ErrInvalidEmail):
		return "Please enter a valid email address"
	case err == nil:
		return ""
	}
	return err.Error()
}

// DefaultSubject is used when the form's subject is left blank.
const DefaultSubject = "Message from your website"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Form is the submitted field set.
type Form struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Validate checks the required fields, then the email shape.
func (f Form) Validate() error {
	if f.Name == "" || f.Email == "" || f.Message == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(f.Email) {
		return ErrInvalidEmail
	}
	return nil
}

// Body is the plain-text mail body.
func (f Form) Body() string {
	return "Name: " + f.Name + "\n" +
		"Email: " + f.Email + "\n\n" +
		"Message:\n" + f.Message
}

// MailtoURL builds the mailto link addressed to recipient.
func (f Form) MailtoURL(recipient string) string {
	subject := f.Subject
	if subject == "" {
		subject = DefaultSubject
	}
	return "mailto:" + recipient +
		"?subject=" + EncodeComponent(subject) +
		"&body=" + EncodeComponent(f.Body())
}

// EncodeComponent percent-encodes s the way URI components are encoded in
// mail links: everything but letters, digits and -_.!~*'() is escaped, and
// spaces become %20 rather than '+'.
func EncodeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
