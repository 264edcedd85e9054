package contact

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"net/url"
	"strings"
	"text/template"
)

// DefaultSubject is the subject template used when none is configured.
const DefaultSubject = "Portfolio Contact from {{.Name}}"

// Composer builds mailto links addressed to a fixed recipient.
type Composer struct {
	recipient string
	subject   *template.Template
}

// NewComposer parses subject as a text/template over Submission and renders it
// once against an empty Submission, so a reference to an unknown field fails
// here rather than on every Compose.
func NewComposer(recipient, subject string) (*Composer, error) {
	addr, err := mail.ParseAddress(recipient)
	if err != nil {
		return nil, fmt.Errorf("parsing recipient %q: %w", recipient, err)
	}
	if addr.Name != "" || addr.Address != strings.TrimSpace(recipient) {
		return nil, errors.New("recipient must be a bare address")
	}
	if subject == "" {
		subject = DefaultSubject
	}
	tmpl, err := template.New("subject").Option("missingkey=error").Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("parsing subject template: %w", err)
	}
	if err := tmpl.Execute(io.Discard, Submission{}); err != nil {
		return nil, fmt.Errorf("rendering subject template: %w", err)
	}
	return &Composer{recipient: addr.Address, subject: tmpl}, nil
}

// Recipient returns the fixed destination address.
func (c *Composer) Recipient() string {
	return c.recipient
}

// Compose returns mailto:<recipient>?subject=...&body=... for sub.
func (c *Composer) Compose(sub Submission) (string, error) {
	var subject bytes.Buffer
	if err := c.subject.Execute(&subject, sub); err != nil {
		return "", fmt.Errorf("rendering subject: %w", err)
	}

	body := strings.Join([]string{
		"Name: " + sub.Name,
		"Email: " + sub.Email,
		"",
		"Message:",
		sub.Message,
	}, "\r\n")

	return "mailto:" + c.recipient +
		"?subject=" + escapeComponent(subject.String()) +
		"&body=" + escapeComponent(body), nil
}

// escapeComponent percent-encodes s for a mailto header value. Spaces become
// %20 since mail clients do not decode '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
