package contact

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposer_Compose(t *testing.T) {
	t.Parallel()

	c, err := NewComposer("ompatil.uk@gmail.com", "")
	require.NoError(t, err)

	uri, err := c.Compose(Submission{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Fancy a chat & coffee?",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uri, "mailto:ompatil.uk@gmail.com?subject="), uri)
	assert.NotContains(t, uri, "+")
	assert.NotContains(t, uri, " ")

	u, err := url.Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "mailto", u.Scheme)
	assert.Equal(t, "ompatil.uk@gmail.com", u.Opaque)

	q := u.Query()
	assert.Equal(t, "Portfolio Contact from Jane Doe", q.Get("subject"))
	assert.Equal(t,
		"Name: Jane Doe\r\nEmail: jane@example.com\r\n\r\nMessage:\r\nFancy a chat & coffee?",
		q.Get("body"))
}

func TestComposer_CustomSubject(t *testing.T) {
	t.Parallel()

	c, err := NewComposer("me@example.org", "Hello from {{.Name}} <{{.Email}}>")
	require.NoError(t, err)

	uri, err := c.Compose(Submission{Name: "Al", Email: "al@x.io", Message: "0123456789"})
	require.NoError(t, err)

	u, err := url.Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, "Hello from Al <al@x.io>", u.Query().Get("subject"))
}

func TestNewComposer_Errors(t *testing.T) {
	t.Parallel()

	_, err := NewComposer("not an address", "")
	require.Error(t, err)

	_, err = NewComposer("Om <om@example.com>", "")
	require.Error(t, err)

	_, err = NewComposer("om@example.com", "{{.Name")
	require.Error(t, err)
}

func TestComposer_UnknownTemplateField(t *testing.T) {
	t.Parallel()

	_, err := NewComposer("om@example.com", "Hi {{.Sender}}")
	require.ErrorContains(t, err, "rendering subject template")
}

func TestEscapeComponent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a%20b%26c%3Dd%0D%0A", escapeComponent("a b&c=d\r\n"))
}
