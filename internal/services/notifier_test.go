package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobsentry/jobsentry/internal/scraper"
)

type captureMailer struct {
	to      string
	subject string
	body    string
	err     error
}

func (m *captureMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.to, m.subject, m.body = to, subject, htmlBody
	return m.err
}

func TestDispatcher_FormatsEmail(t *testing.T) {
	mailer := &captureMailer{}
	d := NewDispatcher(mailer)

	job := scraper.Candidate{
		Title:    "Senior Backend Engineer",
		URL:      "https://acme.example/jobs/1",
		Location: "Berlin",
	}
	sent := d.Notify(context.Background(), "owner@example.com", job, "backend", "Acme")

	require.True(t, sent)
	assert.Equal(t, "owner@example.com", mailer.to)
	assert.Equal(t, "New job match at Acme: Senior Backend Engineer", mailer.subject)
	assert.Contains(t, mailer.body, "Senior Backend Engineer")
	assert.Contains(t, mailer.body, "backend")
	assert.Contains(t, mailer.body, "Berlin")
	assert.Contains(t, mailer.body, `href="https://acme.example/jobs/1"`)
}

func TestDispatcher_OmitsEmptyLocation(t *testing.T) {
	mailer := &captureMailer{}
	d := NewDispatcher(mailer)

	d.Notify(context.Background(), "owner@example.com", scraper.Candidate{
		Title: "Junior Designer Position",
		URL:   "https://acme.example/careers",
	}, "designer", "Acme")

	assert.NotContains(t, mailer.body, "📍")
}

// Send failures never escape the dispatcher boundary.
func TestDispatcher_SwallowsSendFailure(t *testing.T) {
	mailer := &captureMailer{err: assert.AnError}
	d := NewDispatcher(mailer)

	sent := d.Notify(context.Background(), "owner@example.com", scraper.Candidate{Title: "x"}, "kw", "Acme")
	assert.False(t, sent)
}

// Titles scraped off arbitrary pages go through HTML escaping before they
// land in a mail body.
func TestDispatcher_EscapesHTMLInFields(t *testing.T) {
	mailer := &captureMailer{}
	d := NewDispatcher(mailer)

	d.Notify(context.Background(), "owner@example.com", scraper.Candidate{
		Title: `Engineer "A & B"`,
	}, "engineer", "Acme <&> Co")

	assert.Contains(t, mailer.body, "Engineer &#34;A &amp; B&#34;")
	assert.Contains(t, mailer.body, "Acme &lt;&amp;&gt; Co")
}
