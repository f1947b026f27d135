package services

import (
	"context"
	"fmt"
	"html"
	"log"

	"github.com/jobsentry/jobsentry/internal/scraper"
)

// Dispatcher formats and sends match notifications. Send failures are
// swallowed and reported as sent=false so a dead mail account can never
// abort a scrape run.
type Dispatcher struct {
	mailer Mailer
}

func NewDispatcher(mailer Mailer) *Dispatcher {
	return &Dispatcher{mailer: mailer}
}

// Notify emails one matched job to the owner and reports whether delivery
// succeeded.
func (d *Dispatcher) Notify(ctx context.Context, email string, job scraper.Candidate, matchedKeyword, companyName string) bool {
	subject := fmt.Sprintf("New job match at %s: %s", companyName, job.Title)

	location := ""
	if job.Location != "" {
		location = fmt.Sprintf("<p>📍 %s</p>", html.EscapeString(job.Location))
	}

	body := fmt.Sprintf(
		"<h2>%s</h2>"+
			"<p>🏢 %s</p>"+
			"<p>🔑 Matched your keyword: <b>%s</b></p>"+
			"%s"+
			`<p><a href="%s">View posting</a></p>`,
		html.EscapeString(job.Title),
		html.EscapeString(companyName),
		html.EscapeString(matchedKeyword),
		location,
		job.URL,
	)

	if err := d.mailer.Send(ctx, email, subject, body); err != nil {
		log.Printf("[dispatcher] send to %s failed: %v", email, err)
		return false
	}
	return true
}
