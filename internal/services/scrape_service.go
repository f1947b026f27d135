package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jobsentry/jobsentry/internal/cache"
	"github.com/jobsentry/jobsentry/internal/models"
	"github.com/jobsentry/jobsentry/internal/scraper"
)

// ScrapeStore is the narrow persistence surface the orchestrator needs.
// Handlers use the richer entity services; the scrape pipeline deliberately
// sees only this.
type ScrapeStore interface {
	ListCompanies(ctx context.Context) ([]models.TrackedCompany, error)
	ListKeywords(ctx context.Context, userID string) ([]models.Keyword, error)
	JobExists(ctx context.Context, companyID uint, title, url string) (bool, error)
	CreateJob(ctx context.Context, job *models.Job) error
	CreateNotification(ctx context.Context, n *models.Notification) error
	ProfileEmail(ctx context.Context, userID string) (string, error)
}

// RunSummary is the single object a run returns, whatever happened inside it.
// NotificationsSent counts successful deliveries only; failed sends still
// leave a Notification row with email_sent=false.
type RunSummary struct {
	CompaniesProcessed int             `json:"companies_processed"`
	NewJobsFound       int             `json:"new_jobs_found"`
	NotificationsSent  int             `json:"notifications_sent"`
	Details            []CompanyDetail `json:"details"`
}

// CompanyDetail is the per-company line item in a RunSummary.
type CompanyDetail struct {
	Company       string `json:"company"`
	NewJobs       int    `json:"new_jobs"`
	Notifications int    `json:"notifications"`
	Skipped       bool   `json:"skipped,omitempty"`
	Error         string `json:"error,omitempty"`
}

// ScrapeService orchestrates one full pass over all tracked companies:
// fetch, extract, dedup, persist, match, notify. Collaborators arrive as
// interfaces so tests can swap in fakes.
type ScrapeService struct {
	store      ScrapeStore
	fetcher    scraper.PageFetcher
	extractor  *scraper.Extractor
	dispatcher *Dispatcher
	seen       *cache.SeenCache
	timeout    time.Duration

	mu sync.Mutex // serializes runs; cron and a manual trigger may collide
}

func NewScrapeService(store ScrapeStore, fetcher scraper.PageFetcher, extractor *scraper.Extractor, dispatcher *Dispatcher, seen *cache.SeenCache, timeout time.Duration) *ScrapeService {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &ScrapeService{
		store:      store,
		fetcher:    fetcher,
		extractor:  extractor,
		dispatcher: dispatcher,
		seen:       seen,
		timeout:    timeout,
	}
}

// Run processes every tracked company sequentially and returns the summary.
// Only a failure to enumerate companies is an error; everything below the
// company boundary is caught, recorded in the detail line, and skipped past.
func (s *ScrapeService) Run(ctx context.Context, manual bool) (*RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	trigger := "scheduled"
	if manual {
		trigger = "manual"
	}
	log.Printf("[orchestrator] run started (%s)", trigger)

	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	summary := &RunSummary{Details: make([]CompanyDetail, 0, len(companies))}

	for _, company := range companies {
		if ctx.Err() != nil {
			log.Printf("[orchestrator] run cancelled with %d companies remaining",
				len(companies)-summary.CompaniesProcessed)
			break
		}

		detail := s.processCompany(ctx, company)
		summary.CompaniesProcessed++
		summary.NewJobsFound += detail.NewJobs
		summary.NotificationsSent += detail.Notifications
		summary.Details = append(summary.Details, detail)
	}

	log.Printf("[orchestrator] run complete — companies=%d new_jobs=%d notifications=%d",
		summary.CompaniesProcessed, summary.NewJobsFound, summary.NotificationsSent)
	return summary, nil
}

// processCompany handles one company end to end. A panic anywhere below is
// converted into the detail's error field so the loop over the remaining
// companies always continues.
func (s *ScrapeService) processCompany(ctx context.Context, company models.TrackedCompany) (detail CompanyDetail) {
	detail = CompanyDetail{Company: company.Name}

	defer func() {
		if r := recover(); r != nil {
			detail.Error = fmt.Sprintf("panic: %v", r)
			log.Printf("[orchestrator] company %q panicked: %v", company.Name, r)
		}
	}()

	keywords, err := s.store.ListKeywords(ctx, company.UserID)
	if err != nil {
		detail.Error = fmt.Sprintf("load keywords: %v", err)
		return detail
	}

	// No keywords, no reason to scrape: nothing could ever match.
	if len(keywords) == 0 {
		detail.Skipped = true
		log.Printf("[orchestrator] skipping %q — owner has no keywords", company.Name)
		return detail
	}

	html, err := s.fetcher.Fetch(ctx, company.CareersURL)
	if err != nil {
		detail.Error = fmt.Sprintf("fetch: %v", err)
		log.Printf("[orchestrator] fetch failed for %q: %v", company.Name, err)
		return detail
	}

	candidates := s.extractor.Extract(html, company.CareersURL)
	log.Printf("[orchestrator] %q: %d candidate(s) extracted", company.Name, len(candidates))

	kwTexts := make([]string, len(keywords))
	for i, kw := range keywords {
		kwTexts[i] = kw.Text
	}

	for _, cand := range candidates {
		s.processCandidate(ctx, company, cand, kwTexts, &detail)
	}

	return detail
}

// processCandidate persists one candidate if unseen, then matches and
// notifies. Individual persistence failures are logged and skipped.
func (s *ScrapeService) processCandidate(ctx context.Context, company models.TrackedCompany, cand scraper.Candidate, keywords []string, detail *CompanyDetail) {
	key := cache.Key(company.ID, cand.Title, cand.URL)
	if s.seen.IsSeen(ctx, key) {
		return
	}

	exists, err := s.store.JobExists(ctx, company.ID, cand.Title, cand.URL)
	if err != nil {
		log.Printf("[orchestrator] existence check failed for %q: %v", cand.Title, err)
		return
	}
	if exists {
		s.seen.Mark(ctx, key)
		return
	}

	now := time.Now()
	job := &models.Job{
		CompanyID:   company.ID,
		Title:       cand.Title,
		URL:         cand.URL,
		Description: cand.Description,
		Location:    cand.Location,
		PostedDate:  cand.PostedDate,
		ScrapedAt:   now,
		IsNew:       true,
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		// Likely a unique-index race with a concurrent run; either way the
		// job is not ours to notify about.
		log.Printf("[orchestrator] insert failed for %q: %v", cand.Title, err)
		return
	}
	s.seen.Mark(ctx, key)
	detail.NewJobs++

	matched, ok := scraper.MatchKeyword(cand.Title, keywords)
	if !ok {
		return
	}

	email, err := s.store.ProfileEmail(ctx, company.UserID)
	if err != nil {
		log.Printf("[orchestrator] profile lookup failed for user %s: %v", company.UserID, err)
	}

	sent := false
	if email != "" {
		sent = s.dispatcher.Notify(ctx, email, cand, matched, company.Name)
	}

	n := &models.Notification{
		UserID:    company.UserID,
		JobID:     job.ID,
		Keyword:   matched,
		EmailSent: sent,
		SentAt:    now,
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		log.Printf("[orchestrator] notification insert failed for job %d: %v", job.ID, err)
	}

	if sent {
		detail.Notifications++
	}
}
