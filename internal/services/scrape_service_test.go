package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobsentry/jobsentry/internal/models"
	"github.com/jobsentry/jobsentry/internal/scraper"
)

// ── fakes ──────────────────────────────────────────────────────────────────

type fakeStore struct {
	companies    []models.TrackedCompany
	companiesErr error
	keywords     map[string][]models.Keyword
	emails       map[string]string

	jobs          []*models.Job
	notifications []*models.Notification
	nextJobID     uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		keywords: map[string][]models.Keyword{},
		emails:   map[string]string{},
	}
}

func (s *fakeStore) ListCompanies(ctx context.Context) ([]models.TrackedCompany, error) {
	return s.companies, s.companiesErr
}

func (s *fakeStore) ListKeywords(ctx context.Context, userID string) ([]models.Keyword, error) {
	return s.keywords[userID], nil
}

func (s *fakeStore) JobExists(ctx context.Context, companyID uint, title, url string) (bool, error) {
	for _, j := range s.jobs {
		if j.CompanyID == companyID && j.Title == title && j.URL == url {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) CreateJob(ctx context.Context, job *models.Job) error {
	s.nextJobID++
	job.ID = s.nextJobID
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *fakeStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.notifications = append(s.notifications, n)
	return nil
}

func (s *fakeStore) ProfileEmail(ctx context.Context, userID string) (string, error) {
	return s.emails[userID], nil
}

type fakeFetcher struct {
	pages   map[string]string
	errs    map[string]error
	fetched []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	f.fetched = append(f.fetched, pageURL)
	if err := f.errs[pageURL]; err != nil {
		return "", err
	}
	return f.pages[pageURL], nil
}

type fakeMailer struct {
	fail bool
	sent []string // destination addresses
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.fail {
		return fmt.Errorf("smtp said no")
	}
	m.sent = append(m.sent, to)
	return nil
}

func newService(store *fakeStore, fetcher *fakeFetcher, mailer *fakeMailer) *ScrapeService {
	return NewScrapeService(
		store,
		fetcher,
		scraper.NewExtractor(0, 0, 0, nil),
		NewDispatcher(mailer),
		nil, // no redis in tests; dedup falls through to the store
		time.Minute,
	)
}

const acmePage = `<h2><a href="/jobs/1">Senior Backend Engineer</a></h2>`

func acme() models.TrackedCompany {
	return models.TrackedCompany{
		ID:         1,
		UserID:     "11111111-1111-1111-1111-111111111111",
		Name:       "Acme",
		CareersURL: "https://acme.example/careers",
	}
}

// ── tests ──────────────────────────────────────────────────────────────────

func TestRun_PersistsMatchesAndNotifies(t *testing.T) {
	store := newFakeStore()
	company := acme()
	store.companies = []models.TrackedCompany{company}
	store.keywords[company.UserID] = []models.Keyword{{UserID: company.UserID, Text: "backend"}}
	store.emails[company.UserID] = "owner@example.com"

	fetcher := &fakeFetcher{pages: map[string]string{company.CareersURL: acmePage}}
	mailer := &fakeMailer{}

	summary, err := newService(store, fetcher, mailer).Run(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CompaniesProcessed)
	assert.Equal(t, 1, summary.NewJobsFound)
	assert.Equal(t, 1, summary.NotificationsSent)

	require.Len(t, store.jobs, 1)
	assert.Equal(t, "Senior Backend Engineer", store.jobs[0].Title)
	assert.Equal(t, "https://acme.example/jobs/1", store.jobs[0].URL)
	assert.True(t, store.jobs[0].IsNew)

	require.Len(t, store.notifications, 1)
	assert.Equal(t, "backend", store.notifications[0].Keyword)
	assert.True(t, store.notifications[0].EmailSent)
	assert.Equal(t, []string{"owner@example.com"}, mailer.sent)
}

func TestRun_IdempotentOnUnchangedPage(t *testing.T) {
	store := newFakeStore()
	company := acme()
	store.companies = []models.TrackedCompany{company}
	store.keywords[company.UserID] = []models.Keyword{{UserID: company.UserID, Text: "backend"}}
	store.emails[company.UserID] = "owner@example.com"

	fetcher := &fakeFetcher{pages: map[string]string{company.CareersURL: acmePage}}
	svc := newService(store, fetcher, &fakeMailer{})

	first, err := svc.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, first.NewJobsFound)

	second, err := svc.Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, second.NewJobsFound)
	assert.Equal(t, 0, second.NotificationsSent)
	assert.Len(t, store.jobs, 1)
	assert.Len(t, store.notifications, 1)
}

func TestRun_FetchFailureDoesNotAbortRun(t *testing.T) {
	store := newFakeStore()
	broken := acme()
	healthy := models.TrackedCompany{
		ID:         2,
		UserID:     "22222222-2222-2222-2222-222222222222",
		Name:       "Globex",
		CareersURL: "https://globex.example/jobs",
	}
	store.companies = []models.TrackedCompany{broken, healthy}
	store.keywords[broken.UserID] = []models.Keyword{{Text: "backend"}}
	store.keywords[healthy.UserID] = []models.Keyword{{Text: "backend"}}
	store.emails[healthy.UserID] = "g@example.com"

	fetcher := &fakeFetcher{
		pages: map[string]string{healthy.CareersURL: acmePage},
		errs:  map[string]error{broken.CareersURL: fmt.Errorf("connection refused")},
	}

	summary, err := newService(store, fetcher, &fakeMailer{}).Run(context.Background(), false)
	require.NoError(t, err)

	// The failed company still counts toward the processed total.
	assert.Equal(t, 2, summary.CompaniesProcessed)
	assert.Equal(t, 1, summary.NewJobsFound)

	require.Len(t, summary.Details, 2)
	assert.Contains(t, summary.Details[0].Error, "connection refused")
	assert.Empty(t, summary.Details[1].Error)
	assert.Equal(t, 1, summary.Details[1].NewJobs)
}

func TestRun_SkipsCompanyWithoutKeywords(t *testing.T) {
	store := newFakeStore()
	silent := acme()
	active := models.TrackedCompany{
		ID:         2,
		UserID:     "22222222-2222-2222-2222-222222222222",
		Name:       "Globex",
		CareersURL: "https://globex.example/jobs",
	}
	store.companies = []models.TrackedCompany{silent, active}
	store.keywords[active.UserID] = []models.Keyword{{Text: "engineer"}}
	store.emails[active.UserID] = "g@example.com"

	fetcher := &fakeFetcher{pages: map[string]string{active.CareersURL: acmePage}}

	summary, err := newService(store, fetcher, &fakeMailer{}).Run(context.Background(), false)
	require.NoError(t, err)

	// The zero-keyword company is never even fetched.
	assert.Equal(t, []string{active.CareersURL}, fetcher.fetched)
	assert.Equal(t, 2, summary.CompaniesProcessed)
	assert.True(t, summary.Details[0].Skipped)
}

func TestRun_MailFailureStillRecordsNotification(t *testing.T) {
	store := newFakeStore()
	company := acme()
	store.companies = []models.TrackedCompany{company}
	store.keywords[company.UserID] = []models.Keyword{{Text: "backend"}}
	store.emails[company.UserID] = "owner@example.com"

	fetcher := &fakeFetcher{pages: map[string]string{company.CareersURL: acmePage}}

	summary, err := newService(store, fetcher, &fakeMailer{fail: true}).Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.NewJobsFound)
	// Sent counter reflects successful deliveries only...
	assert.Equal(t, 0, summary.NotificationsSent)
	// ...but the audit row exists, flagged as undelivered.
	require.Len(t, store.notifications, 1)
	assert.False(t, store.notifications[0].EmailSent)
}

func TestRun_NoProfileEmailSkipsDelivery(t *testing.T) {
	store := newFakeStore()
	company := acme()
	store.companies = []models.TrackedCompany{company}
	store.keywords[company.UserID] = []models.Keyword{{Text: "backend"}}
	// no email on file

	fetcher := &fakeFetcher{pages: map[string]string{company.CareersURL: acmePage}}
	mailer := &fakeMailer{}

	summary, err := newService(store, fetcher, mailer).Run(context.Background(), false)
	require.NoError(t, err)

	assert.Empty(t, mailer.sent)
	assert.Equal(t, 0, summary.NotificationsSent)
	require.Len(t, store.notifications, 1)
	assert.False(t, store.notifications[0].EmailSent)
}

func TestRun_NoKeywordMatchMeansNoNotification(t *testing.T) {
	store := newFakeStore()
	company := acme()
	store.companies = []models.TrackedCompany{company}
	store.keywords[company.UserID] = []models.Keyword{{Text: "embedded rust"}}
	store.emails[company.UserID] = "owner@example.com"

	fetcher := &fakeFetcher{pages: map[string]string{company.CareersURL: acmePage}}

	summary, err := newService(store, fetcher, &fakeMailer{}).Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.NewJobsFound)
	assert.Equal(t, 0, summary.NotificationsSent)
	assert.Empty(t, store.notifications)
}

func TestRun_CompanyEnumerationFailureIsFatal(t *testing.T) {
	store := newFakeStore()
	store.companiesErr = fmt.Errorf("connection pool exhausted")

	summary, err := newService(store, &fakeFetcher{}, &fakeMailer{}).Run(context.Background(), false)
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Contains(t, err.Error(), "connection pool exhausted")
}

func TestRun_EmptyCompanyList(t *testing.T) {
	summary, err := newService(newFakeStore(), &fakeFetcher{}, &fakeMailer{}).Run(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.CompaniesProcessed)
	assert.Empty(t, summary.Details)
}
