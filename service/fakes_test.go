package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

// In-memory collaborators shared by the service tests. They return copies
// so mutations only land through explicit saves, like the real stores.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return domain.ErrConflict
	}
	if user.UUID == "" {
		user.UUID = uuid.NewString()
	}
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetUserByUUID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.UUID == id {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.Email] = &cp
	return nil
}

func (r *fakeUserRepo) GetAllUsers(_ context.Context, role string) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		if role == "" || user.Role == role {
			out = append(out, *user)
		}
	}
	return out, nil
}

type fakeOTPRepo struct {
	mu     sync.Mutex
	nextID uint
	recs   map[uint]*domain.OtpRecord
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{recs: map[uint]*domain.OtpRecord{}}
}

func (r *fakeOTPRepo) Put(_ context.Context, rec *domain.OtpRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	rec.ID = r.nextID
	cp := *rec
	r.recs[rec.ID] = &cp
	return nil
}

func (r *fakeOTPRepo) FindLatestActive(_ context.Context, contact, purpose string) (*domain.OtpRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.OtpRecord
	for _, rec := range r.recs {
		if rec.Contact == contact && rec.Purpose == purpose {
			if latest == nil || rec.ID > latest.ID {
				latest = rec
			}
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeOTPRepo) Save(_ context.Context, rec *domain.OtpRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	r.recs[rec.ID] = &cp
	return nil
}

func (r *fakeOTPRepo) IncrementAttempts(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Attempts++
	return nil
}

func (r *fakeOTPRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.recs, id)
	return nil
}

func (r *fakeOTPRepo) DeleteAllFor(_ context.Context, contact, purpose string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rec := range r.recs {
		if rec.Contact == contact && rec.Purpose == purpose {
			delete(r.recs, id)
		}
	}
	return nil
}

func (r *fakeOTPRepo) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	now := time.Now()
	for id, rec := range r.recs {
		if now.After(rec.ExpiresAt) {
			delete(r.recs, id)
			n++
		}
	}
	return n, nil
}

// get returns the stored record without copy semantics, for assertions.
func (r *fakeOTPRepo) get(id uint) *domain.OtpRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recs[id]
}

func (r *fakeOTPRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.recs)
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failErr error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type sentSMS struct {
	To   string
	Body string
}

type fakeSMS struct {
	mu   sync.Mutex
	sent []sentSMS
}

func (s *fakeSMS) Send(_ context.Context, to, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentSMS{To: to, Body: body})
	return nil
}

type fakeGeocoder struct {
	coords *domain.Coordinates
	err    error
}

func (g *fakeGeocoder) Geocode(context.Context, string) (*domain.Coordinates, error) {
	return g.coords, g.err
}

type fakeReportAI struct {
	category    string
	classifyErr error
	body        string
	draftErr    error
}

func (a *fakeReportAI) ClassifyReport(context.Context, string) (string, error) {
	return a.category, a.classifyErr
}

func (a *fakeReportAI) DraftAuthorityEmail(context.Context, *domain.Report) (string, error) {
	return a.body, a.draftErr
}

type fakeReportRepo struct {
	mu      sync.Mutex
	reports map[string]*domain.Report
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[string]*domain.Report{}}
}

func (r *fakeReportRepo) CreateReport(_ context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.UUID == "" {
		report.UUID = uuid.NewString()
	}
	cp := *report
	r.reports[report.UUID] = &cp
	return nil
}

func (r *fakeReportRepo) GetReportByUUID(_ context.Context, id string) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	report, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *report
	return &cp, nil
}

func (r *fakeReportRepo) GetReportsByUser(_ context.Context, userUUID string) ([]domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Report
	for _, report := range r.reports {
		if report.CreatedByUUID == userUUID {
			out = append(out, *report)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) GetAllReports(_ context.Context, filter domain.ReportFilter) ([]domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Report
	for _, report := range r.reports {
		if filter.Status != "" && report.Status != filter.Status {
			continue
		}
		if filter.Category != "" && report.Category != filter.Category {
			continue
		}
		out = append(out, *report)
	}
	return out, nil
}

func (r *fakeReportRepo) UpdateReport(_ context.Context, report *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reports[report.UUID]; !ok {
		return domain.ErrNotFound
	}
	cp := *report
	r.reports[report.UUID] = &cp
	return nil
}

func (r *fakeReportRepo) DeleteReport(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reports, id)
	return nil
}

func (r *fakeReportRepo) get(id string) *domain.Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reports[id]
}

type fakeAuthorityRepo struct {
	mu       sync.Mutex
	nextID   uint
	mappings map[string]*domain.AuthorityMapping
}

func newFakeAuthorityRepo() *fakeAuthorityRepo {
	return &fakeAuthorityRepo{mappings: map[string]*domain.AuthorityMapping{}}
}

func (r *fakeAuthorityRepo) CreateMapping(_ context.Context, mapping *domain.AuthorityMapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.mappings[mapping.Category]; ok {
		return domain.ErrConflict
	}
	r.nextID++
	mapping.ID = r.nextID
	cp := *mapping
	r.mappings[mapping.Category] = &cp
	return nil
}

func (r *fakeAuthorityRepo) GetMappingByCategory(_ context.Context, category string) (*domain.AuthorityMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mapping, ok := r.mappings[category]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *mapping
	return &cp, nil
}

func (r *fakeAuthorityRepo) GetAllMappings(_ context.Context) ([]domain.AuthorityMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.AuthorityMapping
	for _, mapping := range r.mappings {
		out = append(out, *mapping)
	}
	return out, nil
}

func (r *fakeAuthorityRepo) DeleteMapping(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for category, mapping := range r.mappings {
		if mapping.ID == id {
			delete(r.mappings, category)
			return nil
		}
	}
	return domain.ErrNotFound
}
