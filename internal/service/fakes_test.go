package service_test

import (
	"context"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"alumniportal/internal/model"
)

// fakeEmployerStore mimics the shadow-column staging semantics in memory.
type fakeEmployerStore struct {
	mu        sync.Mutex
	nextID    int64
	employers map[int64]*model.Employer
}

func newFakeEmployerStore() *fakeEmployerStore {
	return &fakeEmployerStore{nextID: 1, employers: make(map[int64]*model.Employer)}
}

func (s *fakeEmployerStore) add(e *model.Employer) *model.Employer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		e.ID = s.nextID
		s.nextID++
	}
	if e.Status == "" {
		e.Status = model.EmployerStatusPending
	}
	s.employers[e.ID] = e
	return e
}

func copyEmployer(e *model.Employer) *model.Employer {
	c := *e
	return &c
}

func (s *fakeEmployerStore) Create(ctx context.Context, e *model.Employer) error {
	s.add(e)
	return nil
}

func (s *fakeEmployerStore) GetByID(ctx context.Context, id int64) (*model.Employer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return copyEmployer(e), nil
}

func (s *fakeEmployerStore) GetByUserID(ctx context.Context, userID string) (*model.Employer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.employers {
		if strings.EqualFold(e.UserID, userID) {
			return copyEmployer(e), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeEmployerStore) List(ctx context.Context, search string, limit, offset int) ([]model.Employer, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Employer
	for _, e := range s.employers {
		if search == "" || strings.Contains(strings.ToLower(e.BusinessName), strings.ToLower(search)) {
			out = append(out, *e)
		}
	}
	total := len(out)
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (s *fakeEmployerStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	e.Status = status
	return nil
}

func (s *fakeEmployerStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.employers, id)
	return nil
}

func (s *fakeEmployerStore) StagePending(ctx context.Context, id int64, change model.ChangeRequest) (string, *model.Employer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employers[id]
	if !ok {
		return "", nil, pgx.ErrNoRows
	}

	var orphaned string
	if change.CompanyLogo != nil && e.PendingCompanyLogo != nil {
		orphaned = *e.PendingCompanyLogo
	}
	if change.LandlineNo != nil {
		e.PendingLandlineNo = change.LandlineNo
	}
	if change.MobileNo != nil {
		e.PendingMobileNo = change.MobileNo
	}
	if change.CompanyEmail != nil {
		e.PendingCompanyEmail = change.CompanyEmail
	}
	if change.CompanyLogo != nil {
		e.PendingCompanyLogo = change.CompanyLogo
	}
	return orphaned, copyEmployer(e), nil
}

func (s *fakeEmployerStore) ApproveProfile(ctx context.Context, id int64) (*model.Employer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if e.PendingLandlineNo != nil {
		e.LandlineNo = *e.PendingLandlineNo
	}
	if e.PendingMobileNo != nil {
		e.MobileNo = *e.PendingMobileNo
	}
	if e.PendingCompanyEmail != nil {
		e.CompanyEmail = *e.PendingCompanyEmail
	}
	e.PendingLandlineNo, e.PendingMobileNo, e.PendingCompanyEmail = nil, nil, nil
	return copyEmployer(e), nil
}

func (s *fakeEmployerStore) ApproveLogo(ctx context.Context, id int64) (string, *model.Employer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employers[id]
	if !ok {
		return "", nil, pgx.ErrNoRows
	}
	if e.PendingCompanyLogo == nil {
		return "", copyEmployer(e), nil
	}
	old := e.CompanyLogo
	e.CompanyLogo = *e.PendingCompanyLogo
	e.PendingCompanyLogo = nil
	return old, copyEmployer(e), nil
}

func (s *fakeEmployerStore) RejectProfile(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	e.PendingLandlineNo, e.PendingMobileNo, e.PendingCompanyEmail = nil, nil, nil
	return nil
}

func (s *fakeEmployerStore) RejectLogo(ctx context.Context, id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employers[id]
	if !ok {
		return "", pgx.ErrNoRows
	}
	if e.PendingCompanyLogo == nil {
		return "", nil
	}
	staged := *e.PendingCompanyLogo
	e.PendingCompanyLogo = nil
	return staged, nil
}

func (s *fakeEmployerStore) Confirm(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.employers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	e.ProfileConfirmed = true
	return nil
}

func (s *fakeEmployerStore) UpdatePassword(ctx context.Context, userID, passwordHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.employers {
		if strings.EqualFold(e.UserID, userID) {
			e.PasswordHash = passwordHash
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeEmployerStore) CountPending(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, e := range s.employers {
		if e.Status == model.EmployerStatusPending {
			count++
		}
	}
	return count, nil
}

// fakeStager records removals instead of touching disk.
type fakeStager struct {
	mu      sync.Mutex
	removed []string
	failOn  string
}

func (f *fakeStager) Remove(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != "" && f.failOn == path {
		return errFakeRemove
	}
	f.removed = append(f.removed, path)
	return nil
}

func (f *fakeStager) IsDefault(path string) bool {
	return strings.Contains(path, "default-logo")
}

var errFakeRemove = &fakeRemoveError{}

type fakeRemoveError struct{}

func (e *fakeRemoveError) Error() string { return "remove failed" }

// fakeNotificationStore collects inserted notifications.
type fakeNotificationStore struct {
	mu            sync.Mutex
	nextID        int64
	notifications []model.Notification
}

func (f *fakeNotificationStore) Insert(ctx context.Context, n *model.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	n.ID = f.nextID
	f.notifications = append(f.notifications, *n)
	return nil
}

func (f *fakeNotificationStore) List(ctx context.Context) ([]model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out, nil
}

func (f *fakeNotificationStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.notifications {
		if n.ID == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNotificationStore) Clear(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := int64(len(f.notifications))
	f.notifications = nil
	return n, nil
}

// fakeBroadcaster records published events.
type fakeBroadcaster struct {
	mu        sync.Mutex
	published []publishedEvent
	err       error
}

type publishedEvent struct {
	routingKey string
	payload    any
}

func (f *fakeBroadcaster) Publish(routingKey string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedEvent{routingKey: routingKey, payload: payload})
	return nil
}
