package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alumniportal/internal/model"
	"alumniportal/internal/service"
)

// fakeCareerStore keeps postings and their owning employer's company name
// so the archive snapshot can be denormalized the way the real store does.
type fakeCareerStore struct {
	mu        sync.Mutex
	nextID    int64
	careers   map[int64]*model.Career
	companies map[int64]string
}

func newFakeCareerStore() *fakeCareerStore {
	return &fakeCareerStore{nextID: 1, careers: make(map[int64]*model.Career), companies: make(map[int64]string)}
}

func (s *fakeCareerStore) Create(ctx context.Context, c *model.Career) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID
	s.nextID++
	c.DatePosted = time.Now()
	s.careers[c.ID] = c
	return nil
}

func (s *fakeCareerStore) GetByID(ctx context.Context, id int64) (*model.Career, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.careers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (s *fakeCareerStore) ListByEmployer(ctx context.Context, employerID int64) ([]model.Career, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Career
	for _, c := range s.careers {
		if c.EmployerID == employerID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeCareerStore) ListPublic(ctx context.Context) ([]model.Career, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Career
	for _, c := range s.careers {
		out = append(out, *c)
	}
	return out, nil
}

func (s *fakeCareerStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.careers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.careers, id)
	return nil
}

// fakeApplicationStore mirrors the dual-write: a live row and an archive
// snapshot appear together, or not at all.
type fakeApplicationStore struct {
	mu      sync.Mutex
	nextID  int64
	careers *fakeCareerStore
	live    []model.Application
	archive []model.ArchivedApplication
	failing bool
}

func newFakeApplicationStore(careers *fakeCareerStore) *fakeApplicationStore {
	return &fakeApplicationStore{nextID: 1, careers: careers}
}

func (s *fakeApplicationStore) SubmitWithArchive(ctx context.Context, app *model.Application) (*model.ArchivedApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return nil, pgx.ErrTxClosed
	}

	career, err := s.careers.GetByID(ctx, app.CareerID)
	if err != nil {
		return nil, err
	}

	app.ID = s.nextID
	s.nextID++
	app.DateSubmitted = time.Now()
	s.live = append(s.live, *app)

	archived := model.ArchivedApplication{
		ID:            app.ID,
		OriginalAppID: app.ID,
		FirstName:     app.FirstName,
		LastName:      app.LastName,
		PhoneNo:       app.PhoneNo,
		Email:         app.Email,
		UserName:      app.UserName,
		ResumePath:    app.ResumePath,
		CareerID:      career.ID,
		CareerTitle:   career.Title,
		CompanyName:   s.careers.companies[career.EmployerID],
		EmployerID:    career.EmployerID,
		DateSubmitted: app.DateSubmitted,
		ArchivedAt:    time.Now(),
	}
	s.archive = append(s.archive, archived)
	return &archived, nil
}

func (s *fakeApplicationStore) ListArchiveByEmployer(ctx context.Context, employerID int64) ([]model.ArchivedApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ArchivedApplication
	for _, a := range s.archive {
		if a.EmployerID == employerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeApplicationStore) ListArchiveByApplicant(ctx context.Context, userName string) ([]model.ArchivedApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ArchivedApplication
	for _, a := range s.archive {
		if a.UserName == userName {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeApplicationStore) ListByCareer(ctx context.Context, careerID int64) ([]model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Application
	for _, a := range s.live {
		if a.CareerID == careerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newApplicationFixture(t *testing.T) (*service.ApplicationService, *fakeApplicationStore, *fakeCareerStore) {
	t.Helper()
	careers := newFakeCareerStore()
	apps := newFakeApplicationStore(careers)
	svc := service.NewApplicationService(apps, careers, zap.NewNop())
	return svc, apps, careers
}

func seedCareer(careers *fakeCareerStore, employerID int64, title, company string) *model.Career {
	c := &model.Career{EmployerID: employerID, Title: title}
	_ = careers.Create(context.Background(), c)
	careers.companies[employerID] = company
	return c
}

func validSubmit(careerID int64) service.SubmitRequest {
	return service.SubmitRequest{
		FirstName:  "John",
		LastName:   "Doe",
		PhoneNo:    "555-0100",
		Email:      "jdoe@alumni.test",
		UserName:   "jdoe",
		CareerID:   careerID,
		ResumePath: "/resumes/jdoe.pdf",
	}
}

func TestSubmitRequiresNameContactAndResume(t *testing.T) {
	svc, _, careers := newApplicationFixture(t)
	career := seedCareer(careers, 7, "Engineer", "Acme Ltd")

	for _, mutate := range []func(*service.SubmitRequest){
		func(r *service.SubmitRequest) { r.FirstName = "" },
		func(r *service.SubmitRequest) { r.PhoneNo = "" },
		func(r *service.SubmitRequest) { r.Email = "" },
		func(r *service.SubmitRequest) { r.ResumePath = "" },
	} {
		req := validSubmit(career.ID)
		mutate(&req)
		_, err := svc.Submit(context.Background(), req)
		assert.ErrorIs(t, err, service.ErrValidation)
	}
}

func TestSubmitUnknownCareer(t *testing.T) {
	svc, apps, _ := newApplicationFixture(t)

	_, err := svc.Submit(context.Background(), validSubmit(42))
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Empty(t, apps.live)
	assert.Empty(t, apps.archive)
}

func TestSubmitWritesLiveAndArchiveTogether(t *testing.T) {
	svc, apps, careers := newApplicationFixture(t)
	career := seedCareer(careers, 7, "Engineer", "Acme Ltd")

	archived, err := svc.Submit(context.Background(), validSubmit(career.ID))
	require.NoError(t, err)

	require.Len(t, apps.live, 1)
	require.Len(t, apps.archive, 1)
	assert.Equal(t, apps.live[0].ID, archived.OriginalAppID)
	assert.Equal(t, "Engineer", archived.CareerTitle)
	assert.Equal(t, "Acme Ltd", archived.CompanyName)
	assert.Equal(t, int64(7), archived.EmployerID)
}

func TestSubmitFailureLeavesNothingBehind(t *testing.T) {
	svc, apps, careers := newApplicationFixture(t)
	career := seedCareer(careers, 7, "Engineer", "Acme Ltd")
	apps.failing = true

	_, err := svc.Submit(context.Background(), validSubmit(career.ID))
	require.Error(t, err)
	assert.Empty(t, apps.live)
	assert.Empty(t, apps.archive)
}

func TestArchiveSurvivesCareerDeletion(t *testing.T) {
	svc, _, careers := newApplicationFixture(t)
	career := seedCareer(careers, 7, "Engineer", "Acme Ltd")

	_, err := svc.Submit(context.Background(), validSubmit(career.ID))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCareer(context.Background(), 7, career.ID))

	history, err := svc.ListForEmployer(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Engineer", history[0].CareerTitle)

	mine, err := svc.ListForApplicant(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestArchiveKeepsEmployerAtSubmissionTime(t *testing.T) {
	svc, _, careers := newApplicationFixture(t)
	career := seedCareer(careers, 7, "Engineer", "Acme Ltd")

	_, err := svc.Submit(context.Background(), validSubmit(career.ID))
	require.NoError(t, err)

	// renaming the company later must not rewrite history
	careers.companies[7] = "Acme Rebranded"

	history, err := svc.ListForEmployer(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Acme Ltd", history[0].CompanyName)
}

func TestListForCareerChecksOwnership(t *testing.T) {
	svc, _, careers := newApplicationFixture(t)
	career := seedCareer(careers, 7, "Engineer", "Acme Ltd")

	_, err := svc.Submit(context.Background(), validSubmit(career.ID))
	require.NoError(t, err)

	_, err = svc.ListForCareer(context.Background(), 8, career.ID)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	live, err := svc.ListForCareer(context.Background(), 7, career.ID)
	require.NoError(t, err)
	assert.Len(t, live, 1)
}

func TestDeleteCareerChecksOwnership(t *testing.T) {
	svc, _, careers := newApplicationFixture(t)
	career := seedCareer(careers, 7, "Engineer", "Acme Ltd")

	err := svc.DeleteCareer(context.Background(), 8, career.ID)
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestCreateCareerRequiresTitle(t *testing.T) {
	svc, _, _ := newApplicationFixture(t)

	_, err := svc.CreateCareer(context.Background(), 7, "", "desc", "")
	assert.ErrorIs(t, err, service.ErrValidation)
}
