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
	"alumniportal/internal/otp"
	"alumniportal/internal/service"
	"alumniportal/pkg/mq"
	"alumniportal/pkg/util"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (s *fakeUserStore) Create(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = int64(len(s.users) + 1)
	s.users[u.UserName] = u
	return nil
}

func (s *fakeUserStore) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userName]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, userName, passwordHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userName]
	if !ok {
		return false, nil
	}
	u.PasswordHash = passwordHash
	return true, nil
}

func newOTPFixture(t *testing.T) (*service.OTPService, *fakeUserStore, *fakeEmployerStore, *fakeBroadcaster) {
	t.Helper()
	users := newFakeUserStore()
	employers := newFakeEmployerStore()
	broadcast := &fakeBroadcaster{}
	svc := service.NewOTPService(
		otp.NewMemoryStore(), otp.NewMemoryLimiter(),
		users, employers, broadcast,
		10*time.Minute, 10*time.Minute, 3,
		zap.NewNop(),
	)
	return svc, users, employers, broadcast
}

func seedAlumni(users *fakeUserStore, userName string) {
	_ = users.Create(context.Background(), &model.User{
		UserName:      userName,
		PersonalEmail: userName + "@alumni.test",
		PasswordHash:  mustHash("original"),
	})
}

func mustHash(pw string) string {
	h, err := util.HashPassword(pw)
	if err != nil {
		panic(err)
	}
	return h
}

func requestedCode(t *testing.T, broadcast *fakeBroadcaster) service.OTPRequestedPayload {
	t.Helper()
	require.NotEmpty(t, broadcast.published)
	last := broadcast.published[len(broadcast.published)-1]
	require.Equal(t, mq.RoutingKeyOTPRequested, last.routingKey)
	payload, ok := last.payload.(service.OTPRequestedPayload)
	require.True(t, ok)
	return payload
}

func TestRequestUnknownHandle(t *testing.T) {
	svc, _, _, _ := newOTPFixture(t)

	err := svc.Request(context.Background(), "nobody")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestRequestPublishesCodeForAlumni(t *testing.T) {
	svc, users, _, broadcast := newOTPFixture(t)
	seedAlumni(users, "jdoe")

	require.NoError(t, svc.Request(context.Background(), "jdoe"))

	payload := requestedCode(t, broadcast)
	assert.Equal(t, "jdoe@alumni.test", payload.Email)
	assert.Len(t, payload.Code, 6)
}

func TestRequestFallsBackToEmployerAccounts(t *testing.T) {
	svc, _, employers, broadcast := newOTPFixture(t)
	employers.add(&model.Employer{UserID: "acme", CompanyEmail: "hr@acme.test"})

	require.NoError(t, svc.Request(context.Background(), "acme"))

	payload := requestedCode(t, broadcast)
	assert.Equal(t, "hr@acme.test", payload.Email)
}

func TestRequestIsRateLimited(t *testing.T) {
	svc, users, _, _ := newOTPFixture(t)
	seedAlumni(users, "jdoe")

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Request(context.Background(), "jdoe"))
	}

	err := svc.Request(context.Background(), "jdoe")
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestVerifyAcceptsIssuedCodeWithoutConsuming(t *testing.T) {
	svc, users, _, broadcast := newOTPFixture(t)
	seedAlumni(users, "jdoe")
	require.NoError(t, svc.Request(context.Background(), "jdoe"))
	code := requestedCode(t, broadcast).Code

	assert.NoError(t, svc.Verify(context.Background(), "jdoe", code))
	// verify again, the code is still live
	assert.NoError(t, svc.Verify(context.Background(), "jdoe", code))
	assert.ErrorIs(t, svc.Verify(context.Background(), "jdoe", "000000"), service.ErrUnauthorized)
}

func TestResetConsumesCodeAndUpdatesPassword(t *testing.T) {
	svc, users, _, broadcast := newOTPFixture(t)
	seedAlumni(users, "jdoe")
	require.NoError(t, svc.Request(context.Background(), "jdoe"))
	code := requestedCode(t, broadcast).Code

	require.NoError(t, svc.Reset(context.Background(), "jdoe", code, "brand-new"))

	u, err := users.FindByUserName(context.Background(), "jdoe")
	require.NoError(t, err)
	assert.True(t, util.CheckPassword("brand-new", u.PasswordHash))

	// the code is single-use
	err = svc.Reset(context.Background(), "jdoe", code, "again")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestResetRejectsWrongCode(t *testing.T) {
	svc, users, _, _ := newOTPFixture(t)
	seedAlumni(users, "jdoe")
	require.NoError(t, svc.Request(context.Background(), "jdoe"))

	err := svc.Reset(context.Background(), "jdoe", "000000", "brand-new")
	assert.ErrorIs(t, err, service.ErrUnauthorized)
}

func TestResetUpdatesEmployerPassword(t *testing.T) {
	svc, _, employers, broadcast := newOTPFixture(t)
	employers.add(&model.Employer{UserID: "acme", CompanyEmail: "hr@acme.test"})
	require.NoError(t, svc.Request(context.Background(), "acme"))
	code := requestedCode(t, broadcast).Code

	require.NoError(t, svc.Reset(context.Background(), "acme", code, "brand-new"))

	e, err := employers.GetByUserID(context.Background(), "acme")
	require.NoError(t, err)
	assert.True(t, util.CheckPassword("brand-new", e.PasswordHash))
}
