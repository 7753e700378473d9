package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alumniportal/internal/model"
	"alumniportal/internal/service"
)

func newApprovalFixture(t *testing.T) (*service.ApprovalService, *service.EmployerService, *fakeEmployerStore, *fakeStager) {
	t.Helper()
	store := newFakeEmployerStore()
	stager := &fakeStager{}
	notifications := service.NewNotificationService(&fakeNotificationStore{}, &fakeBroadcaster{}, store, zap.NewNop())
	approvals := service.NewApprovalService(store, stager, notifications, zap.NewNop())
	employers := service.NewEmployerService(store, stager, notifications, zap.NewNop())
	return approvals, employers, store, stager
}

func TestApproveProfileAppliesStagedValues(t *testing.T) {
	approvals, employers, store, _ := newApprovalFixture(t)
	emp := seedEmployer(store)

	mobile := "222"
	email := "new@acme.test"
	_, err := employers.ProposeChange(context.Background(), emp.ID, model.ChangeRequest{
		MobileNo:     &mobile,
		CompanyEmail: &email,
	})
	require.NoError(t, err)

	got, err := approvals.Approve(context.Background(), emp.ID, service.ScopeProfile)
	require.NoError(t, err)

	assert.Equal(t, "222", got.MobileNo)
	assert.Equal(t, "new@acme.test", got.CompanyEmail)
	assert.Nil(t, got.PendingMobileNo)
	assert.Nil(t, got.PendingCompanyEmail)
	assert.Nil(t, got.PendingLandlineNo)
}

func TestApprovePartialProposalLeavesOtherFieldsAlone(t *testing.T) {
	approvals, employers, store, _ := newApprovalFixture(t)
	emp := seedEmployer(store)

	mobile := "222"
	_, err := employers.ProposeChange(context.Background(), emp.ID, model.ChangeRequest{MobileNo: &mobile})
	require.NoError(t, err)

	got, err := approvals.Approve(context.Background(), emp.ID, service.ScopeProfile)
	require.NoError(t, err)

	assert.Equal(t, "222", got.MobileNo)
	assert.Equal(t, "old@acme.test", got.CompanyEmail)
	assert.Equal(t, "", got.LandlineNo)
}

func TestApproveProfileTwiceIsIdempotent(t *testing.T) {
	approvals, employers, store, _ := newApprovalFixture(t)
	emp := seedEmployer(store)

	mobile := "222"
	_, err := employers.ProposeChange(context.Background(), emp.ID, model.ChangeRequest{MobileNo: &mobile})
	require.NoError(t, err)

	first, err := approvals.Approve(context.Background(), emp.ID, service.ScopeProfile)
	require.NoError(t, err)
	assert.Equal(t, "222", first.MobileNo)

	second, err := approvals.Approve(context.Background(), emp.ID, service.ScopeProfile)
	require.NoError(t, err)
	assert.Equal(t, "222", second.MobileNo)
	assert.Nil(t, second.PendingMobileNo)
}

func TestRejectProfileDiscardsStagedValues(t *testing.T) {
	approvals, employers, store, _ := newApprovalFixture(t)
	emp := seedEmployer(store)

	mobile := "222"
	_, err := employers.ProposeChange(context.Background(), emp.ID, model.ChangeRequest{MobileNo: &mobile})
	require.NoError(t, err)

	require.NoError(t, approvals.Reject(context.Background(), emp.ID, service.ScopeProfile))

	got, err := store.GetByID(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "111", got.MobileNo)
	assert.Nil(t, got.PendingMobileNo)
}

func TestApproveLogoReplacesAndCleansUpOldFile(t *testing.T) {
	approvals, employers, store, stager := newApprovalFixture(t)
	emp := seedEmployer(store)
	store.employers[emp.ID].CompanyLogo = "/companyLogos/old.png"

	staged := "/companyLogos/new.png"
	_, err := employers.ProposeChange(context.Background(), emp.ID, model.ChangeRequest{CompanyLogo: &staged})
	require.NoError(t, err)

	got, err := approvals.Approve(context.Background(), emp.ID, service.ScopeLogo)
	require.NoError(t, err)

	assert.Equal(t, staged, got.CompanyLogo)
	assert.Nil(t, got.PendingCompanyLogo)
	assert.Equal(t, []string{"/companyLogos/old.png"}, stager.removed)
}

func TestApproveLogoNeverDeletesDefault(t *testing.T) {
	approvals, employers, store, stager := newApprovalFixture(t)
	emp := seedEmployer(store)

	staged := "/companyLogos/new.png"
	_, err := employers.ProposeChange(context.Background(), emp.ID, model.ChangeRequest{CompanyLogo: &staged})
	require.NoError(t, err)

	_, err = approvals.Approve(context.Background(), emp.ID, service.ScopeLogo)
	require.NoError(t, err)
	assert.Empty(t, stager.removed)
}

func TestApproveLogoWithNothingStagedIsNoOp(t *testing.T) {
	approvals, _, store, stager := newApprovalFixture(t)
	emp := seedEmployer(store)

	got, err := approvals.Approve(context.Background(), emp.ID, service.ScopeLogo)
	require.NoError(t, err)
	assert.Equal(t, "/images/default-logo.png", got.CompanyLogo)
	assert.Empty(t, stager.removed)
}

func TestRejectLogoRemovesStagedFileOnly(t *testing.T) {
	approvals, employers, store, stager := newApprovalFixture(t)
	emp := seedEmployer(store)
	store.employers[emp.ID].CompanyLogo = "/companyLogos/live.png"

	staged := "/companyLogos/staged.png"
	_, err := employers.ProposeChange(context.Background(), emp.ID, model.ChangeRequest{CompanyLogo: &staged})
	require.NoError(t, err)

	require.NoError(t, approvals.Reject(context.Background(), emp.ID, service.ScopeLogo))

	got, err := store.GetByID(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, "/companyLogos/live.png", got.CompanyLogo)
	assert.Nil(t, got.PendingCompanyLogo)
	assert.Equal(t, []string{staged}, stager.removed)
}

func TestApproveUnknownScopeFails(t *testing.T) {
	approvals, _, store, _ := newApprovalFixture(t)
	emp := seedEmployer(store)

	_, err := approvals.Approve(context.Background(), emp.ID, "website")
	assert.ErrorIs(t, err, service.ErrValidation)

	err = approvals.Reject(context.Background(), emp.ID, "website")
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestApproveUnknownEmployer(t *testing.T) {
	approvals, _, _, _ := newApprovalFixture(t)

	_, err := approvals.Approve(context.Background(), 404, service.ScopeProfile)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestListClampsPageAndLimit(t *testing.T) {
	approvals, _, store, _ := newApprovalFixture(t)
	seedEmployer(store)

	employers, totalPages, err := approvals.List(context.Background(), "", -3, 9999)
	require.NoError(t, err)
	assert.Len(t, employers, 1)
	assert.Equal(t, 1, totalPages)
}

func TestUpdateStatusValidatesStatus(t *testing.T) {
	approvals, _, store, _ := newApprovalFixture(t)
	emp := seedEmployer(store)

	err := approvals.UpdateStatus(context.Background(), emp.ID, "FROZEN")
	assert.ErrorIs(t, err, service.ErrValidation)

	require.NoError(t, approvals.UpdateStatus(context.Background(), emp.ID, model.EmployerStatusArchived))
	got, err := store.GetByID(context.Background(), emp.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EmployerStatusArchived, got.Status)
}
