package account

import (
	"context"
	"errors"
	"testing"

	"go-payhr/internal/audit"
	"go-payhr/internal/auth"
	"go-payhr/internal/identity"
	"go-payhr/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAuthRepo struct {
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
	createFn     func(ctx context.Context, user *auth.User) error
	deleteFn     func(ctx context.Context, id string) error
}

func (f *fakeAuthRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return f.getByEmailFn(ctx, email)
}
func (f *fakeAuthRepo) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeAuthRepo) Create(ctx context.Context, user *auth.User) error {
	return f.createFn(ctx, user)
}
func (f *fakeAuthRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

type fakeIdentityRepo struct {
	findByIDFn func(ctx context.Context, id string) (*identity.Profile, error)
	countFn    func(ctx context.Context) (int64, error)
	upsertFn   func(ctx context.Context, p *identity.Profile) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeIdentityRepo) FindByID(ctx context.Context, id string) (*identity.Profile, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeIdentityRepo) Count(ctx context.Context) (int64, error) { return f.countFn(ctx) }
func (f *fakeIdentityRepo) Upsert(ctx context.Context, p *identity.Profile) error {
	return f.upsertFn(ctx, p)
}
func (f *fakeIdentityRepo) Delete(ctx context.Context, id string) error { return f.deleteFn(ctx, id) }

type fakeAuditService struct {
	entries   []audit.Entry
	appendErr error
}

func (f *fakeAuditService) Append(ctx context.Context, entry audit.Entry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, entry)
	return nil
}
func (f *fakeAuditService) GetAll(ctx context.Context, limit int) ([]audit.AuditLogResponse, error) {
	return nil, nil
}

func adminActor() *identity.Principal {
	return &identity.Principal{
		ID:    uuid.NewString(),
		Email: "admin@example.com",
		Name:  "Admin",
		Role:  identity.RoleAdmin,
	}
}

func newServiceForTest(authRepo *fakeAuthRepo, identityRepo *fakeIdentityRepo, auditSvc *fakeAuditService) Service {
	return NewService(authRepo, identityRepo, auditSvc)
}

func TestDeleteAccount_NilActorUnauthorized(t *testing.T) {
	svc := newServiceForTest(&fakeAuthRepo{}, &fakeIdentityRepo{}, &fakeAuditService{})

	err := svc.DeleteAccount(context.Background(), nil, DeleteAccountRequest{UserID: uuid.NewString()})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestDeleteAccount_NonAdminForbiddenWithZeroMutations(t *testing.T) {
	deletes := 0
	authRepo := &fakeAuthRepo{deleteFn: func(ctx context.Context, id string) error { deletes++; return nil }}
	identityRepo := &fakeIdentityRepo{deleteFn: func(ctx context.Context, id string) error { deletes++; return nil }}
	auditSvc := &fakeAuditService{}
	svc := newServiceForTest(authRepo, identityRepo, auditSvc)

	actor := &identity.Principal{ID: uuid.NewString(), Role: identity.RoleHR}
	err := svc.DeleteAccount(context.Background(), actor, DeleteAccountRequest{UserID: uuid.NewString()})

	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Zero(t, deletes)
	assert.Empty(t, auditSvc.entries)
}

func TestDeleteAccount_MissingTargetRequired(t *testing.T) {
	svc := newServiceForTest(&fakeAuthRepo{}, &fakeIdentityRepo{}, &fakeAuditService{})

	err := svc.DeleteAccount(context.Background(), adminActor(), DeleteAccountRequest{})
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, apperror.CodeInvalidInput, httpErr.Code)
}

func TestDeleteAccount_SelfDeletionRejected(t *testing.T) {
	actor := adminActor()
	svc := newServiceForTest(&fakeAuthRepo{}, &fakeIdentityRepo{}, &fakeAuditService{})

	err := svc.DeleteAccount(context.Background(), actor, DeleteAccountRequest{UserID: actor.ID})
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 400, httpErr.Status)
	assert.Equal(t, "You cannot delete your own account", httpErr.Message)
}

func TestDeleteAccount_FatalAuthDeleteFailsWholeOperation(t *testing.T) {
	profileDeletes := 0
	authRepo := &fakeAuthRepo{
		deleteFn: func(ctx context.Context, id string) error { return errors.New("storage down") },
	}
	identityRepo := &fakeIdentityRepo{
		findByIDFn: func(ctx context.Context, id string) (*identity.Profile, error) {
			return nil, gorm.ErrRecordNotFound
		},
		deleteFn: func(ctx context.Context, id string) error { profileDeletes++; return nil },
	}
	auditSvc := &fakeAuditService{}
	svc := newServiceForTest(authRepo, identityRepo, auditSvc)

	err := svc.DeleteAccount(context.Background(), adminActor(), DeleteAccountRequest{UserID: uuid.NewString()})

	assert.Error(t, err)
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 500, httpErr.Status)
	// Langkah setelah fatal tidak berjalan: tidak ada delete profil,
	// tidak ada audit entry.
	assert.Zero(t, profileDeletes)
	assert.Empty(t, auditSvc.entries)
}

func TestDeleteAccount_AdvisoryProfileFailureStillSucceeds(t *testing.T) {
	target := uuid.NewString()
	authRepo := &fakeAuthRepo{deleteFn: func(ctx context.Context, id string) error { return nil }}
	identityRepo := &fakeIdentityRepo{
		findByIDFn: func(ctx context.Context, id string) (*identity.Profile, error) {
			return &identity.Profile{Email: "target@example.com", FullName: "Target", Role: "employee"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error { return errors.New("profiles table locked") },
	}
	auditSvc := &fakeAuditService{}
	svc := newServiceForTest(authRepo, identityRepo, auditSvc)

	err := svc.DeleteAccount(context.Background(), adminActor(), DeleteAccountRequest{UserID: target})

	assert.NoError(t, err)
	assert.Len(t, auditSvc.entries, 1)
	entry := auditSvc.entries[0]
	assert.Equal(t, "admin_deleted", entry.Action)
	assert.Equal(t, "admin", entry.EntityType)
	assert.Equal(t, target, entry.EntityID)
	assert.Equal(t, "target@example.com", entry.Metadata["deleted_user_email"])
}

func TestDeleteAccount_SnapshotFallbackToRequestEmail(t *testing.T) {
	authRepo := &fakeAuthRepo{deleteFn: func(ctx context.Context, id string) error { return nil }}
	identityRepo := &fakeIdentityRepo{
		findByIDFn: func(ctx context.Context, id string) (*identity.Profile, error) {
			return nil, gorm.ErrRecordNotFound
		},
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	auditSvc := &fakeAuditService{}
	svc := newServiceForTest(authRepo, identityRepo, auditSvc)

	err := svc.DeleteAccount(context.Background(), adminActor(), DeleteAccountRequest{
		UserID:    uuid.NewString(),
		UserEmail: "fallback@example.com",
	})

	assert.NoError(t, err)
	assert.Len(t, auditSvc.entries, 1)
	assert.Equal(t, "fallback@example.com", auditSvc.entries[0].Metadata["deleted_user_email"])
}
