package audit

import (
	"context"
	"errors"
	"testing"

	"go-payhr/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	created   []AuditLog
	createErr error
	rows      []AuditLog
	findErr   error
	lastLimit int
}

func (f *fakeRepo) Create(ctx context.Context, row *AuditLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *row)
	return nil
}
func (f *fakeRepo) FindAll(ctx context.Context, limit int) ([]AuditLog, error) {
	f.lastLimit = limit
	return f.rows, f.findErr
}

func TestAppend_RequiredFields(t *testing.T) {
	svc := NewService(&fakeRepo{})

	err := svc.Append(context.Background(), Entry{EntityType: "employee"})
	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 400, httpErr.Status)

	err = svc.Append(context.Background(), Entry{Action: "salary_updated"})
	httpErr = apperror.ToHTTP(err)
	assert.Equal(t, 400, httpErr.Status)
}

func TestAppend_DefaultsApplied(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	err := svc.Append(context.Background(), Entry{
		Action:     "leave_approved",
		EntityType: "leave_request",
	})
	assert.NoError(t, err)
	assert.Len(t, repo.created, 1)

	row := repo.created[0]
	assert.Equal(t, "employee", row.UserRole)
	assert.NotNil(t, row.Metadata)
	assert.Empty(t, row.Metadata)
	assert.Nil(t, row.UserID)
	assert.False(t, row.CreatedAt.IsZero())
}

func TestAppend_ActorFieldsCarried(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)

	userID := uuid.NewString()
	err := svc.Append(context.Background(), Entry{
		UserID:     userID,
		UserRole:   "admin",
		UserName:   "Admin",
		UserEmail:  "admin@example.com",
		Action:     "admin_deleted",
		EntityType: "admin",
		EntityID:   uuid.NewString(),
		Metadata:   map[string]any{"deleted_user_email": "x@y.co"},
	})
	assert.NoError(t, err)

	row := repo.created[0]
	assert.Equal(t, userID, row.UserID.String())
	assert.Equal(t, "admin", row.UserRole)
	assert.NotNil(t, row.EntityID)
	assert.Equal(t, "x@y.co", row.Metadata["deleted_user_email"])
}

func TestAppend_RepoFailureWrapped(t *testing.T) {
	repo := &fakeRepo{createErr: errors.New("disk full")}
	svc := NewService(repo)

	err := svc.Append(context.Background(), Entry{Action: "a", EntityType: "b"})
	assert.Error(t, err)

	httpErr := apperror.ToHTTP(err)
	assert.Equal(t, 500, httpErr.Status)
	assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
}

func TestGetAll_MapsRows(t *testing.T) {
	uid := uuid.New()
	eid := "emp-1"
	repo := &fakeRepo{rows: []AuditLog{
		{
			ID:         uuid.New(),
			UserID:     &uid,
			UserRole:   "hr",
			Action:     "salary_updated",
			EntityType: "employee",
			EntityID:   &eid,
			Metadata:   Metadata{"amount": float64(100)},
		},
	}}
	svc := NewService(repo)

	res, err := svc.GetAll(context.Background(), 25)
	assert.NoError(t, err)
	assert.Equal(t, 25, repo.lastLimit)
	assert.Len(t, res, 1)
	assert.Equal(t, uid.String(), res[0].UserID)
	assert.Equal(t, "salary_updated", res[0].Action)
}
