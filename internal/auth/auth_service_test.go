package auth

import (
	"context"
	"testing"

	autherrors "go-payhr/internal/auth/errors"
	"go-payhr/internal/identity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeRepo struct {
	users map[string]*User
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if u, ok := f.users[id.String()]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) Create(ctx context.Context, user *User) error { return nil }
func (f *fakeRepo) Delete(ctx context.Context, id string) error  { return nil }

type fakeIdentityRepo struct {
	profiles map[string]*identity.Profile
	upserts  []*identity.Profile
}

func (f *fakeIdentityRepo) FindByID(ctx context.Context, id string) (*identity.Profile, error) {
	if p, ok := f.profiles[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeIdentityRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.profiles)), nil
}
func (f *fakeIdentityRepo) Upsert(ctx context.Context, p *identity.Profile) error {
	f.upserts = append(f.upserts, p)
	if f.profiles == nil {
		f.profiles = map[string]*identity.Profile{}
	}
	f.profiles[p.ID.String()] = p
	return nil
}
func (f *fakeIdentityRepo) Delete(ctx context.Context, id string) error { return nil }

func newTestService(t *testing.T, users map[string]*User, profiles map[string]*identity.Profile) Service {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "")

	identityRepo := &fakeIdentityRepo{profiles: profiles}
	resolver := identity.NewResolver(identityRepo)
	provisioner := identity.NewProvisioner(identityRepo, zap.NewNop())
	return NewService(&fakeRepo{users: users}, resolver, provisioner)
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestLogin_Success(t *testing.T) {
	userID := uuid.New()
	users := map[string]*User{
		userID.String(): {
			ID:       userID,
			Email:    "siti@example.com",
			Name:     "Siti",
			Password: hashPassword(t, "rahasia123"),
			IsActive: true,
		},
	}
	profiles := map[string]*identity.Profile{
		userID.String(): {ID: userID, Email: "siti@example.com", FullName: "Siti Rahma", Role: "hr"},
	}
	svc := newTestService(t, users, profiles)

	access, refresh, resp, err := svc.Login(context.Background(), "siti@example.com", "rahasia123")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, "hr", resp.Role)
	assert.Equal(t, "Siti Rahma", resp.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	userID := uuid.New()
	users := map[string]*User{
		userID.String(): {ID: userID, Email: "a@b.co", Password: hashPassword(t, "correct")},
	}
	svc := newTestService(t, users, nil)

	_, _, _, err := svc.Login(context.Background(), "a@b.co", "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(t, map[string]*User{}, nil)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "x")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_ProvisionsMissingProfileAsEmployee(t *testing.T) {
	userID := uuid.New()
	users := map[string]*User{
		userID.String(): {ID: userID, Email: "baru@example.com", Password: hashPassword(t, "pw")},
	}
	identityRepo := &fakeIdentityRepo{profiles: map[string]*identity.Profile{}}
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BOOTSTRAP_ADMIN_EMAIL", "")
	svc := NewService(
		&fakeRepo{users: users},
		identity.NewResolver(identityRepo),
		identity.NewProvisioner(identityRepo, zap.NewNop()),
	)

	_, _, resp, err := svc.Login(context.Background(), "baru@example.com", "pw")
	assert.NoError(t, err)
	assert.Equal(t, "employee", resp.Role)
	assert.Len(t, identityRepo.upserts, 1)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	userID := uuid.New()
	users := map[string]*User{
		userID.String(): {ID: userID, Email: "a@b.co", Password: hashPassword(t, "pw")},
	}
	svc := newTestService(t, users, nil)

	_, refresh, _, err := svc.Login(context.Background(), "a@b.co", "pw")
	assert.NoError(t, err)

	newAccess, newRefresh, resp, err := svc.RefreshToken(context.Background(), refresh)
	assert.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)
	assert.Equal(t, userID.String(), resp.ID)
}

func TestRefreshToken_Garbage(t *testing.T) {
	svc := newTestService(t, map[string]*User{}, nil)

	_, _, _, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
}

func TestGetMe(t *testing.T) {
	userID := uuid.New()
	users := map[string]*User{
		userID.String(): {ID: userID, Email: "a@b.co"},
	}
	svc := newTestService(t, users, nil)

	resp, err := svc.GetMe(context.Background(), userID.String())
	assert.NoError(t, err)
	assert.Equal(t, userID.String(), resp.ID)

	_, err = svc.GetMe(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, autherrors.ErrInvalidUserID)

	_, err = svc.GetMe(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
