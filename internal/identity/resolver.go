package identity

import (
	"context"
	"errors"
	"strings"

	"go-payhr/internal/shared/apperror"

	"gorm.io/gorm"
)

// SessionClaims adalah hasil verifikasi token yang dilakukan middleware.
// Resolver tidak menyentuh token mentah.
type SessionClaims struct {
	UserID string
	Email  string
}

//go:generate mockgen -source=resolver.go -destination=mock/resolver_mock.go -package=mock
type Resolver interface {
	Resolve(ctx context.Context, claims *SessionClaims) (*Principal, error)
}

type resolver struct {
	repo Repository
}

func NewResolver(repo Repository) Resolver {
	return &resolver{repo: repo}
}

// Resolve fail-closed: tanpa session tidak ada principal.
// Profil yang hilang bukan error; principal tetap terbentuk dengan
// display name dari local part email dan role employee.
func (r *resolver) Resolve(ctx context.Context, claims *SessionClaims) (*Principal, error) {
	if claims == nil || claims.UserID == "" {
		return nil, apperror.ErrUnauthorized
	}

	p := &Principal{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  displayNameFromEmail(claims.Email),
		Role:  RoleEmployee,
	}

	profile, err := r.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return p, nil
		}
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "Failed to resolve principal", 500)
	}

	if profile.FullName != "" {
		p.Name = profile.FullName
	}
	if profile.Email != "" {
		p.Email = profile.Email
	}
	p.Role = ParseRole(profile.Role)

	return p, nil
}

func displayNameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return email
	}
	return local
}
