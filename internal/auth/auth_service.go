package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-payhr/internal/auth/errors"
	"go-payhr/internal/identity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo        Repository
	resolver    identity.Resolver
	provisioner *identity.Provisioner
}

func NewService(repo Repository, resolver identity.Resolver, provisioner *identity.Provisioner) Service {
	return &service{repo: repo, resolver: resolver, provisioner: provisioner}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	// 1. Ambil user
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	// 2. Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	claims := &identity.SessionClaims{UserID: user.ID.String(), Email: user.Email}

	// 3. Pastikan profil ada (lazy provisioning, idempotent).
	// Kegagalan di sini tidak menggagalkan login; resolver punya fallback.
	_ = s.provisioner.EnsureProfile(ctx, claims)

	principal, err := s.resolver.Resolve(ctx, claims)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	// 4. Generate token pair
	accessToken, err := s.generateToken(user.ID.String(), user.Email, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user.ID.String(), user.Email, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return accessToken, refreshToken, AuthResponse{
		ID:    principal.ID,
		Email: principal.Email,
		Name:  principal.Name,
		Role:  string(principal.Role),
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}

	principal, err := s.resolver.Resolve(ctx, &identity.SessionClaims{UserID: user.ID.String(), Email: user.Email})
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	newAccessToken, err := s.generateToken(user.ID.String(), user.Email, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	newRefreshToken, err := s.generateToken(user.ID.String(), user.Email, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, AuthResponse{
		ID:    principal.ID,
		Email: principal.Email,
		Name:  principal.Name,
		Role:  string(principal.Role),
	}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	principal, err := s.resolver.Resolve(ctx, &identity.SessionClaims{UserID: u.ID.String(), Email: u.Email})
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:    principal.ID,
		Email: principal.Email,
		Name:  principal.Name,
		Role:  string(principal.Role),
	}, nil
}

// reusable token generator
func (s *service) generateToken(userID, email string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
