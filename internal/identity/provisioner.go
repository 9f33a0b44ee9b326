package identity

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Provisioner membuat baris profil untuk identity yang belum punya.
// Upsert idempotent keyed by user id.
type Provisioner struct {
	repo   Repository
	logger *zap.Logger
}

func NewProvisioner(repo Repository, logger *zap.Logger) *Provisioner {
	if logger == nil {
		logger = zap.L()
	}
	return &Provisioner{repo: repo, logger: logger.Named("identity.provisioner")}
}

// EnsureProfile dipanggil lazily setelah autentikasi. User baru selalu
// mendapat role employee, kecuali jalur bootstrap first-run: tabel profil
// masih kosong DAN email cocok dengan BOOTSTRAP_ADMIN_EMAIL. Itu satu-satunya
// pengecualian; role default umum tetap least privilege.
func (pv *Provisioner) EnsureProfile(ctx context.Context, claims *SessionClaims) error {
	if claims == nil || claims.UserID == "" {
		return errors.New("missing session claims")
	}

	if _, err := pv.repo.FindByID(ctx, claims.UserID); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return err
	}

	role := RoleEmployee
	if pv.isBootstrapAdmin(ctx, claims.Email) {
		role = RoleAdmin
		pv.logger.Warn("bootstrap admin profile provisioned",
			zap.String("user_id", claims.UserID),
			zap.String("email", claims.Email),
		)
	}

	now := time.Now().UTC()
	return pv.repo.Upsert(ctx, &Profile{
		ID:        id,
		Email:     strings.ToLower(strings.TrimSpace(claims.Email)),
		FullName:  displayNameFromEmail(claims.Email),
		Role:      string(role),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (pv *Provisioner) isBootstrapAdmin(ctx context.Context, email string) bool {
	bootstrap := strings.ToLower(strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN_EMAIL")))
	if bootstrap == "" || !strings.EqualFold(strings.TrimSpace(email), bootstrap) {
		return false
	}

	n, err := pv.repo.Count(ctx)
	if err != nil {
		pv.logger.Error("bootstrap check failed", zap.Error(err))
		return false
	}
	return n == 0
}
