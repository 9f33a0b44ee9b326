package account

import (
	"context"
	"net/http"

	"go-payhr/internal/audit"
	"go-payhr/internal/auth"
	"go-payhr/internal/identity"
	"go-payhr/internal/shared/apperror"
	"go-payhr/internal/shared/contextutil"
	"go-payhr/internal/workflow"

	"go.uber.org/zap"
)

//go:generate mockgen -source=account_service.go -destination=mock/account_service_mock.go -package=mock
type Service interface {
	DeleteAccount(ctx context.Context, actor *identity.Principal, req DeleteAccountRequest) error
}

type service struct {
	authRepo     auth.Repository
	identityRepo identity.Repository
	auditSvc     audit.Service
	logger       *zap.Logger
}

// NewService menerima repo dengan handle service-role: penghapusan
// identity dan profil berjalan elevated karena otorisasi sudah
// dilakukan di sini, bukan per-row.
func NewService(authRepo auth.Repository, identityRepo identity.Repository, auditSvc audit.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("account.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("account.service")
	}
	return &service{
		authRepo:     authRepo,
		identityRepo: identityRepo,
		auditSvc:     auditSvc,
		logger:       l,
	}
}

// DeleteAccount: prasyarat dicek berurutan dan short-circuit, lalu
// eksekusi lewat tabel langkah. Hanya penghapusan auth identity yang
// fatal; begitu identity hilang, profil yatim sementara diterima
// sebagai inkonsistensi yang lebih kecil.
func (s *service) DeleteAccount(ctx context.Context, actor *identity.Principal, req DeleteAccountRequest) error {
	// 1. Harus ada principal terautentikasi
	if actor == nil {
		return apperror.ErrUnauthorized
	}

	// 2. Hanya admin, bukan sekadar admin surface
	if !actor.IsAdmin() {
		return apperror.ErrForbidden
	}

	// 3. Target wajib ada
	if req.UserID == "" {
		return apperror.RequiredField("userId")
	}

	// 4. Self-deletion dilarang
	if req.UserID == actor.ID {
		return apperror.New(apperror.CodeInvalidInput, "You cannot delete your own account", http.StatusBadRequest)
	}

	log := contextutil.GetLogger(ctx, s.logger)

	// Metadata audit diisi dari snapshot; fallback ke nilai request.
	deletedEmail := req.UserEmail
	deletedName := ""
	deletedRole := ""

	steps := []workflow.Step{
		{
			Name:     "snapshot_target_profile",
			Severity: workflow.Advisory,
			Run: func(ctx context.Context) error {
				profile, err := s.identityRepo.FindByID(ctx, req.UserID)
				if err != nil {
					return err
				}
				deletedEmail = profile.Email
				deletedName = profile.FullName
				deletedRole = profile.Role
				return nil
			},
		},
		{
			Name:     "delete_auth_identity",
			Severity: workflow.Fatal,
			Run: func(ctx context.Context) error {
				if err := s.authRepo.Delete(ctx, req.UserID); err != nil {
					return apperror.Wrap(err, apperror.CodeInternalError, "Failed to delete user account", http.StatusInternalServerError)
				}
				return nil
			},
		},
		{
			Name:     "delete_profile_row",
			Severity: workflow.Advisory,
			Run: func(ctx context.Context) error {
				return s.identityRepo.Delete(ctx, req.UserID)
			},
		},
		{
			Name:     "append_audit_entry",
			Severity: workflow.Advisory,
			Run: func(ctx context.Context) error {
				return s.auditSvc.Append(ctx, audit.Entry{
					UserID:     actor.ID,
					UserRole:   string(actor.Role),
					UserName:   actor.Name,
					UserEmail:  actor.Email,
					Action:     "admin_deleted",
					EntityType: "admin",
					EntityID:   req.UserID,
					Metadata: map[string]any{
						"deleted_user_email": deletedEmail,
						"deleted_user_name":  deletedName,
						"deleted_user_role":  deletedRole,
					},
				})
			},
		},
	}

	if err := workflow.Run(ctx, log, steps); err != nil {
		return err
	}

	log.Info("account deleted",
		zap.String("target_user_id", req.UserID),
		zap.String("actor_id", actor.ID),
	)
	return nil
}
