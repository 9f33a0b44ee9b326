package identity

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=identity_repo.go -destination=mock/identity_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Profile, error)
	Count(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	return &p, err
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Profile{}).Count(&n).Error
	return n, err
}

// Upsert idempotent, keyed by id. Baris yang sudah ada hanya
// diperbarui kolom non-role agar provisioning ulang tidak
// menaikkan privilege.
func (r *repository) Upsert(ctx context.Context, p *Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "full_name", "updated_at"}),
		}).
		Create(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Profile{}).Error
}
