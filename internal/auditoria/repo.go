package auditoria

import (
	"context"

	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/pkg/db/models"
)

// Repository persists audit entries. The table is append-only; there is
// no update or delete path on purpose.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, entry *models.Auditoria) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *Repository) ListByTable(ctx context.Context, tabela string, limit int) ([]models.Auditoria, error) {
	var entries []models.Auditoria
	err := r.db.WithContext(ctx).
		Where("tabela = ?", tabela).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
