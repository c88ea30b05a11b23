package localizacoes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/pkg/db/models"
)

// Repository exposes storage-slot and link persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a localizacoes repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repo to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, localizacao *models.Localizacao) (*models.Localizacao, error) {
	if err := r.db.WithContext(ctx).Create(localizacao).Error; err != nil {
		return nil, err
	}
	return localizacao, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Localizacao, error) {
	var localizacao models.Localizacao
	if err := r.db.WithContext(ctx).First(&localizacao, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &localizacao, nil
}

func (r *Repository) FindBySigla(ctx context.Context, caixaSigla string) (*models.Localizacao, error) {
	var localizacao models.Localizacao
	err := r.db.WithContext(ctx).
		Where("caixa_sigla = ?", caixaSigla).
		First(&localizacao).Error
	if err != nil {
		return nil, err
	}
	return &localizacao, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Localizacao, error) {
	var localizacoes []models.Localizacao
	err := r.db.WithContext(ctx).
		Order("galpao ASC, andar ASC, prateleira ASC, caixa_sigla ASC").
		Find(&localizacoes).Error
	if err != nil {
		return nil, err
	}
	return localizacoes, nil
}

// UpdateFields applies a partial column update to one slot.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Localizacao{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete removes the slot; its links go with it via FK cascades.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Localizacao{}).Error
}

func (r *Repository) FindVinculo(ctx context.Context, embalagemID, localizacaoID uuid.UUID) (*models.EmbalagemLocalizacao, error) {
	var vinculo models.EmbalagemLocalizacao
	err := r.db.WithContext(ctx).
		Where("embalagem_id = ? AND localizacao_id = ?", embalagemID, localizacaoID).
		First(&vinculo).Error
	if err != nil {
		return nil, err
	}
	return &vinculo, nil
}

func (r *Repository) CreateVinculo(ctx context.Context, vinculo *models.EmbalagemLocalizacao) (*models.EmbalagemLocalizacao, error) {
	if err := r.db.WithContext(ctx).Create(vinculo).Error; err != nil {
		return nil, err
	}
	return vinculo, nil
}

func (r *Repository) UpdateVinculoQuantidade(ctx context.Context, id uuid.UUID, quantidade int) error {
	return r.db.WithContext(ctx).
		Model(&models.EmbalagemLocalizacao{}).
		Where("id = ?", id).
		Update("quantidade", quantidade).Error
}

func (r *Repository) DeleteVinculo(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.EmbalagemLocalizacao{})
	return result.RowsAffected, result.Error
}

// RecomputeQuantidade refreshes the cached unit total of a slot from
// its links. Runs inside the same transaction as the link mutation.
func (r *Repository) RecomputeQuantidade(ctx context.Context, localizacaoID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Localizacao{}).
		Where("id = ?", localizacaoID).
		UpdateColumn("quantidade_embalagens", gorm.Expr(
			"(SELECT COALESCE(SUM(quantidade), 0) FROM embalagem_localizacao WHERE localizacao_id = ?)",
			localizacaoID,
		)).Error
}

// ListEmbalagens returns the items stored in a slot, skipping
// soft-deleted catalog rows.
func (r *Repository) ListEmbalagens(ctx context.Context, localizacaoID uuid.UUID) ([]EmbalagemNaCaixaDTO, error) {
	var itens []EmbalagemNaCaixaDTO
	err := r.db.WithContext(ctx).
		Table("embalagem_localizacao").
		Select("embalagem_localizacao.embalagem_id, embalagens.produto, embalagens.marca, embalagens.material, embalagens.pais, embalagens.codigo_barras, embalagem_localizacao.quantidade").
		Joins("JOIN embalagens ON embalagens.id = embalagem_localizacao.embalagem_id").
		Where("embalagem_localizacao.localizacao_id = ? AND embalagens.deletado = ?", localizacaoID, false).
		Order("embalagens.produto ASC").
		Scan(&itens).Error
	if err != nil {
		return nil, err
	}
	return itens, nil
}

// ListForEmbalagem returns the slots holding units of an item.
func (r *Repository) ListForEmbalagem(ctx context.Context, embalagemID uuid.UUID) ([]LocalizacaoDaEmbalagemDTO, error) {
	var slots []LocalizacaoDaEmbalagemDTO
	err := r.db.WithContext(ctx).
		Table("embalagem_localizacao").
		Select("embalagem_localizacao.localizacao_id, localizacoes.caixa_sigla, localizacoes.galpao, localizacoes.andar, localizacoes.prateleira, embalagem_localizacao.quantidade").
		Joins("JOIN localizacoes ON localizacoes.id = embalagem_localizacao.localizacao_id").
		Where("embalagem_localizacao.embalagem_id = ?", embalagemID).
		Order("localizacoes.caixa_sigla ASC").
		Scan(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}
