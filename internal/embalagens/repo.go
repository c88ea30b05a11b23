package embalagens

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/pkg/db/models"
)

// Repository exposes catalog persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an embalagens repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, embalagem *models.Embalagem) (*models.Embalagem, error) {
	if err := r.db.WithContext(ctx).Create(embalagem).Error; err != nil {
		return nil, err
	}
	return embalagem, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Embalagem, error) {
	var embalagem models.Embalagem
	if err := r.db.WithContext(ctx).First(&embalagem, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &embalagem, nil
}

// UpdateFields applies a partial column update to one item.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Embalagem{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// List applies the filters with AND semantics, newest first. Substring
// filters lower both sides so matching is case-insensitive on postgres
// and sqlite alike.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Embalagem, error) {
	query := r.db.WithContext(ctx).Model(&models.Embalagem{})

	deletado := false
	if filter.Deletado != nil {
		deletado = *filter.Deletado
	}
	query = query.Where("deletado = ?", deletado)

	if filter.Material != nil {
		query = query.Where("material = ?", *filter.Material)
	}
	if filter.Pais != nil {
		query = query.Where("pais = ?", *filter.Pais)
	}
	if filter.TipoEmbalagem != nil {
		query = query.Where("tipo_embalagem = ?", *filter.TipoEmbalagem)
	}
	if filter.Marca != nil {
		query = query.Where("LOWER(marca) LIKE LOWER(?)", contains(*filter.Marca))
	}
	if filter.SeraUtilizadoEm != nil {
		query = query.Where("LOWER(sera_utilizado_em) LIKE LOWER(?)", contains(*filter.SeraUtilizadoEm))
	}
	if filter.Busca != nil {
		term := contains(*filter.Busca)
		query = query.Where(
			"LOWER(produto) LIKE LOWER(?) OR LOWER(marca) LIKE LOWER(?) OR LOWER(codigo_barras) LIKE LOWER(?)",
			term, term, term,
		)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var embalagens []models.Embalagem
	if err := query.Order("created_at DESC").Find(&embalagens).Error; err != nil {
		return nil, err
	}
	return embalagens, nil
}

// SoftDelete stamps the deletion fields without touching the data.
func (r *Repository) SoftDelete(ctx context.Context, id, actorID uuid.UUID, motivo *string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Embalagem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deletado":           true,
			"data_delecao":       at,
			"usuario_delecao_id": actorID,
			"motivo_delecao":     motivo,
		}).Error
}

// Restore clears the deletion fields.
func (r *Repository) Restore(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Embalagem{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deletado":           false,
			"data_delecao":       nil,
			"usuario_delecao_id": nil,
			"motivo_delecao":     nil,
		}).Error
}

// HardDelete removes the row; photos and storage links follow via FK
// cascades.
func (r *Repository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Embalagem{}).Error
}

func (r *Repository) CreateFoto(ctx context.Context, foto *models.FotoEmbalagem) (*models.FotoEmbalagem, error) {
	if err := r.db.WithContext(ctx).Create(foto).Error; err != nil {
		return nil, err
	}
	return foto, nil
}

func (r *Repository) FindFotoByID(ctx context.Context, id uuid.UUID) (*models.FotoEmbalagem, error) {
	var foto models.FotoEmbalagem
	if err := r.db.WithContext(ctx).First(&foto, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &foto, nil
}

func (r *Repository) DeleteFoto(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.FotoEmbalagem{}).Error
}

func (r *Repository) ListFotos(ctx context.Context, embalagemID uuid.UUID) ([]models.FotoEmbalagem, error) {
	var fotos []models.FotoEmbalagem
	err := r.db.WithContext(ctx).
		Where("embalagem_id = ?", embalagemID).
		Order("ordem ASC, created_at ASC").
		Find(&fotos).Error
	if err != nil {
		return nil, err
	}
	return fotos, nil
}

// ListVinculos returns the storage links of an item joined with the
// location columns.
func (r *Repository) ListVinculos(ctx context.Context, embalagemID uuid.UUID) ([]VinculoLocalizacaoDTO, error) {
	var vinculos []VinculoLocalizacaoDTO
	err := r.db.WithContext(ctx).
		Table("embalagem_localizacao").
		Select("embalagem_localizacao.localizacao_id, localizacoes.caixa_sigla, localizacoes.galpao, localizacoes.andar, localizacoes.prateleira, embalagem_localizacao.quantidade").
		Joins("JOIN localizacoes ON localizacoes.id = embalagem_localizacao.localizacao_id").
		Where("embalagem_localizacao.embalagem_id = ?", embalagemID).
		Order("localizacoes.caixa_sigla ASC").
		Scan(&vinculos).Error
	if err != nil {
		return nil, err
	}
	return vinculos, nil
}

func contains(term string) string {
	return "%" + strings.TrimSpace(term) + "%"
}
