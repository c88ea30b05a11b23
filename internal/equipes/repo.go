package equipes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/pkg/db/models"
)

// Repository exposes team and membership persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an equipes repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, equipe *models.Equipe) (*models.Equipe, error) {
	if err := r.db.WithContext(ctx).Create(equipe).Error; err != nil {
		return nil, err
	}
	return equipe, nil
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Equipe, error) {
	var equipe models.Equipe
	if err := r.db.WithContext(ctx).First(&equipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &equipe, nil
}

func (r *Repository) List(ctx context.Context) ([]models.Equipe, error) {
	var equipes []models.Equipe
	err := r.db.WithContext(ctx).
		Order("nome ASC").
		Find(&equipes).Error
	if err != nil {
		return nil, err
	}
	return equipes, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Equipe{}).Error
}

func (r *Repository) AddMembro(ctx context.Context, membro *models.UsuarioEquipe) (*models.UsuarioEquipe, error) {
	if err := r.db.WithContext(ctx).Create(membro).Error; err != nil {
		return nil, err
	}
	return membro, nil
}

func (r *Repository) FindMembro(ctx context.Context, equipeID, usuarioID uuid.UUID) (*models.UsuarioEquipe, error) {
	var membro models.UsuarioEquipe
	err := r.db.WithContext(ctx).
		Where("equipe_id = ? AND usuario_id = ?", equipeID, usuarioID).
		First(&membro).Error
	if err != nil {
		return nil, err
	}
	return &membro, nil
}

func (r *Repository) RemoveMembro(ctx context.Context, equipeID, usuarioID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("equipe_id = ? AND usuario_id = ?", equipeID, usuarioID).
		Delete(&models.UsuarioEquipe{})
	return result.RowsAffected, result.Error
}

// ListMembros returns membership rows for a team joined with the member
// identity columns.
func (r *Repository) ListMembros(ctx context.Context, equipeID uuid.UUID) ([]MembroDTO, error) {
	var membros []MembroDTO
	err := r.db.WithContext(ctx).
		Table("usuario_equipe").
		Select("usuario_equipe.id, usuario_equipe.usuario_id, usuario_equipe.equipe_id, usuario_equipe.papel_na_equipe, usuario_equipe.data_entrada, users.nome, users.email").
		Joins("JOIN users ON users.id = usuario_equipe.usuario_id").
		Where("usuario_equipe.equipe_id = ?", equipeID).
		Order("usuario_equipe.data_entrada ASC").
		Scan(&membros).Error
	if err != nil {
		return nil, err
	}
	return membros, nil
}

// ListForUsuario returns the teams a user belongs to.
func (r *Repository) ListForUsuario(ctx context.Context, usuarioID uuid.UUID) ([]models.Equipe, error) {
	var equipes []models.Equipe
	err := r.db.WithContext(ctx).
		Table("equipes").
		Joins("JOIN usuario_equipe ON usuario_equipe.equipe_id = equipes.id").
		Where("usuario_equipe.usuario_id = ?", usuarioID).
		Order("equipes.nome ASC").
		Find(&equipes).Error
	if err != nil {
		return nil, err
	}
	return equipes, nil
}
