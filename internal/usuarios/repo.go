package usuarios

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/pkg/db"
	"github.com/estoquelab/embalagens-backend/pkg/db/models"
)

// Repository exposes user persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a usuarios repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByOpenID loads a user by their external identity key.
func (r *Repository) FindByOpenID(ctx context.Context, openID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("open_id = ?", openID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAtivos returns active users ordered by creation time.
func (r *Repository) ListAtivos(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("ativo = ?", true).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateFields applies a partial column update to one user.
func (r *Repository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// UpdateLastSignedIn refreshes the user's last_signed_in timestamp.
func (r *Repository) UpdateLastSignedIn(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("last_signed_in", at).Error
}

// UpsertByOpenID creates the user when the open_id is unseen and syncs
// profile fields otherwise. The boolean reports whether a new row was
// inserted. A concurrent insert losing the race falls back to the
// update path.
func (r *Repository) UpsertByOpenID(ctx context.Context, input UpsertUsuarioInput) (*models.User, bool, error) {
	existing, err := r.FindByOpenID(ctx, input.OpenID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
		user := &models.User{
			OpenID:       input.OpenID,
			Nome:         input.Nome,
			Email:        input.Email,
			LoginMethod:  input.LoginMethod,
			Ativo:        true,
			PasswordHash: input.PasswordHash,
			LastSignedIn: time.Now().UTC(),
		}
		if input.Papel != nil {
			user.Papel = *input.Papel
		}
		if _, err := r.Create(ctx, user); err != nil {
			if db.IsUniqueViolation(err, "") {
				synced, serr := r.syncExisting(ctx, input)
				return synced, false, serr
			}
			return nil, false, err
		}
		return user, true, nil
	}

	synced, err := r.applySync(ctx, existing, input)
	return synced, false, err
}

func (r *Repository) syncExisting(ctx context.Context, input UpsertUsuarioInput) (*models.User, error) {
	existing, err := r.FindByOpenID(ctx, input.OpenID)
	if err != nil {
		return nil, err
	}
	return r.applySync(ctx, existing, input)
}

func (r *Repository) applySync(ctx context.Context, existing *models.User, input UpsertUsuarioInput) (*models.User, error) {
	fields := map[string]any{
		"last_signed_in": time.Now().UTC(),
	}
	if input.Nome != nil {
		fields["nome"] = *input.Nome
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.LoginMethod != nil {
		fields["login_method"] = *input.LoginMethod
	}
	if input.Papel != nil {
		fields["papel"] = *input.Papel
	}
	if input.PasswordHash != nil {
		fields["password_hash"] = *input.PasswordHash
	}
	if err := r.UpdateFields(ctx, existing.ID, fields); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, existing.ID)
}
