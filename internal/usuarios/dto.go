package usuarios

import (
	"time"

	"github.com/google/uuid"

	"github.com/estoquelab/embalagens-backend/pkg/db/models"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
)

// UsuarioDTO is the transport shape that omits credentials.
type UsuarioDTO struct {
	ID           uuid.UUID   `json:"id"`
	OpenID       string      `json:"openId"`
	Nome         *string     `json:"nome,omitempty"`
	Email        *string     `json:"email,omitempty"`
	LoginMethod  *string     `json:"loginMethod,omitempty"`
	Papel        enums.Papel `json:"papel"`
	Ativo        bool        `json:"ativo"`
	LastSignedIn time.Time   `json:"lastSignedIn"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// UpsertUsuarioInput holds the fields applied when creating or syncing a
// user keyed by open_id.
type UpsertUsuarioInput struct {
	OpenID       string
	Nome         *string
	Email        *string
	LoginMethod  *string
	Papel        *enums.Papel
	PasswordHash *string
}

// UpdateUsuarioInput holds optional mutation values for a user.
type UpdateUsuarioInput struct {
	Nome  *string
	Email *string
	Papel *enums.Papel
	Ativo *bool
}

func FromModel(u *models.User) *UsuarioDTO {
	if u == nil {
		return nil
	}
	return &UsuarioDTO{
		ID:           u.ID,
		OpenID:       u.OpenID,
		Nome:         u.Nome,
		Email:        u.Email,
		LoginMethod:  u.LoginMethod,
		Papel:        u.Papel,
		Ativo:        u.Ativo,
		LastSignedIn: u.LastSignedIn,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromModels(rows []models.User) []UsuarioDTO {
	out := make([]UsuarioDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
