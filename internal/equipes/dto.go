package equipes

import (
	"time"

	"github.com/google/uuid"

	"github.com/estoquelab/embalagens-backend/pkg/db/models"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
)

// EquipeDTO is the transport shape of a team.
type EquipeDTO struct {
	ID        uuid.UUID `json:"id"`
	Nome      string    `json:"nome"`
	Descricao *string   `json:"descricao,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// MembroDTO is a membership row joined with the member identity.
type MembroDTO struct {
	ID            uuid.UUID          `json:"id"`
	UsuarioID     uuid.UUID          `json:"usuarioId"`
	EquipeID      uuid.UUID          `json:"equipeId"`
	PapelNaEquipe *enums.PapelEquipe `json:"papelNaEquipe,omitempty"`
	DataEntrada   time.Time          `json:"dataEntrada"`
	Nome          *string            `json:"nome,omitempty"`
	Email         *string            `json:"email,omitempty"`
}

// CreateEquipeInput holds the validated payload to create a team.
type CreateEquipeInput struct {
	Nome      string
	Descricao *string
}

// AddMembroInput holds the payload to attach a user to a team.
type AddMembroInput struct {
	UsuarioID     uuid.UUID
	PapelNaEquipe *enums.PapelEquipe
}

func FromModel(e *models.Equipe) *EquipeDTO {
	if e == nil {
		return nil
	}
	return &EquipeDTO{
		ID:        e.ID,
		Nome:      e.Nome,
		Descricao: e.Descricao,
		CreatedAt: e.CreatedAt,
	}
}

func FromModels(rows []models.Equipe) []EquipeDTO {
	out := make([]EquipeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
