package models

import (
	"time"

	"github.com/estoquelab/embalagens-backend/pkg/enums"
	"github.com/google/uuid"
)

// UsuarioEquipe links a user with a team. PapelNaEquipe optionally
// overrides the member's global role inside that team.
type UsuarioEquipe struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UsuarioID     uuid.UUID          `gorm:"column:usuario_id;type:uuid;not null;index"`
	EquipeID      uuid.UUID          `gorm:"column:equipe_id;type:uuid;not null;index"`
	PapelNaEquipe *enums.PapelEquipe `gorm:"column:papel_na_equipe;type:papel_equipe"`
	DataEntrada   time.Time          `gorm:"column:data_entrada;not null;autoCreateTime"`
}

// TableName overrides the GORM naming convention.
func (UsuarioEquipe) TableName() string {
	return "usuario_equipe"
}
