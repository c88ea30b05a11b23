package models

import (
	"time"

	"github.com/google/uuid"
)

// EmbalagemLocalizacao carries how many units of a packaging item sit
// in a location. At most one row exists per (embalagem, localizacao)
// pair; link writes go through an upsert.
type EmbalagemLocalizacao struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EmbalagemID   uuid.UUID `gorm:"column:embalagem_id;type:uuid;not null;uniqueIndex:idx_embalagem_localizacao_par"`
	LocalizacaoID uuid.UUID `gorm:"column:localizacao_id;type:uuid;not null;uniqueIndex:idx_embalagem_localizacao_par"`
	Quantidade    int       `gorm:"column:quantidade;not null;default:1"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the GORM naming convention.
func (EmbalagemLocalizacao) TableName() string {
	return "embalagem_localizacao"
}
