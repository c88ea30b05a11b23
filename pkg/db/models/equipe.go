package models

import (
	"time"

	"github.com/google/uuid"
)

// Equipe groups users (Criativo, Logística, Administração...).
type Equipe struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Nome      string    `gorm:"column:nome;type:varchar(100);not null;uniqueIndex"`
	Descricao *string   `gorm:"column:descricao;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the GORM naming convention.
func (Equipe) TableName() string {
	return "equipes"
}
