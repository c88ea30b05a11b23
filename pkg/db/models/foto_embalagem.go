package models

import (
	"time"

	"github.com/google/uuid"
)

// FotoEmbalagem references an externally hosted photo (drive link) of a
// packaging item. Rows are cascade-deleted with their embalagem.
type FotoEmbalagem struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	EmbalagemID     uuid.UUID `gorm:"column:embalagem_id;type:uuid;not null;index"`
	LinkDrive       string    `gorm:"column:link_drive;type:text;not null"`
	Descricao       *string   `gorm:"column:descricao;type:text"`
	Ordem           int       `gorm:"column:ordem;not null;default:1"`
	UsuarioUploadID uuid.UUID `gorm:"column:usuario_upload_id;type:uuid;not null"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the GORM naming convention.
func (FotoEmbalagem) TableName() string {
	return "fotos_embalagem"
}
