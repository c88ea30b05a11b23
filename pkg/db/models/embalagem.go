package models

import (
	"time"

	"github.com/google/uuid"
)

// Embalagem is the main catalog entity: a packaging item with
// material/brand/country metadata and a soft-delete lifecycle. A
// soft-deleted row keeps all its data; only the deletion fields change
// on delete and restore.
type Embalagem struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Material        string    `gorm:"column:material;type:varchar(100);not null;index"`
	Produto         string    `gorm:"column:produto;type:varchar(255);not null"`
	Marca           string    `gorm:"column:marca;type:varchar(255);not null"`
	Pais            string    `gorm:"column:pais;type:varchar(100);not null;index"`
	CodigoBarras    *string   `gorm:"column:codigo_barras;type:varchar(50)"`
	TipoEmbalagem   *string   `gorm:"column:tipo_embalagem;type:varchar(100);index"`
	SeraUtilizadoEm *string   `gorm:"column:sera_utilizado_em;type:text"`
	Observacoes     *string   `gorm:"column:observacoes;type:text"`

	Deletado         bool       `gorm:"column:deletado;not null;default:false;index"`
	DataDelecao      *time.Time `gorm:"column:data_delecao"`
	UsuarioDelecaoID *uuid.UUID `gorm:"column:usuario_delecao_id;type:uuid"`
	MotivoDelecao    *string    `gorm:"column:motivo_delecao;type:text"`

	UsuarioCriadorID     uuid.UUID  `gorm:"column:usuario_criador_id;type:uuid;not null"`
	UsuarioAtualizadorID *uuid.UUID `gorm:"column:usuario_atualizador_id;type:uuid"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the GORM naming convention.
func (Embalagem) TableName() string {
	return "embalagens"
}
