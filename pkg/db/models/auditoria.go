package models

import (
	"time"

	"github.com/estoquelab/embalagens-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Auditoria is an append-only record of a mutation, with before/after
// snapshots serialized as JSON. Rows are never updated or deleted.
type Auditoria struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UsuarioID   uuid.UUID      `gorm:"column:usuario_id;type:uuid;not null;index"`
	Tabela      string         `gorm:"column:tabela;type:varchar(100);not null;index"`
	Operacao    enums.Operacao `gorm:"column:operacao;type:operacao;not null;index"`
	RegistroID  uuid.UUID      `gorm:"column:registro_id;type:uuid;not null"`
	DadosAntes  datatypes.JSON `gorm:"column:dados_antes"`
	DadosDepois datatypes.JSON `gorm:"column:dados_depois"`
	IPAddress   *string        `gorm:"column:ip_address;type:varchar(50)"`
	UserAgent   *string        `gorm:"column:user_agent;type:text"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the GORM naming convention.
func (Auditoria) TableName() string {
	return "auditoria"
}
