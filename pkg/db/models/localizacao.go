package models

import (
	"time"

	"github.com/google/uuid"
)

// Localizacao is a physical storage slot (galpão > andar > prateleira >
// caixa). CaixaSigla is the globally unique, QR-scannable box code.
// QuantidadeEmbalagens caches the total units stored in the box and is
// maintained by the ledger on every link mutation.
type Localizacao struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Galpao               string    `gorm:"column:galpao;type:varchar(100);not null;index"`
	Andar                string    `gorm:"column:andar;type:varchar(50);not null"`
	Prateleira           string    `gorm:"column:prateleira;type:varchar(50);not null"`
	CaixaSigla           string    `gorm:"column:caixa_sigla;type:varchar(50);not null;uniqueIndex:idx_localizacoes_caixa_sigla"`
	QRCodeData           *string   `gorm:"column:qr_code_data;type:text"`
	QuantidadeEmbalagens int       `gorm:"column:quantidade_embalagens;not null;default:0"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the GORM naming convention.
func (Localizacao) TableName() string {
	return "localizacoes"
}
