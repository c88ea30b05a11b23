package models

import (
	"time"

	"github.com/estoquelab/embalagens-backend/pkg/enums"
	"github.com/google/uuid"
)

// User represents the canonical identity entity. Accounts are upserted
// keyed by open_id on login and deactivated via the ativo flag, never
// hard-deleted.
type User struct {
	ID           uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OpenID       string      `gorm:"column:open_id;type:varchar(64);not null;uniqueIndex"`
	Nome         *string     `gorm:"column:nome;type:text"`
	Email        *string     `gorm:"column:email;type:varchar(320)"`
	LoginMethod  *string     `gorm:"column:login_method;type:varchar(64)"`
	Papel        enums.Papel `gorm:"column:papel;type:papel;not null;default:visualizador"`
	Ativo        bool        `gorm:"column:ativo;not null;default:true"`
	PasswordHash *string     `gorm:"column:password_hash"`
	LastSignedIn time.Time   `gorm:"column:last_signed_in;not null;autoCreateTime"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the GORM naming convention.
func (User) TableName() string {
	return "users"
}
