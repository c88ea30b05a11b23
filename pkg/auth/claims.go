package auth

import (
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID uuid.UUID
	Papel  enums.Papel
	JTI    string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID uuid.UUID   `json:"user_id"`
	Papel  enums.Papel `json:"papel"`
	jwt.RegisteredClaims
}
