package auth

import (
	"github.com/estoquelab/embalagens-backend/internal/usuarios"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// LoginResponse contains the token pair and the authenticated user.
type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	User         *usuarios.UsuarioDTO `json:"user"`
}

// RefreshRequest carries the expired access token plus the refresh
// secret to rotate.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse contains the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// StatusResponse answers the public session status check. User is set
// only for authenticated callers.
type StatusResponse struct {
	Authenticated bool                 `json:"authenticated"`
	User          *usuarios.UsuarioDTO `json:"user,omitempty"`
}
