package controllers

import (
	"net/http"
	"strings"

	"github.com/estoquelab/embalagens-backend/api/responses"
	"github.com/estoquelab/embalagens-backend/api/validators"
	usuariosvc "github.com/estoquelab/embalagens-backend/internal/usuarios"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
)

type upsertUsuarioRequest struct {
	OpenID string  `json:"openId" validate:"required"`
	Nome   *string `json:"nome,omitempty"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Papel  *string `json:"papel,omitempty"`
}

type updateUsuarioRequest struct {
	Nome  *string `json:"nome,omitempty"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
	Papel *string `json:"papel,omitempty"`
	Ativo *bool   `json:"ativo,omitempty"`
}

func parsePapelPtr(raw *string) (*enums.Papel, error) {
	if raw == nil {
		return nil, nil
	}
	papel, err := enums.ParsePapel(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid papel")
	}
	return &papel, nil
}

// UpsertUsuario creates or syncs a user keyed by openId.
func UpsertUsuario(svc usuariosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload upsertUsuarioRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		papel, err := parsePapelPtr(payload.Papel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		loginMethod := "manual"
		user, err := svc.Upsert(r.Context(), actorID, usuariosvc.UpsertUsuarioInput{
			OpenID:      payload.OpenID,
			Nome:        payload.Nome,
			Email:       payload.Email,
			LoginMethod: &loginMethod,
			Papel:       papel,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// ListUsuarios returns all active users.
func ListUsuarios(svc usuariosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, users)
	}
}

// GetUsuario loads one user by id.
func GetUsuario(svc usuariosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// UpdateUsuario applies a partial mutation to a user.
func UpdateUsuario(svc usuariosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateUsuarioRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		papel, err := parsePapelPtr(payload.Papel)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Update(r.Context(), actorID, id, usuariosvc.UpdateUsuarioInput{
			Nome:  payload.Nome,
			Email: payload.Email,
			Papel: papel,
			Ativo: payload.Ativo,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, user)
	}
}

// DeactivateUsuario flips the user's ativo flag off.
func DeactivateUsuario(svc usuariosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deactivate(r.Context(), actorID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
