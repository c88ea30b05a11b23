package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/estoquelab/embalagens-backend/api/responses"
	"github.com/estoquelab/embalagens-backend/api/validators"
	equipesvc "github.com/estoquelab/embalagens-backend/internal/equipes"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
)

type createEquipeRequest struct {
	Nome      string  `json:"nome" validate:"required"`
	Descricao *string `json:"descricao,omitempty"`
}

type addMembroRequest struct {
	UsuarioID     string  `json:"usuarioId" validate:"required"`
	PapelNaEquipe *string `json:"papelNaEquipe,omitempty"`
}

// CreateEquipe registers a new team.
func CreateEquipe(svc equipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createEquipeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), actorID, equipesvc.CreateEquipeInput{
			Nome:      payload.Nome,
			Descricao: payload.Descricao,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ListEquipes returns all teams.
func ListEquipes(svc equipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipes, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, equipes)
	}
}

// GetEquipe loads one team by id.
func GetEquipe(svc equipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		equipe, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, equipe)
	}
}

// DeleteEquipe removes a team; memberships cascade away.
func DeleteEquipe(svc equipesvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), actorID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AddMembro attaches a user to a team.
func AddMembro(svc equipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		equipeID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addMembroRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		usuarioID, err := uuid.Parse(payload.UsuarioID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid usuarioId"))
			return
		}

		var papelNaEquipe *enums.PapelEquipe
		if payload.PapelNaEquipe != nil {
			parsed, err := enums.ParsePapelEquipe(strings.TrimSpace(*payload.PapelNaEquipe))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid papelNaEquipe"))
				return
			}
			papelNaEquipe = &parsed
		}

		membro, err := svc.AddMembro(r.Context(), actorID, equipeID, equipesvc.AddMembroInput{
			UsuarioID:     usuarioID,
			PapelNaEquipe: papelNaEquipe,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, membro)
	}
}

// RemoveMembro detaches a user from a team.
func RemoveMembro(svc equipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		equipeID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		usuarioID, err := uuidParam(r, "usuarioId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveMembro(r.Context(), actorID, equipeID, usuarioID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// ListMembros returns the members of a team.
func ListMembros(svc equipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		equipeID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		membros, err := svc.ListMembros(r.Context(), equipeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, membros)
	}
}

// ListMinhasEquipes returns the teams of the authenticated user.
func ListMinhasEquipes(svc equipesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		equipes, err := svc.ListForUsuario(r.Context(), actorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, equipes)
	}
}
