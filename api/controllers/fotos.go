package controllers

import (
	"net/http"

	"github.com/estoquelab/embalagens-backend/api/responses"
	"github.com/estoquelab/embalagens-backend/api/validators"
	embalagemsvc "github.com/estoquelab/embalagens-backend/internal/embalagens"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
)

type addFotoRequest struct {
	LinkDrive string  `json:"linkDrive" validate:"required"`
	Descricao *string `json:"descricao,omitempty"`
	Ordem     *int    `json:"ordem,omitempty" validate:"omitempty,min=1"`
}

// AddFoto attaches a drive-hosted photo to a catalog item.
func AddFoto(svc embalagemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		embalagemID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addFotoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		foto, err := svc.AddFoto(r.Context(), actorID, embalagemID, embalagemsvc.AddFotoInput{
			LinkDrive: payload.LinkDrive,
			Descricao: payload.Descricao,
			Ordem:     payload.Ordem,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, foto)
	}
}

// RemoveFoto detaches a photo from its catalog item.
func RemoveFoto(svc embalagemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		fotoID, err := uuidParam(r, "fotoId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.RemoveFoto(r.Context(), actorID, fotoID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ListFotos returns the photos of a catalog item in display order.
func ListFotos(svc embalagemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		embalagemID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fotos, err := svc.ListFotos(r.Context(), embalagemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, fotos)
	}
}
