package controllers

import (
	"net/http"

	"github.com/estoquelab/embalagens-backend/api/responses"
	"github.com/estoquelab/embalagens-backend/api/validators"
	embalagemsvc "github.com/estoquelab/embalagens-backend/internal/embalagens"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
	"github.com/estoquelab/embalagens-backend/pkg/pagination"
)

type createEmbalagemRequest struct {
	Material        string  `json:"material" validate:"required"`
	Produto         string  `json:"produto" validate:"required"`
	Marca           string  `json:"marca" validate:"required"`
	Pais            string  `json:"pais" validate:"required"`
	CodigoBarras    *string `json:"codigoBarras,omitempty"`
	TipoEmbalagem   *string `json:"tipoEmbalagem,omitempty"`
	SeraUtilizadoEm *string `json:"seraUtilizadoEm,omitempty"`
	Observacoes     *string `json:"observacoes,omitempty"`
}

type updateEmbalagemRequest struct {
	Material        *string `json:"material,omitempty"`
	Produto         *string `json:"produto,omitempty"`
	Marca           *string `json:"marca,omitempty"`
	Pais            *string `json:"pais,omitempty"`
	CodigoBarras    *string `json:"codigoBarras,omitempty"`
	TipoEmbalagem   *string `json:"tipoEmbalagem,omitempty"`
	SeraUtilizadoEm *string `json:"seraUtilizadoEm,omitempty"`
	Observacoes     *string `json:"observacoes,omitempty"`
}

type deleteEmbalagemRequest struct {
	Motivo *string `json:"motivo,omitempty"`
}

// CreateEmbalagem registers a new catalog item.
func CreateEmbalagem(svc embalagemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createEmbalagemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), actorID, embalagemsvc.CreateEmbalagemInput{
			Material:        payload.Material,
			Produto:         payload.Produto,
			Marca:           payload.Marca,
			Pais:            payload.Pais,
			CodigoBarras:    payload.CodigoBarras,
			TipoEmbalagem:   payload.TipoEmbalagem,
			SeraUtilizadoEm: payload.SeraUtilizadoEm,
			Observacoes:     payload.Observacoes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UpdateEmbalagem applies a partial mutation to a catalog item.
func UpdateEmbalagem(svc embalagemsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload updateEmbalagemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), actorID, id, embalagemsvc.UpdateEmbalagemInput{
			Material:        payload.Material,
			Produto:         payload.Produto,
			Marca:           payload.Marca,
			Pais:            payload.Pais,
			CodigoBarras:    payload.CodigoBarras,
			TipoEmbalagem:   payload.TipoEmbalagem,
			SeraUtilizadoEm: payload.SeraUtilizadoEm,
			Observacoes:     payload.Observacoes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// DeleteEmbalagem soft-deletes a catalog item, optionally recording why.
func DeleteEmbalagem(svc embalagemsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload deleteEmbalagemRequest
		if r.ContentLength > 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		if err := svc.SoftDelete(r.Context(), actorID, id, payload.Motivo); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// RestoreEmbalagem brings a soft-deleted item back into the catalog.
func RestoreEmbalagem(svc embalagemsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		restored, err := svc.Restore(r.Context(), actorID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, restored)
	}
}

// HardDeleteEmbalagem removes an item permanently.
func HardDeleteEmbalagem(svc embalagemsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.HardDelete(r.Context(), actorID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ListEmbalagens returns the filtered catalog listing.
func ListEmbalagens(svc embalagemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		deletado, err := validators.QueryBool(r, "deletado")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itens, err := svc.List(r.Context(), embalagemsvc.ListFilter{
			Material:        validators.QueryString(r, "material"),
			Pais:            validators.QueryString(r, "pais"),
			TipoEmbalagem:   validators.QueryString(r, "tipoEmbalagem"),
			Marca:           validators.QueryString(r, "marca"),
			SeraUtilizadoEm: validators.QueryString(r, "seraUtilizadoEm"),
			Busca:           validators.QueryString(r, "busca"),
			Deletado:        deletado,
			Limit:           limit,
			Offset:          offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, itens)
	}
}

// GetEmbalagem loads an item with its photos and storage links.
func GetEmbalagem(svc embalagemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}
