package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/estoquelab/embalagens-backend/api/responses"
	"github.com/estoquelab/embalagens-backend/api/validators"
	localizacaosvc "github.com/estoquelab/embalagens-backend/internal/localizacoes"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
)

type createLocalizacaoRequest struct {
	Galpao     string  `json:"galpao" validate:"required"`
	Andar      string  `json:"andar" validate:"required"`
	Prateleira string  `json:"prateleira" validate:"required"`
	CaixaSigla string  `json:"caixaSigla" validate:"required"`
	QRCodeData *string `json:"qrCodeData,omitempty"`
}

type updateLocalizacaoRequest struct {
	Galpao     *string `json:"galpao,omitempty"`
	Andar      *string `json:"andar,omitempty"`
	Prateleira *string `json:"prateleira,omitempty"`
	CaixaSigla *string `json:"caixaSigla,omitempty"`
	QRCodeData *string `json:"qrCodeData,omitempty"`
}

type linkEmbalagemRequest struct {
	Quantidade int `json:"quantidade" validate:"required,gt=0"`
}

// CreateLocalizacao registers a new storage slot.
func CreateLocalizacao(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createLocalizacaoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), actorID, localizacaosvc.CreateLocalizacaoInput{
			Galpao:     payload.Galpao,
			Andar:      payload.Andar,
			Prateleira: payload.Prateleira,
			CaixaSigla: payload.CaixaSigla,
			QRCodeData: payload.QRCodeData,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// UpdateLocalizacao applies a partial mutation to a storage slot.
func UpdateLocalizacao(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		var payload updateLocalizacaoRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), actorID, id, localizacaosvc.UpdateLocalizacaoInput{
			Galpao:     payload.Galpao,
			Andar:      payload.Andar,
			Prateleira: payload.Prateleira,
			CaixaSigla: payload.CaixaSigla,
			QRCodeData: payload.QRCodeData,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, updated)
	}
}

// DeleteLocalizacao removes a storage slot and its links.
func DeleteLocalizacao(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
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

// ListLocalizacoes returns every storage slot.
func ListLocalizacoes(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slots, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, slots)
	}
}

// GetLocalizacao loads a storage slot by id.
func GetLocalizacao(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		slot, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, slot)
	}
}

// GetLocalizacaoBySigla resolves a scanned box code.
func GetLocalizacaoBySigla(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sigla := strings.TrimSpace(chi.URLParam(r, "sigla"))
		if sigla == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sigla is required"))
			return
		}

		slot, err := svc.GetBySigla(r.Context(), sigla)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, slot)
	}
}

// LinkEmbalagem stores units of an item in a slot (upsert per pair).
func LinkEmbalagem(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		localizacaoID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		embalagemID, err := uuidParam(r, "embalagemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload linkEmbalagemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vinculo, err := svc.Link(r.Context(), actorID, embalagemID, localizacaoID, payload.Quantidade)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vinculo)
	}
}

// SetVinculoQuantidade adjusts the quantity of an existing link.
func SetVinculoQuantidade(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		localizacaoID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		embalagemID, err := uuidParam(r, "embalagemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload linkEmbalagemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vinculo, err := svc.SetQuantidade(r.Context(), actorID, embalagemID, localizacaoID, payload.Quantidade)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vinculo)
	}
}

// UnlinkEmbalagem removes an item from a slot.
func UnlinkEmbalagem(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		localizacaoID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		embalagemID, err := uuidParam(r, "embalagemId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Unlink(r.Context(), actorID, embalagemID, localizacaoID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "unlinked"})
	}
}

// ListEmbalagensNaLocalizacao returns the items stored in a slot.
func ListEmbalagensNaLocalizacao(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		localizacaoID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itens, err := svc.ListEmbalagens(r.Context(), localizacaoID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, itens)
	}
}

// ListLocalizacoesDaEmbalagem returns the slots holding an item.
func ListLocalizacoesDaEmbalagem(svc localizacaosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		embalagemID, err := uuidParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		slots, err := svc.ListForEmbalagem(r.Context(), embalagemID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, slots)
	}
}
