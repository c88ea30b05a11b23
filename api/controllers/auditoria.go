package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/estoquelab/embalagens-backend/api/responses"
	"github.com/estoquelab/embalagens-backend/api/validators"
	auditoriasvc "github.com/estoquelab/embalagens-backend/internal/auditoria"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
	"github.com/estoquelab/embalagens-backend/pkg/pagination"
)

// ListAuditoria returns the audit trail of one table, newest first.
func ListAuditoria(svc auditoriasvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tabela := strings.TrimSpace(chi.URLParam(r, "tabela"))
		if tabela == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "tabela is required"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultAuditLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.ListByTable(r.Context(), tabela, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}
