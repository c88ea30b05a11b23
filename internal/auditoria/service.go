package auditoria

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/estoquelab/embalagens-backend/pkg/db"
	"github.com/estoquelab/embalagens-backend/pkg/db/models"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
	"github.com/estoquelab/embalagens-backend/pkg/pagination"
)

// Entry describes a single mutation to be recorded in the trail.
type Entry struct {
	ActorID    uuid.UUID
	Tabela     string
	Operacao   enums.Operacao
	RegistroID uuid.UUID
	Antes      any
	Depois     any
}

// Recorder is the narrow interface mutation services depend on. Record
// is best effort: failures are logged, never surfaced to the caller.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// Service exposes the audit trail.
type Service interface {
	Recorder
	ListByTable(ctx context.Context, tabela string, limit int) ([]models.Auditoria, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// NewService constructs the audit service.
func NewService(repo *Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("auditoria repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Record persists one append-only entry for a committed mutation.
func (s *service) Record(ctx context.Context, entry Entry) {
	row := &models.Auditoria{
		UsuarioID:  entry.ActorID,
		Tabela:     entry.Tabela,
		Operacao:   entry.Operacao,
		RegistroID: entry.RegistroID,
	}

	if snapshot, err := marshalSnapshot(entry.Antes); err != nil {
		s.logg.Error(ctx, "auditoria: marshal dados_antes", err)
	} else {
		row.DadosAntes = snapshot
	}
	if snapshot, err := marshalSnapshot(entry.Depois); err != nil {
		s.logg.Error(ctx, "auditoria: marshal dados_depois", err)
	} else {
		row.DadosDepois = snapshot
	}

	meta := RequestMetaFromContext(ctx)
	if meta.IPAddress != "" {
		row.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		row.UserAgent = &meta.UserAgent
	}

	if err := s.repo.Create(ctx, row); err != nil {
		entryCtx := s.logg.WithFields(ctx, map[string]any{
			"tabela":      entry.Tabela,
			"operacao":    entry.Operacao,
			"registro_id": entry.RegistroID.String(),
		})
		s.logg.Error(entryCtx, "auditoria: persist entry", err)
	}
}

func (s *service) ListByTable(ctx context.Context, tabela string, limit int) ([]models.Auditoria, error) {
	if tabela == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tabela is required")
	}
	limit = pagination.NormalizeAuditLimit(limit)

	entries, err := s.repo.ListByTable(ctx, tabela, limit)
	if err != nil {
		if db.IsUnavailable(err) {
			s.logg.Warn(ctx, "auditoria: storage unavailable, returning empty list")
			return []models.Auditoria{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list auditoria")
	}
	if entries == nil {
		entries = []models.Auditoria{}
	}
	return entries, nil
}

func marshalSnapshot(value any) (datatypes.JSON, error) {
	if value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
