package usuarios

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/internal/auditoria"
	"github.com/estoquelab/embalagens-backend/pkg/db"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
)

const tableName = "users"

// Service exposes user management operations.
type Service interface {
	Upsert(ctx context.Context, actorID uuid.UUID, input UpsertUsuarioInput) (*UsuarioDTO, error)
	List(ctx context.Context) ([]UsuarioDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UsuarioDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input UpdateUsuarioInput) (*UsuarioDTO, error)
	Deactivate(ctx context.Context, actorID, id uuid.UUID) error
}

type service struct {
	repo  *Repository
	audit auditoria.Recorder
	logg  *logger.Logger
}

// NewService constructs a usuarios service instance.
func NewService(repo *Repository, audit auditoria.Recorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("usuarios repository required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, audit: audit, logg: logg}, nil
}

// Upsert creates or syncs a user keyed by open_id.
func (s *service) Upsert(ctx context.Context, actorID uuid.UUID, input UpsertUsuarioInput) (*UsuarioDTO, error) {
	input.OpenID = strings.TrimSpace(input.OpenID)
	if input.OpenID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "openId is required")
	}
	if input.Papel != nil && !input.Papel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "papel is invalid")
	}

	before, _ := s.repo.FindByOpenID(ctx, input.OpenID)

	user, created, err := s.repo.UpsertByOpenID(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: upsert user")
	}

	operacao := enums.OperacaoUpdate
	var antes any
	if created {
		operacao = enums.OperacaoCreate
	} else if before != nil {
		antes = FromModel(before)
	}
	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     tableName,
		Operacao:   operacao,
		RegistroID: user.ID,
		Antes:      antes,
		Depois:     FromModel(user),
	})

	return FromModel(user), nil
}

// List returns all active users.
func (s *service) List(ctx context.Context) ([]UsuarioDTO, error) {
	users, err := s.repo.ListAtivos(ctx)
	if err != nil {
		if db.IsUnavailable(err) {
			s.logg.Warn(ctx, "usuarios: storage unavailable, returning empty list")
			return []UsuarioDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list users")
	}
	return FromModels(users), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*UsuarioDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "usuario not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}
	return FromModel(user), nil
}

// Update applies a partial mutation to a user.
func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, input UpdateUsuarioInput) (*UsuarioDTO, error) {
	if input.Papel != nil && !input.Papel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "papel is invalid")
	}

	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "usuario not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	fields := map[string]any{}
	if input.Nome != nil {
		fields["nome"] = strings.TrimSpace(*input.Nome)
	}
	if input.Email != nil {
		fields["email"] = strings.TrimSpace(*input.Email)
	}
	if input.Papel != nil {
		fields["papel"] = *input.Papel
	}
	if input.Ativo != nil {
		fields["ativo"] = *input.Ativo
	}
	if len(fields) == 0 {
		return FromModel(before), nil
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update user")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload user")
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     tableName,
		Operacao:   enums.OperacaoUpdate,
		RegistroID: id,
		Antes:      FromModel(before),
		Depois:     FromModel(updated),
	})

	return FromModel(updated), nil
}

// Deactivate flips ativo to false. The row is kept so audit references
// stay resolvable.
func (s *service) Deactivate(ctx context.Context, actorID, id uuid.UUID) error {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "usuario not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user")
	}

	if err := s.repo.UpdateFields(ctx, id, map[string]any{"ativo": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deactivate user")
	}

	after, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload user")
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     tableName,
		Operacao:   enums.OperacaoDelete,
		RegistroID: id,
		Antes:      FromModel(before),
		Depois:     FromModel(after),
	})

	return nil
}
