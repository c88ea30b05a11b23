package equipes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/internal/auditoria"
	"github.com/estoquelab/embalagens-backend/pkg/db"
	"github.com/estoquelab/embalagens-backend/pkg/db/models"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
)

const tableName = "equipes"

type usuarioLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Service exposes team management operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input CreateEquipeInput) (*EquipeDTO, error)
	List(ctx context.Context) ([]EquipeDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*EquipeDTO, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	AddMembro(ctx context.Context, actorID, equipeID uuid.UUID, input AddMembroInput) (*MembroDTO, error)
	RemoveMembro(ctx context.Context, actorID, equipeID, usuarioID uuid.UUID) error
	ListMembros(ctx context.Context, equipeID uuid.UUID) ([]MembroDTO, error)
	ListForUsuario(ctx context.Context, usuarioID uuid.UUID) ([]EquipeDTO, error)
}

type service struct {
	repo     *Repository
	usuarios usuarioLoader
	audit    auditoria.Recorder
	logg     *logger.Logger
}

// NewService constructs an equipes service instance.
func NewService(repo *Repository, usuarios usuarioLoader, audit auditoria.Recorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("equipes repository required")
	}
	if usuarios == nil {
		return nil, fmt.Errorf("usuario loader required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, usuarios: usuarios, audit: audit, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateEquipeInput) (*EquipeDTO, error) {
	input.Nome = strings.TrimSpace(input.Nome)
	if input.Nome == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nome is required")
	}

	equipe := &models.Equipe{
		Nome:      input.Nome,
		Descricao: input.Descricao,
	}
	created, err := s.repo.Create(ctx, equipe)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "equipe nome already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert equipe")
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     tableName,
		Operacao:   enums.OperacaoCreate,
		RegistroID: created.ID,
		Depois:     FromModel(created),
	})

	return FromModel(created), nil
}

func (s *service) List(ctx context.Context) ([]EquipeDTO, error) {
	equipes, err := s.repo.List(ctx)
	if err != nil {
		if db.IsUnavailable(err) {
			s.logg.Warn(ctx, "equipes: storage unavailable, returning empty list")
			return []EquipeDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list equipes")
	}
	return FromModels(equipes), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*EquipeDTO, error) {
	equipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "equipe not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load equipe")
	}
	return FromModel(equipe), nil
}

func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "equipe not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load equipe")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete equipe")
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     tableName,
		Operacao:   enums.OperacaoDelete,
		RegistroID: id,
		Antes:      FromModel(before),
	})

	return nil
}

func (s *service) AddMembro(ctx context.Context, actorID, equipeID uuid.UUID, input AddMembroInput) (*MembroDTO, error) {
	if input.PapelNaEquipe != nil && !input.PapelNaEquipe.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "papelNaEquipe is invalid")
	}

	if _, err := s.repo.FindByID(ctx, equipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "equipe not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load equipe")
	}
	usuario, err := s.usuarios.FindByID(ctx, input.UsuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "usuario not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load usuario")
	}

	if existing, err := s.repo.FindMembro(ctx, equipeID, input.UsuarioID); err == nil && existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "usuario already in equipe")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check membership")
	}

	membro := &models.UsuarioEquipe{
		UsuarioID:     input.UsuarioID,
		EquipeID:      equipeID,
		PapelNaEquipe: input.PapelNaEquipe,
	}
	created, err := s.repo.AddMembro(ctx, membro)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert membership")
	}

	dto := &MembroDTO{
		ID:            created.ID,
		UsuarioID:     created.UsuarioID,
		EquipeID:      created.EquipeID,
		PapelNaEquipe: created.PapelNaEquipe,
		DataEntrada:   created.DataEntrada,
		Nome:          usuario.Nome,
		Email:         usuario.Email,
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     "usuario_equipe",
		Operacao:   enums.OperacaoCreate,
		RegistroID: created.ID,
		Depois:     dto,
	})

	return dto, nil
}

func (s *service) RemoveMembro(ctx context.Context, actorID, equipeID, usuarioID uuid.UUID) error {
	membro, err := s.repo.FindMembro(ctx, equipeID, usuarioID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load membership")
	}

	affected, err := s.repo.RemoveMembro(ctx, equipeID, usuarioID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete membership")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "membership not found")
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     "usuario_equipe",
		Operacao:   enums.OperacaoDelete,
		RegistroID: membro.ID,
		Antes:      membro,
	})

	return nil
}

func (s *service) ListMembros(ctx context.Context, equipeID uuid.UUID) ([]MembroDTO, error) {
	if _, err := s.repo.FindByID(ctx, equipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "equipe not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load equipe")
	}

	membros, err := s.repo.ListMembros(ctx, equipeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list membros")
	}
	if membros == nil {
		membros = []MembroDTO{}
	}
	return membros, nil
}

func (s *service) ListForUsuario(ctx context.Context, usuarioID uuid.UUID) ([]EquipeDTO, error) {
	equipes, err := s.repo.ListForUsuario(ctx, usuarioID)
	if err != nil {
		if db.IsUnavailable(err) {
			s.logg.Warn(ctx, "equipes: storage unavailable, returning empty list")
			return []EquipeDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list equipes for usuario")
	}
	return FromModels(equipes), nil
}
