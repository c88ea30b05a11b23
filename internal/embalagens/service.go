package embalagens

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/internal/auditoria"
	"github.com/estoquelab/embalagens-backend/pkg/db"
	"github.com/estoquelab/embalagens-backend/pkg/db/models"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
	"github.com/estoquelab/embalagens-backend/pkg/pagination"
)

const (
	tableName      = "embalagens"
	fotosTableName = "fotos_embalagem"
)

// Service exposes catalog management operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input CreateEmbalagemInput) (*EmbalagemDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input UpdateEmbalagemInput) (*EmbalagemDTO, error)
	SoftDelete(ctx context.Context, actorID, id uuid.UUID, motivo *string) error
	Restore(ctx context.Context, actorID, id uuid.UUID) (*EmbalagemDTO, error)
	HardDelete(ctx context.Context, actorID, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]EmbalagemDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*EmbalagemDetailDTO, error)
	AddFoto(ctx context.Context, actorID, embalagemID uuid.UUID, input AddFotoInput) (*FotoDTO, error)
	RemoveFoto(ctx context.Context, actorID, fotoID uuid.UUID) error
	ListFotos(ctx context.Context, embalagemID uuid.UUID) ([]FotoDTO, error)
}

type service struct {
	repo  *Repository
	audit auditoria.Recorder
	logg  *logger.Logger
}

// NewService constructs an embalagens service instance.
func NewService(repo *Repository, audit auditoria.Recorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("embalagens repository required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, audit: audit, logg: logg}, nil
}

// Create inserts a new catalog item owned by the acting user.
func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateEmbalagemInput) (*EmbalagemDTO, error) {
	input.Material = strings.TrimSpace(input.Material)
	input.Produto = strings.TrimSpace(input.Produto)
	input.Marca = strings.TrimSpace(input.Marca)
	input.Pais = strings.TrimSpace(input.Pais)
	for field, value := range map[string]string{
		"material": input.Material,
		"produto":  input.Produto,
		"marca":    input.Marca,
		"pais":     input.Pais,
	} {
		if value == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, field+" is required")
		}
	}

	embalagem := &models.Embalagem{
		Material:         input.Material,
		Produto:          input.Produto,
		Marca:            input.Marca,
		Pais:             input.Pais,
		CodigoBarras:     input.CodigoBarras,
		TipoEmbalagem:    input.TipoEmbalagem,
		SeraUtilizadoEm:  input.SeraUtilizadoEm,
		Observacoes:      input.Observacoes,
		Deletado:         false,
		UsuarioCriadorID: actorID,
	}
	created, err := s.repo.Create(ctx, embalagem)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert embalagem")
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

// Update applies a partial mutation and stamps the acting user.
func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, input UpdateEmbalagemInput) (*EmbalagemDTO, error) {
	before, err := s.loadEmbalagem(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Material != nil {
		if strings.TrimSpace(*input.Material) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "material cannot be empty")
		}
		fields["material"] = strings.TrimSpace(*input.Material)
	}
	if input.Produto != nil {
		if strings.TrimSpace(*input.Produto) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "produto cannot be empty")
		}
		fields["produto"] = strings.TrimSpace(*input.Produto)
	}
	if input.Marca != nil {
		if strings.TrimSpace(*input.Marca) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "marca cannot be empty")
		}
		fields["marca"] = strings.TrimSpace(*input.Marca)
	}
	if input.Pais != nil {
		if strings.TrimSpace(*input.Pais) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pais cannot be empty")
		}
		fields["pais"] = strings.TrimSpace(*input.Pais)
	}
	if input.CodigoBarras != nil {
		fields["codigo_barras"] = *input.CodigoBarras
	}
	if input.TipoEmbalagem != nil {
		fields["tipo_embalagem"] = *input.TipoEmbalagem
	}
	if input.SeraUtilizadoEm != nil {
		fields["sera_utilizado_em"] = *input.SeraUtilizadoEm
	}
	if input.Observacoes != nil {
		fields["observacoes"] = *input.Observacoes
	}
	if len(fields) == 0 {
		return FromModel(before), nil
	}
	fields["usuario_atualizador_id"] = actorID

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update embalagem")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload embalagem")
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

// SoftDelete stamps the deletion fields; all other columns survive.
func (s *service) SoftDelete(ctx context.Context, actorID, id uuid.UUID, motivo *string) error {
	before, err := s.loadEmbalagem(ctx, id)
	if err != nil {
		return err
	}
	if before.Deletado {
		return pkgerrors.New(pkgerrors.CodeConflict, "embalagem already deleted")
	}

	if err := s.repo.SoftDelete(ctx, id, actorID, motivo, time.Now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: soft delete embalagem")
	}

	after, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload embalagem")
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

// Restore clears the deletion fields of a soft-deleted item.
func (s *service) Restore(ctx context.Context, actorID, id uuid.UUID) (*EmbalagemDTO, error) {
	before, err := s.loadEmbalagem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !before.Deletado {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "embalagem is not deleted")
	}

	if err := s.repo.Restore(ctx, id); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: restore embalagem")
	}

	restored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload embalagem")
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     tableName,
		Operacao:   enums.OperacaoUpdate,
		RegistroID: id,
		Antes:      FromModel(before),
		Depois:     FromModel(restored),
	})

	return FromModel(restored), nil
}

// HardDelete removes the item permanently. Photos and storage links go
// with it through the FK cascades.
func (s *service) HardDelete(ctx context.Context, actorID, id uuid.UUID) error {
	before, err := s.loadEmbalagem(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.HardDelete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: hard delete embalagem")
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

// List returns catalog items matching the filter, newest first. When
// storage is unreachable the listing degrades to empty instead of
// failing the read.
func (s *service) List(ctx context.Context, filter ListFilter) ([]EmbalagemDTO, error) {
	filter.Limit = pagination.NormalizeLimit(filter.Limit)
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	embalagens, err := s.repo.List(ctx, filter)
	if err != nil {
		if db.IsUnavailable(err) {
			s.logg.Warn(ctx, "embalagens: storage unavailable, returning empty list")
			return []EmbalagemDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list embalagens")
	}
	return FromModels(embalagens), nil
}

// GetByID loads the item with its photos and storage links. Deleted
// items are still returned so their detail view keeps working.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*EmbalagemDetailDTO, error) {
	embalagem, err := s.loadEmbalagem(ctx, id)
	if err != nil {
		return nil, err
	}

	fotos, err := s.repo.ListFotos(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list fotos")
	}
	vinculos, err := s.repo.ListVinculos(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list vinculos")
	}
	if vinculos == nil {
		vinculos = []VinculoLocalizacaoDTO{}
	}

	return &EmbalagemDetailDTO{
		EmbalagemDTO: *FromModel(embalagem),
		Fotos:        fotosFromModels(fotos),
		Localizacoes: vinculos,
	}, nil
}

// AddFoto attaches an externally hosted photo to an item.
func (s *service) AddFoto(ctx context.Context, actorID, embalagemID uuid.UUID, input AddFotoInput) (*FotoDTO, error) {
	input.LinkDrive = strings.TrimSpace(input.LinkDrive)
	if input.LinkDrive == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "linkDrive is required")
	}
	ordem := 1
	if input.Ordem != nil {
		if *input.Ordem < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "ordem must be positive")
		}
		ordem = *input.Ordem
	}

	if _, err := s.loadEmbalagem(ctx, embalagemID); err != nil {
		return nil, err
	}

	foto := &models.FotoEmbalagem{
		EmbalagemID:     embalagemID,
		LinkDrive:       input.LinkDrive,
		Descricao:       input.Descricao,
		Ordem:           ordem,
		UsuarioUploadID: actorID,
	}
	created, err := s.repo.CreateFoto(ctx, foto)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert foto")
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     fotosTableName,
		Operacao:   enums.OperacaoCreate,
		RegistroID: created.ID,
		Depois:     fotoFromModel(created),
	})

	return fotoFromModel(created), nil
}

func (s *service) RemoveFoto(ctx context.Context, actorID, fotoID uuid.UUID) error {
	foto, err := s.repo.FindFotoByID(ctx, fotoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "foto not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load foto")
	}

	if err := s.repo.DeleteFoto(ctx, fotoID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete foto")
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     fotosTableName,
		Operacao:   enums.OperacaoDelete,
		RegistroID: fotoID,
		Antes:      fotoFromModel(foto),
	})

	return nil
}

func (s *service) ListFotos(ctx context.Context, embalagemID uuid.UUID) ([]FotoDTO, error) {
	if _, err := s.loadEmbalagem(ctx, embalagemID); err != nil {
		return nil, err
	}
	fotos, err := s.repo.ListFotos(ctx, embalagemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list fotos")
	}
	return fotosFromModels(fotos), nil
}

func (s *service) loadEmbalagem(ctx context.Context, id uuid.UUID) (*models.Embalagem, error) {
	embalagem, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "embalagem not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load embalagem")
	}
	return embalagem, nil
}
