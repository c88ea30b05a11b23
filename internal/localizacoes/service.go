package localizacoes

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

const (
	tableName    = "localizacoes"
	vinculoTable = "embalagem_localizacao"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type embalagemLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Embalagem, error)
}

// Service exposes storage-slot and inventory-link operations.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input CreateLocalizacaoInput) (*LocalizacaoDTO, error)
	Update(ctx context.Context, actorID, id uuid.UUID, input UpdateLocalizacaoInput) (*LocalizacaoDTO, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	List(ctx context.Context) ([]LocalizacaoDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*LocalizacaoDTO, error)
	GetBySigla(ctx context.Context, caixaSigla string) (*LocalizacaoDTO, error)

	Link(ctx context.Context, actorID, embalagemID, localizacaoID uuid.UUID, quantidade int) (*VinculoDTO, error)
	SetQuantidade(ctx context.Context, actorID, embalagemID, localizacaoID uuid.UUID, quantidade int) (*VinculoDTO, error)
	Unlink(ctx context.Context, actorID, embalagemID, localizacaoID uuid.UUID) error
	ListEmbalagens(ctx context.Context, localizacaoID uuid.UUID) ([]EmbalagemNaCaixaDTO, error)
	ListForEmbalagem(ctx context.Context, embalagemID uuid.UUID) ([]LocalizacaoDaEmbalagemDTO, error)
}

type service struct {
	repo       *Repository
	tx         txRunner
	embalagens embalagemLoader
	audit      auditoria.Recorder
	logg       *logger.Logger
}

// NewService constructs a localizacoes service instance.
func NewService(repo *Repository, tx txRunner, embalagens embalagemLoader, audit auditoria.Recorder, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("localizacoes repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if embalagens == nil {
		return nil, fmt.Errorf("embalagem loader required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, embalagens: embalagens, audit: audit, logg: logg}, nil
}

// Create inserts a storage slot. CaixaSigla is globally unique.
func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateLocalizacaoInput) (*LocalizacaoDTO, error) {
	input.Galpao = strings.TrimSpace(input.Galpao)
	input.Andar = strings.TrimSpace(input.Andar)
	input.Prateleira = strings.TrimSpace(input.Prateleira)
	input.CaixaSigla = strings.TrimSpace(input.CaixaSigla)
	for field, value := range map[string]string{
		"galpao":     input.Galpao,
		"andar":      input.Andar,
		"prateleira": input.Prateleira,
		"caixaSigla": input.CaixaSigla,
	} {
		if value == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, field+" is required")
		}
	}

	localizacao := &models.Localizacao{
		Galpao:     input.Galpao,
		Andar:      input.Andar,
		Prateleira: input.Prateleira,
		CaixaSigla: input.CaixaSigla,
		QRCodeData: input.QRCodeData,
	}
	created, err := s.repo.Create(ctx, localizacao)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "caixaSigla already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert localizacao")
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

// Update applies a partial mutation to a slot.
func (s *service) Update(ctx context.Context, actorID, id uuid.UUID, input UpdateLocalizacaoInput) (*LocalizacaoDTO, error) {
	before, err := s.loadLocalizacao(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if input.Galpao != nil {
		if strings.TrimSpace(*input.Galpao) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "galpao cannot be empty")
		}
		fields["galpao"] = strings.TrimSpace(*input.Galpao)
	}
	if input.Andar != nil {
		if strings.TrimSpace(*input.Andar) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "andar cannot be empty")
		}
		fields["andar"] = strings.TrimSpace(*input.Andar)
	}
	if input.Prateleira != nil {
		if strings.TrimSpace(*input.Prateleira) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "prateleira cannot be empty")
		}
		fields["prateleira"] = strings.TrimSpace(*input.Prateleira)
	}
	if input.CaixaSigla != nil {
		if strings.TrimSpace(*input.CaixaSigla) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "caixaSigla cannot be empty")
		}
		fields["caixa_sigla"] = strings.TrimSpace(*input.CaixaSigla)
	}
	if input.QRCodeData != nil {
		fields["qr_code_data"] = *input.QRCodeData
	}
	if len(fields) == 0 {
		return FromModel(before), nil
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "caixaSigla already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update localizacao")
	}

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reload localizacao")
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

// Delete removes a slot permanently. Its links cascade away, so stored
// items lose this box from their placements.
func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	before, err := s.loadLocalizacao(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete localizacao")
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

func (s *service) List(ctx context.Context) ([]LocalizacaoDTO, error) {
	localizacoes, err := s.repo.List(ctx)
	if err != nil {
		if db.IsUnavailable(err) {
			s.logg.Warn(ctx, "localizacoes: storage unavailable, returning empty list")
			return []LocalizacaoDTO{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list localizacoes")
	}
	return FromModels(localizacoes), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*LocalizacaoDTO, error) {
	localizacao, err := s.loadLocalizacao(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(localizacao), nil
}

// GetBySigla resolves a scanned box code to its slot.
func (s *service) GetBySigla(ctx context.Context, caixaSigla string) (*LocalizacaoDTO, error) {
	caixaSigla = strings.TrimSpace(caixaSigla)
	if caixaSigla == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "caixaSigla is required")
	}
	localizacao, err := s.repo.FindBySigla(ctx, caixaSigla)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "localizacao not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load localizacao by sigla")
	}
	return FromModel(localizacao), nil
}

// Link stores quantidade units of an item in a slot. At most one link
// exists per pair, so a second call replaces the quantity. The slot's
// cached total is refreshed in the same transaction.
func (s *service) Link(ctx context.Context, actorID, embalagemID, localizacaoID uuid.UUID, quantidade int) (*VinculoDTO, error) {
	if quantidade <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantidade must be positive")
	}
	if err := s.ensureEmbalagem(ctx, embalagemID); err != nil {
		return nil, err
	}
	if _, err := s.loadLocalizacao(ctx, localizacaoID); err != nil {
		return nil, err
	}

	var (
		vinculo  *models.EmbalagemLocalizacao
		operacao = enums.OperacaoCreate
		antes    *VinculoDTO
	)
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		existing, err := txRepo.FindVinculo(ctx, embalagemID, localizacaoID)
		switch {
		case err == nil:
			operacao = enums.OperacaoUpdate
			antes = vinculoFromModel(existing)
			if err := txRepo.UpdateVinculoQuantidade(ctx, existing.ID, quantidade); err != nil {
				return err
			}
			existing.Quantidade = quantidade
			vinculo = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			created, err := txRepo.CreateVinculo(ctx, &models.EmbalagemLocalizacao{
				EmbalagemID:   embalagemID,
				LocalizacaoID: localizacaoID,
				Quantidade:    quantidade,
			})
			if err != nil {
				return err
			}
			vinculo = created
		default:
			return err
		}

		return txRepo.RecomputeQuantidade(ctx, localizacaoID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: link embalagem")
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     vinculoTable,
		Operacao:   operacao,
		RegistroID: vinculo.ID,
		Antes:      antes,
		Depois:     vinculoFromModel(vinculo),
	})

	return vinculoFromModel(vinculo), nil
}

// SetQuantidade adjusts an existing link; the link must already exist.
func (s *service) SetQuantidade(ctx context.Context, actorID, embalagemID, localizacaoID uuid.UUID, quantidade int) (*VinculoDTO, error) {
	if quantidade <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantidade must be positive")
	}

	existing, err := s.repo.FindVinculo(ctx, embalagemID, localizacaoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vinculo not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load vinculo")
	}
	antes := vinculoFromModel(existing)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := txRepo.UpdateVinculoQuantidade(ctx, existing.ID, quantidade); err != nil {
			return err
		}
		return txRepo.RecomputeQuantidade(ctx, localizacaoID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update vinculo")
	}
	existing.Quantidade = quantidade

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     vinculoTable,
		Operacao:   enums.OperacaoUpdate,
		RegistroID: existing.ID,
		Antes:      antes,
		Depois:     vinculoFromModel(existing),
	})

	return vinculoFromModel(existing), nil
}

// Unlink removes an item from a slot entirely.
func (s *service) Unlink(ctx context.Context, actorID, embalagemID, localizacaoID uuid.UUID) error {
	existing, err := s.repo.FindVinculo(ctx, embalagemID, localizacaoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vinculo not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load vinculo")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		affected, err := txRepo.DeleteVinculo(ctx, existing.ID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return gorm.ErrRecordNotFound
		}
		return txRepo.RecomputeQuantidade(ctx, localizacaoID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vinculo not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: unlink embalagem")
	}

	s.audit.Record(ctx, auditoria.Entry{
		ActorID:    actorID,
		Tabela:     vinculoTable,
		Operacao:   enums.OperacaoDelete,
		RegistroID: existing.ID,
		Antes:      vinculoFromModel(existing),
	})

	return nil
}

func (s *service) ListEmbalagens(ctx context.Context, localizacaoID uuid.UUID) ([]EmbalagemNaCaixaDTO, error) {
	if _, err := s.loadLocalizacao(ctx, localizacaoID); err != nil {
		return nil, err
	}
	itens, err := s.repo.ListEmbalagens(ctx, localizacaoID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list embalagens in localizacao")
	}
	if itens == nil {
		itens = []EmbalagemNaCaixaDTO{}
	}
	return itens, nil
}

func (s *service) ListForEmbalagem(ctx context.Context, embalagemID uuid.UUID) ([]LocalizacaoDaEmbalagemDTO, error) {
	if err := s.ensureEmbalagem(ctx, embalagemID); err != nil {
		return nil, err
	}
	slots, err := s.repo.ListForEmbalagem(ctx, embalagemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list localizacoes of embalagem")
	}
	if slots == nil {
		slots = []LocalizacaoDaEmbalagemDTO{}
	}
	return slots, nil
}

func (s *service) loadLocalizacao(ctx context.Context, id uuid.UUID) (*models.Localizacao, error) {
	localizacao, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "localizacao not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load localizacao")
	}
	return localizacao, nil
}

func (s *service) ensureEmbalagem(ctx context.Context, id uuid.UUID) error {
	if _, err := s.embalagens.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "embalagem not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load embalagem")
	}
	return nil
}
