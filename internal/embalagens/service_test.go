package embalagens

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/internal/auditoria"
	"github.com/estoquelab/embalagens-backend/pkg/db/models"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
)

type capturingRecorder struct {
	entries []auditoria.Entry
}

func (c *capturingRecorder) Record(ctx context.Context, entry auditoria.Entry) {
	c.entries = append(c.entries, entry)
}

func buildEmbalagensService(t *testing.T, db *gorm.DB) (Service, *capturingRecorder) {
	t.Helper()

	recorder := &capturingRecorder{}
	svc, err := NewService(NewRepository(db), recorder, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc, recorder
}

func TestServiceCreateValidatesRequiredFields(t *testing.T) {
	db := setupEmbalagensTestDB(t)
	svc, _ := buildEmbalagensService(t, db)

	_, err := svc.Create(context.Background(), uuid.New(), CreateEmbalagemInput{
		Material: "vidro",
		Produto:  "  ",
		Marca:    "Acme",
		Pais:     "Brasil",
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdateStampsActorAndAudits(t *testing.T) {
	db := setupEmbalagensTestDB(t)
	svc, recorder := buildEmbalagensService(t, db)

	embalagem := newEmbalagem(t, db, "vidro", "Pote 500ml", "Acme", "Brasil", time.Now().UTC())
	actor := uuid.New()

	produto := "Pote 750ml"
	updated, err := svc.Update(context.Background(), actor, embalagem.ID, UpdateEmbalagemInput{Produto: &produto})
	require.NoError(t, err)
	assert.Equal(t, "Pote 750ml", updated.Produto)
	require.NotNil(t, updated.UsuarioAtualizadorID)
	assert.Equal(t, actor, *updated.UsuarioAtualizadorID)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, enums.OperacaoUpdate, entry.Operacao)
	assert.Equal(t, "embalagens", entry.Tabela)
	assert.Equal(t, embalagem.ID, entry.RegistroID)
	assert.NotNil(t, entry.Antes)
	assert.NotNil(t, entry.Depois)
}

func TestServiceUpdateWithoutFieldsIsNoop(t *testing.T) {
	db := setupEmbalagensTestDB(t)
	svc, recorder := buildEmbalagensService(t, db)

	embalagem := newEmbalagem(t, db, "vidro", "Pote", "Acme", "Brasil", time.Now().UTC())

	got, err := svc.Update(context.Background(), uuid.New(), embalagem.ID, UpdateEmbalagemInput{})
	require.NoError(t, err)
	assert.Equal(t, embalagem.ID, got.ID)
	assert.Empty(t, recorder.entries)
}

func TestServiceSoftDeleteLifecycle(t *testing.T) {
	db := setupEmbalagensTestDB(t)
	svc, recorder := buildEmbalagensService(t, db)

	embalagem := newEmbalagem(t, db, "vidro", "Pote", "Acme", "Brasil", time.Now().UTC())
	actor := uuid.New()
	motivo := "item duplicado"

	require.NoError(t, svc.SoftDelete(context.Background(), actor, embalagem.ID, &motivo))

	// deleting again conflicts
	err := svc.SoftDelete(context.Background(), actor, embalagem.ID, nil)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	// the detail view still resolves deleted items
	detail, err := svc.GetByID(context.Background(), embalagem.ID)
	require.NoError(t, err)
	assert.True(t, detail.Deletado)
	require.NotNil(t, detail.MotivoDelecao)
	assert.Equal(t, "item duplicado", *detail.MotivoDelecao)

	restored, err := svc.Restore(context.Background(), actor, embalagem.ID)
	require.NoError(t, err)
	assert.False(t, restored.Deletado)
	assert.Nil(t, restored.DataDelecao)

	// restoring a live item conflicts
	_, err = svc.Restore(context.Background(), actor, embalagem.ID)
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	require.Len(t, recorder.entries, 2)
	assert.Equal(t, enums.OperacaoDelete, recorder.entries[0].Operacao)
	assert.Equal(t, enums.OperacaoUpdate, recorder.entries[1].Operacao)
}

func TestServiceHardDeleteRemovesRowAndCascades(t *testing.T) {
	db := setupEmbalagensTestDB(t)
	svc, recorder := buildEmbalagensService(t, db)

	embalagem := newEmbalagem(t, db, "vidro", "Pote", "Acme", "Brasil", time.Now().UTC())
	actor := uuid.New()

	require.NoError(t, db.Create(&models.FotoEmbalagem{
		ID:              uuid.New(),
		EmbalagemID:     embalagem.ID,
		LinkDrive:       "https://drive.example.com/foto",
		Ordem:           1,
		UsuarioUploadID: actor,
	}).Error)
	loc := &models.Localizacao{
		ID:         uuid.New(),
		Galpao:     "G1",
		Andar:      "1",
		Prateleira: "A",
		CaixaSigla: "G1-1A-001",
	}
	require.NoError(t, db.Create(loc).Error)
	require.NoError(t, db.Create(&models.EmbalagemLocalizacao{
		ID:            uuid.New(),
		EmbalagemID:   embalagem.ID,
		LocalizacaoID: loc.ID,
		Quantidade:    3,
	}).Error)

	require.NoError(t, svc.HardDelete(context.Background(), actor, embalagem.ID))

	_, err := svc.GetByID(context.Background(), embalagem.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	var fotos int64
	require.NoError(t, db.Model(&models.FotoEmbalagem{}).Where("embalagem_id = ?", embalagem.ID).Count(&fotos).Error)
	assert.Zero(t, fotos)
	var vinculos int64
	require.NoError(t, db.Model(&models.EmbalagemLocalizacao{}).Where("embalagem_id = ?", embalagem.ID).Count(&vinculos).Error)
	assert.Zero(t, vinculos)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, enums.OperacaoDelete, recorder.entries[0].Operacao)
}

func TestServiceAddFotoValidatesInput(t *testing.T) {
	db := setupEmbalagensTestDB(t)
	svc, _ := buildEmbalagensService(t, db)

	embalagem := newEmbalagem(t, db, "vidro", "Pote", "Acme", "Brasil", time.Now().UTC())
	actor := uuid.New()

	_, err := svc.AddFoto(context.Background(), actor, embalagem.ID, AddFotoInput{LinkDrive: "  "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	zero := 0
	_, err = svc.AddFoto(context.Background(), actor, embalagem.ID, AddFotoInput{
		LinkDrive: "https://drive.example.com/x",
		Ordem:     &zero,
	})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.AddFoto(context.Background(), actor, uuid.New(), AddFotoInput{
		LinkDrive: "https://drive.example.com/x",
	})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceAddFotoDefaultsOrdem(t *testing.T) {
	db := setupEmbalagensTestDB(t)
	svc, recorder := buildEmbalagensService(t, db)

	embalagem := newEmbalagem(t, db, "vidro", "Pote", "Acme", "Brasil", time.Now().UTC())
	actor := uuid.New()

	foto, err := svc.AddFoto(context.Background(), actor, embalagem.ID, AddFotoInput{
		LinkDrive: " https://drive.example.com/foto ",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://drive.example.com/foto", foto.LinkDrive)
	assert.Equal(t, 1, foto.Ordem)
	assert.Equal(t, actor, foto.UsuarioUploadID)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "fotos_embalagem", recorder.entries[0].Tabela)
}
