package usuarios

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/internal/auditoria"
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

func buildUsuariosService(t *testing.T, db *gorm.DB) (Service, *capturingRecorder) {
	t.Helper()

	recorder := &capturingRecorder{}
	svc, err := NewService(NewRepository(db), recorder, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc, recorder
}

func TestServiceUpsertAuditsCreateThenUpdate(t *testing.T) {
	db := setupUsuariosTestDB(t)
	svc, recorder := buildUsuariosService(t, db)

	actor := uuid.New()
	nome := "Maria Silva"
	created, err := svc.Upsert(context.Background(), actor, UpsertUsuarioInput{
		OpenID: " open-123 ",
		Nome:   &nome,
	})
	require.NoError(t, err)
	assert.Equal(t, "open-123", created.OpenID)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, enums.OperacaoCreate, recorder.entries[0].Operacao)
	assert.Equal(t, "users", recorder.entries[0].Tabela)
	assert.Nil(t, recorder.entries[0].Antes)

	renamed := "Maria S."
	synced, err := svc.Upsert(context.Background(), actor, UpsertUsuarioInput{
		OpenID: "open-123",
		Nome:   &renamed,
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, synced.ID)
	require.NotNil(t, synced.Nome)
	assert.Equal(t, "Maria S.", *synced.Nome)

	require.Len(t, recorder.entries, 2)
	assert.Equal(t, enums.OperacaoUpdate, recorder.entries[1].Operacao)
	assert.NotNil(t, recorder.entries[1].Antes)
}

func TestServiceUpsertValidation(t *testing.T) {
	db := setupUsuariosTestDB(t)
	svc, _ := buildUsuariosService(t, db)

	_, err := svc.Upsert(context.Background(), uuid.New(), UpsertUsuarioInput{OpenID: "   "})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	bogus := enums.Papel("chefe")
	_, err = svc.Upsert(context.Background(), uuid.New(), UpsertUsuarioInput{
		OpenID: "open-123",
		Papel:  &bogus,
	})
	require.Error(t, err)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestServiceUpdatePartialMutation(t *testing.T) {
	db := setupUsuariosTestDB(t)
	svc, recorder := buildUsuariosService(t, db)

	user := seedUser(t, db, "open-123", enums.PapelVisualizador, true)
	actor := uuid.New()

	papel := enums.PapelGerente
	updated, err := svc.Update(context.Background(), actor, user.ID, UpdateUsuarioInput{Papel: &papel})
	require.NoError(t, err)
	assert.Equal(t, enums.PapelGerente, updated.Papel)
	require.NotNil(t, updated.Nome)
	assert.Equal(t, "Usuario open-123", *updated.Nome)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, enums.OperacaoUpdate, recorder.entries[0].Operacao)

	// no fields means no write and no audit entry
	got, err := svc.Update(context.Background(), actor, user.ID, UpdateUsuarioInput{})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Len(t, recorder.entries, 1)

	_, err = svc.Update(context.Background(), actor, uuid.New(), UpdateUsuarioInput{Papel: &papel})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestServiceDeactivateKeepsRow(t *testing.T) {
	db := setupUsuariosTestDB(t)
	svc, recorder := buildUsuariosService(t, db)

	user := seedUser(t, db, "open-123", enums.PapelAdmin, true)
	actor := uuid.New()

	require.NoError(t, svc.Deactivate(context.Background(), actor, user.ID))

	got, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, got.Ativo)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, enums.OperacaoDelete, recorder.entries[0].Operacao)
}
