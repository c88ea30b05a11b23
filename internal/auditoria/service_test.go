package auditoria

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/pkg/db/models"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
)

func setupAuditoriaTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	auditoria := `
CREATE TABLE IF NOT EXISTS auditoria (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  usuario_id TEXT NOT NULL,
  tabela TEXT NOT NULL,
  operacao TEXT NOT NULL,
  registro_id TEXT NOT NULL,
  dados_antes TEXT,
  dados_depois TEXT,
  ip_address TEXT,
  user_agent TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(auditoria).Error)
	return db
}

func buildAuditoriaService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db), logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc
}

func TestServiceRecordPersistsSnapshotsAndMeta(t *testing.T) {
	db := setupAuditoriaTestDB(t)
	svc := buildAuditoriaService(t, db)

	actor := uuid.New()
	registro := uuid.New()
	ctx := WithRequestMeta(context.Background(), RequestMeta{
		IPAddress: "10.0.0.9",
		UserAgent: "embalagens-app/1.2",
	})

	svc.Record(ctx, Entry{
		ActorID:    actor,
		Tabela:     "embalagens",
		Operacao:   enums.OperacaoUpdate,
		RegistroID: registro,
		Antes:      map[string]string{"produto": "Pote 500ml"},
		Depois:     map[string]string{"produto": "Pote 750ml"},
	})

	var rows []models.Auditoria
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, actor, row.UsuarioID)
	assert.Equal(t, "embalagens", row.Tabela)
	assert.Equal(t, enums.OperacaoUpdate, row.Operacao)
	assert.Equal(t, registro, row.RegistroID)
	require.NotNil(t, row.IPAddress)
	assert.Equal(t, "10.0.0.9", *row.IPAddress)
	require.NotNil(t, row.UserAgent)
	assert.Equal(t, "embalagens-app/1.2", *row.UserAgent)

	var antes map[string]string
	require.NoError(t, json.Unmarshal(row.DadosAntes, &antes))
	assert.Equal(t, "Pote 500ml", antes["produto"])

	var depois map[string]string
	require.NoError(t, json.Unmarshal(row.DadosDepois, &depois))
	assert.Equal(t, "Pote 750ml", depois["produto"])
}

func TestServiceRecordWithoutSnapshotsOrMeta(t *testing.T) {
	db := setupAuditoriaTestDB(t)
	svc := buildAuditoriaService(t, db)

	svc.Record(context.Background(), Entry{
		ActorID:    uuid.New(),
		Tabela:     "localizacoes",
		Operacao:   enums.OperacaoCreate,
		RegistroID: uuid.New(),
	})

	var rows []models.Auditoria
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].DadosAntes)
	assert.Nil(t, rows[0].IPAddress)
	assert.Nil(t, rows[0].UserAgent)
}

func TestServiceListByTableOrdersNewestFirst(t *testing.T) {
	db := setupAuditoriaTestDB(t)
	svc := buildAuditoriaService(t, db)

	now := time.Now().UTC()
	older := &models.Auditoria{
		ID:         uuid.New(),
		UsuarioID:  uuid.New(),
		Tabela:     "users",
		Operacao:   enums.OperacaoCreate,
		RegistroID: uuid.New(),
		CreatedAt:  now.Add(-time.Hour),
	}
	newer := &models.Auditoria{
		ID:         uuid.New(),
		UsuarioID:  uuid.New(),
		Tabela:     "users",
		Operacao:   enums.OperacaoDelete,
		RegistroID: uuid.New(),
		CreatedAt:  now,
	}
	other := &models.Auditoria{
		ID:         uuid.New(),
		UsuarioID:  uuid.New(),
		Tabela:     "equipes",
		Operacao:   enums.OperacaoCreate,
		RegistroID: uuid.New(),
		CreatedAt:  now,
	}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)
	require.NoError(t, db.Create(other).Error)

	entries, err := svc.ListByTable(context.Background(), "users", 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, newer.ID, entries[0].ID)
	assert.Equal(t, older.ID, entries[1].ID)

	entries, err = svc.ListByTable(context.Background(), "users", 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestServiceListByTableRequiresTabela(t *testing.T) {
	db := setupAuditoriaTestDB(t)
	svc := buildAuditoriaService(t, db)

	_, err := svc.ListByTable(context.Background(), "", 10)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
