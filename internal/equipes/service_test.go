package equipes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/internal/auditoria"
	"github.com/estoquelab/embalagens-backend/pkg/db/models"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
)

func setupEquipesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	equipes := `
CREATE TABLE IF NOT EXISTS equipes (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  nome TEXT NOT NULL UNIQUE,
  descricao TEXT,
  created_at DATETIME
);`
	membros := `
CREATE TABLE IF NOT EXISTS usuario_equipe (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
  usuario_id TEXT NOT NULL,
  equipe_id TEXT NOT NULL,
  papel_na_equipe TEXT,
  data_entrada DATETIME NOT NULL,
  UNIQUE (equipe_id, usuario_id)
);`
	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  open_id TEXT NOT NULL UNIQUE,
  nome TEXT,
  email TEXT,
  login_method TEXT,
  papel TEXT NOT NULL DEFAULT 'visualizador',
  ativo INTEGER NOT NULL DEFAULT 1,
  password_hash TEXT,
  last_signed_in DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(equipes).Error)
	require.NoError(t, db.Exec(membros).Error)
	require.NoError(t, db.Exec(users).Error)
	return db
}

type stubUsuarioLoader struct {
	known map[uuid.UUID]*models.User
}

func (s stubUsuarioLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if usuario, ok := s.known[id]; ok {
		return usuario, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type capturingRecorder struct {
	entries []auditoria.Entry
}

func (c *capturingRecorder) Record(ctx context.Context, entry auditoria.Entry) {
	c.entries = append(c.entries, entry)
}

func buildEquipesService(t *testing.T, db *gorm.DB, known ...*models.User) (Service, *capturingRecorder) {
	t.Helper()

	loader := stubUsuarioLoader{known: map[uuid.UUID]*models.User{}}
	for _, usuario := range known {
		loader.known[usuario.ID] = usuario
	}
	recorder := &capturingRecorder{}
	svc, err := NewService(NewRepository(db), loader, recorder, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return svc, recorder
}

func seedUsuario(t *testing.T, db *gorm.DB, nome, email string) *models.User {
	t.Helper()

	usuario := &models.User{
		ID:     uuid.New(),
		OpenID: "test-" + uuid.NewString(),
		Nome:   &nome,
		Email:  &email,
		Papel:  enums.PapelVisualizador,
		Ativo:  true,
	}
	require.NoError(t, db.Create(usuario).Error)
	return usuario
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()

	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, code, typed.Code())
}

func TestEquipesCreateAndDuplicateNome(t *testing.T) {
	db := setupEquipesTestDB(t)
	svc, recorder := buildEquipesService(t, db)

	actor := uuid.New()
	created, err := svc.Create(context.Background(), actor, CreateEquipeInput{Nome: "  Logistica  "})
	require.NoError(t, err)
	assert.Equal(t, "Logistica", created.Nome)
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, enums.OperacaoCreate, recorder.entries[0].Operacao)
	assert.Equal(t, "equipes", recorder.entries[0].Tabela)

	_, err = svc.Create(context.Background(), actor, CreateEquipeInput{Nome: "Logistica"})
	assertCode(t, err, pkgerrors.CodeConflict)
	assert.Len(t, recorder.entries, 1)
}

func TestEquipesCreateRequiresNome(t *testing.T) {
	db := setupEquipesTestDB(t)
	svc, _ := buildEquipesService(t, db)

	_, err := svc.Create(context.Background(), uuid.New(), CreateEquipeInput{Nome: "   "})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestEquipesAddMembro(t *testing.T) {
	db := setupEquipesTestDB(t)
	usuario := seedUsuario(t, db, "Maria", "maria@example.com")
	svc, recorder := buildEquipesService(t, db, usuario)

	actor := uuid.New()
	equipe, err := svc.Create(context.Background(), actor, CreateEquipeInput{Nome: "Criativo"})
	require.NoError(t, err)
	recorder.entries = nil

	papel := enums.PapelEquipeGerente
	membro, err := svc.AddMembro(context.Background(), actor, equipe.ID, AddMembroInput{
		UsuarioID:     usuario.ID,
		PapelNaEquipe: &papel,
	})
	require.NoError(t, err)
	assert.Equal(t, usuario.ID, membro.UsuarioID)
	assert.Equal(t, equipe.ID, membro.EquipeID)
	require.NotNil(t, membro.PapelNaEquipe)
	assert.Equal(t, enums.PapelEquipeGerente, *membro.PapelNaEquipe)
	require.NotNil(t, membro.Nome)
	assert.Equal(t, "Maria", *membro.Nome)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, "usuario_equipe", recorder.entries[0].Tabela)
	assert.Equal(t, enums.OperacaoCreate, recorder.entries[0].Operacao)

	// adding again conflicts
	_, err = svc.AddMembro(context.Background(), actor, equipe.ID, AddMembroInput{UsuarioID: usuario.ID})
	assertCode(t, err, pkgerrors.CodeConflict)
}

func TestEquipesAddMembroUnknownTargets(t *testing.T) {
	db := setupEquipesTestDB(t)
	usuario := seedUsuario(t, db, "Maria", "maria@example.com")
	svc, _ := buildEquipesService(t, db, usuario)

	actor := uuid.New()
	_, err := svc.AddMembro(context.Background(), actor, uuid.New(), AddMembroInput{UsuarioID: usuario.ID})
	assertCode(t, err, pkgerrors.CodeNotFound)

	equipe, err := svc.Create(context.Background(), actor, CreateEquipeInput{Nome: "Criativo"})
	require.NoError(t, err)

	_, err = svc.AddMembro(context.Background(), actor, equipe.ID, AddMembroInput{UsuarioID: uuid.New()})
	assertCode(t, err, pkgerrors.CodeNotFound)

	bogus := enums.PapelEquipe("chefe")
	_, err = svc.AddMembro(context.Background(), actor, equipe.ID, AddMembroInput{
		UsuarioID:     usuario.ID,
		PapelNaEquipe: &bogus,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestEquipesRemoveMembro(t *testing.T) {
	db := setupEquipesTestDB(t)
	usuario := seedUsuario(t, db, "Maria", "maria@example.com")
	svc, recorder := buildEquipesService(t, db, usuario)

	actor := uuid.New()
	equipe, err := svc.Create(context.Background(), actor, CreateEquipeInput{Nome: "Criativo"})
	require.NoError(t, err)
	_, err = svc.AddMembro(context.Background(), actor, equipe.ID, AddMembroInput{UsuarioID: usuario.ID})
	require.NoError(t, err)
	recorder.entries = nil

	require.NoError(t, svc.RemoveMembro(context.Background(), actor, equipe.ID, usuario.ID))
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, enums.OperacaoDelete, recorder.entries[0].Operacao)
	assert.Equal(t, "usuario_equipe", recorder.entries[0].Tabela)

	err = svc.RemoveMembro(context.Background(), actor, equipe.ID, usuario.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestEquipesListMembrosJoinsIdentity(t *testing.T) {
	db := setupEquipesTestDB(t)
	maria := seedUsuario(t, db, "Maria", "maria@example.com")
	joao := seedUsuario(t, db, "Joao", "joao@example.com")
	svc, _ := buildEquipesService(t, db, maria, joao)

	actor := uuid.New()
	equipe, err := svc.Create(context.Background(), actor, CreateEquipeInput{Nome: "Criativo"})
	require.NoError(t, err)
	_, err = svc.AddMembro(context.Background(), actor, equipe.ID, AddMembroInput{UsuarioID: maria.ID})
	require.NoError(t, err)
	_, err = svc.AddMembro(context.Background(), actor, equipe.ID, AddMembroInput{UsuarioID: joao.ID})
	require.NoError(t, err)

	membros, err := svc.ListMembros(context.Background(), equipe.ID)
	require.NoError(t, err)
	require.Len(t, membros, 2)
	for _, membro := range membros {
		require.NotNil(t, membro.Nome)
		require.NotNil(t, membro.Email)
	}

	_, err = svc.ListMembros(context.Background(), uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}

func TestEquipesListForUsuario(t *testing.T) {
	db := setupEquipesTestDB(t)
	maria := seedUsuario(t, db, "Maria", "maria@example.com")
	svc, _ := buildEquipesService(t, db, maria)

	actor := uuid.New()
	criativo, err := svc.Create(context.Background(), actor, CreateEquipeInput{Nome: "Criativo"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), actor, CreateEquipeInput{Nome: "Logistica"})
	require.NoError(t, err)
	_, err = svc.AddMembro(context.Background(), actor, criativo.ID, AddMembroInput{UsuarioID: maria.ID})
	require.NoError(t, err)

	minhas, err := svc.ListForUsuario(context.Background(), maria.ID)
	require.NoError(t, err)
	require.Len(t, minhas, 1)
	assert.Equal(t, criativo.ID, minhas[0].ID)
}

func TestEquipesDelete(t *testing.T) {
	db := setupEquipesTestDB(t)
	svc, recorder := buildEquipesService(t, db)

	actor := uuid.New()
	equipe, err := svc.Create(context.Background(), actor, CreateEquipeInput{Nome: "Criativo"})
	require.NoError(t, err)
	recorder.entries = nil

	require.NoError(t, svc.Delete(context.Background(), actor, equipe.ID))
	require.Len(t, recorder.entries, 1)
	assert.Equal(t, enums.OperacaoDelete, recorder.entries[0].Operacao)

	_, err = svc.GetByID(context.Background(), equipe.ID)
	assertCode(t, err, pkgerrors.CodeNotFound)

	err = svc.Delete(context.Background(), actor, uuid.New())
	assertCode(t, err, pkgerrors.CodeNotFound)
}
