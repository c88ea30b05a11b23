package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	embalagemsvc "github.com/estoquelab/embalagens-backend/internal/embalagens"
	localizacaosvc "github.com/estoquelab/embalagens-backend/internal/localizacoes"
	pkgauth "github.com/estoquelab/embalagens-backend/pkg/auth"
	"github.com/estoquelab/embalagens-backend/pkg/auth/session"
	"github.com/estoquelab/embalagens-backend/pkg/config"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
)

type stubEmbalagens struct {
	calls []string
}

func (s *stubEmbalagens) record(name string) { s.calls = append(s.calls, name) }

func (s *stubEmbalagens) Create(ctx context.Context, actorID uuid.UUID, input embalagemsvc.CreateEmbalagemInput) (*embalagemsvc.EmbalagemDTO, error) {
	s.record("Create")
	return &embalagemsvc.EmbalagemDTO{}, nil
}

func (s *stubEmbalagens) Update(ctx context.Context, actorID, id uuid.UUID, input embalagemsvc.UpdateEmbalagemInput) (*embalagemsvc.EmbalagemDTO, error) {
	s.record("Update")
	return &embalagemsvc.EmbalagemDTO{ID: id}, nil
}

func (s *stubEmbalagens) SoftDelete(ctx context.Context, actorID, id uuid.UUID, motivo *string) error {
	s.record("SoftDelete")
	return nil
}

func (s *stubEmbalagens) Restore(ctx context.Context, actorID, id uuid.UUID) (*embalagemsvc.EmbalagemDTO, error) {
	s.record("Restore")
	return &embalagemsvc.EmbalagemDTO{ID: id}, nil
}

func (s *stubEmbalagens) HardDelete(ctx context.Context, actorID, id uuid.UUID) error {
	s.record("HardDelete")
	return nil
}

func (s *stubEmbalagens) List(ctx context.Context, filter embalagemsvc.ListFilter) ([]embalagemsvc.EmbalagemDTO, error) {
	s.record("List")
	return []embalagemsvc.EmbalagemDTO{}, nil
}

func (s *stubEmbalagens) GetByID(ctx context.Context, id uuid.UUID) (*embalagemsvc.EmbalagemDetailDTO, error) {
	s.record("GetByID")
	return &embalagemsvc.EmbalagemDetailDTO{}, nil
}

func (s *stubEmbalagens) AddFoto(ctx context.Context, actorID, embalagemID uuid.UUID, input embalagemsvc.AddFotoInput) (*embalagemsvc.FotoDTO, error) {
	s.record("AddFoto")
	return &embalagemsvc.FotoDTO{}, nil
}

func (s *stubEmbalagens) RemoveFoto(ctx context.Context, actorID, fotoID uuid.UUID) error {
	s.record("RemoveFoto")
	return nil
}

func (s *stubEmbalagens) ListFotos(ctx context.Context, embalagemID uuid.UUID) ([]embalagemsvc.FotoDTO, error) {
	s.record("ListFotos")
	return []embalagemsvc.FotoDTO{}, nil
}

type stubLocalizacoes struct {
	calls []string
}

func (s *stubLocalizacoes) record(name string) { s.calls = append(s.calls, name) }

func (s *stubLocalizacoes) Create(ctx context.Context, actorID uuid.UUID, input localizacaosvc.CreateLocalizacaoInput) (*localizacaosvc.LocalizacaoDTO, error) {
	s.record("Create")
	return &localizacaosvc.LocalizacaoDTO{}, nil
}

func (s *stubLocalizacoes) Update(ctx context.Context, actorID, id uuid.UUID, input localizacaosvc.UpdateLocalizacaoInput) (*localizacaosvc.LocalizacaoDTO, error) {
	s.record("Update")
	return &localizacaosvc.LocalizacaoDTO{}, nil
}

func (s *stubLocalizacoes) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	s.record("Delete")
	return nil
}

func (s *stubLocalizacoes) List(ctx context.Context) ([]localizacaosvc.LocalizacaoDTO, error) {
	s.record("List")
	return []localizacaosvc.LocalizacaoDTO{}, nil
}

func (s *stubLocalizacoes) GetByID(ctx context.Context, id uuid.UUID) (*localizacaosvc.LocalizacaoDTO, error) {
	s.record("GetByID")
	return &localizacaosvc.LocalizacaoDTO{}, nil
}

func (s *stubLocalizacoes) GetBySigla(ctx context.Context, caixaSigla string) (*localizacaosvc.LocalizacaoDTO, error) {
	s.record("GetBySigla")
	return &localizacaosvc.LocalizacaoDTO{}, nil
}

func (s *stubLocalizacoes) Link(ctx context.Context, actorID, embalagemID, localizacaoID uuid.UUID, quantidade int) (*localizacaosvc.VinculoDTO, error) {
	s.record("Link")
	return &localizacaosvc.VinculoDTO{}, nil
}

func (s *stubLocalizacoes) SetQuantidade(ctx context.Context, actorID, embalagemID, localizacaoID uuid.UUID, quantidade int) (*localizacaosvc.VinculoDTO, error) {
	s.record("SetQuantidade")
	return &localizacaosvc.VinculoDTO{}, nil
}

func (s *stubLocalizacoes) Unlink(ctx context.Context, actorID, embalagemID, localizacaoID uuid.UUID) error {
	s.record("Unlink")
	return nil
}

func (s *stubLocalizacoes) ListEmbalagens(ctx context.Context, localizacaoID uuid.UUID) ([]localizacaosvc.EmbalagemNaCaixaDTO, error) {
	s.record("ListEmbalagens")
	return []localizacaosvc.EmbalagemNaCaixaDTO{}, nil
}

func (s *stubLocalizacoes) ListForEmbalagem(ctx context.Context, embalagemID uuid.UUID) ([]localizacaosvc.LocalizacaoDaEmbalagemDTO, error) {
	s.record("ListForEmbalagem")
	return []localizacaosvc.LocalizacaoDaEmbalagemDTO{}, nil
}

func testRouterConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60},
	}
}

func buildTestRouter(t *testing.T) (http.Handler, *stubEmbalagens, *stubLocalizacoes) {
	t.Helper()

	embalagens := &stubEmbalagens{}
	localizacoes := &stubLocalizacoes{}
	router := NewRouter(Params{
		Config:       testRouterConfig(),
		Logger:       logger.New(logger.Options{ServiceName: "test"}),
		Embalagens:   embalagens,
		Localizacoes: localizacoes,
	})
	return router, embalagens, localizacoes
}

func bearerFor(t *testing.T, papel enums.Papel) string {
	t.Helper()

	token, err := pkgauth.MintAccessToken(testRouterConfig().JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Papel:  papel,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func doRequest(router http.Handler, method, target, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestDestructiveRoutesRequireAdmin(t *testing.T) {
	router, embalagens, localizacoes := buildTestRouter(t)
	gerente := bearerFor(t, enums.PapelGerente)
	id := uuid.NewString()

	for _, tc := range []struct {
		method string
		target string
	}{
		{http.MethodDelete, "/api/v1/embalagens/" + id},
		{http.MethodPost, "/api/v1/embalagens/" + id + "/restore"},
		{http.MethodDelete, "/api/v1/localizacoes/" + id},
	} {
		resp := doRequest(router, tc.method, tc.target, gerente)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("%s %s with gerente: expected 403 got %d", tc.method, tc.target, resp.Code)
		}
	}
	if len(embalagens.calls) != 0 || len(localizacoes.calls) != 0 {
		t.Fatalf("expected no service calls, got %v / %v", embalagens.calls, localizacoes.calls)
	}

	admin := bearerFor(t, enums.PapelAdmin)
	if resp := doRequest(router, http.MethodDelete, "/api/v1/embalagens/"+id, admin); resp.Code != http.StatusOK {
		t.Fatalf("soft delete with admin: expected 200 got %d", resp.Code)
	}
	if resp := doRequest(router, http.MethodPost, "/api/v1/embalagens/"+id+"/restore", admin); resp.Code != http.StatusOK {
		t.Fatalf("restore with admin: expected 200 got %d", resp.Code)
	}
	if resp := doRequest(router, http.MethodDelete, "/api/v1/localizacoes/"+id, admin); resp.Code != http.StatusOK {
		t.Fatalf("delete localizacao with admin: expected 200 got %d", resp.Code)
	}

	want := []string{"SoftDelete", "Restore"}
	if len(embalagens.calls) != len(want) || embalagens.calls[0] != want[0] || embalagens.calls[1] != want[1] {
		t.Fatalf("expected embalagens calls %v got %v", want, embalagens.calls)
	}
	if len(localizacoes.calls) != 1 || localizacoes.calls[0] != "Delete" {
		t.Fatalf("expected localizacoes calls [Delete] got %v", localizacoes.calls)
	}
}

func TestHardDeleteRequiresSuperAdmin(t *testing.T) {
	router, embalagens, _ := buildTestRouter(t)
	id := uuid.NewString()

	resp := doRequest(router, http.MethodDelete, "/api/v1/embalagens/"+id+"/hard", bearerFor(t, enums.PapelAdmin))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("hard delete with admin: expected 403 got %d", resp.Code)
	}
	if len(embalagens.calls) != 0 {
		t.Fatalf("expected no service calls, got %v", embalagens.calls)
	}

	resp = doRequest(router, http.MethodDelete, "/api/v1/embalagens/"+id+"/hard", bearerFor(t, enums.PapelSuperAdmin))
	if resp.Code != http.StatusOK {
		t.Fatalf("hard delete with super_admin: expected 200 got %d", resp.Code)
	}
	if len(embalagens.calls) != 1 || embalagens.calls[0] != "HardDelete" {
		t.Fatalf("expected [HardDelete] got %v", embalagens.calls)
	}
}

func TestCatalogReadsArePublic(t *testing.T) {
	router, embalagens, localizacoes := buildTestRouter(t)

	if resp := doRequest(router, http.MethodGet, "/api/v1/embalagens/", ""); resp.Code != http.StatusOK {
		t.Fatalf("anonymous list embalagens: expected 200 got %d", resp.Code)
	}
	if resp := doRequest(router, http.MethodGet, "/api/v1/localizacoes/", ""); resp.Code != http.StatusOK {
		t.Fatalf("anonymous list localizacoes: expected 200 got %d", resp.Code)
	}
	if len(embalagens.calls) != 1 || embalagens.calls[0] != "List" {
		t.Fatalf("expected embalagens [List] got %v", embalagens.calls)
	}
	if len(localizacoes.calls) != 1 || localizacoes.calls[0] != "List" {
		t.Fatalf("expected localizacoes [List] got %v", localizacoes.calls)
	}

	if resp := doRequest(router, http.MethodPost, "/api/v1/embalagens/", ""); resp.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create embalagem: expected 401 got %d", resp.Code)
	}
}
