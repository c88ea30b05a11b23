package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/estoquelab/embalagens-backend/internal/usuarios"
	pkgAuth "github.com/estoquelab/embalagens-backend/pkg/auth"
	"github.com/estoquelab/embalagens-backend/pkg/auth/session"
	"github.com/estoquelab/embalagens-backend/pkg/config"
	"github.com/estoquelab/embalagens-backend/pkg/db/models"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	pkgerrors "github.com/estoquelab/embalagens-backend/pkg/errors"
	"github.com/estoquelab/embalagens-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "embalagens",
		ExpirationMinutes: 30,
	}
}

func TestServiceLoginIssuesTokenPair(t *testing.T) {
	password := "senha-gerente"
	hash := mustHashPassword(t, password)
	email := "gerente@example.com"
	user := &models.User{
		ID:           uuid.New(),
		OpenID:       "open-1",
		Email:        &email,
		PasswordHash: &hash,
		Papel:        enums.PapelGerente,
		Ativo:        true,
	}
	cfg := testJWTConfig()

	svc, sessions := buildTestService(t, user, cfg, config.AppConfig{}, config.FeatureFlagsConfig{})

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "  Gerente@Example.com ", Senha: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Papel != enums.PapelGerente {
		t.Fatalf("expected papel gerente, got %s", claims.Papel)
	}
	if resp.RefreshToken != sessions.refreshToken {
		t.Fatalf("expected refresh token from session manager")
	}
	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatalf("expected user dto in response")
	}
}

func TestServiceLoginRejectsWrongPassword(t *testing.T) {
	hash := mustHashPassword(t, "certa")
	email := "user@example.com"
	user := &models.User{
		ID:           uuid.New(),
		OpenID:       "open-2",
		Email:        &email,
		PasswordHash: &hash,
		Papel:        enums.PapelVisualizador,
		Ativo:        true,
	}

	svc, _ := buildTestService(t, user, testJWTConfig(), config.AppConfig{}, config.FeatureFlagsConfig{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: email, Senha: "errada"})
	assertUnauthorized(t, err)
}

func TestServiceLoginRejectsInactiveUser(t *testing.T) {
	hash := mustHashPassword(t, "senha")
	email := "inativo@example.com"
	user := &models.User{
		ID:           uuid.New(),
		OpenID:       "open-3",
		Email:        &email,
		PasswordHash: &hash,
		Papel:        enums.PapelAdmin,
		Ativo:        false,
	}

	svc, _ := buildTestService(t, user, testJWTConfig(), config.AppConfig{}, config.FeatureFlagsConfig{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: email, Senha: "senha"})
	assertUnauthorized(t, err)
}

func TestServiceLoginRejectsUserWithoutPassword(t *testing.T) {
	email := "sso-only@example.com"
	user := &models.User{
		ID:     uuid.New(),
		OpenID: "open-4",
		Email:  &email,
		Papel:  enums.PapelVisualizador,
		Ativo:  true,
	}

	svc, _ := buildTestService(t, user, testJWTConfig(), config.AppConfig{}, config.FeatureFlagsConfig{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: email, Senha: "qualquer"})
	assertUnauthorized(t, err)
}

func TestServiceDevLoginGatedByEnvAndFlag(t *testing.T) {
	svc, _ := buildTestService(t, nil, testJWTConfig(), config.AppConfig{Env: config.AppEnvProd}, config.FeatureFlagsConfig{AllowDevLogin: true})
	_, err := svc.DevLogin(context.Background())
	assertForbidden(t, err)

	svc, _ = buildTestService(t, nil, testJWTConfig(), config.AppConfig{Env: config.AppEnvDev}, config.FeatureFlagsConfig{})
	_, err = svc.DevLogin(context.Background())
	assertForbidden(t, err)
}

func TestServiceDevLoginProvisionsSuperAdmin(t *testing.T) {
	svc, _ := buildTestService(t, nil, testJWTConfig(), config.AppConfig{Env: config.AppEnvDev}, config.FeatureFlagsConfig{AllowDevLogin: true})

	resp, err := svc.DevLogin(context.Background())
	if err != nil {
		t.Fatalf("dev login: %v", err)
	}
	if resp.User == nil || resp.User.Papel != enums.PapelSuperAdmin {
		t.Fatalf("expected super admin dto, got %+v", resp.User)
	}
	if resp.User.OpenID != DevLoginOpenID {
		t.Fatalf("expected open id %q, got %q", DevLoginOpenID, resp.User.OpenID)
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	cfg := testJWTConfig()
	user := &models.User{
		ID:     uuid.New(),
		OpenID: "open-5",
		Papel:  enums.PapelAdmin,
		Ativo:  true,
	}
	svc, sessions := buildTestService(t, user, cfg, config.AppConfig{}, config.FeatureFlagsConfig{})

	accessToken, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Papel:  user.Papel,
		JTI:    "old-access-id",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: sessions.refreshToken,
	})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID != sessions.rotatedAccessID {
		t.Fatalf("expected rotated jti %q, got %q", sessions.rotatedAccessID, claims.ID)
	}
	if resp.RefreshToken != sessions.rotatedRefresh {
		t.Fatalf("expected rotated refresh token")
	}
	if sessions.rotatedFrom != "old-access-id" {
		t.Fatalf("expected rotation from the token jti, got %q", sessions.rotatedFrom)
	}
}

func TestServiceRefreshRejectsInvalidRefreshToken(t *testing.T) {
	cfg := testJWTConfig()
	user := &models.User{
		ID:     uuid.New(),
		OpenID: "open-6",
		Papel:  enums.PapelVisualizador,
		Ativo:  true,
	}
	svc, sessions := buildTestService(t, user, cfg, config.AppConfig{}, config.FeatureFlagsConfig{})
	sessions.rotateErr = session.ErrInvalidRefreshToken

	accessToken, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Papel:  user.Papel,
		JTI:    "jti",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  accessToken,
		RefreshToken: "stolen",
	})
	assertUnauthorized(t, err)
}

func TestServiceLogout(t *testing.T) {
	svc, sessions := buildTestService(t, nil, testJWTConfig(), config.AppConfig{}, config.FeatureFlagsConfig{})

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if sessions.revoked != "access-id" {
		t.Fatalf("expected revoke of access-id, got %q", sessions.revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	assertUnauthorized(t, err)
}

func buildTestService(t *testing.T, user *models.User, jwtCfg config.JWTConfig, appCfg config.AppConfig, flags config.FeatureFlagsConfig) (Service, *stubSessionManager) {
	t.Helper()

	sessions := &stubSessionManager{
		refreshToken:    "refresh-token",
		rotatedAccessID: "new-access-id",
		rotatedRefresh:  "new-refresh-token",
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		SessionManager: sessions,
		JWTConfig:      jwtCfg,
		PasswordConfig: config.PasswordConfig{},
		AppConfig:      appCfg,
		FeatureFlags:   flags,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessions
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected unauthorized error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func assertForbidden(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected forbidden error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
}

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email == nil || *s.user.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) UpsertByOpenID(ctx context.Context, input usuarios.UpsertUsuarioInput) (*models.User, bool, error) {
	user := &models.User{
		ID:     uuid.New(),
		OpenID: input.OpenID,
		Nome:   input.Nome,
		Ativo:  true,
	}
	if input.Papel != nil {
		user.Papel = *input.Papel
	}
	s.user = user
	return user, true, nil
}

func (s *stubUserRepo) UpdateLastSignedIn(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastSignedIn = at
	}
	return nil
}

type stubSessionManager struct {
	refreshToken    string
	rotatedAccessID string
	rotatedRefresh  string
	rotatedFrom     string
	rotateErr       error
	revoked         string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	s.rotatedFrom = oldAccessID
	return s.rotatedAccessID, s.rotatedRefresh, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = accessID
	return nil
}
