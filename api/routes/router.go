package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/estoquelab/embalagens-backend/api/controllers"
	"github.com/estoquelab/embalagens-backend/api/middleware"
	auditoriasvc "github.com/estoquelab/embalagens-backend/internal/auditoria"
	authsvc "github.com/estoquelab/embalagens-backend/internal/auth"
	embalagemsvc "github.com/estoquelab/embalagens-backend/internal/embalagens"
	equipesvc "github.com/estoquelab/embalagens-backend/internal/equipes"
	localizacaosvc "github.com/estoquelab/embalagens-backend/internal/localizacoes"
	usuariosvc "github.com/estoquelab/embalagens-backend/internal/usuarios"
	"github.com/estoquelab/embalagens-backend/pkg/auth/session"
	"github.com/estoquelab/embalagens-backend/pkg/config"
	"github.com/estoquelab/embalagens-backend/pkg/db"
	"github.com/estoquelab/embalagens-backend/pkg/enums"
	"github.com/estoquelab/embalagens-backend/pkg/logger"
	"github.com/estoquelab/embalagens-backend/pkg/metrics"
	"github.com/estoquelab/embalagens-backend/pkg/redis"
)

// Params bundles everything the router needs.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	Auth         authsvc.Service
	Usuarios     usuariosvc.Service
	Equipes      equipesvc.Service
	Embalagens   embalagemsvc.Service
	Localizacoes localizacaosvc.Service
	Auditoria    auditoriasvc.Service
}

func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.HTTPMetrics),
		middleware.CORS(),
		middleware.RequestMeta(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis, logg))
	})

	if p.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.Login(p.Auth, logg))
		if !cfg.App.IsProd() {
			r.Post("/dev-login", controllers.DevLogin(p.Auth, logg))
		}
		r.Post("/refresh", controllers.Refresh(p.Auth, logg))
		r.With(middleware.OptionalAuth(cfg.JWT, p.Sessions, logg)).Get("/status", controllers.Status(p.Usuarios, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
			r.Post("/logout", controllers.Logout(p.Auth, logg))
			r.Get("/me", controllers.Me(p.Usuarios, logg))
		})
	})

	// Storage slots are readable without credentials so QR scans
	// resolve before sign-in.
	r.Route("/api/v1/localizacoes", func(r chi.Router) {
		r.Get("/", controllers.ListLocalizacoes(p.Localizacoes, logg))
		r.Get("/sigla/{sigla}", controllers.GetLocalizacaoBySigla(p.Localizacoes, logg))
		r.Get("/{id}", controllers.GetLocalizacao(p.Localizacoes, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
			r.Get("/{id}/embalagens", controllers.ListEmbalagensNaLocalizacao(p.Localizacoes, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePapel(enums.PapelGerente, logg))
				r.Post("/", controllers.CreateLocalizacao(p.Localizacoes, logg))
				r.Patch("/{id}", controllers.UpdateLocalizacao(p.Localizacoes, logg))
				r.Post("/{id}/embalagens/{embalagemId}", controllers.LinkEmbalagem(p.Localizacoes, logg))
				r.Put("/{id}/embalagens/{embalagemId}", controllers.SetVinculoQuantidade(p.Localizacoes, logg))
				r.Delete("/{id}/embalagens/{embalagemId}", controllers.UnlinkEmbalagem(p.Localizacoes, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePapel(enums.PapelAdmin, logg))
				r.Delete("/{id}", controllers.DeleteLocalizacao(p.Localizacoes, logg))
			})
		})
	})

	// Catalog reads are public; every mutation is role gated.
	r.Route("/api/v1/embalagens", func(r chi.Router) {
		r.Get("/", controllers.ListEmbalagens(p.Embalagens, logg))
		r.Get("/{id}", controllers.GetEmbalagem(p.Embalagens, logg))
		r.Get("/{id}/fotos", controllers.ListFotos(p.Embalagens, logg))
		r.Get("/{id}/localizacoes", controllers.ListLocalizacoesDaEmbalagem(p.Localizacoes, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePapel(enums.PapelGerente, logg))
				r.Post("/", controllers.CreateEmbalagem(p.Embalagens, logg))
				r.Patch("/{id}", controllers.UpdateEmbalagem(p.Embalagens, logg))
				r.Post("/{id}/fotos", controllers.AddFoto(p.Embalagens, logg))
				r.Delete("/fotos/{fotoId}", controllers.RemoveFoto(p.Embalagens, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePapel(enums.PapelAdmin, logg))
				r.Delete("/{id}", controllers.DeleteEmbalagem(p.Embalagens, logg))
				r.Post("/{id}/restore", controllers.RestoreEmbalagem(p.Embalagens, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePapel(enums.PapelSuperAdmin, logg))
				r.Delete("/{id}/hard", controllers.HardDeleteEmbalagem(p.Embalagens, logg))
			})
		})
	})

	r.Route("/api/v1/usuarios", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Use(middleware.RequirePapel(enums.PapelAdmin, logg))

		r.Post("/", controllers.UpsertUsuario(p.Usuarios, logg))
		r.Get("/", controllers.ListUsuarios(p.Usuarios, logg))
		r.Get("/{id}", controllers.GetUsuario(p.Usuarios, logg))
		r.Patch("/{id}", controllers.UpdateUsuario(p.Usuarios, logg))
		r.Delete("/{id}", controllers.DeactivateUsuario(p.Usuarios, logg))
	})

	r.Route("/api/v1/equipes", func(r chi.Router) {
		r.Get("/", controllers.ListEquipes(p.Equipes, logg))
		r.Get("/{id}", controllers.GetEquipe(p.Equipes, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

			r.Get("/minhas", controllers.ListMinhasEquipes(p.Equipes, logg))
			r.Get("/{id}/membros", controllers.ListMembros(p.Equipes, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePapel(enums.PapelGerente, logg))
				r.Post("/{id}/membros", controllers.AddMembro(p.Equipes, logg))
				r.Delete("/{id}/membros/{usuarioId}", controllers.RemoveMembro(p.Equipes, logg))
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePapel(enums.PapelAdmin, logg))
				r.Post("/", controllers.CreateEquipe(p.Equipes, logg))
				r.Delete("/{id}", controllers.DeleteEquipe(p.Equipes, logg))
			})
		})
	})

	r.Route("/api/v1/auditoria", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
		r.Use(middleware.RequirePapel(enums.PapelAdmin, logg))

		r.Get("/{tabela}", controllers.ListAuditoria(p.Auditoria, logg))
	})

	return r
}
