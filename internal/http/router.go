package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/ecocoleta/api/internal/config"
	"github.com/ecocoleta/api/internal/empresa"
	httpmiddleware "github.com/ecocoleta/api/internal/http/middleware"
	"github.com/ecocoleta/api/internal/pessoa"
	"github.com/ecocoleta/api/internal/service"
)

// Handler agrega as dependências dos endpoints transversais (login,
// stats) e monta o roteador.
type Handler struct {
	cfg           *config.Config
	auth          *service.AuthService
	pessoaCounts  PessoaCounter
	empresaCounts EmpresaCounter
}

// NewRouter monta o roteador completo da API.
func NewRouter(cfg *config.Config, authService *service.AuthService, pessoas *pessoa.Service, empresas *empresa.Service) http.Handler {
	h := &Handler{
		cfg:           cfg,
		auth:          authService,
		pessoaCounts:  pessoas,
		empresaCounts: empresas,
	}

	pessoaHandler := pessoa.NewHandler(pessoas)
	empresaHandler := empresa.NewHandler(empresas)

	authMW := httpmiddleware.Auth(authService.JWT())
	empresaOnly := func(next http.Handler) http.Handler {
		return authMW(httpmiddleware.RequireEmpresa(next))
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(httpmiddleware.Recover)
	r.Use(httpmiddleware.Logging)
	r.Use(httpmiddleware.CORS(cfg.AllowOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login-pessoa", h.loginPessoa)
		r.Post("/login-empresa", h.loginEmpresa)
	})

	r.Route("/pessoas", func(r chi.Router) {
		pessoaHandler.RegisterRoutes(r, empresaOnly)
	})

	r.Route("/empresas", func(r chi.Router) {
		empresaHandler.RegisterRoutes(r)
	})

	r.Get("/stats", h.getStats)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "rota não encontrada")
	})

	return r
}
