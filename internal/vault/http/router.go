package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/credvault/internal/vault/service"
	"github.com/aussiebroadwan/credvault/internal/vault/store"
	"github.com/aussiebroadwan/credvault/pkg/fieldcrypt"
	"github.com/aussiebroadwan/credvault/pkg/httpx"
	"github.com/aussiebroadwan/credvault/pkg/jwtx"
	"github.com/aussiebroadwan/credvault/pkg/slogx"

	_ "github.com/aussiebroadwan/credvault/api/vault" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	cipher       *fieldcrypt.Cipher
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	SecureCookies bool

	AuthService    *service.AuthService
	MFAService     *service.MFAService
	AccountService *service.AccountService
	GroupService   *service.GroupService
}

func NewRouter(
	verifier jwtx.Verifier,
	cipher *fieldcrypt.Cipher,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		cipher:       cipher,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAccounts()
	r.registerTags()
	r.registerGroups()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Credential Vault API
//	@version		0.1.0
//	@description	Stores third-party account credentials encrypted at rest and serves their TOTP codes.
//	@description
//	@description				Every route except login and the health probes requires a session, carried in the session-token cookie set by /v1/auth/login.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/credvault
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						session-token
//	@description				Session token issued by /v1/auth/login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h in session authentication.
func (r *Router) secured(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, httpx.SessionMiddleware(r.verifier))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:   r.AuthService,
		MFAService:    r.MFAService,
		SecureCookies: r.SecureCookies,
	}

	r.Mux.HandleFunc("POST /v1/auth/login", h.HandleLogin)
	r.Mux.HandleFunc("POST /v1/auth/logout", h.HandleLogout)

	r.Mux.Handle("POST /v1/auth/2fa/setup", r.secured(h.HandleSetup))
	r.Mux.Handle("POST /v1/auth/2fa/verify", r.secured(h.HandleVerify))
	r.Mux.Handle("POST /v1/auth/2fa/disable", r.secured(h.HandleDisable))
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{AccountService: r.AccountService}

	r.Mux.Handle("GET /v1/accounts", r.secured(h.HandleList))
	r.Mux.Handle("POST /v1/accounts", r.secured(h.HandleCreate))
	r.Mux.Handle("POST /v1/accounts/reorder", r.secured(h.HandleReorder))
	r.Mux.Handle("GET /v1/accounts/export", r.secured(h.HandleExport))
	r.Mux.Handle("GET /v1/accounts/{id}", r.secured(h.HandleGet))
	r.Mux.Handle("PUT /v1/accounts/{id}", r.secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /v1/accounts/{id}", r.secured(h.HandleDelete))
	r.Mux.Handle("GET /v1/accounts/{id}/code", r.secured(h.HandleCode))
	r.Mux.Handle("GET /v1/accounts/{id}/code/stream", r.secured(h.HandleCodeStream))
}

func (r *Router) registerTags() {
	h := &TagsHandler{AccountService: r.AccountService}

	r.Mux.Handle("GET /v1/tags", r.secured(h.HandleList))
	r.Mux.Handle("GET /v1/tags/accounts", r.secured(h.HandleCandidates))
	r.Mux.Handle("POST /v1/tags/replace", r.secured(h.HandleReplace))
	r.Mux.Handle("PATCH /v1/accounts/{id}/tags", r.secured(h.HandleSet))
}

func (r *Router) registerGroups() {
	h := &GroupsHandler{GroupService: r.GroupService}

	r.Mux.Handle("GET /v1/groups", r.secured(h.HandleList))
	r.Mux.Handle("POST /v1/groups", r.secured(h.HandleCreate))
	r.Mux.Handle("PUT /v1/groups/{id}", r.secured(h.HandleRename))
	r.Mux.Handle("DELETE /v1/groups/{id}", r.secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.cipher))
}
