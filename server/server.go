package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/microbiomedata/nmdc-orcid-creditor/credits"
	"github.com/microbiomedata/nmdc-orcid-creditor/identity"
	"github.com/microbiomedata/nmdc-orcid-creditor/internal/config"
	"github.com/microbiomedata/nmdc-orcid-creditor/server/authflowrepo"
	"github.com/microbiomedata/nmdc-orcid-creditor/sessions"
	"github.com/rs/zerolog/log"
)

// LoginProvider runs the ORCID authorization-code flow
type LoginProvider interface {
	AuthCodeURL(state, verifier string) string
	Exchange(ctx context.Context, code, verifier string) (*identity.Credential, error)
}

type CreditLister interface {
	ListCredits(ctx context.Context, orcidID string) ([]credits.Credit, error)
}

type Claimer interface {
	Claim(ctx context.Context, cred *identity.Credential, creditType string) ([]credits.Credit, error)
}

// Dependencies are the collaborators the HTTP layer delegates to.
// Metrics and Health are optional.
type Dependencies struct {
	Login     LoginProvider
	Ledger    CreditLister
	Claims    Claimer
	Sessions  *sessions.Codec
	AuthFlows authflowrepo.Repo
	Metrics   http.Handler
	Health    func(ctx context.Context) error
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config

	login     LoginProvider
	ledger    CreditLister
	claims    Claimer
	sessions  *sessions.Codec
	authFlows authflowrepo.Repo
	metrics   http.Handler
	health    func(ctx context.Context) error
}

func New(config config.Config, deps Dependencies) (*Server, error) {
	if deps.Login == nil || deps.Ledger == nil || deps.Claims == nil || deps.Sessions == nil || deps.AuthFlows == nil {
		return nil, errors.New("[Server New] login provider, ledger, claims, sessions and auth flow repo are required")
	}

	s := &Server{
		mux:       http.NewServeMux(),
		config:    config,
		login:     deps.Login,
		ledger:    deps.Ledger,
		claims:    deps.Claims,
		sessions:  deps.Sessions,
		authFlows: deps.AuthFlows,
		metrics:   deps.Metrics,
		health:    deps.Health,
	}
	s.env = config.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
