package server

import (
	"net/http"

	"github.com/microbiomedata/nmdc-orcid-creditor/credits"
	"github.com/microbiomedata/nmdc-orcid-creditor/identity"
	"github.com/rs/zerolog"
)

type pageData struct {
	AppName    string
	Credential *identity.Credential
	Credits    []credits.Credit
	Message    string
}

func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, _ := s.credentialFromRequest(r)
		s.renderTemplate(w, r, http.StatusOK, "index.html", pageData{
			AppName:    s.config.GetAppName(),
			Credential: cred,
		})
	}
}

func (s *Server) CreditsPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cred, ok := credentialFromContext(r.Context())
		if !ok {
			redirectHome(w, r)
			return
		}

		rows, err := s.ledger.ListCredits(r.Context(), cred.OrcidID)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to load credits")
			s.renderFailure(w, r, http.StatusInternalServerError, "Failed to load credits. Please try again later.")
			return
		}

		s.renderTemplate(w, r, http.StatusOK, "credits.html", pageData{
			AppName:    s.config.GetAppName(),
			Credential: cred,
			Credits:    rows,
		})
	}
}

func (s *Server) renderFailure(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.renderTemplate(w, r, status, "error.html", pageData{
		AppName: s.config.GetAppName(),
		Message: message,
	})
}

func (s *Server) renderTemplate(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	tmpl, err := ParseTemplate(name)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("failed to parse template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("template", name).Msg("failed to render template")
	}
}
