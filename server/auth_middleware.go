package server

import (
	"context"
	"net/http"

	"github.com/microbiomedata/nmdc-orcid-creditor/identity"
	"github.com/rs/zerolog"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyCredential stores the validated ORCID credential
	ContextKeyCredential ContextKey = "credential"
)

// RequireCredential lets the request through only with a signed session holding an
// unexpired credential. Otherwise onMissing answers the request.
func (s *Server) RequireCredential(onMissing http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cred, ok := s.credentialFromRequest(r)
			if !ok {
				onMissing(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyCredential, cred)
			logger := zerolog.Ctx(ctx).With().Str("orcid_id", cred.OrcidID).Logger()
			r = r.WithContext(logger.WithContext(ctx))

			next(w, r)
		}
	}
}

// credentialFromRequest decodes the session cookie. A missing, forged or expired
// credential all read as signed out.
func (s *Server) credentialFromRequest(r *http.Request) (*identity.Credential, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}

	cred, err := s.sessions.Decode(cookie.Value)
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Err(err).Msg("ignoring unreadable session cookie")
		return nil, false
	}

	return identity.Validate(cred)
}

func credentialFromContext(ctx context.Context) (*identity.Credential, bool) {
	cred, ok := ctx.Value(ContextKeyCredential).(*identity.Credential)
	return cred, ok && cred != nil
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, RouteHome, http.StatusFound)
}

func unauthorizedJSON(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusUnauthorized, errorResponse{Error: "please log in"})
}
