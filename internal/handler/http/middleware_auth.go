package http

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/wear-health-sync/internal/app"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It reads the "Authorization: Bearer <token>" header, validates the token
// via [service.AuthService.ParseToken] and on success stores the token
// subject in the request context under [utils.SubjectCtxKey].
//
// Requests are rejected with HTTP 401 Unauthorized when the header is
// missing ([ErrEmptyAuthorizationHeader]), malformed
// ([ErrInvalidAuthorizationHeader]) or carries an expired or invalid token.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteError(w, app.MsgTokenIsExpiredOrInvalid, http.StatusUnauthorized)
			return
		}

		ctx = context.WithValue(ctx, utils.SubjectCtxKey, token.Subject)

		next.ServeHTTP(w, r.WithContext(withSubjectLogger(ctx)))
	})
}

// withSubjectLogger tags the request logger with the authenticated subject
// so handler log lines can be attributed to the calling host.
func withSubjectLogger(ctx context.Context) context.Context {
	subject, ok := utils.GetSubjectFromContext(ctx)
	if !ok {
		return ctx
	}

	l := logger.FromContext(ctx).GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("subject", subject)
	})
	return l.WithContext(ctx)
}
