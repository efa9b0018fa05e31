package middleware

import (
	"net/http"
	"strings"

	gojwt "github.com/golang-jwt/jwt/v5"

	"github.com/tsel-ticketmaster/tm-ticket/internal/pkg/jwt"
	"github.com/tsel-ticketmaster/tm-ticket/internal/pkg/session"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/errors"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/response"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/status"
)

type CustomerSession struct {
	jsonWebToken *jwt.JSONWebToken
	store        session.Store
}

func NewCustomerSessionMiddleware(jsonWebToken *jwt.JSONWebToken, store session.Store) *CustomerSession {
	return &CustomerSession{
		jsonWebToken: jsonWebToken,
		store:        store,
	}
}

// Verify authenticates the bearer token and resolves the customer's session,
// attaching the account to the request context.
func (m *CustomerSession) Verify(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		authorization := r.Header.Get("Authorization")
		tokenString, ok := strings.CutPrefix(authorization, "Bearer ")
		if !ok || tokenString == "" {
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "authorization bearer token is required",
			})

			return
		}

		claims := &gojwt.RegisteredClaims{}
		if err := m.jsonWebToken.Parse(ctx, tokenString, claims); err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})

			return
		}

		acc, err := m.store.Get(ctx, claims.Subject)
		if err != nil {
			ae := errors.Destruct(err)
			response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
				Status:  ae.Status,
				Message: ae.Message,
			})

			return
		}

		ctx = session.SetAccountToCtx(ctx, acc)

		next(w, r.WithContext(ctx))
	}
}
