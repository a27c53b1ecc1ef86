// Package middleware provides HTTP middleware for request validation, authentication and logging.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Club-Backend/internal/validation"
)

// validateParam rejects the request with 400 when the named URL parameter is
// empty or fails check. message is the error returned for an invalid value.
func validateParam(name, message string, check func(string) error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := chi.URLParam(r, name)
			if value == "" {
				response.RespondError(w, http.StatusBadRequest, name+" is required", "")
				return
			}
			if err := check(value); err != nil {
				response.RespondError(w, http.StatusBadRequest, message, err.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ValidateUUIDMiddleware requires a well-formed {uuid} URL parameter.
//
//	r.Route("/{uuid}", func(r chi.Router) {
//	    r.Use(middleware.ValidateUUIDMiddleware)
//	    r.Get("/", handler.GetContribution)
//	})
var ValidateUUIDMiddleware = validateParam("uuid", "invalid UUID format", validation.ValidateUUID)

// ValidateSymbolMiddleware requires a {symbol} URL parameter that is a valid
// ticker once normalized. Handlers still normalize the value themselves.
var ValidateSymbolMiddleware = validateParam("symbol", "invalid symbol", validation.ValidateSymbol)
