package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Club-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T, rejecting unknown fields and trailing data.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, errors.New("request body is empty")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, errors.New("request body is empty")
		}
		return req, fmt.Errorf("malformed JSON: %w", err)
	}
	if dec.More() {
		return req, errors.New("request body must contain a single JSON object")
	}
	return req, nil
}

// currentMember returns the approved member placed on the context by the auth middleware.
// It writes a 401 and returns false when the route was mounted without that middleware.
func currentMember(w http.ResponseWriter, r *http.Request) (model.Member, bool) {
	m, ok := middleware.MemberFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), "")
		return model.Member{}, false
	}
	return m, true
}
