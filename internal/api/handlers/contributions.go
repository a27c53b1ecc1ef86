package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Club-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
	"github.com/ndewijer/Investment-Club-Backend/internal/validation"
)

// ContributionHandler handles HTTP requests for contribution endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the contributionService.
type ContributionHandler struct {
	contributionService *service.ContributionService
}

// NewContributionHandler creates a new ContributionHandler with the provided service dependency.
func NewContributionHandler(contributionService *service.ContributionService) *ContributionHandler {
	return &ContributionHandler{
		contributionService: contributionService,
	}
}

// AllContributions handles GET requests to retrieve every contribution, newest first,
// with the contributing member's name and email.
//
// Endpoint: GET /api/contribution
// Response: 200 OK with array of ContributionResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *ContributionHandler) AllContributions(w http.ResponseWriter, r *http.Request) {
	contributions, err := h.contributionService.ListContributions(r.Context(), "")
	if err != nil {
		response.RespondInternalError(w, apperrors.ErrFailedToRetrieveContributions.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, contributions)
}

// ContributionsPerMember handles GET requests to retrieve one member's contributions.
//
// Endpoint: GET /api/contribution/member/{uuid}
// Response: 200 OK with array of ContributionResponse
// Error: 400 Bad Request if member ID is invalid (validated by middleware)
// Error: 500 Internal Server Error if retrieval fails
func (h *ContributionHandler) ContributionsPerMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "uuid")

	contributions, err := h.contributionService.ListContributions(r.Context(), memberID)
	if err != nil {
		response.RespondInternalError(w, apperrors.ErrFailedToRetrieveContributions.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, contributions)
}

// GetContribution handles GET requests to retrieve a single contribution by ID.
//
// Endpoint: GET /api/contribution/{uuid}
// Response: 200 OK with ContributionResponse
// Error: 400 Bad Request if contribution ID is invalid (validated by middleware)
// Error: 404 Not Found if contribution not found
// Error: 500 Internal Server Error if retrieval fails
func (h *ContributionHandler) GetContribution(w http.ResponseWriter, r *http.Request) {
	contributionID := chi.URLParam(r, "uuid")

	contribution, err := h.contributionService.GetContribution(r.Context(), contributionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrContributionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrContributionNotFound.Error(), err.Error())
			return
		}
		response.RespondInternalError(w, apperrors.ErrFailedToRetrieveContributions.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, contribution)
}

// CreateContribution handles POST requests to record capital a member put in or took out.
//
// Endpoint: POST /api/contribution
// Request Body: CreateContributionRequest (memberId, amount, date, kind)
// Response: 201 Created with Contribution
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the member does not exist
// Error: 500 Internal Server Error if creation fails
func (h *ContributionHandler) CreateContribution(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateContributionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateContribution(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	contribution, err := h.contributionService.CreateContribution(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrMemberNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMemberNotFound.Error(), err.Error())
			return
		}
		response.RespondInternalError(w, "failed to create contribution", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, contribution)
}

// DeleteContribution handles DELETE requests to remove a contribution.
//
// Endpoint: DELETE /api/contribution/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if contribution ID is invalid (validated by middleware)
// Error: 404 Not Found if contribution not found
// Error: 500 Internal Server Error if deletion fails
func (h *ContributionHandler) DeleteContribution(w http.ResponseWriter, r *http.Request) {
	contributionID := chi.URLParam(r, "uuid")

	if err := h.contributionService.DeleteContribution(r.Context(), contributionID); err != nil {
		if errors.Is(err, apperrors.ErrContributionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrContributionNotFound.Error(), err.Error())
			return
		}
		response.RespondInternalError(w, "failed to delete contribution", err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
