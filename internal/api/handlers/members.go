package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Club-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Club-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Club-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Club-Backend/internal/auth"
	"github.com/ndewijer/Investment-Club-Backend/internal/model"
	"github.com/ndewijer/Investment-Club-Backend/internal/service"
	"github.com/ndewijer/Investment-Club-Backend/internal/validation"
)

// MemberHandler handles member profiles, approval and roles.
type MemberHandler struct {
	memberService *service.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(memberService *service.MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// AllMembers handles GET requests to list every member, newest first.
//
// Endpoint: GET /api/member
// Response: 200 OK with array of Member
// Error: 500 Internal Server Error if retrieval fails
func (h *MemberHandler) AllMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.memberService.ListMembers(r.Context())
	if err != nil {
		response.RespondInternalError(w, apperrors.ErrFailedToRetrieveMembers.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, members)
}

// Me handles GET requests for the caller's own profile, whether or not it is approved.
//
// Endpoint: GET /api/member/me
// Response: 200 OK with Member
// Error: 401 Unauthorized without a valid session
// Error: 404 Not Found if the caller has not registered yet
func (h *MemberHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), "")
		return
	}

	member, err := h.memberService.GetMember(r.Context(), session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrMemberNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMemberNotFound.Error(), "")
			return
		}
		response.RespondInternalError(w, apperrors.ErrFailedToRetrieveMembers.Error(), err)
		return
	}

	response.RespondJSON(w, http.StatusOK, member)
}

// Register handles POST requests to create the caller's profile.
// The first member becomes an approved admin; later members wait for approval.
//
// Endpoint: POST /api/member/me
// Request Body: RegisterMemberRequest (fullName, email)
// Response: 201 Created with Member
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if the caller is already registered
// Error: 500 Internal Server Error if registration fails
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), "")
		return
	}

	req, err := parseJSON[request.RegisterMemberRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegisterMember(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	member, err := h.memberService.Register(r.Context(), session, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, "member already registered", "")
			return
		}
		response.RespondInternalError(w, "failed to register member", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, member)
}

// UpdateProfile handles PUT requests to change the caller's display name.
//
// Endpoint: PUT /api/member/me
// Request Body: UpdateProfileRequest (fullName)
// Response: 200 OK with Member
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the caller has not registered yet
// Error: 500 Internal Server Error if the update fails
func (h *MemberHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	session, ok := auth.FromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error(), "")
		return
	}

	req, err := parseJSON[request.UpdateProfileRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateProfile(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	member, err := h.memberService.UpdateProfile(r.Context(), session.UserID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrMemberNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMemberNotFound.Error(), "")
			return
		}
		response.RespondInternalError(w, "failed to update profile", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, member)
}

// SetApproval handles PUT requests to approve or revoke a member.
//
// Endpoint: PUT /api/member/{uuid}/approval
// Request Body: SetApprovalRequest (isApproved)
// Response: 200 OK with Member
// Error: 400 Bad Request if validation fails or the admin targets themselves
// Error: 404 Not Found if the member does not exist
// Error: 500 Internal Server Error if the update fails
func (h *MemberHandler) SetApproval(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentMember(w, r)
	if !ok {
		return
	}
	targetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.SetApprovalRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetApproval(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	member, err := h.memberService.SetApproval(r.Context(), actor.ID, targetID, *req.IsApproved)
	if err != nil {
		respondMemberUpdateError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, member)
}

// SetRole handles PUT requests to promote or demote a member.
//
// Endpoint: PUT /api/member/{uuid}/role
// Request Body: SetRoleRequest (role)
// Response: 200 OK with Member
// Error: 400 Bad Request if validation fails or the admin targets themselves
// Error: 404 Not Found if the member does not exist
// Error: 500 Internal Server Error if the update fails
func (h *MemberHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentMember(w, r)
	if !ok {
		return
	}
	targetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.SetRoleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetRole(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	member, err := h.memberService.SetRole(r.Context(), actor.ID, targetID, model.Role(req.Role))
	if err != nil {
		respondMemberUpdateError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, member)
}

func respondMemberUpdateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrSelfModification):
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrSelfModification.Error(), "")
	case errors.Is(err, apperrors.ErrMemberNotFound):
		response.RespondError(w, http.StatusNotFound, apperrors.ErrMemberNotFound.Error(), "")
	default:
		response.RespondInternalError(w, "failed to update member", err)
	}
}
