package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/dwellcheck/dwellcheck-backend/internal/middleware"
	"github.com/dwellcheck/dwellcheck-backend/internal/utils"
)

// callerID extracts the authenticated user id placed in the request
// context by the auth middleware. Writes the 401 itself and returns
// false when the request is unauthenticated.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	ctxUserID := r.Context().Value(middleware.ContextKeyUserID)
	if ctxUserID == nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeNotAuthenticated,
			"No userID in context", nil, utils.ErrNotAuthenticated)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(ctxUserID.(string))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized,
			"Malformed user id in token", nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses a uuid path variable, writing the 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload,
			"Malformed id in path", nil, err)
		return uuid.Nil, false
	}
	return id, true
}
