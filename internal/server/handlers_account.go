package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/joblify/joblify/internal/db"
	"github.com/joblify/joblify/internal/server/middleware"
)

// accountView bundles the account with its profile and subscription state.
type accountView struct {
	User    *db.User    `json:"user"`
	Profile *db.Profile `json:"profile"`
}

// handleMe returns the authenticated recruiter's account and profile,
// including the current subscription tier.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	profile, err := s.store.GetProfile(r.Context(), userID)
	if err != nil {
		s.log.Error("failed to get profile", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}

	s.jsonResponse(w, http.StatusOK, accountView{User: user, Profile: profile})
}
