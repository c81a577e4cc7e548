package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/joblify/joblify/internal/billing"
	"github.com/joblify/joblify/internal/server/middleware"
)

// maxWebhookBody caps the webhook payload size.
const maxWebhookBody = 1 << 16

// handleCheckout creates a hosted checkout session for the authenticated
// recruiter.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var params billing.SessionParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(&params); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	user, err := s.userService.GetUser(r.Context(), userID)
	if err != nil {
		s.log.Error("failed to load user for checkout", zap.Error(err))
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	session, err := s.checkout.CreateSession(r.Context(), userID, user.Email, params)
	if err != nil {
		s.log.Error("failed to create checkout session", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, "Failed to create checkout session")
		return
	}

	s.jsonResponse(w, http.StatusOK, session)
}

// handleWebhook receives payment processor events. Signature verification
// failures are rejected with 400; everything the relay accepts is
// acknowledged so the processor does not retry.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	err = s.relay.HandleEvent(r.Context(), payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		var sigErr *billing.ErrInvalidSignature
		if errors.As(err, &sigErr) {
			s.errorResponse(w, http.StatusBadRequest, "Invalid signature")
			return
		}
		s.log.Error("webhook processing failed", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"received": true})
}
