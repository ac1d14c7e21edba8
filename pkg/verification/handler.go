// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package verification

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/envelope"
	"github.com/leeeeeeeeujin-ctrl/starbase-sub011/pkg/models"
)

// VerifyPath is the route of the verification endpoint.
const VerifyPath = "/v1/rooms/verify"

// maxSubmissionBytes bounds the request body.
const maxSubmissionBytes = 1 << 20

// Verifier is the server side check behind the handler.
type Verifier interface {
	Verify(scope *envelope.Scope, submission Submission) (Outcome, error)
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

type handler struct {
	verifier Verifier
}

// NewHandler mounts the verification endpoint on a chi router. A nil limiter disables rate limiting.
func NewHandler(verifier Verifier, limiter *HostRateLimiter) chi.Router {
	h := &handler{verifier: verifier}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Post(VerifyPath, h.handleVerify)
	})
	return r
}

func (h *handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	scope := envelope.ScopeFromRequest(r, "verification.handleVerify")
	defer scope.Finish()

	var submission Submission
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmissionBytes))
	if err := decoder.Decode(&submission); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %w", models.ErrInvalidVerifyRequest, err))
		return
	}
	if err := submission.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %w", models.ErrInvalidVerifyRequest, err))
		return
	}

	outcome, err := h.verifier.Verify(scope, submission)
	if err != nil {
		scope.Log.WithError(err).Error("verification failed")
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrInvalidGameID) || errors.Is(err, models.ErrInvalidCandidate) ||
			errors.Is(err, models.ErrInvalidCandidateScore) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}

	response := Response{
		Verified: outcome.Verified,
		Outcome:  outcome.Outcome,
		Reason:   outcome.Reason,
		RoomID:   outcome.Room.ID,
	}
	if !outcome.Verified {
		serverResult := outcome.ServerResult
		response.ServerResult = &serverResult
	}
	writeJSON(w, http.StatusOK, response)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{
		ErrorCode:    models.ValidationErrorCode(err),
		ErrorMessage: err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
