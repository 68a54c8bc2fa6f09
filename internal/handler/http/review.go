package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/show-show-way/TechCompare/internal/service"
	apperrors "github.com/show-show-way/TechCompare/pkg/errors"
	"github.com/show-show-way/TechCompare/pkg/httputil"
)

// MsgReviewAdded acknowledges a stored review.
const MsgReviewAdded = "Review added successfully"

const maxReviewBodyBytes = 1 << 20

// ReviewHandler handles HTTP requests for review endpoints.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// ListReviews handles GET /reviews/{product_id}.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "product_id"))
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("product_id must be an integer"), h.logger)
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// AddReview handles POST /reviews. Any body that does not decode into a
// review object is answered like a review with missing fields.
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxReviewBodyBytes)

	var input service.AddReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.DebugContext(r.Context(), "undecodable review body", slog.String("error", err.Error()))
		httputil.WriteError(w, r, apperrors.Validation(service.MsgMissingData), h.logger)
		return
	}

	if _, err := h.service.AddReview(r.Context(), input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteMessage(w, http.StatusCreated, MsgReviewAdded)
}
