// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cartographus/internal/cache"
	"github.com/tomtom215/cartographus/internal/logging"
	"github.com/tomtom215/cartographus/internal/metrics"
	"github.com/tomtom215/cartographus/internal/recommend"
	"github.com/tomtom215/cartographus/internal/validation"
)

// RecommendHandler serves the affect-aware recommendation endpoints:
// emotion analysis, recommendation, feedback, and progress. Exactly
// one engine instance backs every request; handlers never hold state
// of their own beyond the response cache.
type RecommendHandler struct {
	engine       *recommend.Engine
	respCache    cache.Cacher
	respCacheTTL time.Duration
}

// NewRecommendHandler wraps an already-constructed Engine for HTTP
// service. Engine construction (store load, component wiring) happens
// once at startup in cmd/server, not per-request. cacheTTL of zero
// disables response caching.
func NewRecommendHandler(engine *recommend.Engine, cacheTTL time.Duration) *RecommendHandler {
	h := &RecommendHandler{engine: engine, respCacheTTL: cacheTTL}
	if cacheTTL > 0 {
		h.respCache = cache.New(cacheTTL)
	}
	return h
}

type analyzeEmotionRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Text   string `json:"text" validate:"required,max=4096"`
}

type affectStateDTO struct {
	Valence        float64     `json:"v" validate:"gte=-1,lte=1"`
	Arousal        float64     `json:"a" validate:"gte=-1,lte=1"`
	Stress         float64     `json:"stress" validate:"gte=0,lte=1"`
	PrimaryEmotion string      `json:"primary_emotion,omitempty"`
	Confidence     float64     `json:"confidence,omitempty"`
	Vector         *[8]float64 `json:"vector,omitempty"`
	Timestamp      *time.Time  `json:"timestamp,omitempty"`
}

type desiredStateDTO struct {
	TargetValence float64 `json:"target_v" validate:"gte=-1,lte=1"`
	TargetArousal float64 `json:"target_a" validate:"gte=-1,lte=1"`
	TargetStress  float64 `json:"target_stress" validate:"gte=0,lte=1"`
	Intensity     string  `json:"intensity" validate:"omitempty,oneof=subtle moderate significant"`
	Reasoning     string  `json:"reasoning"`
}

// writeValidationError converts a validation.RequestValidationError into
// the recommend API's E003 envelope.
func writeValidationError(rw *ResponseWriter, err *validation.RequestValidationError) {
	apiErr := err.ToAPIError()
	rw.ErrorWithDetails(http.StatusBadRequest, codeInvalidInput, apiErr.Message, apiErr.Details)
}

func toDesiredStateDTO(d recommend.DesiredState) desiredStateDTO {
	return desiredStateDTO{
		TargetValence: d.TargetValence,
		TargetArousal: d.TargetArousal,
		TargetStress:  d.TargetStress,
		Intensity:     string(d.Intensity),
		Reasoning:     d.Reason,
	}
}

// AnalyzeEmotion handles POST /api/v1/emotion/analyze.
func (h *RecommendHandler) AnalyzeEmotion(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req analyzeEmotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.ErrorWithDetails(http.StatusBadRequest, codeInvalidInput, "invalid JSON body", nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reading, desired, err := h.engine.AnalyzeEmotion(ctx, req.UserID, req.Text)
	if err != nil {
		writeRecommendError(rw, err)
		return
	}

	now := time.Now().UTC()
	rw.Success(map[string]interface{}{
		"state": affectStateDTO{
			Valence:        reading.State.Valence,
			Arousal:        reading.State.Arousal,
			Stress:         reading.State.Stress,
			PrimaryEmotion: reading.PrimaryEmotion,
			Confidence:     reading.State.Confidence,
			Vector:         &reading.Vector,
			Timestamp:      &now,
		},
		"desired": toDesiredStateDTO(desired),
	})
}

type recommendRequest struct {
	UserID       string           `json:"user_id"`
	CurrentState affectStateDTO   `json:"current_state"`
	DesiredState *desiredStateDTO `json:"desired_state,omitempty"`
	Limit        int              `json:"limit,omitempty"`
}

type recommendationDTO struct {
	ContentID        string         `json:"content_id"`
	Title            string         `json:"title"`
	QValue           float64        `json:"q_value"`
	Similarity       float64        `json:"similarity"`
	CombinedScore    float64        `json:"combined_score"`
	PredictedOutcome affectStateDTO `json:"predicted_outcome"`
	Reasoning        string         `json:"reasoning"`
	IsExploration    bool           `json:"is_exploration"`
}

// Recommend handles POST /api/v1/recommend.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.ErrorWithDetails(http.StatusBadRequest, codeInvalidInput, "invalid JSON body", nil)
		return
	}
	if req.UserID == "" {
		rw.ErrorWithDetails(http.StatusBadRequest, codeInvalidInput, "user_id is required", nil)
		return
	}
	if verr := validation.ValidateStruct(&req.CurrentState); verr != nil {
		writeValidationError(rw, verr)
		return
	}
	if req.DesiredState != nil {
		if verr := validation.ValidateStruct(req.DesiredState); verr != nil {
			writeValidationError(rw, verr)
			return
		}
	}

	cacheKey := cache.GenerateKey("recommend", req)
	if h.respCache != nil {
		if cached, ok := h.respCache.Get(cacheKey); ok {
			metrics.RecordCacheHit("recommend")
			rw.Success(cached)
			return
		}
		metrics.RecordCacheMiss("recommend")
	}

	current := recommend.AffectState{
		Valence: req.CurrentState.Valence,
		Arousal: req.CurrentState.Arousal,
		Stress:  req.CurrentState.Stress,
	}

	var override *recommend.DesiredState
	if req.DesiredState != nil {
		override = &recommend.DesiredState{
			TargetValence: req.DesiredState.TargetValence,
			TargetArousal: req.DesiredState.TargetArousal,
			TargetStress:  req.DesiredState.TargetStress,
			Intensity:     recommend.Intensity(req.DesiredState.Intensity),
			Reason:        req.DesiredState.Reasoning,
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.engine.Recommend(ctx, req.UserID, current, override, req.Limit)
	if err != nil {
		writeRecommendError(rw, err)
		return
	}

	recs := make([]recommendationDTO, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		recs[i] = recommendationDTO{
			ContentID:     rec.ContentID,
			Title:         rec.Title,
			QValue:        rec.QValue,
			Similarity:    rec.Similarity,
			CombinedScore: rec.CombinedScore,
			PredictedOutcome: affectStateDTO{
				Valence: rec.PredictedOutcome.Valence,
				Arousal: rec.PredictedOutcome.Arousal,
				Stress:  rec.PredictedOutcome.Stress,
			},
			Reasoning:     rec.Reasoning,
			IsExploration: rec.IsExploration,
		}
		metrics.RecordRecommendation(rec.IsExploration)
	}

	response := map[string]interface{}{
		"recommendations":  recs,
		"exploration_rate": result.ExplorationRate,
		"timestamp":        result.Timestamp,
	}
	if h.respCache != nil {
		h.respCache.SetWithTTL(cacheKey, response, h.respCacheTTL)
	}
	rw.Success(response)
}

type feedbackRequest struct {
	UserID          string         `json:"user_id" validate:"required"`
	ContentID       string         `json:"content_id" validate:"required"`
	ActualPostState affectStateDTO `json:"actual_post_state"`
	WatchDuration   float64        `json:"watch_duration" validate:"gte=0"`
	TotalDuration   float64        `json:"total_duration" validate:"gte=0"`
	Completed       bool           `json:"completed"`
	Rating          *float64       `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

// Feedback handles POST /api/v1/feedback.
func (h *RecommendHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.ErrorWithDetails(http.StatusBadRequest, codeInvalidInput, "invalid JSON body", nil)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		writeValidationError(rw, verr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.engine.Feedback(ctx, recommend.FeedbackInput{
		UserID:    req.UserID,
		ContentID: req.ContentID,
		StateAfter: recommend.AffectState{
			Valence: req.ActualPostState.Valence,
			Arousal: req.ActualPostState.Arousal,
			Stress:  req.ActualPostState.Stress,
		},
		Completed:     req.Completed,
		WatchDuration: req.WatchDuration,
		TotalDuration: req.TotalDuration,
		Rating:        req.Rating,
	})
	if err != nil {
		writeRecommendError(rw, err)
		return
	}

	metrics.RecordFeedback(result.Reward, result.PolicyUpdated)

	rw.Success(map[string]interface{}{
		"reward":            result.Reward,
		"policy_updated":    result.PolicyUpdated,
		"new_q_value":       result.NewQValue,
		"learning_progress": result.LearningProgress,
	})
}

// Progress handles GET /api/v1/progress/{user_id} and
// GET /api/v1/progress/{user_id}/convergence. Both return the same
// ProgressAnalytics snapshot; the sub-path exists for API-surface
// parity with the spec's documented analytics-views route and is
// reserved for a narrower convergence-only projection later.
func (h *RecommendHandler) Progress(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := chi.URLParam(r, "userID")
	if userID == "" {
		rw.ErrorWithDetails(http.StatusBadRequest, codeInvalidInput, "user_id is required", nil)
		return
	}

	snapshot := h.engine.Progress(userID)
	rw.Success(snapshot)
}

const (
	codeInvalidInput    = "E003"
	codeUnknownResource = "E005"
	codeAuthFailure     = "E007"
	codeInternalFailure = "E010"
)

// writeRecommendError maps a recommend package sentinel error to the
// spec's stable error-code/detail-reason contract.
func writeRecommendError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrNoPendingSession):
		rw.ErrorWithDetails(http.StatusBadRequest, codeInvalidInput, "no pending recommendation for this item", map[string]string{"reason": "no_pending_session"})
	case errors.Is(err, recommend.ErrCatalogEmpty):
		rw.ErrorWithDetails(http.StatusBadRequest, codeInvalidInput, "catalog is empty", map[string]string{"reason": "catalog_empty"})
	case errors.Is(err, recommend.ErrStateOutOfRange):
		rw.ErrorWithDetails(http.StatusBadRequest, codeInvalidInput, "affect state value out of range", map[string]string{"reason": "state_out_of_range"})
	case errors.Is(err, recommend.ErrUserBusy):
		rw.Error(http.StatusTooManyRequests, codeInvalidInput, "a request for this user is already in progress")
	case errors.Is(err, recommend.ErrOracleUnavailable), errors.Is(err, recommend.ErrStoreUnavailable):
		logging.Error().Err(err).Msg("recommend dependency failure")
		rw.Error(http.StatusInternalServerError, codeInternalFailure, "dependency unavailable")
	default:
		logging.Error().Err(err).Msg("recommend internal failure")
		rw.Error(http.StatusInternalServerError, codeInternalFailure, "internal error")
	}
}

// RegisterAuthStubs mounts the credential-flow routes the spec places
// outside the core (§1, §6): every call reports E007 auth failure
// rather than 404, since the routes are part of the documented
// contract even though no credential subsystem backs them here.
func RegisterAuthStubs(r chi.Router) {
	stub := func(w http.ResponseWriter, r *http.Request) {
		NewResponseWriter(w, r).Error(http.StatusNotImplemented, codeAuthFailure, "authentication is not provided by this service")
	}
	r.Post("/api/v1/auth/register", stub)
	r.Post("/api/v1/auth/login", stub)
	r.Post("/api/v1/auth/refresh", stub)
	r.Post("/api/v1/auth/logout", stub)
}
