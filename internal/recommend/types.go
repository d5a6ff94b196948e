// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"time"
)

// AffectState is a continuous emotional state reading.
type AffectState struct {
	// Valence is unpleasant (-1) to pleasant (+1).
	Valence float64 `json:"valence"`

	// Arousal is calm (-1) to activated (+1).
	Arousal float64 `json:"arousal"`

	// Stress is in [0, 1].
	Stress float64 `json:"stress"`

	// Confidence is in [0, 1]; how confident the reading is.
	Confidence float64 `json:"confidence"`
}

// Clamp returns a copy with every axis clamped to its domain.
func (s AffectState) Clamp() AffectState {
	return AffectState{
		Valence:    clamp(s.Valence, -1, 1),
		Arousal:    clamp(s.Arousal, -1, 1),
		Stress:     clamp(s.Stress, 0, 1),
		Confidence: clamp(s.Confidence, 0, 1),
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Intensity is a coarse magnitude label for a desired-state transition.
type Intensity string

const (
	IntensitySubtle      Intensity = "subtle"
	IntensityModerate    Intensity = "moderate"
	IntensitySignificant Intensity = "significant"
)

// DesiredState is the target affect the engine steers a user toward.
type DesiredState struct {
	TargetValence float64   `json:"target_valence"`
	TargetArousal float64   `json:"target_arousal"`
	TargetStress  float64   `json:"target_stress"`
	Intensity     Intensity `json:"intensity"`
	Reason        string    `json:"reason"`
}

// ContentMetadata is the raw catalog record ContentProfiler consumes.
type ContentMetadata struct {
	ContentID       string   `json:"content_id"`
	Title           string   `json:"title"`
	Genres          []string `json:"genres"`
	Category        string   `json:"category"`
	DurationMinutes float64  `json:"duration_minutes"`
}

// ContentProfile is the immutable, deterministically derived emotional
// summary of a catalog item.
type ContentProfile struct {
	ContentID       string         `json:"content_id"`
	PrimaryTone     string         `json:"primary_tone"`
	ValenceDelta    float64        `json:"valence_delta"`
	ArousalDelta    float64        `json:"arousal_delta"`
	Intensity       float64        `json:"intensity"`
	Complexity      float64        `json:"complexity"`
	TargetStates    [][2]float64   `json:"target_states"`
	DurationMinutes float64        `json:"duration_minutes"`
	Category        string         `json:"category"`
	Genres          []string       `json:"genres"`
}

// QEntry is the stored value/visit-count pair for one (user, state,
// content) cell of the policy.
type QEntry struct {
	QValue      float64   `json:"q_value"`
	VisitCount  int       `json:"visit_count"`
	LastUpdated time.Time `json:"last_updated"`
}

// Experience is one observed (before, action, after, reward) transition.
type Experience struct {
	UserID         string       `json:"user_id"`
	Timestamp      time.Time    `json:"timestamp"`
	StateBefore    AffectState  `json:"state_before"`
	ContentID      string       `json:"content_id"`
	StateAfter     AffectState  `json:"state_after"`
	DesiredState   DesiredState `json:"desired_state"`
	Reward         float64      `json:"reward"`
	Completed      bool         `json:"completed"`
	WatchDuration  float64      `json:"watch_duration"`
	TotalDuration  float64      `json:"total_duration"`
	Rating         *float64     `json:"rating,omitempty"`
	WasExploration bool         `json:"was_exploration"`
}

// ExplorationState is the per-user ε-greedy bookkeeping.
type ExplorationState struct {
	Epsilon          float64   `json:"epsilon"`
	TotalExperiences int       `json:"total_experiences"`
	AvgReward        float64   `json:"avg_reward"`
	LastUpdated      time.Time `json:"last_updated"`
}

// Session is a pending recommendation awaiting feedback, used to
// recover state_before when the outcome is reported.
type Session struct {
	UserID       string       `json:"user_id"`
	ContentID    string       `json:"content_id"`
	StateBefore  AffectState  `json:"state_before"`
	DesiredState DesiredState `json:"desired_state"`
	IssuedAt     time.Time    `json:"issued_at"`
}

// Candidate is a content item paired with its retrieval similarity,
// as returned by VectorIndex.Search and consumed by HybridRanker.
type Candidate struct {
	ContentID  string
	Profile    ContentProfile
	Similarity float64
}

// Recommendation is one ranked, explained item in a recommend response.
type Recommendation struct {
	ContentID       string      `json:"content_id"`
	Title           string      `json:"title"`
	QValue          float64     `json:"q_value"`
	Similarity      float64     `json:"similarity"`
	CombinedScore   float64     `json:"combined_score"`
	PredictedOutcome AffectState `json:"predicted_outcome"`
	Reasoning       string      `json:"reasoning"`
	IsExploration   bool        `json:"is_exploration"`
}

// RecommendResult is the RecommendationEngine's pipeline output.
type RecommendResult struct {
	Recommendations []Recommendation `json:"recommendations"`
	ExplorationRate float64          `json:"exploration_rate"`
	Timestamp       time.Time        `json:"timestamp"`
}

// FeedbackResult is the FeedbackProcessor's pipeline output.
type FeedbackResult struct {
	Reward           float64          `json:"reward"`
	PolicyUpdated    bool             `json:"policy_updated"`
	NewQValue        float64          `json:"new_q_value"`
	LearningProgress ProgressSnapshot `json:"learning_progress"`
}

// ProgressSnapshot is ProgressAnalytics' computed view of a user's log.
type ProgressSnapshot struct {
	TotalExperiences  int     `json:"total_experiences"`
	CompletionRate    float64 `json:"completion_rate"`
	AvgReward         float64 `json:"avg_reward"`
	RewardTrend       string  `json:"reward_trend"`
	ExplorationCount  int     `json:"exploration_count"`
	ExploitationCount int     `json:"exploitation_count"`
	ConvergenceScore  float64 `json:"convergence_score"`
	Stage             string  `json:"stage"`
}
