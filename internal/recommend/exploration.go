// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// ExplorationController owns per-user epsilon-greedy state: decay and
// floor. The package also provides UCBBonus, a UCB term in the same
// shape as a contextual bandit's confidence bound (2*sqrt(ln(N)/n_i)),
// simplified to the tabular scalar form; the ranker does not call it
// and breaks combined-score ties by content id.
type ExplorationController struct {
	initial float64
	floor   float64
	decay   float64

	mu     sync.Mutex
	states map[string]*ExplorationState
	rng    *rand.Rand
	rngMu  sync.Mutex
}

// NewExplorationController builds a controller with the configured
// initial epsilon, floor, and per-feedback decay factor.
func NewExplorationController(initial, floor, decay float64) *ExplorationController {
	return &ExplorationController{
		initial: initial,
		floor:   floor,
		decay:   decay,
		states:  make(map[string]*ExplorationState),
		rng:     rand.New(rand.NewSource(1)),
	}
}

// Seed replaces the controller's RNG source, for deterministic tests.
func (c *ExplorationController) Seed(seed int64) {
	c.rngMu.Lock()
	c.rng = rand.New(rand.NewSource(seed))
	c.rngMu.Unlock()
}

// Get returns the current exploration state for a user, creating it
// with the initial epsilon on first access.
func (c *ExplorationController) Get(userID string) ExplorationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return *c.stateLocked(userID)
}

// LoadState seeds a user's exploration state directly. Neither the
// engine nor the server calls it, so no state is loaded on startup.
func (c *ExplorationController) LoadState(userID string, state ExplorationState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := state
	c.states[userID] = &s
}

func (c *ExplorationController) stateLocked(userID string) *ExplorationState {
	s, ok := c.states[userID]
	if !ok {
		s = &ExplorationState{
			Epsilon:     c.initial,
			LastUpdated: time.Now(),
		}
		c.states[userID] = s
	}
	return s
}

// Decay applies the per-feedback epsilon decay: ε ← max(ε_min, ε*decay).
func (c *ExplorationController) Decay(userID string) float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stateLocked(userID)
	s.Epsilon = math.Max(c.floor, s.Epsilon*c.decay)
	s.LastUpdated = time.Now()
	return s.Epsilon
}

// RecordFeedback updates total_experiences and the exponential moving
// average reward, then decays epsilon. Returns the updated state.
func (c *ExplorationController) RecordFeedback(userID string, reward float64) ExplorationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stateLocked(userID)
	s.TotalExperiences++
	const alpha = 0.1
	s.AvgReward = alpha*reward + (1-alpha)*s.AvgReward
	s.Epsilon = math.Max(c.floor, s.Epsilon*c.decay)
	s.LastUpdated = time.Now()
	return *s
}

// Reset returns epsilon to its initial value for a user.
func (c *ExplorationController) Reset(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stateLocked(userID)
	s.Epsilon = c.initial
	s.LastUpdated = time.Now()
}

// InjectExploration walks the lower half of a sorted recommendation
// list and, with probability epsilon at each such position, marks the
// candidate as exploration and adds a flat bonus to its combined
// score, then re-sorts. The input slice is mutated and returned.
func (c *ExplorationController) InjectExploration(userID string, recs []Recommendation) []Recommendation {
	if len(recs) == 0 {
		return recs
	}

	epsilon := c.Get(userID).Epsilon
	lowerHalfStart := len(recs) / 2

	c.rngMu.Lock()
	defer c.rngMu.Unlock()

	for i := lowerHalfStart; i < len(recs); i++ {
		if c.rng.Float64() < epsilon {
			recs[i].IsExploration = true
			recs[i].CombinedScore += 0.20
		}
	}

	sortRecommendations(recs)
	return recs
}

func sortRecommendations(recs []Recommendation) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CombinedScore != recs[j].CombinedScore {
			return recs[i].CombinedScore > recs[j].CombinedScore
		}
		return recs[i].ContentID < recs[j].ContentID
	})
}

// UCBBonus computes the UCB tie-break term for one candidate:
// q + 2*sqrt(ln(N)/n_i), with unvisited candidates (n_i == 0) treated
// as +Inf so they are always preferred when a tie must be broken.
func UCBBonus(q float64, visitCount, totalVisits int) float64 {
	if visitCount == 0 {
		return math.Inf(1)
	}
	return q + 2*math.Sqrt(math.Log(float64(totalVisits))/float64(visitCount))
}
