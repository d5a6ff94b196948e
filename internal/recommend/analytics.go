// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

// Progress stage labels, per spec.md §4.12's three-stage convergence
// mapping.
const (
	StageExploring = "exploring"
	StageLearning  = "learning"
	StageConfident = "confident"
)

// Reward trend labels.
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// trendMargin is the minimum difference between the last-third and
// prior-two-thirds reward averages needed to call the trend improving
// or declining rather than stable. Spec.md names the comparison but not
// a margin; documented as a resolved open question in DESIGN.md.
const trendMargin = 0.05

// ComputeProgress derives a ProgressSnapshot from a user's experience
// log plus their current exploration state. The experience-log portion
// (total, completion rate, reward average and trend, exploration and
// exploitation counts) is a pure function of experiences; the
// convergence score additionally needs the live epsilon, which the log
// alone does not carry.
func ComputeProgress(experiences []Experience, exploration ExplorationState, initialEpsilon float64) ProgressSnapshot {
	n := len(experiences)
	snapshot := ProgressSnapshot{TotalExperiences: n}
	if n == 0 {
		snapshot.RewardTrend = TrendStable
		snapshot.Stage = StageExploring
		return snapshot
	}

	completed := 0
	var rewardSum float64
	exploring := 0
	for _, exp := range experiences {
		if exp.Completed {
			completed++
		}
		rewardSum += exp.Reward
		if exp.WasExploration {
			exploring++
		}
	}

	avgReward := rewardSum / float64(n)
	snapshot.CompletionRate = float64(completed) / float64(n)
	snapshot.AvgReward = avgReward
	snapshot.ExplorationCount = exploring
	snapshot.ExploitationCount = n - exploring
	snapshot.RewardTrend = rewardTrend(experiences)

	normalizedEpsilon := 0.0
	if initialEpsilon > 0 {
		normalizedEpsilon = clamp(exploration.Epsilon/initialEpsilon, 0, 1)
	}

	convergence := 0.4*minFloat(1, float64(n)/100) +
		0.4*(avgReward+1)/2 +
		0.2*(1-normalizedEpsilon)
	snapshot.ConvergenceScore = clamp(convergence, 0, 1)

	switch {
	case snapshot.ConvergenceScore < 0.30:
		snapshot.Stage = StageExploring
	case snapshot.ConvergenceScore < 0.70:
		snapshot.Stage = StageLearning
	default:
		snapshot.Stage = StageConfident
	}

	return snapshot
}

// rewardTrend compares the mean reward of the log's last third against
// its prior two-thirds. Logs shorter than 3 are always stable.
func rewardTrend(experiences []Experience) string {
	n := len(experiences)
	if n < 3 {
		return TrendStable
	}

	splitAt := n - n/3
	prior := experiences[:splitAt]
	last := experiences[splitAt:]

	priorAvg := meanReward(prior)
	lastAvg := meanReward(last)

	diff := lastAvg - priorAvg
	switch {
	case diff > trendMargin:
		return TrendImproving
	case diff < -trendMargin:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func meanReward(experiences []Experience) float64 {
	if len(experiences) == 0 {
		return 0
	}
	var sum float64
	for _, exp := range experiences {
		sum += exp.Reward
	}
	return sum / float64(len(experiences))
}

// Progress computes the live ProgressSnapshot for one user from their
// experience log and current exploration state.
func (e *Engine) Progress(userID string) ProgressSnapshot {
	return ComputeProgress(e.experiences.All(userID), e.exploration.Get(userID), e.config.Exploration.Initial)
}
