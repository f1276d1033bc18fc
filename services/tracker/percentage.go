package tracker

// GoalPercentage scores consumption against a goal. Up to the goal the score is the plain
// percentage; past it the score falls by the same amount it overshoots, so 2x the goal
// scores 0 and anything beyond goes negative. A zero goal scores 0.
func GoalPercentage(consumed, goal int) float64 {
	if goal == 0 {
		return 0
	}
	raw := float64(consumed) / float64(goal) * 100
	if raw <= 100 {
		return raw
	}
	return 100 - (raw - 100)
}
