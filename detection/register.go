package detection

// Evaluators returns every implemented check in the order they run each tick.
func Evaluators() []Evaluator {
	return []Evaluator{
		// movement checks
		NewFlight(),
	}
}
