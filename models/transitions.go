package models

// Moves not listed here are allowed. A status can always be re-applied to itself.
var (
	jobTransitions = map[JobStatus][]JobStatus{
		JobCompleted: {JobRescheduled},
		JobCancelled: {JobRescheduled},
	}
	quoteTransitions = map[QuoteStatus][]QuoteStatus{
		QuoteAccepted: {},
		QuoteRejected: {},
		QuoteExpired:  {QuoteDraft},
	}
	routeTransitions = map[RouteStatus][]RouteStatus{
		RouteCompleted: {},
		RouteCancelled: {},
	}
)

// CanTransitionTo reports whether a job may move from s to next
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	return allowed(jobTransitions, s, next)
}

// CanTransitionTo reports whether a quote may move from s to next
func (s QuoteStatus) CanTransitionTo(next QuoteStatus) bool {
	return allowed(quoteTransitions, s, next)
}

// CanTransitionTo reports whether a route may move from s to next
func (s RouteStatus) CanTransitionTo(next RouteStatus) bool {
	return allowed(routeTransitions, s, next)
}

func allowed[S comparable](table map[S][]S, from, to S) bool {
	if from == to {
		return true
	}
	targets, restricted := table[from]
	if !restricted {
		return true
	}
	for _, t := range targets {
		if t == to {
			return true
		}
	}
	return false
}
