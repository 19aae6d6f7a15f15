package dp

import "errors"

var (
	// ErrUnreadyPlanner is returned when policy evaluation is requested
	// before any reachability pass has completed.
	ErrUnreadyPlanner = errors.New("dp: reachable states not yet found; call PlanFromState or PerformReachabilityFrom first")

	// ErrNonStochasticModel is returned when the configured model cannot
	// enumerate full transition distributions. Exact expectations cannot be
	// computed from a sampling-only model.
	ErrNonStochasticModel = errors.New("dp: model does not enumerate full transition distributions")
)
