package depletion

import "github.com/osse101/GatherNode_Go/internal/domain"

// ShouldDeplete decides whether a harvest exhausts the node.
//
// No roll happens before successes reaches MinSuccessesBeforeDepletion; after
// that the node depletes when roll, drawn uniformly from [0, 1), falls below
// DepletionProbability.
func ShouldDeplete(res domain.ResourceDefinition, successes int, roll float64) bool {
	if successes < res.MinSuccessesBeforeDepletion {
		return false
	}
	return roll < res.DepletionProbability
}
