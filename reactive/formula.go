package reactive

import (
	"fmt"

	"github.com/reactivewmc/rwmc/ac"
)

// AddSumProduct merges formula into the AC registered under targetToken,
// allocating a fresh AC and registering the token if it is new. Every
// distinct leaf id in formula is added to that leaf's dependency set and
// the target AC is enqueued.
//
// Returns ErrUnknownLeaf (wrapped, naming the offending id) if formula
// references a leaf id never registered via AddLeaf; no state is changed
// in that case.
func (rc *RC) AddSumProduct(formula [][]int, targetToken string) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for _, product := range formula {
		for _, leafID := range product {
			if _, ok := rc.leaves[leafID]; !ok {
				return fmt.Errorf("%w: %d", ErrUnknownLeaf, leafID)
			}
		}
	}

	targetID, ok := rc.targets[targetToken]
	if !ok {
		targetID = rc.newACIDLocked()
		rc.acs[targetID] = ac.New(rc.valueSize)
		rc.targets[targetToken] = targetID
	}

	rc.acs[targetID].AddSumProduct(formula)

	seen := make(map[int]struct{})
	for _, product := range formula {
		for _, leafID := range product {
			if _, dup := seen[leafID]; dup {
				continue
			}
			seen[leafID] = struct{}{}
			rc.setDependencyLocked(leafID, targetID)
		}
	}

	rc.queue[targetID] = struct{}{}

	rc.log.Debug().Str("target", targetToken).Int("ac_id", targetID).Int("products", len(formula)).Msg("sum-product merged")

	return nil
}

// SetDependency idempotently records that leafID's value is read by acID.
// Panics if leafID is unknown.
func (rc *RC) SetDependency(leafID, acID int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	rc.setDependencyLocked(leafID, acID)
}

func (rc *RC) setDependencyLocked(leafID, acID int) {
	rc.mustLeafLocked(leafID).AddDependency(acID)
}

// TargetAC returns the AC id registered for targetToken.
func (rc *RC) TargetAC(targetToken string) (int, error) {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	id, ok := rc.targets[targetToken]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, targetToken)
	}

	return id, nil
}
