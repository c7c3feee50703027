package reactive

import (
	"fmt"
	"sync"

	"github.com/reactivewmc/rwmc/topo"
	"github.com/reactivewmc/rwmc/vector"
	"golang.org/x/sync/errgroup"
)

// lockedValueSource implements ac.ValueSource by reading RC state directly
// rather than through LeafValue/EdgeMemo's own locking, for use inside
// Update where the caller already holds rc.mu for the call's duration
// (sync.RWMutex is not reentrant, so reusing the exported accessors here
// would deadlock).
type lockedValueSource struct{ rc *RC }

func (s lockedValueSource) LeafValue(leafID int) vector.Vector {
	return s.rc.leaves[leafID].Value()
}

func (s lockedValueSource) EdgeMemo(edgeID int) vector.Vector {
	return s.rc.edges[edgeID].memo.Clone()
}

// Invalidate enqueues every AC in the RC; used after bulk rewrites where
// precise dependency tracking of what actually changed is not worth
// computing.
func (rc *RC) Invalidate() {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	for id := range rc.acs {
		rc.queue[id] = struct{}{}
	}
}

// Update drains the invalidation queue, revaluing every queued AC exactly
// once in an order consistent with the RC's topological order (children
// before parents), and returns the value of every target token whose AC
// was revalued in this call; targets whose AC was not queued are absent.
// ACs at the same topological level share no dependency and are revalued
// concurrently through a bounded worker pool. Update holds the RC's
// single write lock for its entire duration, so structural rewrites and
// revaluation never interleave.
func (rc *RC) Update() map[string]vector.Vector {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	order, err := topo.Sort(rc)
	if err != nil {
		panic(fmt.Errorf("reactive: %w", err))
	}

	levels := rc.levelsLocked(order)

	tokensByAC := make(map[int][]string, len(rc.targets))
	for token, id := range rc.targets {
		tokensByAC[id] = append(tokensByAC[id], token)
	}

	src := lockedValueSource{rc: rc}
	results := make(map[string]vector.Vector)
	var resultsMu sync.Mutex

	for _, level := range levels {
		g := new(errgroup.Group)
		if rc.workers > 0 {
			g.SetLimit(rc.workers)
		}

		for _, id := range level {
			if _, queued := rc.queue[id]; !queued {
				continue
			}

			id := id
			g.Go(func() error {
				value := rc.acs[id].Value(src)

				if tokens := tokensByAC[id]; len(tokens) > 0 {
					resultsMu.Lock()
					for _, token := range tokens {
						results[token] = value
					}
					resultsMu.Unlock()
				}

				for _, eid := range rc.incoming[id] {
					rc.edges[eid].memo.Assign(value)
				}

				return nil
			})
		}

		_ = g.Wait() // AC valuation never returns an error

		for _, id := range level {
			delete(rc.queue, id)
		}
	}

	rc.log.Debug().Int("acs_evaluated", len(order)).Int("targets", len(results)).Msg("update complete")

	return results
}

// FullUpdate is Invalidate followed by Update.
func (rc *RC) FullUpdate() map[string]vector.Vector {
	rc.Invalidate()

	return rc.Update()
}

// levelsLocked groups order (already children-before-parents) so that
// every AC in levels[i] has every topo.Graph child in some levels[<i],
// letting all of levels[i] revalue concurrently without racing.
func (rc *RC) levelsLocked(order []int) [][]int {
	levelOf := make(map[int]int, len(order))
	maxLevel := 0
	for _, id := range order {
		lvl := 0
		for _, c := range rc.Children(id) {
			if levelOf[c]+1 > lvl {
				lvl = levelOf[c] + 1
			}
		}
		levelOf[id] = lvl
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	levels := make([][]int, maxLevel+1)
	for _, id := range order {
		levels[levelOf[id]] = append(levels[levelOf[id]], id)
	}

	return levels
}
