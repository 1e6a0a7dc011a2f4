package history

import "wayfarer/internal/domain/world"

// Signals are recomputed from the trailing window each tick. They only
// bias exploration; survival and conversation priorities ignore them.
type Signals struct {
	// FailedDirections holds directions of repeated failed moves within
	// the window, present only once the failure count crosses the
	// threshold.
	FailedDirections map[world.Direction]bool
	// Stuck means the trailing window shows positional stagnation:
	// too few distinct positions across too many recent actions.
	Stuck bool
}

func (s Signals) Avoids(d world.Direction) bool {
	return s.FailedDirections[d]
}

// Derive scans the newest `window` entries for repeated move failures and
// positional stagnation.
func Derive(r *Ring, window, failThreshold, stuckMinRepeats, stuckMaxPositions int) Signals {
	tail := r.Tail(window)
	sig := Signals{FailedDirections: map[world.Direction]bool{}}

	failedMoves := 0
	failedDirs := map[world.Direction]bool{}
	posCounts := map[world.Position]int{}
	for _, e := range tail {
		if e.IsMove() && e.Failed() {
			failedMoves++
			failedDirs[e.Direction] = true
		}
		posCounts[e.Position]++
	}
	if failedMoves >= failThreshold {
		sig.FailedDirections = failedDirs
	}

	// Stagnation: at least stuckMinRepeats of the window's entries sit on
	// no more than stuckMaxPositions distinct positions.
	top := topCounts(posCounts, stuckMaxPositions)
	if top >= stuckMinRepeats {
		sig.Stuck = true
	}
	return sig
}

func topCounts(counts map[world.Position]int, k int) int {
	if k <= 0 {
		return 0
	}
	best := make([]int, k)
	for _, c := range counts {
		// insert into the running top-k
		for i := 0; i < k; i++ {
			if c > best[i] {
				copy(best[i+1:], best[i:k-1])
				best[i] = c
				break
			}
		}
	}
	total := 0
	for _, c := range best {
		total += c
	}
	return total
}

// BlockedDirections remembers directions the server recently refused so
// exploration can route around them. A block ages out after a short
// window and the direction becomes eligible again.
type BlockedDirections struct {
	blockedAt map[world.Direction]int64
}

func NewBlockedDirections() *BlockedDirections {
	return &BlockedDirections{blockedAt: map[world.Direction]int64{}}
}

func (b *BlockedDirections) Mark(d world.Direction, tick int64) {
	if d == "" {
		return
	}
	b.blockedAt[d] = tick
}

func (b *BlockedDirections) IsBlocked(d world.Direction, tick, window int64) bool {
	at, ok := b.blockedAt[d]
	if !ok {
		return false
	}
	if tick-at >= window {
		delete(b.blockedAt, d)
		return false
	}
	return true
}

// Filter drops currently blocked directions; if that would empty the
// candidate list, the original list is returned so movement stays
// possible.
func (b *BlockedDirections) Filter(dirs []world.Direction, tick, window int64) []world.Direction {
	out := make([]world.Direction, 0, len(dirs))
	for _, d := range dirs {
		if !b.IsBlocked(d, tick, window) {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		return dirs
	}
	return out
}
