package damage

import "github.com/KirkDiggler/rpg-battle/internal/pkg/rng"

// HitCount draws how many times a multi-hit move strikes. The standard 2-5 range
// lands 2 and 3 hits 35% of the time each and 4 and 5 hits 15% each.
func HitCount(src *rng.Source, lo, hi int, forceMax bool) int {
	if hi <= lo {
		return lo
	}
	if forceMax {
		return hi
	}
	if lo == 2 && hi == 5 {
		roll := src.Roll(100)
		switch {
		case roll <= 35:
			return 2
		case roll <= 70:
			return 3
		case roll <= 85:
			return 4
		default:
			return 5
		}
	}
	return src.Between(lo, hi)
}
