package coverage

import (
	"fmt"
	"math/big"
)

// Coverage is a pair of covered and missed counters for a single metric.
// The zero value is NoCoverage.
type Coverage struct {
	Covered int `json:"covered"`
	Missed  int `json:"missed"`
}

// NoCoverage is the identity of Add.
var NoCoverage = Coverage{}

// New returns a coverage value. Negative counters are a programming error.
func New(covered, missed int) Coverage {
	if covered < 0 || missed < 0 {
		panic(fmt.Sprintf("coverage counters must not be negative: covered=%d missed=%d", covered, missed))
	}
	return Coverage{Covered: covered, Missed: missed}
}

func (c Coverage) Total() int { return c.Covered + c.Missed }

// IsSet reports whether the value has at least one counted item.
func (c Coverage) IsSet() bool { return c.Total() > 0 }

// Add returns the component-wise sum.
func (c Coverage) Add(other Coverage) Coverage {
	return Coverage{Covered: c.Covered + other.Covered, Missed: c.Missed + other.Missed}
}

// CoveredPercentage returns covered/total as an exact fraction in [0, 1].
// An unset value yields zero; use Percentage to distinguish the two.
func (c Coverage) CoveredPercentage() *big.Rat {
	if !c.IsSet() {
		return new(big.Rat)
	}
	return big.NewRat(int64(c.Covered), int64(c.Total()))
}

// MissedPercentage returns missed/total as an exact fraction in [0, 1].
func (c Coverage) MissedPercentage() *big.Rat {
	if !c.IsSet() {
		return new(big.Rat)
	}
	return big.NewRat(int64(c.Missed), int64(c.Total()))
}

// Percentage returns the covered fraction and false when the value is unset.
func Percentage(c Coverage) (*big.Rat, bool) {
	if !c.IsSet() {
		return nil, false
	}
	return c.CoveredPercentage(), true
}

func (c Coverage) String() string {
	if !c.IsSet() {
		return "n/a"
	}
	pct, _ := new(big.Rat).Mul(c.CoveredPercentage(), big.NewRat(100, 1)).Float64()
	return fmt.Sprintf("%.2f (%d/%d)", pct, c.Covered, c.Total())
}

// Sum folds the given values with Add.
func Sum(values ...Coverage) Coverage {
	total := NoCoverage
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
