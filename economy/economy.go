package economy

// NumCostIndices is the number of independently inflated cost categories.
const NumCostIndices = 32

type Economy struct {
	// CostMultipliers are the per category inflation factors, 1024 at the
	// start of a game.
	CostMultipliers [NumCostIndices]uint32
}

func New(base uint32) *Economy {
	e := &Economy{}
	for i := range e.CostMultipliers {
		e.CostMultipliers[i] = base
	}
	return e
}

// InflationAdjustedCost scales a cost factor by the current multiplier of its
// category. The shift divides the result, construction costs use 6.
func (e *Economy) InflationAdjustedCost(costFactor int16, costIndex uint8, shift uint8) int32 {
	return int32((int64(costFactor) * int64(e.CostMultipliers[costIndex%NumCostIndices])) >> shift)
}
