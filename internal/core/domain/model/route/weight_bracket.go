package route

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// WeightBracket prices parcels whose weight falls inside [Min, Max].
// A nil Max means the bracket has no upper bound.
type WeightBracket struct {
	Min   float64
	Max   *float64
	Price float64
	ETA   string
}

func NewWeightBracket(minWeight float64, maxWeight *float64, price float64, eta string) (WeightBracket, error) {
	b := WeightBracket{Min: minWeight, Max: maxWeight, Price: price, ETA: eta}
	if err := b.Validate(); err != nil {
		return WeightBracket{}, err
	}
	return b, nil
}

func (b WeightBracket) Validate() error {
	var problems []error
	if b.Min < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("min", b.Min, 0, "unbounded"))
	}
	if b.Max != nil && *b.Max < b.Min {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"max", fmt.Errorf("max %v is below min %v", *b.Max, b.Min)))
	}
	if b.Price < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("price", b.Price, 0, "unbounded"))
	}
	return errors.Join(problems...)
}

// Contains reports whether weight lies in the bracket, both ends inclusive.
func (b WeightBracket) Contains(weight float64) bool {
	if weight < b.Min {
		return false
	}
	return b.Max == nil || weight <= *b.Max
}
