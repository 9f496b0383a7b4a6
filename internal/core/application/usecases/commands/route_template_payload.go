package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
)

// WeightBracketPayload is one bracket of a route template request.
type WeightBracketPayload struct {
	Min   float64  `json:"min"`
	Max   *float64 `json:"max,omitempty"`
	Price float64  `json:"price"`
	ETA   string   `json:"eta"`
}

// RouteTemplatePayload is the body of route template create and replace requests.
type RouteTemplatePayload struct {
	OriginCity      string                 `json:"originCity"`
	DestinationCity string                 `json:"destinationCity"`
	TransportMode   string                 `json:"transportMode"`
	ServiceLevel    string                 `json:"serviceLevel"`
	WeightBrackets  []WeightBracketPayload `json:"weightBrackets"`
	Metadata        map[string]any         `json:"metadata,omitempty"`
}

// definition converts the payload, reporting every invalid field at once.
// Template level rules (required cities, at least one bracket) are left to route.NewTemplate.
func (p RouteTemplatePayload) definition() (route.Definition, error) {
	var problems []error

	mode, err := kernel.ParseTransportMode(p.TransportMode)
	if err != nil {
		problems = append(problems, err)
	}

	brackets := make([]route.WeightBracket, 0, len(p.WeightBrackets))
	for i, b := range p.WeightBrackets {
		bracket, bErr := route.NewWeightBracket(b.Min, b.Max, b.Price, b.ETA)
		if bErr != nil {
			problems = append(problems, fmt.Errorf("weightBrackets[%d]: %w", i, bErr))
			continue
		}
		brackets = append(brackets, bracket)
	}

	metadata, err := kernel.NewMetadata(p.Metadata)
	if err != nil {
		problems = append(problems, err)
	}

	if err = errors.Join(problems...); err != nil {
		return route.Definition{}, err
	}

	return route.Definition{
		OriginCity:      p.OriginCity,
		DestinationCity: p.DestinationCity,
		TransportMode:   mode,
		ServiceLevel:    p.ServiceLevel,
		Brackets:        brackets,
		Metadata:        metadata,
	}, nil
}
