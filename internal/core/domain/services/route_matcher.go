package services

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/route"
	"fulfillment/internal/pkg/errs"
)

// ErrNoRouteAvailable is returned when no template and bracket cover a request.
var ErrNoRouteAvailable = errors.New("no route available")

// RouteQuery is the input of a rate lookup.
type RouteQuery struct {
	OriginCity      string
	DestinationCity string
	TransportMode   string
	ServiceLevel    string
	Weight          float64
}

func (q RouteQuery) Validate() error {
	var problems []error
	if strings.TrimSpace(q.OriginCity) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("originCity"))
	}
	if strings.TrimSpace(q.DestinationCity) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("destinationCity"))
	}
	if q.Weight < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("weight", q.Weight, 0, "unbounded"))
	}
	return errors.Join(problems...)
}

// RouteMatch is a template together with the bracket that priced the request.
type RouteMatch struct {
	Template *route.Template
	Bracket  route.WeightBracket
}

// RouteMatcher resolves a rate from the template catalog.
//
// Templates are scanned in the order given (callers pass them in insertion
// order) and brackets in list order. The first template whose four keys match
// and which has a bracket containing the weight wins. There is no attempt to
// find the cheapest option.
type RouteMatcher struct{}

func NewRouteMatcher() RouteMatcher {
	return RouteMatcher{}
}

// Match returns the first (template, bracket) pair covering q, or ErrNoRouteAvailable.
func (RouteMatcher) Match(q RouteQuery, templates []*route.Template) (RouteMatch, error) {
	if err := q.Validate(); err != nil {
		return RouteMatch{}, err
	}

	for _, tpl := range templates {
		if tpl.Validate() != nil {
			continue
		}
		if !tpl.Serves(q.OriginCity, q.DestinationCity, q.TransportMode, q.ServiceLevel) {
			continue
		}
		if bracket, ok := tpl.BracketFor(q.Weight); ok {
			return RouteMatch{Template: tpl, Bracket: bracket}, nil
		}
	}

	return RouteMatch{}, ErrNoRouteAvailable
}
