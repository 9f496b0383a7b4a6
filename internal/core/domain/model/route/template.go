package route

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrTemplateIsNotConstructed = errors.New("Template must be created via NewTemplate constructor")

// Definition is the editable part of a route template.
type Definition struct {
	OriginCity      string
	DestinationCity string
	TransportMode   kernel.TransportMode
	ServiceLevel    string
	Brackets        []WeightBracket
	Metadata        kernel.Metadata
}

// Template is a pricing rule for one lane (origin, destination, mode, level).
type Template struct {
	id        kernel.UUID
	def       Definition
	createdAt time.Time

	isConstructed bool
}

// NewTemplate validates def and creates a template.
func NewTemplate(id kernel.UUID, def Definition, createdAt time.Time) (*Template, error) {
	def = trimDefinition(def)
	if err := errors.Join(id.Validate(), validateDefinition(def)); err != nil {
		return nil, err
	}

	return &Template{id: id, def: def, createdAt: createdAt, isConstructed: true}, nil
}

// RestoreTemplate rebuilds a template from storage without re-validating its
// brackets, so rows written by older versions keep loading.
func RestoreTemplate(id kernel.UUID, def Definition, createdAt time.Time) (*Template, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if def.Metadata == nil {
		def.Metadata = kernel.Metadata{}
	}
	return &Template{id: id, def: def, createdAt: createdAt, isConstructed: true}, nil
}

func (t *Template) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTemplateIsNotConstructed
	}
	return nil
}

func (t *Template) ID() kernel.UUID { return t.id }

func (t *Template) OriginCity() string { return t.def.OriginCity }

func (t *Template) DestinationCity() string { return t.def.DestinationCity }

func (t *Template) TransportMode() kernel.TransportMode { return t.def.TransportMode }

func (t *Template) ServiceLevel() string { return t.def.ServiceLevel }

func (t *Template) CreatedAt() time.Time { return t.createdAt }

func (t *Template) Metadata() kernel.Metadata { return t.def.Metadata.Clone() }

// Brackets returns the weight brackets in their stored order.
func (t *Template) Brackets() []WeightBracket {
	out := make([]WeightBracket, len(t.def.Brackets))
	copy(out, t.def.Brackets)
	return out
}

// Redefine replaces every editable field of the template.
func (t *Template) Redefine(def Definition) error {
	def = trimDefinition(def)
	if err := validateDefinition(def); err != nil {
		return err
	}
	t.def = def
	return nil
}

// Serves reports whether the template covers the lane. Comparison ignores case
// and surrounding blanks on all four fields.
func (t *Template) Serves(originCity, destinationCity, transportMode, serviceLevel string) bool {
	return sameKey(t.def.OriginCity, originCity) &&
		sameKey(t.def.DestinationCity, destinationCity) &&
		sameKey(string(t.def.TransportMode), transportMode) &&
		sameKey(t.def.ServiceLevel, serviceLevel)
}

// BracketFor returns the first bracket, in list order, containing weight.
func (t *Template) BracketFor(weight float64) (WeightBracket, bool) {
	for _, b := range t.def.Brackets {
		if b.Contains(weight) {
			return b, true
		}
	}
	return WeightBracket{}, false
}

func validateDefinition(def Definition) error {
	var problems []error
	if def.OriginCity == "" {
		problems = append(problems, errs.NewValueIsRequiredError("originCity"))
	}
	if def.DestinationCity == "" {
		problems = append(problems, errs.NewValueIsRequiredError("destinationCity"))
	}
	if !def.TransportMode.IsValid() {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"transportMode", fmt.Errorf("%q is not one of road, air, sea", string(def.TransportMode))))
	}
	if def.ServiceLevel == "" {
		problems = append(problems, errs.NewValueIsRequiredError("serviceLevel"))
	}
	if len(def.Brackets) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("weightBrackets"))
	}
	for i, b := range def.Brackets {
		if err := b.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("weightBrackets[%d]: %w", i, err))
		}
	}
	return errors.Join(problems...)
}

func trimDefinition(def Definition) Definition {
	def.OriginCity = strings.TrimSpace(def.OriginCity)
	def.DestinationCity = strings.TrimSpace(def.DestinationCity)
	def.ServiceLevel = strings.TrimSpace(def.ServiceLevel)
	def.TransportMode = kernel.TransportMode(strings.ToLower(strings.TrimSpace(string(def.TransportMode))))
	if def.Metadata == nil {
		def.Metadata = kernel.Metadata{}
	}
	return def
}

func sameKey(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
