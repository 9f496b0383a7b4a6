package kernel

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"sort"
	"strconv"

	"fulfillment/internal/pkg/errs"

	"github.com/spf13/cast"
)

const maxMetadataDepth = 8

var (
	ErrMetadataKeyIsEmpty         = errors.New("metadata key must not be empty")
	ErrMetadataIsTooDeep          = fmt.Errorf("metadata nesting exceeds %d levels", maxMetadataDepth)
	ErrMetadataValueIsUnsupported = errors.New("metadata value must be a string, number, bool or object")
)

// Metadata is the extension bag attached to addresses, drivers, routes, shipments,
// items and tracking events. Values are restricted to string, float64, bool and
// nested Metadata.
//
// Input coming from the outside goes through NewMetadata, which rejects anything
// that does not fit. Values read back from storage go through SanitizeMetadata,
// which drops what it cannot represent instead of failing, so legacy rows still load.
//
// Coercions applied by both constructors:
//   - integer kinds, float32 and json.Number become float64
//   - arrays become nested Metadata keyed by index ("0", "1", ...)
//   - nil values are dropped
type Metadata map[string]any

// NewMetadata validates raw and returns a normalised copy.
func NewMetadata(raw map[string]any) (Metadata, error) {
	m, err := normaliseMap(raw, "", 1, true)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("metadata", err)
	}
	return m, nil
}

// SanitizeMetadata normalises raw, silently dropping unsupported values.
func SanitizeMetadata(raw map[string]any) Metadata {
	m, _ := normaliseMap(raw, "", 1, false)
	return m
}

// Clone returns a deep copy.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		if nested, ok := v.(Metadata); ok {
			out[k] = nested.Clone()
			continue
		}
		out[k] = v
	}
	return out
}

// With returns a copy of m with key set to value. value is normalised with the
// same rules as NewMetadata.
func (m Metadata) With(key string, value any) (Metadata, error) {
	if key == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("metadata", ErrMetadataKeyIsEmpty)
	}

	normalised, keep, err := normaliseValue(value, key, 2, true)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("metadata", err)
	}

	out := m.Clone()
	if keep {
		out[key] = normalised
	} else {
		delete(out, key)
	}
	return out, nil
}

// Merge returns a copy of m overlaid with other. Keys in other win.
func (m Metadata) Merge(other Metadata) Metadata {
	out := m.Clone()
	maps.Copy(out, other.Clone())
	return out
}

func (m Metadata) String(key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

func (m Metadata) Float(key string) (float64, bool) {
	f, ok := m[key].(float64)
	return f, ok
}

func (m Metadata) Bool(key string) (bool, bool) {
	b, ok := m[key].(bool)
	return b, ok
}

// Map returns a nested bag.
func (m Metadata) Map(key string) (Metadata, bool) {
	nested, ok := m[key].(Metadata)
	return nested, ok
}

// Keys returns the top level keys in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON keeps decoded bags normalised so nested objects come back as Metadata.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = SanitizeMetadata(raw)
	return nil
}

func normaliseMap(raw map[string]any, path string, depth int, strict bool) (Metadata, error) {
	if depth > maxMetadataDepth {
		if strict {
			return nil, fmt.Errorf("%s: %w", pathOrRoot(path), ErrMetadataIsTooDeep)
		}
		return Metadata{}, nil
	}

	out := make(Metadata, len(raw))
	for k, v := range raw {
		keyPath := joinPath(path, k)
		if k == "" {
			if strict {
				return nil, fmt.Errorf("%s: %w", pathOrRoot(path), ErrMetadataKeyIsEmpty)
			}
			continue
		}

		normalised, keep, err := normaliseValue(v, keyPath, depth+1, strict)
		if err != nil {
			return nil, err
		}
		if keep {
			out[k] = normalised
		}
	}
	return out, nil
}

func normaliseValue(v any, path string, depth int, strict bool) (any, bool, error) {
	switch val := v.(type) {
	case nil:
		return nil, false, nil
	case string, bool, float64:
		return val, true, nil
	case Metadata:
		nested, err := normaliseMap(val, path, depth, strict)
		return nested, err == nil, err
	case map[string]any:
		nested, err := normaliseMap(val, path, depth, strict)
		return nested, err == nil, err
	case []any:
		indexed := make(map[string]any, len(val))
		for i, item := range val {
			indexed[strconv.Itoa(i)] = item
		}
		nested, err := normaliseMap(indexed, path, depth, strict)
		return nested, err == nil, err
	case json.Number, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32:
		f, err := cast.ToFloat64E(val)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", path, err)
		}
		return f, true, nil
	}

	if strict {
		return nil, false, fmt.Errorf("%s (%s): %w", path, reflect.TypeOf(v), ErrMetadataValueIsUnsupported)
	}
	return nil, false, nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func pathOrRoot(path string) string {
	if path == "" {
		return "metadata"
	}
	return path
}
