// Package jsonb maps Go values onto PostgreSQL jsonb columns for GORM DTOs.
package jsonb

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Column stores V as a jsonb document.
//
// Example:
//
//	type AddressDTO struct {
//	    Metadata jsonb.Column[kernel.Metadata]
//	}
//
//	dto.Metadata = jsonb.Wrap(address.Details().Metadata)
type Column[T any] struct {
	V T
}

func Wrap[T any](v T) Column[T] {
	return Column[T]{V: v}
}

// GormDataType makes AutoMigrate create a jsonb column.
func (Column[T]) GormDataType() string {
	return "jsonb"
}

func (c Column[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(c.V)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Column[T]) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		var zero T
		c.V = zero
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("jsonb: cannot scan %T", src)
	}
	return json.Unmarshal(raw, &c.V)
}
