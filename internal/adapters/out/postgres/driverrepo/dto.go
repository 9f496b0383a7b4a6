// Package driverrepo persists fleet drivers and hands out assignment candidates.
package driverrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/jsonb"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is a row of the drivers table.
type DriverDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DriverCode           string     `gorm:"uniqueIndex:idx_drivers_driver_code"`
	UserID               *uuid.UUID `gorm:"type:uuid"`
	VehicleType          string
	Registration         string
	Status               string
	TotalDeliveries      int
	SuccessfulDeliveries int
	Metadata             jsonb.Column[kernel.Metadata]
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	var userID *uuid.UUID
	if id := d.UserID(); id != nil {
		raw := id.Bytes()
		userID = &raw
	}

	return DriverDTO{
		ID:                   d.ID().Bytes(),
		DriverCode:           d.Code(),
		UserID:               userID,
		VehicleType:          string(d.VehicleType()),
		Registration:         d.Registration(),
		Status:               string(d.Status()),
		TotalDeliveries:      d.TotalDeliveries(),
		SuccessfulDeliveries: d.SuccessfulDeliveries(),
		Metadata:             jsonb.Wrap(d.Metadata()),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var userID *kernel.UUID
	if dto.UserID != nil {
		uID, userErr := kernel.UUIDFromBytes((*dto.UserID)[:])
		if userErr != nil {
			return nil, userErr
		}
		userID = &uID
	}

	return driver.RestoreDriver(
		id,
		dto.DriverCode,
		userID,
		driver.VehicleType(dto.VehicleType),
		dto.Registration,
		driver.Status(dto.Status),
		dto.TotalDeliveries,
		dto.SuccessfulDeliveries,
		dto.Metadata.V,
	)
}
