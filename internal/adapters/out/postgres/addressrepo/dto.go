// Package addressrepo persists the postal addresses owned by shipments.
package addressrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/jsonb"
	"fulfillment/internal/core/domain/model/address"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AddressDTO is a row of the addresses table.
type AddressDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type          string
	Name          string
	Phone         string
	Email         string
	Line1         string
	Line2         string
	City          string
	State         string
	Country       string
	Zip           string
	IsResidential bool
	Instructions  string
	Metadata      jsonb.Column[kernel.Metadata]
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

func fromDomain(a *address.Address) AddressDTO {
	d := a.Details()
	return AddressDTO{
		ID:            a.ID().Bytes(),
		Type:          string(a.Type()),
		Name:          d.Name,
		Phone:         d.Phone,
		Email:         d.Email,
		Line1:         d.Line1,
		Line2:         d.Line2,
		City:          d.City,
		State:         d.State,
		Country:       d.Country,
		Zip:           d.Zip,
		IsResidential: d.IsResidential,
		Instructions:  d.Instructions,
		Metadata:      jsonb.Wrap(d.Metadata),
	}
}

// toDomain rebuilds an address from its row.
func toDomain(dto AddressDTO) (*address.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return address.RestoreAddress(id, address.Type(dto.Type), address.Details{
		Name:          dto.Name,
		Phone:         dto.Phone,
		Email:         dto.Email,
		Line1:         dto.Line1,
		Line2:         dto.Line2,
		City:          dto.City,
		State:         dto.State,
		Country:       dto.Country,
		Zip:           dto.Zip,
		IsResidential: dto.IsResidential,
		Instructions:  dto.Instructions,
		Metadata:      dto.Metadata.V,
	})
}
