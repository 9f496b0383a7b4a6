package routerepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRouteRepository implements ports.RouteRepository using GORM.
type GormRouteRepository struct {
	db *gorm.DB
}

func NewGormRouteRepository(db *gorm.DB) *GormRouteRepository {
	return &GormRouteRepository{db: db}
}

func (r *GormRouteRepository) Add(ctx context.Context, t *route.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update replaces every editable column. created_at is kept so the template
// keeps its place in the catalog order.
func (r *GormRouteRepository) Update(ctx context.Context, t *route.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	result := r.db.WithContext(ctx).Model(&RouteTemplateDTO{}).Where("id = ?", dto.ID).
		Select("origin_city", "destination_city", "transport_mode", "service_level", "weight_brackets", "metadata").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route template", t.ID().String())
	}
	return nil
}

func (r *GormRouteRepository) Get(ctx context.Context, id kernel.UUID) (*route.Template, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RouteTemplateDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("route template", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormRouteRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&RouteTemplateDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("route template", id.String())
	}
	return nil
}

// List returns the whole catalog in insertion order. Inside a transaction the
// read runs in a savepoint, so a failure does not abort the caller's writes.
func (r *GormRouteRepository) List(ctx context.Context) ([]*route.Template, error) {
	var dtos []RouteTemplateDTO
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Order("created_at, id").Find(&dtos).Error
	})
	if err != nil {
		return nil, err
	}

	templates := make([]*route.Template, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}
