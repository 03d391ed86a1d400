package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/catalog"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/retailstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every product ordered by category and name
func (r *GormProductRepository) FindAll(ctx context.Context) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Order("category ASC, name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// FindActiveOn returns the products active on date.
// The query narrows by timestamp; the calendar-day rule is applied in the domain.
func (r *GormProductRepository) FindActiveOn(ctx context.Context, date time.Time) ([]catalog.Product, error) {
	next := shared.Day(date).AddDate(0, 0, 1)

	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("created_at < ?", next).
		Where("deleted_at IS NULL OR deleted_at >= ?", shared.Day(date)).
		Order("category ASC, name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return catalog.FilterActive(toProducts(rows), date), nil
}

// FindDeletedBetween returns products deleted on any day in [from, to]
func (r *GormProductRepository) FindDeletedBetween(ctx context.Context, from, to time.Time) ([]catalog.Product, error) {
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).
		Where("deleted_at IS NOT NULL").
		Where("deleted_at >= ? AND deleted_at < ?", shared.Day(from), shared.Day(to).AddDate(0, 0, 1)).
		Order("deleted_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	model := models.ProductModelFromDomain(product)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "category", "buying_price", "selling_price",
				"expiry_window_days", "reorder_threshold", "deleted_at", "updated_at",
			}),
		}).
		Create(model).Error
}

func toProducts(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *rows[i].ToDomain())
	}
	return products
}
