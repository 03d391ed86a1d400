package catalog

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/shared"
)

// RecentlyDeletedWindowDays is how long a deleted product stays in the advisory list.
const RecentlyDeletedWindowDays = 30

// ActiveOn reports whether the product existed and was not yet deleted on date.
// Comparisons are made on calendar days: a product deleted on date is already inactive.
func ActiveOn(p *Product, date time.Time) bool {
	day := shared.Day(date)
	if shared.Day(p.CreatedAt).After(day) {
		return false
	}
	return p.DeletedAt == nil || shared.Day(*p.DeletedAt).After(day)
}

// RecentlyDeletedOn reports whether date falls in [deletedAt, deletedAt+30 days]
func RecentlyDeletedOn(p *Product, date time.Time) bool {
	if p.DeletedAt == nil {
		return false
	}
	days := shared.DaysBetween(*p.DeletedAt, date)
	return days >= 0 && days <= RecentlyDeletedWindowDays
}

// FilterActive returns the products active on date, preserving input order
func FilterActive(products []Product, date time.Time) []Product {
	active := make([]Product, 0, len(products))
	for i := range products {
		if ActiveOn(&products[i], date) {
			active = append(active, products[i])
		}
	}
	return active
}

// DeletionAdvisory describes a product removed from the catalog shortly before the viewed date
type DeletionAdvisory struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	DeletedAt   time.Time `json:"deleted_at"`
	DaysAgo     int       `json:"days_ago"`
}

// RecentlyDeleted builds the advisory list for date, most recent deletion first
func RecentlyDeleted(products []Product, date time.Time) []DeletionAdvisory {
	advisories := make([]DeletionAdvisory, 0)
	for i := range products {
		p := &products[i]
		if !RecentlyDeletedOn(p, date) {
			continue
		}
		advisories = append(advisories, DeletionAdvisory{
			ProductID:   p.ID,
			ProductName: p.Name,
			Category:    p.Category,
			DeletedAt:   *p.DeletedAt,
			DaysAgo:     shared.DaysBetween(*p.DeletedAt, date),
		})
	}
	sort.SliceStable(advisories, func(i, j int) bool {
		return advisories[i].DaysAgo < advisories[j].DaysAgo
	})
	return advisories
}

// GroupByCategory buckets products by category name.
// The returned category order is alphabetical.
func GroupByCategory(products []Product) ([]string, map[string][]Product) {
	groups := make(map[string][]Product)
	for _, p := range products {
		groups[p.Category] = append(groups[p.Category], p)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, groups
}
