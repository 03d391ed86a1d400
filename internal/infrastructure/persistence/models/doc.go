// Package models contains GORM persistence models that map to database tables.
// Domain types stay free of ORM tags; each model converts with ToDomain and FromDomain.
//
//   - product.go: the product catalog, soft-deleted rows included
//   - daily_record.go: one reconciliation record per product, location and day
package models
