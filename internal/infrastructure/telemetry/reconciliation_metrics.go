package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ReconciliationMetrics records the business activity of the daily reconciliation.
type ReconciliationMetrics struct {
	unitsRestocked *Counter
	unitsSold      *Counter
	salesAmount    *FloatCounter
	profitAmount   *FloatCounter
	rejections     *Counter
	lowStock       *Gauge
	duration       *Histogram
}

// NewReconciliationMetrics registers the reconciliation instruments on meter
func NewReconciliationMetrics(meter metric.Meter) (*ReconciliationMetrics, error) {
	var (
		m   ReconciliationMetrics
		err error
	)
	if m.unitsRestocked, err = NewCounter(meter, "inventory.units_restocked", "Units received through restocks", "{unit}"); err != nil {
		return nil, err
	}
	if m.unitsSold, err = NewCounter(meter, "inventory.units_sold", "Units sold as derived from ending counts", "{unit}"); err != nil {
		return nil, err
	}
	if m.salesAmount, err = NewFloatCounter(meter, "inventory.sales_amount", "Sales value of units sold", "{currency}"); err != nil {
		return nil, err
	}
	if m.profitAmount, err = NewFloatCounter(meter, "inventory.profit_amount", "Profit on units sold", "{currency}"); err != nil {
		return nil, err
	}
	if m.rejections, err = NewCounter(meter, "inventory.rejections", "Reconciliation operations rejected by validation", "{operation}"); err != nil {
		return nil, err
	}
	if m.lowStock, err = NewGauge(meter, "inventory.low_stock_products", "Products below reorder threshold at close", "{product}"); err != nil {
		return nil, err
	}
	if m.duration, err = NewHistogram(meter, "inventory.operation.duration", "Reconciliation operation duration", ServiceDurationBuckets); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordRestock counts units received at location
func (m *ReconciliationMetrics) RecordRestock(ctx context.Context, location string, units int64) {
	m.unitsRestocked.Add(ctx, units, AttrLocation.String(location))
}

// RecordSales counts the change in units sold, sales and profit caused by an edit.
// Deltas may be negative when a count is corrected upwards; counters only take the positive part.
func (m *ReconciliationMetrics) RecordSales(ctx context.Context, location, category string, unitsDelta int64, salesDelta, profitDelta float64) {
	attrs := []attribute.KeyValue{AttrLocation.String(location), AttrCategory.String(category)}
	if unitsDelta > 0 {
		m.unitsSold.Add(ctx, unitsDelta, attrs...)
	}
	if salesDelta > 0 {
		m.salesAmount.Add(ctx, salesDelta, attrs...)
	}
	if profitDelta > 0 {
		m.profitAmount.Add(ctx, profitDelta, attrs...)
	}
}

// RecordRejection counts an operation refused with a domain error code
func (m *ReconciliationMetrics) RecordRejection(ctx context.Context, operation, code string) {
	m.rejections.Inc(ctx, AttrOperation.String(operation), AttrErrorCode.String(code))
}

// RecordLowStock reports how many products at location are below threshold
func (m *ReconciliationMetrics) RecordLowStock(ctx context.Context, location string, count int64) {
	m.lowStock.Record(ctx, count, AttrLocation.String(location))
}

// RecordDuration records how long an operation took
func (m *ReconciliationMetrics) RecordDuration(ctx context.Context, operation string, d time.Duration) {
	m.duration.RecordDuration(ctx, d, AttrOperation.String(operation))
}
