// Package reports holds the aggregation engines behind the stock summary,
// dashboard and finance screens. Everything here is recomputed from full
// collection snapshots on each call; nothing is kept incrementally.
package reports

import (
	"go-shop-manager/internal/models"
)

// LowStockRatio flags an item once its availability drops to a quarter of
// everything ever added for it.
const LowStockRatio = 0.25

type itemKey struct {
	Maker string
	Type  string
	Item  string
}

// AvailabilityRow is one line of the stock summary: quantities added vs.
// invoiced for an item key. When the two totals are exactly equal, both
// displayed totals are zeroed - a long-standing display convention of the
// summary screen that downstream consumers rely on. Available always holds
// the true difference.
type AvailabilityRow struct {
	Maker         string `json:"maker"`
	Type          string `json:"type"`
	Item          string `json:"item"`
	TotalAdded    int    `json:"totalAdded"`
	TotalInvoiced int    `json:"totalInvoiced"`
	Available     int    `json:"available"`
	LowStock      bool   `json:"lowStock"`
}

// LowStockItem is a dashboard warning row, carrying the un-normalized totals.
type LowStockItem struct {
	Maker     string `json:"maker"`
	Type      string `json:"type"`
	Item      string `json:"item"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
}

// aggregateTotals groups both collections by (maker, type, item) and sums
// quantities. Keys are returned in first-seen order, stock entries first,
// so output is stable for a given snapshot.
func aggregateTotals(stocks []models.StockEntry, invoices []models.Invoice) ([]itemKey, map[itemKey]int, map[itemKey]int) {
	var keys []itemKey
	added := map[itemKey]int{}
	invoiced := map[itemKey]int{}

	note := func(k itemKey) {
		if _, inAdded := added[k]; !inAdded {
			if _, inInvoiced := invoiced[k]; !inInvoiced {
				keys = append(keys, k)
			}
		}
	}

	for _, s := range stocks {
		k := itemKey{s.Maker, s.Type, s.Item}
		note(k)
		added[k] += s.Quantity
	}
	for _, inv := range invoices {
		for _, li := range inv.Items {
			k := itemKey{li.Maker, li.Type, li.Item}
			note(k)
			invoiced[k] += li.Quantity
		}
	}
	return keys, added, invoiced
}

// ComputeAvailability builds the stock summary rows. Every key present in
// either collection appears; items invoiced but never stocked show up with
// totalAdded 0 and a negative availability.
func ComputeAvailability(stocks []models.StockEntry, invoices []models.Invoice) []AvailabilityRow {
	keys, added, invoiced := aggregateTotals(stocks, invoices)

	rows := make([]AvailabilityRow, 0, len(keys))
	for _, k := range keys {
		total := added[k]
		sold := invoiced[k]
		available := total - sold

		row := AvailabilityRow{
			Maker:         k.Maker,
			Type:          k.Type,
			Item:          k.Item,
			TotalAdded:    total,
			TotalInvoiced: sold,
			Available:     available,
			LowStock:      total > 0 && float64(available) <= float64(total)*LowStockRatio,
		}
		if total == sold {
			row.TotalAdded = 0
			row.TotalInvoiced = 0
		}
		rows = append(rows, row)
	}
	return rows
}

// ComputeLowStock returns the dashboard warning list: item keys whose
// availability is at or below a quarter of the total ever added.
func ComputeLowStock(stocks []models.StockEntry, invoices []models.Invoice) []LowStockItem {
	keys, added, invoiced := aggregateTotals(stocks, invoices)

	var result []LowStockItem
	for _, k := range keys {
		total := added[k]
		available := total - invoiced[k]
		if total > 0 && float64(available) <= float64(total)*LowStockRatio {
			result = append(result, LowStockItem{
				Maker:     k.Maker,
				Type:      k.Type,
				Item:      k.Item,
				Total:     total,
				Available: available,
			})
		}
	}
	return result
}
