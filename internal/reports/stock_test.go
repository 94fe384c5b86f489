package reports

import (
	"testing"

	"go-shop-manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stockEntry(maker, typ, item string, qty int) models.StockEntry {
	return models.StockEntry{Maker: maker, Type: typ, Item: item, Quantity: qty}
}

func invoiceWith(lines ...models.InvoiceLineItem) models.Invoice {
	return models.Invoice{Items: lines}
}

func line(maker, typ, item string, qty int) models.InvoiceLineItem {
	return models.InvoiceLineItem{Maker: maker, Type: typ, Item: item, Quantity: qty}
}

func TestComputeAvailability(t *testing.T) {
	stocks := []models.StockEntry{
		stockEntry("Acme", "Brandnew Mobile", "X1", 10),
	}
	invoices := []models.Invoice{
		invoiceWith(line("Acme", "Brandnew Mobile", "X1", 8)),
	}

	rows := ComputeAvailability(stocks, invoices)
	require.Len(t, rows, 1)

	assert.Equal(t, "Acme", rows[0].Maker)
	assert.Equal(t, 10, rows[0].TotalAdded)
	assert.Equal(t, 8, rows[0].TotalInvoiced)
	assert.Equal(t, 2, rows[0].Available)
	assert.True(t, rows[0].LowStock) // 2 of 10 left, at the quarter mark
}

func TestComputeAvailabilitySumsAcrossEntries(t *testing.T) {
	stocks := []models.StockEntry{
		stockEntry("Acme", "Charger and Cables", "USB-C", 5),
		stockEntry("Acme", "Charger and Cables", "USB-C", 7),
	}
	invoices := []models.Invoice{
		invoiceWith(line("Acme", "Charger and Cables", "USB-C", 2)),
		invoiceWith(line("Acme", "Charger and Cables", "USB-C", 1)),
	}

	rows := ComputeAvailability(stocks, invoices)
	require.Len(t, rows, 1)

	assert.Equal(t, 12, rows[0].TotalAdded)
	assert.Equal(t, 3, rows[0].TotalInvoiced)
	assert.Equal(t, 9, rows[0].Available)
	assert.False(t, rows[0].LowStock)
}

func TestComputeAvailabilityZeroesEqualTotals(t *testing.T) {
	stocks := []models.StockEntry{
		stockEntry("Acme", "Brandnew Watch", "W2", 5),
	}
	invoices := []models.Invoice{
		invoiceWith(line("Acme", "Brandnew Watch", "W2", 5)),
	}

	rows := ComputeAvailability(stocks, invoices)
	require.Len(t, rows, 1)

	// Fully sold out: the displayed totals collapse to zero, but the row
	// still carries the low-stock flag from the real numbers.
	assert.Equal(t, 0, rows[0].TotalAdded)
	assert.Equal(t, 0, rows[0].TotalInvoiced)
	assert.Equal(t, 0, rows[0].Available)
	assert.True(t, rows[0].LowStock)
}

func TestComputeAvailabilityInvoiceOnlyKey(t *testing.T) {
	invoices := []models.Invoice{
		invoiceWith(line("Acme", "Power Banks", "PB-10", 3)),
	}

	rows := ComputeAvailability(nil, invoices)
	require.Len(t, rows, 1)

	assert.Equal(t, 0, rows[0].TotalAdded)
	assert.Equal(t, 3, rows[0].TotalInvoiced)
	assert.Equal(t, -3, rows[0].Available)
	assert.False(t, rows[0].LowStock) // nothing was ever added
}

func TestComputeAvailabilityLowStockBoundary(t *testing.T) {
	stocks := []models.StockEntry{
		stockEntry("Acme", "Tempered Glasses", "TG-A", 8),
	}

	atQuarter := []models.Invoice{invoiceWith(line("Acme", "Tempered Glasses", "TG-A", 6))}
	rows := ComputeAvailability(stocks, atQuarter)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].LowStock) // 2 of 8 is exactly a quarter

	aboveQuarter := []models.Invoice{invoiceWith(line("Acme", "Tempered Glasses", "TG-A", 5))}
	rows = ComputeAvailability(stocks, aboveQuarter)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].LowStock) // 3 of 8 is above it
}

func TestComputeLowStockKeepsRawTotals(t *testing.T) {
	stocks := []models.StockEntry{
		stockEntry("Acme", "Brandnew Mobile", "X1", 10),
		stockEntry("Acme", "Speaker/Headphones/Buds", "Buds Pro", 20),
	}
	invoices := []models.Invoice{
		invoiceWith(
			line("Acme", "Brandnew Mobile", "X1", 10),
			line("Acme", "Speaker/Headphones/Buds", "Buds Pro", 5),
		),
	}

	warnings := ComputeLowStock(stocks, invoices)
	require.Len(t, warnings, 1)

	// Unlike the summary screen, the dashboard warning shows what was really
	// added even for sold-out items.
	assert.Equal(t, "X1", warnings[0].Item)
	assert.Equal(t, 10, warnings[0].Total)
	assert.Equal(t, 0, warnings[0].Available)
}
