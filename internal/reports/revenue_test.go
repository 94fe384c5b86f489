package reports

import (
	"testing"
	"time"

	"go-shop-manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shopZone = time.FixedZone("UTC+5:30", TimeZoneOffsetMinutes*60)

func TestSameDayShiftedCalendar(t *testing.T) {
	// 23:30 UTC on March 1 is already 05:00 on March 2 in the shop's zone.
	lateUTC := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	localMorning := time.Date(2026, 3, 2, 9, 0, 0, 0, shopZone)

	assert.True(t, SameDay(lateUTC, localMorning, TimeZoneOffsetMinutes))
	assert.False(t, SameDay(lateUTC, localMorning, 0))

	sameInstantTwice := time.Date(2026, 3, 2, 12, 0, 0, 0, shopZone)
	assert.True(t, SameDay(sameInstantTwice, sameInstantTwice, TimeZoneOffsetMinutes))
}

func TestComputeDailyRevenue(t *testing.T) {
	now := time.Date(2026, 3, 2, 14, 0, 0, 0, shopZone)
	yesterday := now.AddDate(0, 0, -1)

	invoices := []models.Invoice{
		{
			CreatedAt: now.Add(-2 * time.Hour),
			Items: []models.InvoiceLineItem{
				{Quantity: 2, Price: 100},
				{Quantity: 1, Price: 50},
			},
		},
		{
			CreatedAt: yesterday,
			Items:     []models.InvoiceLineItem{{Quantity: 5, Price: 999}},
		},
	}

	completedAt := now.Add(-1 * time.Hour)
	tasks := []models.ServiceTask{
		// Opened today: only the advance counts.
		{CreatedAt: now.Add(-3 * time.Hour), AdvanceAmount: 30, TotalPayment: 120},
		// Opened yesterday, completed today: the remaining balance counts.
		{
			CreatedAt:       yesterday,
			AdvanceAmount:   50,
			TotalPayment:    200,
			TaskCompleted:   1,
			TaskCompletedAt: &completedAt,
		},
		// Opened and still open on another day: nothing counts.
		{CreatedAt: yesterday, AdvanceAmount: 75, TotalPayment: 300},
	}

	daily := ComputeDailyRevenue(now, invoices, tasks)

	assert.Equal(t, 1, daily.InvoiceCount)
	assert.Equal(t, 3, daily.ItemsSold)
	assert.InDelta(t, 250+30+150, daily.Revenue, 0.001)
}

func TestComputeDailyRevenueSameDayOpenAndComplete(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 0, 0, 0, shopZone)
	completedAt := now.Add(-1 * time.Hour)

	tasks := []models.ServiceTask{
		{
			CreatedAt:       now.Add(-5 * time.Hour),
			AdvanceAmount:   40,
			TotalPayment:    150,
			TaskCompleted:   1,
			TaskCompletedAt: &completedAt,
		},
	}

	// Advance on opening plus balance on completion adds up to the full payment.
	daily := ComputeDailyRevenue(now, nil, tasks)
	assert.InDelta(t, 150, daily.Revenue, 0.001)
}

func TestComputeMonthlyRevenue(t *testing.T) {
	march := func(day int) time.Time {
		return time.Date(2026, 3, day, 12, 0, 0, 0, shopZone)
	}

	invoices := []models.Invoice{
		{CreatedAt: march(5), Items: []models.InvoiceLineItem{{Quantity: 2, Price: 100}}},
		{CreatedAt: march(20), Items: []models.InvoiceLineItem{{Quantity: 1, Price: 300}}},
		{CreatedAt: time.Date(2026, 4, 1, 12, 0, 0, 0, shopZone),
			Items: []models.InvoiceLineItem{{Quantity: 1, Price: 999}}},
	}

	tasks := []models.ServiceTask{
		// Completed: full payment, regardless of when it completed.
		{CreatedAt: march(3), AdvanceAmount: 50, TotalPayment: 200, TaskCompleted: 1},
		// Still open: only the advance so far.
		{CreatedAt: march(10), AdvanceAmount: 25, TotalPayment: 500},
		// Different month.
		{CreatedAt: time.Date(2026, 2, 28, 12, 0, 0, 0, shopZone),
			AdvanceAmount: 10, TotalPayment: 100},
	}

	summary := ComputeMonthlyRevenue(2026, time.March, invoices, tasks)

	assert.InDelta(t, 500, summary.InvoicesTotal, 0.001)
	assert.InDelta(t, 225, summary.ServiceTasksTotal, 0.001)
}

func TestComputeMonthlyRevenueShiftedMonthBoundary(t *testing.T) {
	// 20:00 UTC on March 31 is already April 1 in the shop's zone.
	lateMarchUTC := time.Date(2026, 3, 31, 20, 0, 0, 0, time.UTC)
	invoices := []models.Invoice{
		{CreatedAt: lateMarchUTC, Items: []models.InvoiceLineItem{{Quantity: 1, Price: 100}}},
	}

	assert.Zero(t, ComputeMonthlyRevenue(2026, time.March, invoices, nil).InvoicesTotal)
	assert.InDelta(t, 100, ComputeMonthlyRevenue(2026, time.April, invoices, nil).InvoicesTotal, 0.001)
}

func TestDueToday(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, shopZone)

	tasks := []models.ServiceTask{
		{ID: "due", HandoverDate: now.Add(6 * time.Hour)},
		{ID: "done", HandoverDate: now.Add(2 * time.Hour), TaskCompleted: 1},
		{ID: "tomorrow", HandoverDate: now.AddDate(0, 0, 1)},
	}

	due := DueToday(now, tasks)
	require.Len(t, due, 1)
	assert.Equal(t, "due", due[0].ID)
}
