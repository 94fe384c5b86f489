package reports

import (
	"time"

	"go-shop-manager/internal/models"
)

// TimeZoneOffsetMinutes pins all calendar-day comparisons to UTC+5:30, the
// shop's timezone, regardless of where the server runs.
const TimeZoneOffsetMinutes = 330

// SameDay reports whether two instants fall on the same calendar day after
// shifting both by the fixed offset and reading the date components in UTC.
func SameDay(a, b time.Time, offsetMinutes int) bool {
	shift := time.Duration(offsetMinutes) * time.Minute
	as := a.Add(shift).UTC()
	bs := b.Add(shift).UTC()
	return as.Year() == bs.Year() && as.Month() == bs.Month() && as.Day() == bs.Day()
}

// sameMonth applies the same shifted calendar to month membership.
func sameMonth(t time.Time, year int, month time.Month, offsetMinutes int) bool {
	s := t.Add(time.Duration(offsetMinutes) * time.Minute).UTC()
	return s.Year() == year && s.Month() == month
}

// DailySummary is the dashboard's today-so-far rollup. Revenue combines
// invoice line totals, advances on repair jobs opened today, and the
// remaining balance of jobs completed today.
type DailySummary struct {
	InvoiceCount int     `json:"invoiceCount"`
	ItemsSold    int     `json:"itemsSold"`
	Revenue      float64 `json:"revenue"`
}

// ComputeDailyRevenue rolls up today's figures relative to now.
func ComputeDailyRevenue(now time.Time, invoices []models.Invoice, tasks []models.ServiceTask) DailySummary {
	var out DailySummary

	for _, inv := range invoices {
		if !SameDay(inv.CreatedAt, now, TimeZoneOffsetMinutes) {
			continue
		}
		out.InvoiceCount++
		for _, li := range inv.Items {
			out.Revenue += li.Price * float64(li.Quantity)
			out.ItemsSold += li.Quantity
		}
	}

	for _, task := range tasks {
		if SameDay(task.CreatedAt, now, TimeZoneOffsetMinutes) {
			out.Revenue += task.AdvanceAmount
		}
		if task.TaskCompleted == 1 && task.TaskCompletedAt != nil &&
			SameDay(*task.TaskCompletedAt, now, TimeZoneOffsetMinutes) {
			// The advance was already counted on the day the job opened;
			// completion only brings in the balance.
			out.Revenue += task.TotalPayment - task.AdvanceAmount
		}
	}

	return out
}

// MonthlySummary is the finance screen's revenue side for one month.
// ServiceTasksTotal counts whatever has actually been collected as of
// evaluation time: the full payment for completed jobs, the advance for
// jobs still open.
type MonthlySummary struct {
	InvoicesTotal     float64 `json:"invoicesTotal"`
	ServiceTasksTotal float64 `json:"serviceTasksTotal"`
}

// ComputeMonthlyRevenue rolls up a calendar month by creation date.
func ComputeMonthlyRevenue(year int, month time.Month, invoices []models.Invoice, tasks []models.ServiceTask) MonthlySummary {
	var out MonthlySummary

	for _, inv := range invoices {
		if sameMonth(inv.CreatedAt, year, month, TimeZoneOffsetMinutes) {
			out.InvoicesTotal += inv.Total()
		}
	}

	for _, task := range tasks {
		if !sameMonth(task.CreatedAt, year, month, TimeZoneOffsetMinutes) {
			continue
		}
		if task.TaskCompleted == 1 {
			out.ServiceTasksTotal += task.TotalPayment
		} else {
			out.ServiceTasksTotal += task.AdvanceAmount
		}
	}

	return out
}

// DueToday lists repair jobs whose handover date is today and which are
// still open.
func DueToday(now time.Time, tasks []models.ServiceTask) []models.ServiceTask {
	var due []models.ServiceTask
	for _, task := range tasks {
		if task.TaskCompleted == 0 && SameDay(task.HandoverDate, now, TimeZoneOffsetMinutes) {
			due = append(due, task)
		}
	}
	return due
}
