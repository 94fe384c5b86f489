package handlers

import (
	"log"
	"net/http"
	"time"

	"go-shop-manager/internal/models"
	"go-shop-manager/internal/reports"
	"go-shop-manager/internal/store"

	"github.com/gin-gonic/gin"
)

// fetchStocksAndInvoices loads the two collections every stock report needs.
func fetchStocksAndInvoices(c *gin.Context) ([]models.StockEntry, []models.Invoice, bool) {
	ctx := c.Request.Context()

	var stocks []models.StockEntry
	if err := store.DB.GetAll(ctx, models.StocksCollection, &stocks); err != nil {
		log.Println("Failed to fetch stocks:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock data"})
		return nil, nil, false
	}
	var invoices []models.Invoice
	if err := store.DB.GetAll(ctx, models.InvoicesCollection, &invoices); err != nil {
		log.Println("Failed to fetch invoices:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoice data"})
		return nil, nil, false
	}
	return stocks, invoices, true
}

// --- GET: /api/reports/summary ---
// The stock summary table: added vs. invoiced vs. available per item key.
func GetStockSummary(c *gin.Context) {
	stocks, invoices, ok := fetchStocksAndInvoices(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, reports.ComputeAvailability(stocks, invoices))
}

// --- GET: /api/reports/today ---
// The dashboard's headline numbers plus the low-stock warning list.
func GetTodayReport(c *gin.Context) {
	stocks, invoices, ok := fetchStocksAndInvoices(c)
	if !ok {
		return
	}

	var tasks []models.ServiceTask
	if err := store.DB.GetAll(c.Request.Context(), models.ServiceTasksCollection, &tasks); err != nil {
		log.Println("Failed to fetch service tasks:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service tasks"})
		return
	}

	daily := reports.ComputeDailyRevenue(time.Now(), invoices, tasks)
	c.JSON(http.StatusOK, gin.H{
		"invoiceCount": daily.InvoiceCount,
		"itemsSold":    daily.ItemsSold,
		"revenue":      daily.Revenue,
		"lowStock":     reports.ComputeLowStock(stocks, invoices),
	})
}

// --- GET: /api/reports/due-repairs ---
// Repair jobs promised back today and still open.
func GetDueRepairs(c *gin.Context) {
	var tasks []models.ServiceTask
	if err := store.DB.GetAll(c.Request.Context(), models.ServiceTasksCollection, &tasks); err != nil {
		log.Println("Failed to fetch service tasks:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service tasks"})
		return
	}
	c.JSON(http.StatusOK, reports.DueToday(time.Now(), tasks))
}
