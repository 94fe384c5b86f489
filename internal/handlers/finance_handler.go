package handlers

import (
	"log"
	"net/http"
	"time"

	"go-shop-manager/internal/models"
	"go-shop-manager/internal/reports"
	"go-shop-manager/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// parseMonth parses the finance screen's "YYYY-MM" month picker value.
func parseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}

// --- GET: Expense categories ---
func GetExpenseCategories(c *gin.Context) {
	var cats []models.ExpenseCategory
	if err := store.DB.GetAll(c.Request.Context(), models.ExpenseCatsCollection, &cats); err != nil {
		log.Println("Failed to fetch expense categories:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, cats)
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// --- POST: Add an expense category ---
func AddExpenseCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name is required"})
		return
	}

	cat := models.ExpenseCategory{ID: uuid.NewString(), Name: req.Name}
	if err := store.DB.Put(c.Request.Context(), models.ExpenseCatsCollection, cat.ID, cat); err != nil {
		log.Println("Failed to save expense category:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save category"})
		return
	}

	c.JSON(http.StatusCreated, cat)
}

type ExpenseRequest struct {
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description"`
}

// --- POST: Record an expense (dated now) ---
func AddExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select a category and enter a valid amount"})
		return
	}

	exp := models.Expense{
		ID:          uuid.NewString(),
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        time.Now(),
	}

	if err := store.DB.Put(c.Request.Context(), models.ExpensesCollection, exp.ID, exp); err != nil {
		log.Println("Failed to save expense:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save expense"})
		return
	}

	c.JSON(http.StatusCreated, exp)
}

// --- GET: Expenses for one month (?month=YYYY-MM) ---
func GetExpenses(c *gin.Context) {
	year, month, err := parseMonth(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be in YYYY-MM format"})
		return
	}

	loc := time.FixedZone("UTC+5:30", reportOffsetSeconds)
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	var expenses []models.Expense
	err = store.DB.Query(c.Request.Context(), models.ExpensesCollection, bson.M{
		"date": bson.M{"$gte": start, "$lt": end},
	}, &expenses)
	if err != nil {
		log.Println("Failed to fetch expenses:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}

	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	c.JSON(http.StatusOK, gin.H{"expenses": expenses, "total": total})
}

// --- DELETE: Remove an expense ---
func DeleteExpense(c *gin.Context) {
	if err := store.DB.Delete(c.Request.Context(), models.ExpensesCollection, c.Param("id")); err != nil {
		log.Println("Failed to delete expense:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// --- GET: Monthly revenue rollup (?month=YYYY-MM) ---
// Recomputed from full snapshots of both collections every time, like every
// other report.
func GetMonthlyRevenue(c *gin.Context) {
	year, month, err := parseMonth(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be in YYYY-MM format"})
		return
	}

	ctx := c.Request.Context()

	var invoices []models.Invoice
	if err := store.DB.GetAll(ctx, models.InvoicesCollection, &invoices); err != nil {
		log.Println("Failed to fetch invoices:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch revenue data"})
		return
	}
	var tasks []models.ServiceTask
	if err := store.DB.GetAll(ctx, models.ServiceTasksCollection, &tasks); err != nil {
		log.Println("Failed to fetch service tasks:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch revenue data"})
		return
	}

	summary := reports.ComputeMonthlyRevenue(year, month, invoices, tasks)
	c.JSON(http.StatusOK, gin.H{
		"invoicesTotal":     summary.InvoicesTotal,
		"serviceTasksTotal": summary.ServiceTasksTotal,
		"revenue":           summary.InvoicesTotal + summary.ServiceTasksTotal,
	})
}
