package handlers

import (
	"log"
	"net/http"
	"time"

	"go-shop-manager/internal/models"
	"go-shop-manager/internal/sequence"
	"go-shop-manager/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// --- POST: Draw the next invoice number ---
// The invoice form draws its number when it opens and only consumes it on
// save. An abandoned form therefore leaves a permanent gap in the numbering;
// the shop accepts that, so don't move issuance into the save path.
func NextInvoiceNumber(c *gin.Context) {
	n, err := sequence.NextNumber(c.Request.Context(), store.DB, sequence.InvoiceCounter, sequence.InvoiceStart)
	if err != nil {
		log.Println("Failed to issue invoice number:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice number"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"number": sequence.Format(n)})
}

// InvoiceLineRequest is one line of the invoice being saved.
type InvoiceLineRequest struct {
	Maker         string  `json:"maker" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Item          string  `json:"item" binding:"required"`
	StockID       string  `json:"stockId" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	OriginalPrice float64 `json:"originalPrice"`
}

// InvoiceRequest defines what the invoice form sends on save.
type InvoiceRequest struct {
	Number    string               `json:"number" binding:"required"`
	Customer  models.Customer      `json:"customer"`
	Reference string               `json:"reference"`
	Items     []InvoiceLineRequest `json:"items" binding:"required,min=1,dive"`
}

// --- POST: Save an invoice ---
// Created once, atomically, at save time; immutable afterwards.
func SaveInvoice(c *gin.Context) {
	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Add at least one valid line item"})
		return
	}

	items := make([]models.InvoiceLineItem, 0, len(req.Items))
	hasChanges := 0
	for _, line := range req.Items {
		changed := 0
		if line.Price != line.OriginalPrice {
			changed = 1
			hasChanges = 1
		}
		items = append(items, models.InvoiceLineItem{
			Maker:         line.Maker,
			Type:          line.Type,
			Item:          line.Item,
			StockID:       line.StockID,
			Quantity:      line.Quantity,
			Price:         line.Price,
			OriginalPrice: line.OriginalPrice,
			ChangedPrice:  changed,
		})
	}

	inv := models.Invoice{
		ID:               uuid.NewString(),
		Number:           req.Number,
		Customer:         req.Customer,
		Reference:        req.Reference,
		Items:            items,
		CreatedAt:        time.Now(),
		CreatedBy:        c.MustGet("username").(string),
		HasChangedPrices: hasChanges,
	}

	if err := store.DB.Put(c.Request.Context(), models.InvoicesCollection, inv.ID, inv); err != nil {
		log.Println("Failed to save invoice:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving invoice"})
		return
	}

	c.JSON(http.StatusCreated, inv)
}

// --- GET: Recent invoices, newest first ---
func GetInvoices(c *gin.Context) {
	var invoices []models.Invoice
	err := store.DB.QuerySorted(c.Request.Context(), models.InvoicesCollection,
		bson.M{}, bson.D{{Key: "createdAt", Value: -1}}, 50, &invoices)
	if err != nil {
		log.Println("Failed to fetch invoices:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// --- GET: One invoice, for the printable view ---
func GetInvoice(c *gin.Context) {
	var inv models.Invoice
	if err := store.DB.GetByID(c.Request.Context(), models.InvoicesCollection, c.Param("id"), &inv); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// --- DELETE: Remove an invoice ---
func DeleteInvoice(c *gin.Context) {
	if err := store.DB.Delete(c.Request.Context(), models.InvoicesCollection, c.Param("id")); err != nil {
		log.Println("Failed to delete invoice:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete invoice"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
