package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"go-shop-manager/internal/models"
	"go-shop-manager/internal/store"

	"github.com/gin-gonic/gin"
)

// --- GET: List all pricing records ---
func GetPricing(c *gin.Context) {
	var records []models.PricingRecord
	if err := store.DB.GetAll(c.Request.Context(), models.PricingCollection, &records); err != nil {
		log.Println("Failed to fetch pricing:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pricing records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// --- GET: Look up the pricing record for a scanned stock ID ---
// A missing record is not a failure: the invoice form prompts the user to
// re-enter the ID. A record with no usable price is rejected the same way.
func LookupPricing(c *gin.Context) {
	id := c.Param("stockId")

	var record models.PricingRecord
	err := store.DB.GetByID(c.Request.Context(), models.PricingCollection, id, &record)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock ID not found in pricing"})
		return
	}
	if err != nil {
		log.Println("Failed to look up pricing:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up pricing"})
		return
	}

	if record.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This item does not have a valid price. It cannot be added."})
		return
	}

	c.JSON(http.StatusOK, record)
}

type PriceRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// --- PUT: Set the selling price for a stock entry ---
// The pricing record mirrors the stock entry's identity key so invoices can
// be built from pricing alone.
func SetPrice(c *gin.Context) {
	id := c.Param("stockId")

	var req PriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select an item and enter a valid price"})
		return
	}

	ctx := c.Request.Context()

	var entry models.StockEntry
	if err := store.DB.GetByID(ctx, models.StocksCollection, id, &entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock item selected"})
		return
	}

	record := models.PricingRecord{
		StockID:   id,
		Maker:     entry.Maker,
		Type:      entry.Type,
		Item:      entry.Item,
		Price:     req.Price,
		UpdatedBy: c.MustGet("username").(string),
		UpdatedAt: time.Now(),
	}

	if err := store.DB.Put(ctx, models.PricingCollection, id, record); err != nil {
		log.Println("Failed to save pricing record:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save price"})
		return
	}

	c.JSON(http.StatusOK, record)
}
