package handlers

import (
	"context"
	"log"
	"net/http"
	"slices"

	"go-shop-manager/internal/models"
	"go-shop-manager/internal/store"
	"go-shop-manager/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// --- GET: List all stock entries ---
func GetStocks(c *gin.Context) {
	var stocks []models.StockEntry
	if err := store.DB.GetAll(c.Request.Context(), models.StocksCollection, &stocks); err != nil {
		log.Println("Failed to fetch stocks:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stock entries"})
		return
	}
	c.JSON(http.StatusOK, stocks)
}

// StockRequest defines what the intake form sends us.
type StockRequest struct {
	Maker         string  `json:"maker" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Item          string  `json:"item" binding:"required"`
	Quantity      int     `json:"quantity" binding:"required,gt=0"`
	SupplierName  string  `json:"supplierName" binding:"required"`
	SupplierPhone string  `json:"supplierPhone" binding:"required"`
	UnitPrice     float64 `json:"unitPrice" binding:"required,gt=0"`
	Date          string  `json:"date" binding:"required"`
}

// --- POST: Record a stock intake ---
// The server generates the stock ID and hands it back so the shop can label
// the goods.
func AddStock(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill all fields with valid values"})
		return
	}

	ctx := c.Request.Context()

	// The maker/type/item triple must exist in the reference catalog.
	var ref models.ItemReference
	if err := store.DB.GetByID(ctx, models.ItemRefsCollection, req.Maker, &ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maker selected"})
		return
	}
	items, ok := ref.Types[req.Type]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type selected"})
		return
	}
	if !slices.Contains(items, req.Item) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item selected"})
		return
	}

	entry := models.StockEntry{
		StockID:       utils.GenerateStockID(req.Type),
		Maker:         req.Maker,
		Type:          req.Type,
		Item:          req.Item,
		Quantity:      req.Quantity,
		SupplierName:  req.SupplierName,
		SupplierPhone: req.SupplierPhone,
		UnitPrice:     req.UnitPrice,
		Date:          req.Date,
		EnteredBy:     c.MustGet("username").(string),
	}

	if err := store.DB.Put(ctx, models.StocksCollection, entry.StockID, entry); err != nil {
		log.Println("Failed to save stock entry:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save stock entry"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "This is your stock ID - " + entry.StockID,
		"stockId": entry.StockID,
	})
}

// pricingCleanupStore is the slice of the store the cascade check needs.
type pricingCleanupStore interface {
	Query(ctx context.Context, collection string, filter bson.M, out any) error
	Delete(ctx context.Context, collection, id string) error
}

// cleanupOrphanedPricing removes the pricing record sharing a deleted stock
// entry's ID once no other entries carry its (maker, type, item) key.
func cleanupOrphanedPricing(ctx context.Context, s pricingCleanupStore, entry models.StockEntry) error {
	var remaining []models.StockEntry
	err := s.Query(ctx, models.StocksCollection, bson.M{
		"maker": entry.Maker,
		"type":  entry.Type,
		"item":  entry.Item,
	}, &remaining)
	if err != nil {
		return err
	}

	if len(remaining) == 0 {
		if err := s.Delete(ctx, models.PricingCollection, entry.StockID); err != nil {
			log.Println("Failed to delete orphaned pricing record:", err)
		}
	}
	return nil
}

// --- DELETE: Remove a stock entry ---
// When the deleted entry was the last one for its (maker, type, item) key,
// the pricing record sharing its stock ID goes with it.
func DeleteStock(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var entry models.StockEntry
	if err := store.DB.GetByID(ctx, models.StocksCollection, id, &entry); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Stock entry not found"})
		return
	}

	if err := store.DB.Delete(ctx, models.StocksCollection, id); err != nil {
		log.Println("Failed to delete stock entry:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete stock entry"})
		return
	}

	if err := cleanupOrphanedPricing(ctx, store.DB, entry); err != nil {
		log.Println("Failed to check remaining stocks:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stock deleted, but cleanup check failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock entry deleted successfully"})
}
