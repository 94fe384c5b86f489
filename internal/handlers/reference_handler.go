package handlers

import (
	"log"
	"net/http"
	"slices"

	"go-shop-manager/internal/models"
	"go-shop-manager/internal/store"

	"github.com/gin-gonic/gin"
)

// The reference catalog drives every maker/type/item dropdown in the app:
// one document per maker, holding type name -> item names.

// --- GET: List maker names ---
func GetMakers(c *gin.Context) {
	var refs []models.ItemReference
	if err := store.DB.GetAll(c.Request.Context(), models.ItemRefsCollection, &refs); err != nil {
		log.Println("Failed to fetch item references:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch makers"})
		return
	}

	makers := make([]string, 0, len(refs))
	for _, ref := range refs {
		makers = append(makers, ref.Maker)
	}
	c.JSON(http.StatusOK, makers)
}

// --- GET: One maker's full type/item catalog ---
func GetMakerReference(c *gin.Context) {
	var ref models.ItemReference
	if err := store.DB.GetByID(c.Request.Context(), models.ItemRefsCollection, c.Param("maker"), &ref); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maker not found"})
		return
	}
	if ref.Types == nil {
		ref.Types = map[string][]string{}
	}
	c.JSON(http.StatusOK, ref)
}

// --- GET: Device models for the repair form ---
// The repair intake offers the union of a maker's brand-new and refurbished
// mobile catalogs.
func GetRepairModels(c *gin.Context) {
	var ref models.ItemReference
	if err := store.DB.GetByID(c.Request.Context(), models.ItemRefsCollection, c.Param("maker"), &ref); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maker not found"})
		return
	}

	var merged []string
	for _, typeName := range []string{"Brandnew Mobile", "Refurbished Mobile"} {
		for _, m := range ref.Types[typeName] {
			if !slices.Contains(merged, m) {
				merged = append(merged, m)
			}
		}
	}
	c.JSON(http.StatusOK, merged)
}

type MakerRequest struct {
	Maker string `json:"maker" binding:"required"`
}

// --- POST: Add a maker with an empty catalog ---
func AddMaker(c *gin.Context) {
	var req MakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Enter a maker name"})
		return
	}

	ref := models.ItemReference{Maker: req.Maker, Types: map[string][]string{}}
	if err := store.DB.Put(c.Request.Context(), models.ItemRefsCollection, ref.Maker, ref); err != nil {
		log.Println("Failed to save maker:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save maker"})
		return
	}

	c.JSON(http.StatusCreated, ref)
}

type ReferenceProductRequest struct {
	Type string `json:"type" binding:"required"`
	Item string `json:"item" binding:"required"`
}

// --- POST: Add a product under a maker's type (deduplicated) ---
func AddReferenceProduct(c *gin.Context) {
	var req ReferenceProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fill maker, type & product"})
		return
	}

	ctx := c.Request.Context()
	maker := c.Param("maker")

	var ref models.ItemReference
	if err := store.DB.GetByID(ctx, models.ItemRefsCollection, maker, &ref); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maker not found"})
		return
	}
	if ref.Types == nil {
		ref.Types = map[string][]string{}
	}
	if !slices.Contains(ref.Types[req.Type], req.Item) {
		ref.Types[req.Type] = append(ref.Types[req.Type], req.Item)
	}

	if err := store.DB.Put(ctx, models.ItemRefsCollection, maker, ref); err != nil {
		log.Println("Failed to save item reference:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save product"})
		return
	}

	c.JSON(http.StatusOK, ref)
}

// --- DELETE: Remove a product (?type=...&item=...) ---
// The type key disappears once its last item is removed.
func DeleteReferenceProduct(c *gin.Context) {
	typeName := c.Query("type")
	itemName := c.Query("item")
	if typeName == "" || itemName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type and item are required"})
		return
	}

	ctx := c.Request.Context()
	maker := c.Param("maker")

	var ref models.ItemReference
	if err := store.DB.GetByID(ctx, models.ItemRefsCollection, maker, &ref); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maker not found"})
		return
	}

	updated := slices.DeleteFunc(slices.Clone(ref.Types[typeName]), func(p string) bool {
		return p == itemName
	})
	if len(updated) == 0 {
		delete(ref.Types, typeName)
	} else {
		ref.Types[typeName] = updated
	}

	if err := store.DB.Put(ctx, models.ItemRefsCollection, maker, ref); err != nil {
		log.Println("Failed to save item reference:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, ref)
}

type RenameProductRequest struct {
	Type    string `json:"type" binding:"required"`
	OldName string `json:"oldName" binding:"required"`
	NewName string `json:"newName" binding:"required"`
}

// renameProduct rewrites every occurrence of oldName under typeName. Safe on
// maker documents stored without a types field.
func renameProduct(ref *models.ItemReference, typeName, oldName, newName string) {
	if ref.Types == nil {
		ref.Types = map[string][]string{}
	}
	list := ref.Types[typeName]
	for i, p := range list {
		if p == oldName {
			list[i] = newName
		}
	}
	ref.Types[typeName] = list
}

// --- PUT: Rename a product within a type ---
func RenameReferenceProduct(c *gin.Context) {
	var req RenameProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name cannot be empty"})
		return
	}

	ctx := c.Request.Context()
	maker := c.Param("maker")

	var ref models.ItemReference
	if err := store.DB.GetByID(ctx, models.ItemRefsCollection, maker, &ref); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Maker not found"})
		return
	}

	renameProduct(&ref, req.Type, req.OldName, req.NewName)

	if err := store.DB.Put(ctx, models.ItemRefsCollection, maker, ref); err != nil {
		log.Println("Failed to save item reference:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rename product"})
		return
	}

	c.JSON(http.StatusOK, ref)
}
