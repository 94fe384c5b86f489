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
)

// parseDateInput accepts both shapes the repair form produces: a plain date
// and a datetime-local value.
func parseDateInput(s string) (time.Time, error) {
	loc := time.FixedZone("UTC+5:30", reportOffsetSeconds)
	if t, err := time.ParseInLocation("2006-01-02T15:04", s, loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}

const reportOffsetSeconds = 330 * 60

// RepairJobRequest defines what the repair intake form sends us.
type RepairJobRequest struct {
	CustomerName       string  `json:"customerName" binding:"required"`
	CustomerPhone      string  `json:"customerPhone" binding:"required"`
	Address            string  `json:"address" binding:"required"`
	Maker              string  `json:"maker" binding:"required"`
	Model              string  `json:"model" binding:"required"`
	IMEI               string  `json:"imei"`
	Remarks            string  `json:"remarks" binding:"required"`
	Malfunction        string  `json:"malfunction" binding:"required"`
	StartDate          string  `json:"startDate" binding:"required"`
	HandoverDate       string  `json:"handoverDate" binding:"required"`
	AdvanceAmount      float64 `json:"advanceAmount" binding:"required,gt=0"`
	TotalPayment       float64 `json:"totalPayment" binding:"required,gt=0"`
	AssignedTechnician string  `json:"assignedTechnician" binding:"required"`
}

// --- POST: Start a repair job ---
// Issues the next job number first; if that fails, nothing is persisted.
func StartRepairJob(c *gin.Context) {
	var req RepairJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all required fields"})
		return
	}

	startDate, err := parseDateInput(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}
	handoverDate, err := parseDateInput(req.HandoverDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid handover date"})
		return
	}

	ctx := c.Request.Context()

	number, err := sequence.NextNumber(ctx, store.DB, sequence.ServiceCounter, sequence.ServiceJobStart)
	if err != nil {
		log.Println("Failed to issue service job number:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice number"})
		return
	}

	task := models.ServiceTask{
		ID:                 uuid.NewString(),
		InvoiceNumber:      number,
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		Address:            req.Address,
		Maker:              req.Maker,
		Model:              req.Model,
		IMEI:               req.IMEI,
		Remarks:            req.Remarks,
		Malfunction:        req.Malfunction,
		StartDate:          startDate,
		HandoverDate:       handoverDate,
		AdvanceAmount:      req.AdvanceAmount,
		TotalPayment:       req.TotalPayment,
		CreatedAt:          time.Now(),
		CreatedBy:          c.MustGet("username").(string),
		AssignedTechnician: req.AssignedTechnician,
		TaskCompleted:      0,
	}

	if err := store.DB.Put(ctx, models.ServiceTasksCollection, task.ID, task); err != nil {
		log.Println("Failed to save service task:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error starting service task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// --- GET: List all repair jobs ---
func GetRepairJobs(c *gin.Context) {
	var tasks []models.ServiceTask
	if err := store.DB.GetAll(c.Request.Context(), models.ServiceTasksCollection, &tasks); err != nil {
		log.Println("Failed to fetch service tasks:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch service tasks"})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// --- GET: One repair job, for the printable job sheet ---
func GetRepairJob(c *gin.Context) {
	var task models.ServiceTask
	if err := store.DB.GetByID(c.Request.Context(), models.ServiceTasksCollection, c.Param("id"), &task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// --- PUT: Mark a job completed, all payment settled ---
func CompleteRepairJob(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var task models.ServiceTask
	if err := store.DB.GetByID(ctx, models.ServiceTasksCollection, id, &task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service task not found"})
		return
	}

	now := time.Now()
	task.TaskCompleted = 1
	task.TaskCompletedAt = &now

	if err := store.DB.Put(ctx, models.ServiceTasksCollection, id, task); err != nil {
		log.Println("Failed to complete service task:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error completing task"})
		return
	}

	c.JSON(http.StatusOK, task)
}

type ExtendRequest struct {
	HandoverDate string `json:"handoverDate" binding:"required"`
}

// --- PUT: Extend the promised handover date ---
func ExtendHandover(c *gin.Context) {
	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select a new date and time"})
		return
	}

	handoverDate, err := parseDateInput(req.HandoverDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid handover date"})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	var task models.ServiceTask
	if err := store.DB.GetByID(ctx, models.ServiceTasksCollection, id, &task); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Service task not found"})
		return
	}

	task.HandoverDate = handoverDate

	if err := store.DB.Put(ctx, models.ServiceTasksCollection, id, task); err != nil {
		log.Println("Failed to extend handover date:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating date"})
		return
	}

	c.JSON(http.StatusOK, task)
}

// --- DELETE: Remove a repair job ---
func DeleteRepairJob(c *gin.Context) {
	if err := store.DB.Delete(c.Request.Context(), models.ServiceTasksCollection, c.Param("id")); err != nil {
		log.Println("Failed to delete service task:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
