package handlers

import (
	"errors"
	"log"
	"net/http"

	"go-shop-manager/internal/models"
	"go-shop-manager/internal/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// --- GET: List all users (admin only) ---
func GetUsers(c *gin.Context) {
	var users []models.User
	if err := store.DB.GetAll(c.Request.Context(), models.UsersCollection, &users); err != nil {
		log.Println("Failed to fetch users:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type UserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=user admin"`
}

// --- POST: Create a user (admin only) ---
func AddUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fill all fields"})
		return
	}

	ctx := c.Request.Context()

	var existing models.User
	err := store.DB.GetByID(ctx, models.UsersCollection, req.Username, &existing)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Println("Failed to check user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
	}

	if err := store.DB.Put(ctx, models.UsersCollection, user.Username, user); err != nil {
		log.Println("Failed to save user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User added"})
}

// --- PUT: Flip a user between 'user' and 'admin' (admin only) ---
func ToggleUserRole(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.Param("username")

	var user models.User
	if err := store.DB.GetByID(ctx, models.UsersCollection, username, &user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Role == "admin" {
		user.Role = "user"
	} else {
		user.Role = "admin"
	}

	if err := store.DB.Put(ctx, models.UsersCollection, username, user); err != nil {
		log.Println("Failed to update user role:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// --- DELETE: Remove a user (admin only) ---
func DeleteUser(c *gin.Context) {
	if err := store.DB.Delete(c.Request.Context(), models.UsersCollection, c.Param("username")); err != nil {
		log.Println("Failed to delete user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
