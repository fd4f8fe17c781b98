package controllers

import (
	"errors"
	"net/http"
	"time"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	db *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

type RegisterInput struct {
	Email         string       `json:"email" binding:"required,email"`
	Phone         string       `json:"phone" binding:"required"`
	Name          string       `json:"name" binding:"required"`
	Password      string       `json:"password" binding:"required,min=8"`
	SalonName     string       `json:"salonName" binding:"required"`
	SalonAddress  string       `json:"salonAddress"`
	Timezone      string       `json:"timezone"`
	BusinessHours models.JSONB `json:"businessHours"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // email or phone
	Password   string `json:"password" binding:"required"`
}

// Register creates a salon and its owner account in one transaction.
func (ctl *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existingUser models.User
	result := ctl.db.Where("email = ? OR phone = ?", input.Email, input.Phone).First(&existingUser)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email or phone already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	timezone := input.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Unknown timezone")
		return
	}

	salon := models.Salon{
		Name:          input.SalonName,
		Address:       input.SalonAddress,
		Phone:         input.Phone,
		Email:         input.Email,
		Timezone:      timezone,
		BusinessHours: input.BusinessHours,
		IsActive:      true,
	}
	user := models.User{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // hashed in BeforeCreate hook
		Role:     "owner",
		IsActive: true,
	}

	err := ctl.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&salon).Error; err != nil {
			return err
		}
		user.SalonID = salon.ID
		return tx.Create(&user).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	token, err := utils.GenerateToken(user.ID.String(), salon.ID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":   token,
		"userId":  user.ID,
		"salonId": salon.ID,
	})
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.User
	err := ctl.db.Where("email = ? OR phone = ?", input.Identifier, input.Identifier).
		First(&user).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !user.IsActive || !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	ctl.db.Model(&user).Update("last_login", &now)

	token, err := utils.GenerateToken(user.ID.String(), user.SalonID.String())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"userId":  user.ID,
		"salonId": user.SalonID,
	})
}

func (ctl *AuthController) Me(c *gin.Context) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	var user models.User
	if err := ctl.db.Preload("Salon").First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
		"salonId": user.SalonID,
		"salon":   user.Salon.Name,
	})
}
