package controllers

import (
	"errors"
	"net/http"

	"glowdesk-backend/models"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CustomerController struct {
	db *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{db: db}
}

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name        string       `json:"name" binding:"required"`
	Phone       string       `json:"phone" binding:"required"`
	Email       *string      `json:"email"`
	Preferences models.JSONB `json:"preferences"`
	Notes       string       `json:"notes"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name        *string      `json:"name"`
	Phone       *string      `json:"phone"`
	Email       *string      `json:"email"`
	Preferences models.JSONB `json:"preferences"`
	Notes       *string      `json:"notes"`
	IsActive    *bool        `json:"isActive"`
}

// IdentifyCustomerInput drives the first-contact flow: look the customer up
// by phone, creating the record when it is the first visit.
type IdentifyCustomerInput struct {
	Phone string `json:"phone" binding:"required"`
	Name  string `json:"name"`
}

// Create creates a new customer for the salon
func (ctl *CustomerController) Create(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	phone := utils.NormalizePhone(input.Phone)

	// Check if phone already exists for this salon
	var existingCustomer models.Customer
	if err := ctl.db.Where("salon_id = ? AND phone = ?", salonUUID, phone).
		First(&existingCustomer).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		SalonID:     salonUUID,
		Name:        input.Name,
		Phone:       phone,
		Preferences: input.Preferences,
		Notes:       input.Notes,
		IsActive:    true,
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}

	if err := ctl.db.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// Identify resolves a customer by normalized phone, creating the record on
// first contact. Customers are never merged across salons.
func (ctl *CustomerController) Identify(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var input IdentifyCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}
	phone := utils.NormalizePhone(input.Phone)

	var customer models.Customer
	err := ctl.db.Where("salon_id = ? AND phone = ?", salonUUID, phone).
		First(&customer).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"customer": customer, "created": false})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	name := input.Name
	if name == "" {
		name = phone
	}
	customer = models.Customer{
		SalonID:  salonUUID,
		Name:     name,
		Phone:    phone,
		IsActive: true,
	}
	if err := ctl.db.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"customer": customer, "created": true})
}

// List retrieves all customers for the salon
func (ctl *CustomerController) List(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}

	var customers []models.Customer
	if err := ctl.db.Where("salon_id = ?", salonUUID).Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// Get retrieves a specific customer by ID
func (ctl *CustomerController) Get(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	customerUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var customer models.Customer
	if err := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Update updates an existing customer
func (ctl *CustomerController) Update(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	customerUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, customerUUID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		phone := utils.NormalizePhone(*input.Phone)

		if customer.Phone != phone {
			var existingCustomer models.Customer
			if err := ctl.db.Where("salon_id = ? AND phone = ?", salonUUID, phone).
				First(&existingCustomer).Error; err == nil {
				utils.RespondWithError(c, http.StatusConflict, "Another customer with this phone number already exists")
				return
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
		}
		customer.Phone = phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Preferences != nil {
		customer.Preferences = input.Preferences
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := ctl.db.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// Delete soft deletes a customer
func (ctl *CustomerController) Delete(c *gin.Context) {
	salonUUID, ok := requireSalonID(c)
	if !ok {
		return
	}
	customerUUID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result := ctl.db.Where("salon_id = ? AND id = ?", salonUUID, customerUUID).
		Delete(&models.Customer{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
