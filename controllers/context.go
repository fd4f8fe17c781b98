package controllers

import (
	"errors"
	"net/http"

	"glowdesk-backend/services"
	"glowdesk-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requireSalonID pulls the salon id out of the auth claims. A false return
// means the response has already been written.
func requireSalonID(c *gin.Context) (uuid.UUID, bool) {
	salonID, exists := c.Get("salonId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return uuid.Nil, false
	}
	s, ok := salonID.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Salon ID not found in context")
		return uuid.Nil, false
	}
	salonUUID, err := uuid.Parse(s)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid salon ID format")
		return uuid.Nil, false
	}
	return salonUUID, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps the typed business errors onto HTTP statuses.
// Unexpected failures stay opaque 500s.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var conflictErr *services.ConflictError

	switch {
	case errors.As(err, &validationErr):
		utils.RespondWithError(c, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &notFoundErr):
		utils.RespondWithError(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     conflictErr.Error(),
			"conflicts": conflictErr.Conflicts,
		})
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
