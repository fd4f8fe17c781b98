package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"glowdesk-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Salon{}, &models.Appointment{}))
	return db
}

// listRouter wires only the list route, with the auth claim pre-set the way
// the middleware would.
func listRouter(db *gorm.DB, salonID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctl := NewAppointmentController(db, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("salonId", salonID.String())
	})
	r.GET("/api/appointments", ctl.List)
	return r
}

func TestListAppointments_DateFilterUsesSalonLocalDay(t *testing.T) {
	db := openTestDB(t)

	salon := models.Salon{
		ID:       uuid.New(),
		Name:     "Test Salon",
		Timezone: "America/Sao_Paulo",
		IsActive: true,
	}
	require.NoError(t, db.Create(&salon).Error)

	// Monday 23:00 in São Paulo is already Tuesday 02:00 UTC.
	lateMonday := models.Appointment{
		SalonID:        salon.ID,
		CustomerID:     uuid.New(),
		ProfessionalID: uuid.New(),
		ServiceID:      uuid.New(),
		StartsAt:       time.Date(2025, 6, 3, 2, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2025, 6, 3, 2, 30, 0, 0, time.UTC),
		Status:         models.AppointmentScheduled,
	}
	require.NoError(t, db.Create(&lateMonday).Error)

	// Monday 01:00 UTC is still Sunday 22:00 in São Paulo.
	sundayLocal := models.Appointment{
		SalonID:        salon.ID,
		CustomerID:     uuid.New(),
		ProfessionalID: uuid.New(),
		ServiceID:      uuid.New(),
		StartsAt:       time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC),
		EndsAt:         time.Date(2025, 6, 2, 1, 30, 0, 0, time.UTC),
		Status:         models.AppointmentScheduled,
	}
	require.NoError(t, db.Create(&sundayLocal).Error)

	r := listRouter(db, salon.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments?date=2025-06-02", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, lateMonday.ID, got[0].ID)
}

func TestListAppointments_InvalidDate(t *testing.T) {
	db := openTestDB(t)

	salon := models.Salon{ID: uuid.New(), Name: "Test Salon", Timezone: "UTC", IsActive: true}
	require.NoError(t, db.Create(&salon).Error)

	r := listRouter(db, salon.ID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/appointments?date=junk", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
