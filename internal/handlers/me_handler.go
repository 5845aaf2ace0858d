package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type salonBrand struct {
	Name          string `json:"name"`
	ShowSalonName bool   `json:"show_salon_name"`
	LogoText      string `json:"logo_text"`
	LogoURL       string `json:"logo_url"`
}

type meResponse struct {
	User  userView   `json:"user"`
	Salon salonBrand `json:"salon"`
}

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == uuid.Nil {
		httperr.Unauthorized(c, "user_not_in_context", "Faça login para continuar.")
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var user models.User
	err := db.First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return
	}
	if err != nil {
		httperr.Respond(c, httperr.ErrPersistence("get user", err))
		return
	}

	// sem linha de settings o front usa a marca padrão
	var settings models.SalonSettings
	if err := db.First(&settings, models.SalonSettingsID).Error; err != nil {
		settings = models.DefaultSalonSettings()
	}

	c.JSON(http.StatusOK, meResponse{
		User: newUserView(&user),
		Salon: salonBrand{
			Name:          settings.SalonName,
			ShowSalonName: settings.ShowSalonName,
			LogoText:      settings.LogoText,
			LogoURL:       settings.LogoURL,
		},
	})
}
