package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/infra/storage"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

const (
	minLogoSizePx = 28
	maxLogoSizePx = 140
	maxLogoText   = 3
)

type SettingsHandler struct {
	db    *gorm.DB
	logos *storage.LogoStore
}

// logos nil = upload desligado (sem S3 configurado).
func NewSettingsHandler(db *gorm.DB, logos *storage.LogoStore) *SettingsHandler {
	return &SettingsHandler{db: db, logos: logos}
}

type UpdateSettingsRequest struct {
	SalonName       *string `json:"salon_name"`
	ShowSalonName   *bool   `json:"show_salon_name"`
	LogoText        *string `json:"logo_text"`
	LogoURL         *string `json:"logo_url"`
	LogoSizePx      *int    `json:"logo_size_px"`
	TextColor       *string `json:"text_color"`
	BackgroundColor *string `json:"background_color"`
	ButtonColor     *string `json:"button_color"`
}

func (h *SettingsHandler) load(c *gin.Context) (*models.SalonSettings, bool) {
	var s models.SalonSettings
	err := h.db.WithContext(c.Request.Context()).First(&s, models.SalonSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = models.DefaultSalonSettings()
		return &s, true
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Erro ao buscar configurações.")
		return nil, false
	}
	return &s, true
}

func (h *SettingsHandler) save(c *gin.Context, s *models.SalonSettings) bool {
	if err := h.db.WithContext(c.Request.Context()).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(s).Error; err != nil {
		httperr.Internal(c, "failed_to_update_settings", "Erro ao salvar as configurações.")
		return false
	}
	return true
}

func (h *SettingsHandler) Get(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	s, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if err := applySettings(s, req); err != nil {
		httperr.Respond(c, err)
		return
	}

	if !h.save(c, s) {
		return
	}
	c.JSON(http.StatusOK, s)
}

// applySettings normaliza como a tela de configurações: tamanho limitado
// a 28..140, fallback de até 3 letras e cores vazias voltando ao padrão.
func applySettings(s *models.SalonSettings, req UpdateSettingsRequest) error {
	def := models.DefaultSalonSettings()

	if req.SalonName != nil {
		s.SalonName = strings.TrimSpace(*req.SalonName)
	}
	if req.ShowSalonName != nil {
		s.ShowSalonName = *req.ShowSalonName
	}
	if req.LogoText != nil {
		text := strings.ToUpper(strings.TrimSpace(*req.LogoText))
		if r := []rune(text); len(r) > maxLogoText {
			text = string(r[:maxLogoText])
		}
		if text == "" {
			text = def.LogoText
		}
		s.LogoText = text
	}
	if req.LogoURL != nil {
		s.LogoURL = strings.TrimSpace(*req.LogoURL)
	}
	if req.LogoSizePx != nil {
		size := *req.LogoSizePx
		switch {
		case size == 0:
			size = def.LogoSizePx
		case size < minLogoSizePx:
			size = minLogoSizePx
		case size > maxLogoSizePx:
			size = maxLogoSizePx
		}
		s.LogoSizePx = size
	}

	colors := []struct {
		in  *string
		out *string
		def string
	}{
		{req.TextColor, &s.TextColor, def.TextColor},
		{req.BackgroundColor, &s.BackgroundColor, def.BackgroundColor},
		{req.ButtonColor, &s.ButtonColor, def.ButtonColor},
	}
	for _, col := range colors {
		if col.in == nil {
			continue
		}
		v := strings.TrimSpace(*col.in)
		if v == "" {
			v = col.def
		}
		if !validators.IsHexColor(v) {
			return httperr.ErrValidation("invalid_color", "color")
		}
		*col.out = v
	}

	return nil
}

func (h *SettingsHandler) Reset(c *gin.Context) {
	s := models.DefaultSalonSettings()
	if !h.save(c, &s) {
		return
	}
	c.JSON(http.StatusOK, s)
}

// UploadLogo recebe multipart "file" (png/jpeg/webp) e grava em webp.
func (h *SettingsHandler) UploadLogo(c *gin.Context) {
	if h.logos == nil {
		httperr.BadRequest(c, "storage_disabled", "Armazenamento de arquivos não configurado.")
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Arquivo obrigatório.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}
	defer f.Close()

	url, err := h.logos.Save(c.Request.Context(), f)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
			return
		}
		httperr.Internal(c, "failed_to_upload_logo", "Erro ao enviar a logo.")
		return
	}

	s, ok := h.load(c)
	if !ok {
		return
	}
	s.LogoURL = url
	if !h.save(c, s) {
		return
	}

	c.JSON(http.StatusOK, s)
}
