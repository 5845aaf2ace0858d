package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

var maxCommission = decimal.NewFromInt(100)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

type ProfessionalRequest struct {
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	Specialties       []string        `json:"specialties"`
	CommissionPercent decimal.Decimal `json:"commission_percent"`
}

func (r ProfessionalRequest) apply(p *models.Professional) error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return httperr.ErrValidation("missing_field", "name")
	}

	email := strings.ToLower(strings.TrimSpace(r.Email))
	if email != "" && !validators.IsEmail(email) {
		return httperr.ErrValidation("invalid_email", "email")
	}

	if r.CommissionPercent.IsNegative() || r.CommissionPercent.GreaterThan(maxCommission) {
		return httperr.ErrValidation("invalid_commission", "commission_percent")
	}

	specialties := pq.StringArray{}
	for _, s := range r.Specialties {
		if s = strings.TrimSpace(s); s != "" {
			specialties = append(specialties, s)
		}
	}

	p.Name = name
	p.Email = email
	p.Phone = strings.TrimSpace(r.Phone)
	p.Specialties = specialties
	p.CommissionPercent = r.CommissionPercent
	return nil
}

func (h *ProfessionalHandler) List(c *gin.Context) {
	var list []models.Professional
	if err := h.db.WithContext(c.Request.Context()).Order("name ASC").Find(&list).Error; err != nil {
		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	var p models.Professional
	if err := req.apply(&p); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var p models.Professional
	if err := h.db.WithContext(c.Request.Context()).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_professional", "Erro ao buscar profissional.")
		return
	}

	var req ProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if err := req.apply(&p); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&p).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao salvar profissional.")
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProfessionalHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Professional{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_professional", "Erro ao excluir profissional.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}
