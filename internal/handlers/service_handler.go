package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

// Categoria atribuída quando a categoria original é excluída.
const UncategorizedService = "Sem categoria"

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes" binding:"required,min=1"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category" binding:"required"`
}

type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	DurationMinutes *int             `json:"duration_minutes,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Active          *bool            `json:"active,omitempty"`
}

type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	activeStr := strings.TrimSpace(c.Query("active")) // "true", "false" ou vazio
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context())

	if category != "" {
		q = q.Where("category = ?", category)
	}

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Price.IsNegative() {
		httperr.BadRequest(c, "invalid_amount", "Valor inválido.")
		return
	}

	service := models.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Category:        strings.TrimSpace(req.Category),
		Active:          true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao buscar serviço.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 1 {
			httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
			return
		}
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			httperr.BadRequest(c, "invalid_amount", "Valor inválido.")
			return
		}
		service.Price = *req.Price
	}
	if req.Category != nil {
		service.Category = strings.TrimSpace(*req.Category)
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao salvar serviço.")
		return
	}

	c.JSON(http.StatusOK, service)
}

// Delete mantém os agendamentos; o preço já está congelado neles.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res := h.db.WithContext(c.Request.Context()).Delete(&models.Service{}, "id = ?", id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_service", "Erro ao excluir serviço.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	c.Status(http.StatusNoContent)
}

// --------- Categorias ---------

func (h *ServiceHandler) Categories(c *gin.Context) {
	var categories []string
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Service{}).
		Where("category <> ''").
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "Erro ao listar categorias.")
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *ServiceHandler) RenameCategory(c *gin.Context) {
	old := c.Param("name")

	var req RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		invalidRequest(c)
		return
	}

	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Service{}).
		Where("category = ?", old).
		Update("category", strings.TrimSpace(req.Name))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_rename_category", "Erro ao renomear categoria.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
}

// DeleteCategory move os serviços para "Sem categoria".
func (h *ServiceHandler) DeleteCategory(c *gin.Context) {
	res := h.db.WithContext(c.Request.Context()).
		Model(&models.Service{}).
		Where("category = ?", c.Param("name")).
		Update("category", UncategorizedService)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_category", "Erro ao excluir categoria.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
}
