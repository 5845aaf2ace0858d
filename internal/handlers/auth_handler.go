package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/config"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/middleware"
	"github.com/BruksfildServices01/salon-manager/internal/models"
	"github.com/BruksfildServices01/salon-manager/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher

	// checkDomain consulta MX/IP do domínio; desligado nos testes
	checkDomain func(email string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, auditor *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{
		db:          db,
		config:      cfg,
		audit:       auditor,
		checkDomain: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func newUserView(u *models.User) userView {
	return userView{ID: u.ID.String(), Name: u.Name, Email: u.Email, Role: u.Role}
}

// --------- Handlers ---------

// Register atende duas rotas: /auth/register (pública) só cria o primeiro
// usuário, que vira owner; /users (owner autenticado) cria staff.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ctx := c.Request.Context()

	var count int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		httperr.Respond(c, httperr.ErrPersistence("count users", err))
		return
	}

	_, authenticated := c.Get(middleware.ContextUserID)
	if count > 0 && !authenticated {
		httperr.Forbidden(c, "registration_closed", "Cadastro restrito a usuários autenticados.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if h.checkDomain != nil && !h.checkDomain(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("bcrypt error:", err)
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	role := models.RoleStaff
	if count == 0 {
		role = models.RoleOwner
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         role,
	}

	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		if httperr.IsExclusionConflict(err) {
			httperr.Conflict(c, "email_in_use", "E-mail já cadastrado.")
			return
		}
		httperr.Respond(c, httperr.ErrPersistence("create user", err))
		return
	}

	h.audit.Dispatch(ctx, audit.Event{
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"role": role},
	})

	// staff criado por um owner não troca a sessão de quem cadastrou
	if authenticated {
		c.JSON(http.StatusCreated, gin.H{"user": newUserView(&user)})
		return
	}

	h.respondWithToken(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := h.db.WithContext(c.Request.Context()).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}
	if err != nil {
		httperr.Respond(c, httperr.ErrPersistence("find user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	h.respondWithToken(c, http.StatusOK, &user)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *models.User) {
	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, user.Role, tokenTTL)
	if err != nil {
		log.Println("jwt error:", err)
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	c.JSON(status, authResponse{User: newUserView(user), Token: token})
}
