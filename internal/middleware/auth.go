package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-manager/internal/audit"
	"github.com/BruksfildServices01/salon-manager/internal/config"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
)

// Claims do token de sessão: sub = id do usuário.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken assina um HS256 válido por ttl.
func IssueToken(secret string, userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseToken(secret, raw string) (*Claims, uuid.UUID, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, uuid.Nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return claims, userID, nil
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Faça login para continuar.")
			return
		}

		scheme, raw, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Faça login para continuar.")
			return
		}

		claims, userID, err := parseToken(cfg.JWTSecret, strings.TrimSpace(raw))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Sessão expirada. Faça login novamente.")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUserRole, claims.Role)

		// o ator segue no context até o dispatcher de auditoria
		c.Request = c.Request.WithContext(audit.WithActor(c.Request.Context(), userID))

		c.Next()
	}
}

// RequireRole roda depois de AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		httperr.Forbidden(c, "forbidden", "Sem permissão para esta ação.")
	}
}

// UserID devolve o usuário autenticado (uuid.Nil fora do AuthMiddleware).
func UserID(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}
