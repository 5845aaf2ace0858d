package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError é o corpo de toda resposta de erro da API.
type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Write aborta a cadeia de handlers; nada depois dele escreve na resposta.
func Write(c *gin.Context, status int, body HTTPError) {
	c.AbortWithStatusJSON(status, body)
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, HTTPError{Code: code, Message: message})
}

func InvalidField(c *gin.Context, code, field string) {
	Write(c, http.StatusBadRequest, HTTPError{Code: code, Message: messageFor(code), Field: field})
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, HTTPError{Code: code, Message: message})
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, HTTPError{Code: code, Message: message})
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, HTTPError{Code: code, Message: message})
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, HTTPError{Code: code, Message: message})
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, HTTPError{Code: code, Message: message})
}
