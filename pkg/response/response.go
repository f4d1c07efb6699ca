package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iisgiua/giuaschool-colloqui/pkg/paginator"
)

// Response struttura di risposta unificata (coerente con il contratto API)
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Pagina payload delle liste paginate. Le chiavi sono quelle storiche del
// contratto ajax: lista, pagina, max, inizio, fine.
type Pagina struct {
	Lista  interface{} `json:"lista"`
	Pagina int         `json:"pagina"`
	Max    int         `json:"max"`
	Inizio int         `json:"inizio"`
	Fine   int         `json:"fine"`
}

// ── risposte di successo ──

// OK 200
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 201
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// OKLista 200 con lista paginata e finestra di navigazione
func OKLista(c *gin.Context, lista interface{}, w paginator.Window, pagina int) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data: Pagina{
			Lista:  lista,
			Pagina: pagina,
			Max:    w.Max,
			Inizio: w.Inizio,
			Fine:   w.Fine,
		},
	})
}

// ── risposte di errore ──

// Error risposta di errore generica
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails risposta di errore con dettagli
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// ── scorciatoie comuni ──

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// Conflict 409
func Conflict(c *gin.Context, code int, message string) {
	Error(c, http.StatusConflict, code, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "errore interno del server")
}
