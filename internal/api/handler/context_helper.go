package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/pkg/response"
)

// MustGetUserID estrae in sicurezza user_id dal contesto Gin.
// Se il middleware JWT non lo ha iniettato, scrive 401 e restituisce false;
// il chiamante deve fare return con ok=false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "non autenticato")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "non autenticato")
		return "", false
	}
	return s, true
}

// MustGetAttore ricompone l'identità dell'utente corrente dal contesto
func MustGetAttore(c *gin.Context) (dto.Attore, bool) {
	id, ok := MustGetUserID(c)
	if !ok {
		return dto.Attore{}, false
	}

	v, exists := c.Get("ruolo")
	if !exists {
		response.Unauthorized(c, 10002, "non autenticato")
		return dto.Attore{}, false
	}
	ruolo, ok := v.(string)
	if !ok || ruolo == "" {
		response.Unauthorized(c, 10002, "non autenticato")
		return dto.Attore{}, false
	}

	classeID := ""
	if v, exists := c.Get("classe_id"); exists {
		if s, ok := v.(string); ok {
			classeID = s
		}
	}

	return dto.Attore{ID: id, Ruolo: ruolo, ClasseID: classeID}, true
}
