package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iisgiua/giuaschool-colloqui/pkg/jwt"
	"github.com/iisgiua/giuaschool-colloqui/pkg/redis"
	"github.com/iisgiua/giuaschool-colloqui/pkg/response"
)

// JWTAuth autenticazione JWT.
// Estrae e verifica l'Access Token da Authorization: Bearer <token>.
// Con rdb nil il controllo blacklist viene saltato (avvio degradato).
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "header di autenticazione mancante")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "header di autenticazione non valido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token non valido o scaduto")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "tipo di token non valido")
			c.Abort()
			return
		}

		if rdb != nil {
			bloccato, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && bloccato {
				response.Unauthorized(c, 10002, "token revocato")
				c.Abort()
				return
			}
		}

		// identità dell'utente nel contesto della richiesta
		c.Set("user_id", claims.UserID)
		c.Set("ruolo", claims.Ruolo)
		c.Set("classe_id", claims.ClasseID)
		c.Set("jti", claims.ID)
		c.Set("token_exp", claims.ExpiresAt.Time)

		c.Next()
	}
}

// RoleAuth verifica che l'utente corrente abbia uno dei ruoli indicati
func RoleAuth(ruoliAmmessi ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ruolo, exists := c.Get("ruolo")
		if !exists {
			response.Unauthorized(c, 10002, "non autenticato")
			c.Abort()
			return
		}

		corrente := ruolo.(string)
		for _, r := range ruoliAmmessi {
			if corrente == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "accesso non consentito")
		c.Abort()
	}
}
