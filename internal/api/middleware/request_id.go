package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen limita la lunghezza del Request-ID esterno per prevenire
// iniezioni nei log
const requestIDMaxLen = 64

// RequestID identificativo di tracciamento della richiesta.
// Letto dall'header X-Request-ID, generato come UUID se assente;
// propagato nel contesto e nell'header di risposta.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
