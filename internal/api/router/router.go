package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/iisgiua/giuaschool-colloqui/config"
	"github.com/iisgiua/giuaschool-colloqui/internal/api/handler"
	"github.com/iisgiua/giuaschool-colloqui/internal/api/middleware"
	"github.com/iisgiua/giuaschool-colloqui/internal/model"
	"github.com/iisgiua/giuaschool-colloqui/pkg/jwt"
	"github.com/iisgiua/giuaschool-colloqui/pkg/redis"
)

// Setup inizializza e restituisce il motore di routing Gin
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── middleware globali ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// autenticazione (senza token)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// rotte autenticate
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// modulo utenti
			authorized.GET("/docenti", h.Utente.ListDocenti)
			authorized.POST("/utenti/:id/reset-password",
				middleware.RoleAuth(model.RuoloAmministratore), h.Auth.ResetPassword)

			// modulo ricevimenti (solo docenti)
			ricevimenti := authorized.Group("/ricevimenti")
			ricevimenti.Use(middleware.RoleAuth(model.RuoloDocente, model.RuoloAmministratore))
			{
				ricevimenti.GET("/me", h.Ricevimento.GetMio)
				ricevimenti.PUT("/me", h.Ricevimento.Upsert)
				ricevimenti.POST("/me/date", h.Ricevimento.AggiungiData)
				ricevimenti.DELETE("/me/date/:id", h.Ricevimento.EliminaData)
			}

			// modulo colloqui
			colloqui := authorized.Group("/colloqui")
			{
				colloqui.GET("/disponibili/:docenteID",
					middleware.RoleAuth(model.RuoloGenitore, model.RuoloAlunno, model.RuoloAmministratore),
					h.Colloqui.Disponibili)
				colloqui.POST("/prenota",
					middleware.RoleAuth(model.RuoloGenitore, model.RuoloAlunno, model.RuoloAmministratore),
					h.Colloqui.Prenota)
				colloqui.GET("/richieste",
					middleware.RoleAuth(model.RuoloDocente, model.RuoloAmministratore),
					h.Colloqui.Richieste)
				colloqui.PUT("/richieste/:id/risposta",
					middleware.RoleAuth(model.RuoloDocente, model.RuoloAmministratore),
					h.Colloqui.Risposta)
				colloqui.POST("/blocco",
					middleware.RoleAuth(model.RuoloDocente, model.RuoloAmministratore),
					h.Colloqui.Blocco)
				colloqui.DELETE("/blocco/:id",
					middleware.RoleAuth(model.RuoloDocente, model.RuoloAmministratore),
					h.Colloqui.Sblocca)
			}

			// modulo export (solo docenti)
			export := authorized.Group("/export")
			export.Use(middleware.RoleAuth(model.RuoloDocente, model.RuoloAmministratore))
			{
				export.GET("/colloqui.xlsx", h.Export.ColloquiXLSX)
				export.GET("/agenda.ics", h.Export.AgendaICS)
			}
		}
	}

	return r
}
