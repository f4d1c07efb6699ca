package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/iisgiua/giuaschool-colloqui/config"
	"github.com/iisgiua/giuaschool-colloqui/internal/api/handler"
	"github.com/iisgiua/giuaschool-colloqui/internal/api/router"
	"github.com/iisgiua/giuaschool-colloqui/internal/repository"
	"github.com/iisgiua/giuaschool-colloqui/internal/service"
	"github.com/iisgiua/giuaschool-colloqui/pkg/database"
	"github.com/iisgiua/giuaschool-colloqui/pkg/jwt"
	applogger "github.com/iisgiua/giuaschool-colloqui/pkg/logger"
	"github.com/iisgiua/giuaschool-colloqui/pkg/redis"
)

func main() {
	// 1. configurazione
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "caricamento configurazione fallito: %v\n", err)
		os.Exit(1)
	}

	// 2. logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inizializzazione logger fallita: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("avvio applicazione...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. database
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("connessione al database fallita", zap.Error(err))
	}
	logger.Info("connessione al database riuscita")

	// 3.1 migrazioni
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("accesso a sql.DB fallito", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("migrazione del database fallita", zap.Error(err))
	}

	// 4. Redis (facoltativo: senza Redis si parte in modalità degradata,
	// blacklist token e criteri salvati non disponibili)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("connessione Redis fallita, avvio in modalità degradata", zap.Error(err))
		rdb = nil
	}

	// 5. JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. iniezione delle dipendenze: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc, rdb)

	// 7. routing
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. server HTTP con chiusura ordinata
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server HTTP avviato", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("errore del server HTTP", zap.Error(err))
		}
	}()

	// 9. segnali di sistema
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("segnale di chiusura ricevuto", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("chiusura del server fallita", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server arrestato")
}
