package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/iisgiua/giuaschool-colloqui/config"
	"github.com/iisgiua/giuaschool-colloqui/internal/repository"
	"github.com/iisgiua/giuaschool-colloqui/pkg/jwt"
	"github.com/iisgiua/giuaschool-colloqui/pkg/redis"
)

// Service punto di ingresso aggregato di tutti i Service
type Service struct {
	Auth         AuthService
	Utente       UtenteService
	Ricevimento  RicevimentoService
	Calendario   CalendarioService
	Prenotazione PrenotazioneService
	Export       ExportService
}

// NewService crea l'aggregato dei Service
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	loc, err := time.LoadLocation(cfg.Database.Timezone)
	if err != nil {
		loc = time.Local
	}

	calendario := NewCalendarioService(cfg, repo, loc, logger)
	prenotazione := NewPrenotazioneService(repo, calendario, loc, logger)

	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Utente:       NewUtenteService(repo, logger),
		Ricevimento:  NewRicevimentoService(cfg, repo, loc, logger),
		Calendario:   calendario,
		Prenotazione: prenotazione,
		Export:       NewExportService(repo, logger),
	}
}
