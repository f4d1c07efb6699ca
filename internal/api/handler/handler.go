package handler

import (
	"github.com/iisgiua/giuaschool-colloqui/internal/service"
	"github.com/iisgiua/giuaschool-colloqui/pkg/redis"
)

// Handler punto di ingresso aggregato di tutti gli Handler
type Handler struct {
	Auth        *AuthHandler
	Utente      *UtenteHandler
	Ricevimento *RicevimentoHandler
	Colloqui    *ColloquiHandler
	Export      *ExportHandler
}

// NewHandler crea l'aggregato degli Handler.
// rdb serve alla persistenza dei criteri di ricerca; può essere nil.
func NewHandler(svc *service.Service, rdb *redis.Client) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Utente:      NewUtenteHandler(svc.Utente, rdb),
		Ricevimento: NewRicevimentoHandler(svc.Ricevimento),
		Colloqui:    NewColloquiHandler(svc.Calendario, svc.Prenotazione, rdb),
		Export:      NewExportHandler(svc.Export),
	}
}
