package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/internal/service"
	apperrors "github.com/iisgiua/giuaschool-colloqui/pkg/errors"
	"github.com/iisgiua/giuaschool-colloqui/pkg/paginator"
	"github.com/iisgiua/giuaschool-colloqui/pkg/redis"
	"github.com/iisgiua/giuaschool-colloqui/pkg/response"
)

// ColloquiHandler modulo colloqui: disponibilità, prenotazioni e blocchi
type ColloquiHandler struct {
	calendarioSvc   service.CalendarioService
	prenotazioneSvc service.PrenotazioneService
	rdb             *redis.Client
}

// NewColloquiHandler crea ColloquiHandler
func NewColloquiHandler(calendarioSvc service.CalendarioService, prenotazioneSvc service.PrenotazioneService, rdb *redis.Client) *ColloquiHandler {
	return &ColloquiHandler{
		calendarioSvc:   calendarioSvc,
		prenotazioneSvc: prenotazioneSvc,
		rdb:             rdb,
	}
}

// Disponibili slot liberi del docente indicato
// GET /api/v1/colloqui/disponibili/:docenteID
func (h *ColloquiHandler) Disponibili(c *gin.Context) {
	disponibilita, err := h.calendarioSvc.SlotDisponibili(c.Request.Context(), c.Param("docenteID"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, disponibilita)
}

// Prenota prenotazione di uno slot libero
// POST /api/v1/colloqui/prenota
func (h *ColloquiHandler) Prenota(c *gin.Context) {
	attore, ok := MustGetAttore(c)
	if !ok {
		return
	}

	var req dto.PrenotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parametri non validi")
		return
	}

	p, err := h.prenotazioneSvc.Prenota(c.Request.Context(), attore, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, p)
}

// Richieste richieste sul ricevimento del docente autenticato, paginate.
// Stessa persistenza dei criteri della lista docenti.
// GET /api/v1/colloqui/richieste?stato=&pagina=
func (h *ColloquiHandler) Richieste(c *gin.Context) {
	docenteID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var criteri dto.CriteriRichieste
	if err := c.ShouldBindQuery(&criteri); err != nil {
		response.BadRequest(c, 10001, "parametri non validi")
		return
	}

	if h.rdb != nil {
		if len(c.Request.URL.Query()) == 0 {
			_, _ = h.rdb.LeggiCriteri(c.Request.Context(), docenteID, "richieste", &criteri)
		} else {
			_ = h.rdb.SalvaCriteri(c.Request.Context(), docenteID, "richieste", criteri)
		}
	}

	pagina := paginator.Clamp(criteri.Pagina, 0)
	lista, total, err := h.prenotazioneSvc.ListRichieste(c.Request.Context(), docenteID, &criteri, (pagina-1)*pageSize, pageSize)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OKLista(c, lista, paginator.Compute(total, pageSize, pagina), pagina)
}

// Risposta conferma o rifiuto di una richiesta
// PUT /api/v1/colloqui/richieste/:id/risposta
func (h *ColloquiHandler) Risposta(c *gin.Context) {
	attore, ok := MustGetAttore(c)
	if !ok {
		return
	}

	var req dto.RispostaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parametri non validi")
		return
	}

	p, err := h.prenotazioneSvc.Rispondi(c.Request.Context(), attore, c.Param("id"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, p)
}

// Blocco blocca o sblocca uno slot del proprio ricevimento
// POST /api/v1/colloqui/blocco
func (h *ColloquiHandler) Blocco(c *gin.Context) {
	attore, ok := MustGetAttore(c)
	if !ok {
		return
	}

	var req dto.BloccoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parametri non validi")
		return
	}

	dataOra, err := h.prenotazioneSvc.ParseChiave(req.Chiave)
	if err != nil {
		h.handleError(c, err)
		return
	}

	if req.Blocco {
		p, err := h.prenotazioneSvc.Blocca(c.Request.Context(), attore, dataOra)
		if err != nil {
			h.handleError(c, err)
			return
		}
		response.Created(c, p)
		return
	}

	if err := h.prenotazioneSvc.SbloccaSlot(c.Request.Context(), attore, dataOra); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Sblocca rimuove un blocco per identificativo
// DELETE /api/v1/colloqui/blocco/:id
func (h *ColloquiHandler) Sblocca(c *gin.Context) {
	attore, ok := MustGetAttore(c)
	if !ok {
		return
	}

	if err := h.prenotazioneSvc.Sblocca(c.Request.Context(), attore, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *ColloquiHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNonTrovato):
		response.NotFound(c, 14001, "risorsa non trovata")
	case errors.Is(err, apperrors.ErrValidazione):
		response.BadRequest(c, 14002, err.Error())
	case errors.Is(err, apperrors.ErrConflitto):
		response.Conflict(c, 14003, "lo slot non è più disponibile")
	case errors.Is(err, apperrors.ErrAutorizzazione):
		response.Forbidden(c, 14004, "operazione non consentita")
	default:
		response.InternalError(c)
	}
}
