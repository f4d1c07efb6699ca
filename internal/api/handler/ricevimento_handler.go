package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/internal/service"
	apperrors "github.com/iisgiua/giuaschool-colloqui/pkg/errors"
	"github.com/iisgiua/giuaschool-colloqui/pkg/response"
)

// RicevimentoHandler modulo ricevimenti (regola di disponibilità del docente)
type RicevimentoHandler struct {
	ricevimentoSvc service.RicevimentoService
}

// NewRicevimentoHandler crea RicevimentoHandler
func NewRicevimentoHandler(ricevimentoSvc service.RicevimentoService) *RicevimentoHandler {
	return &RicevimentoHandler{ricevimentoSvc: ricevimentoSvc}
}

// GetMio regola attiva del docente autenticato
// GET /api/v1/ricevimenti/me
func (h *RicevimentoHandler) GetMio(c *gin.Context) {
	docenteID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ric, err := h.ricevimentoSvc.GetMio(c.Request.Context(), docenteID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, ric)
}

// Upsert crea o aggiorna la regola attiva del docente
// PUT /api/v1/ricevimenti/me
func (h *RicevimentoHandler) Upsert(c *gin.Context) {
	docenteID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.RicevimentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parametri non validi")
		return
	}

	ric, err := h.ricevimentoSvc.Upsert(c.Request.Context(), docenteID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, ric)
}

// AggiungiData inserisce una data di ricevimento una tantum
// POST /api/v1/ricevimenti/me/date
func (h *RicevimentoHandler) AggiungiData(c *gin.Context) {
	docenteID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.DataAggiuntivaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "parametri non validi")
		return
	}

	data, err := h.ricevimentoSvc.AggiungiData(c.Request.Context(), docenteID, &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, data)
}

// EliminaData rimuove una data una tantum
// DELETE /api/v1/ricevimenti/me/date/:id
func (h *RicevimentoHandler) EliminaData(c *gin.Context) {
	docenteID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.ricevimentoSvc.EliminaData(c.Request.Context(), docenteID, c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *RicevimentoHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNonTrovato):
		response.NotFound(c, 13001, "ricevimento non trovato")
	case errors.Is(err, apperrors.ErrValidazione):
		response.BadRequest(c, 13002, err.Error())
	case errors.Is(err, apperrors.ErrConflitto):
		response.Conflict(c, 13003, "data già presente")
	case errors.Is(err, apperrors.ErrAutorizzazione):
		response.Forbidden(c, 13004, "operazione non consentita")
	default:
		response.InternalError(c)
	}
}
