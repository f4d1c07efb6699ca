package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/iisgiua/giuaschool-colloqui/internal/service"
	"github.com/iisgiua/giuaschool-colloqui/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler modulo export
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler crea ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ColloquiXLSX esporta le prenotazioni del docente in formato xlsx
// GET /api/v1/export/colloqui.xlsx
func (h *ExportHandler) ColloquiXLSX(c *gin.Context) {
	docenteID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.PrenotazioniXLSX(c.Request.Context(), docenteID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	scaricaFile(c, filename, contentTypeXLSX, buf.Bytes())
}

// AgendaICS esporta i colloqui confermati in formato iCalendar
// GET /api/v1/export/agenda.ics
func (h *ExportHandler) AgendaICS(c *gin.Context) {
	docenteID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.AgendaICS(c.Request.Context(), docenteID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	scaricaFile(c, filename, contentTypeICS, buf.Bytes())
}

func scaricaFile(c *gin.Context, filename, contentType string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *ExportHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportVuoto):
		response.NotFound(c, 15001, "nessuna prenotazione da esportare")
	default:
		response.InternalError(c)
	}
}
