package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/internal/service"
	"github.com/iisgiua/giuaschool-colloqui/pkg/paginator"
	"github.com/iisgiua/giuaschool-colloqui/pkg/redis"
	"github.com/iisgiua/giuaschool-colloqui/pkg/response"
)

// pageSize dimensione fissa delle pagine di tutte le liste
const pageSize = 10

// UtenteHandler modulo utenti
type UtenteHandler struct {
	utenteSvc service.UtenteService
	rdb       *redis.Client
}

// NewUtenteHandler crea UtenteHandler
func NewUtenteHandler(utenteSvc service.UtenteService, rdb *redis.Client) *UtenteHandler {
	return &UtenteHandler{utenteSvc: utenteSvc, rdb: rdb}
}

// ListDocenti elenco paginato dei docenti, filtrato per cognome.
// Senza parametri di query vengono ripristinati gli ultimi criteri
// salvati dall'utente; con parametri, i criteri vengono salvati.
// GET /api/v1/docenti?cognome=&pagina=
func (h *UtenteHandler) ListDocenti(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var criteri dto.CriteriDocenti
	if err := c.ShouldBindQuery(&criteri); err != nil {
		response.BadRequest(c, 10001, "parametri non validi")
		return
	}

	if h.rdb != nil {
		if len(c.Request.URL.Query()) == 0 {
			_, _ = h.rdb.LeggiCriteri(c.Request.Context(), userID, "docenti", &criteri)
		} else {
			_ = h.rdb.SalvaCriteri(c.Request.Context(), userID, "docenti", criteri)
		}
	}

	pagina := paginator.Clamp(criteri.Pagina, 0)
	lista, total, err := h.utenteSvc.ListDocenti(c.Request.Context(), &criteri, (pagina-1)*pageSize, pageSize)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKLista(c, lista, paginator.Compute(total, pageSize, pagina), pagina)
}
