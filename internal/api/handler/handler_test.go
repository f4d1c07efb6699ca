package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/internal/model"
	"github.com/iisgiua/giuaschool-colloqui/internal/service"
	apperrors "github.com/iisgiua/giuaschool-colloqui/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult   *dto.TokenResponse
	loginErr      error
	refreshResult *dto.TokenResponse
	refreshErr    error
	logoutErr     error
	currentResult *dto.UtenteResponse
	currentErr    error
	resetResult   *dto.ResetPasswordResponse
	resetErr      error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) RefreshToken(_ context.Context, _ string) (*dto.TokenResponse, error) {
	return m.refreshResult, m.refreshErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string, _ time.Time) error {
	return m.logoutErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UtenteResponse, error) {
	return m.currentResult, m.currentErr
}
func (m *mockAuthService) ResetPassword(_ context.Context, _, _ string) (*dto.ResetPasswordResponse, error) {
	return m.resetResult, m.resetErr
}

// ── Mock UtenteService ──

type mockUtenteService struct {
	docenti []dto.UtenteResponse
	total   int64
	err     error
}

func (m *mockUtenteService) ListDocenti(_ context.Context, _ *dto.CriteriDocenti, _, _ int) ([]dto.UtenteResponse, int64, error) {
	return m.docenti, m.total, m.err
}

// ── Mock CalendarioService ──

type mockCalendarioService struct {
	disponibilita *dto.DisponibilitaResponse
	err           error
}

func (m *mockCalendarioService) SlotDisponibili(_ context.Context, _ string) (*dto.DisponibilitaResponse, error) {
	return m.disponibilita, m.err
}
func (m *mockCalendarioService) SlotDelRicevimento(_ context.Context, _ *model.Ricevimento) (bool, []model.Slot, error) {
	return false, nil, m.err
}
func (m *mockCalendarioService) SlotValido(_ context.Context, _ *model.Ricevimento, _ time.Time) (*model.Slot, error) {
	return nil, m.err
}
func (m *mockCalendarioService) Limite() time.Time { return time.Time{} }

// ── Mock PrenotazioneService ──

type mockPrenotazioneService struct {
	prenotaResult *dto.PrenotazioneResponse
	prenotaErr    error
	rispostaErr   error
	bloccaResult  *dto.PrenotazioneResponse
	bloccaErr     error
	sbloccaErr    error
	richieste     []dto.PrenotazioneResponse
	richiesteTot  int64
	richiesteErr  error
}

func (m *mockPrenotazioneService) Prenota(_ context.Context, _ dto.Attore, _ *dto.PrenotaRequest) (*dto.PrenotazioneResponse, error) {
	return m.prenotaResult, m.prenotaErr
}
func (m *mockPrenotazioneService) Rispondi(_ context.Context, _ dto.Attore, _ string, _ *dto.RispostaRequest) (*dto.PrenotazioneResponse, error) {
	return m.prenotaResult, m.rispostaErr
}
func (m *mockPrenotazioneService) Blocca(_ context.Context, _ dto.Attore, _ time.Time) (*dto.PrenotazioneResponse, error) {
	return m.bloccaResult, m.bloccaErr
}
func (m *mockPrenotazioneService) Sblocca(_ context.Context, _ dto.Attore, _ string) error {
	return m.sbloccaErr
}
func (m *mockPrenotazioneService) SbloccaSlot(_ context.Context, _ dto.Attore, _ time.Time) error {
	return m.sbloccaErr
}
func (m *mockPrenotazioneService) ListRichieste(_ context.Context, _ string, _ *dto.CriteriRichieste, _, _ int) ([]dto.PrenotazioneResponse, int64, error) {
	return m.richieste, m.richiesteTot, m.richiesteErr
}
func (m *mockPrenotazioneService) ParseChiave(chiave string) (time.Time, error) {
	t, err := model.ParseChiaveSlot(chiave, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrValidazione, err)
	}
	return t, nil
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) PrenotazioniXLSX(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) AgendaICS(_ context.Context, _ string) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Helper
// ═══════════════════════════════════════════════════════════

// iniettaAttore simula l'identità iniettata dal middleware JWT
func iniettaAttore(id, ruolo, classeID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Set("ruolo", ruolo)
		c.Set("classe_id", classeID)
	}
}

func eseguiJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodifica(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("risposta non JSON: %v", err)
	}
	return out
}

// ═══════════════════════════════════════════════════════════
// Test
// ═══════════════════════════════════════════════════════════

func TestLoginHandler(t *testing.T) {
	mockAuth := &mockAuthService{
		loginResult: &dto.TokenResponse{AccessToken: "acc", RefreshToken: "ref", ExpiresIn: 900},
	}
	h := NewAuthHandler(mockAuth)

	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := eseguiJSON(t, r, http.MethodPost, "/auth/login", dto.LoginRequest{Username: "rossi.mario", Password: "pw"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, atteso 200", w.Code)
	}

	// credenziali errate
	mockAuth.loginResult = nil
	mockAuth.loginErr = service.ErrCredenzialiNonValide
	w = eseguiJSON(t, r, http.MethodPost, "/auth/login", dto.LoginRequest{Username: "rossi.mario", Password: "pw"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, atteso 401", w.Code)
	}

	// corpo non valido
	w = eseguiJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"username": "solo"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, atteso 400", w.Code)
	}
}

func TestPrenotaHandler(t *testing.T) {
	mock := &mockPrenotazioneService{
		prenotaResult: &dto.PrenotazioneResponse{ID: "p-1", Stato: model.StatoPendente, Chiave: "2026-03-16-9-0"},
	}
	h := NewColloquiHandler(&mockCalendarioService{}, mock, nil)

	r := gin.New()
	r.POST("/colloqui/prenota", iniettaAttore("gen-1", model.RuoloGenitore, "cls-1"), h.Prenota)

	req := dto.PrenotaRequest{DocenteID: "7c9e6679-7425-40de-944b-e07fc1f90ae7", Chiave: "2026-03-16-9-0"}
	w := eseguiJSON(t, r, http.MethodPost, "/colloqui/prenota", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, atteso 201: %s", w.Code, w.Body.String())
	}

	// slot occupato
	mock.prenotaResult = nil
	mock.prenotaErr = fmt.Errorf("%w: già prenotato", apperrors.ErrConflitto)
	w = eseguiJSON(t, r, http.MethodPost, "/colloqui/prenota", req)
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, atteso 409", w.Code)
	}
	if body := decodifica(t, w); body["code"] != float64(14003) {
		t.Errorf("code = %v, atteso 14003", body["code"])
	}

	// docente di un'altra classe
	mock.prenotaErr = fmt.Errorf("%w: il docente non insegna nella classe", apperrors.ErrAutorizzazione)
	w = eseguiJSON(t, r, http.MethodPost, "/colloqui/prenota", req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, atteso 403", w.Code)
	}
}

func TestBloccoHandler(t *testing.T) {
	mock := &mockPrenotazioneService{
		bloccaResult: &dto.PrenotazioneResponse{ID: "b-1", Stato: model.StatoBloccata},
	}
	h := NewColloquiHandler(&mockCalendarioService{}, mock, nil)

	r := gin.New()
	r.POST("/colloqui/blocco", iniettaAttore("doc-1", model.RuoloDocente, ""), h.Blocco)

	w := eseguiJSON(t, r, http.MethodPost, "/colloqui/blocco", dto.BloccoRequest{Chiave: "2026-03-16-9-0", Blocco: true})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, atteso 201: %s", w.Code, w.Body.String())
	}

	// sblocco dello stesso slot
	w = eseguiJSON(t, r, http.MethodPost, "/colloqui/blocco", dto.BloccoRequest{Chiave: "2026-03-16-9-0", Blocco: false})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, atteso 200: %s", w.Code, w.Body.String())
	}

	// chiave malformata
	w = eseguiJSON(t, r, http.MethodPost, "/colloqui/blocco", dto.BloccoRequest{Chiave: "non-una-chiave", Blocco: true})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, atteso 400", w.Code)
	}
}

func TestDisponibiliHandler(t *testing.T) {
	mock := &mockCalendarioService{
		disponibilita: &dto.DisponibilitaResponse{
			Sospeso: false,
			Slot:    []dto.SlotResponse{{Chiave: "2026-03-16-9-0", Durata: 50}},
		},
	}
	h := NewColloquiHandler(mock, &mockPrenotazioneService{}, nil)

	r := gin.New()
	r.GET("/colloqui/disponibili/:docenteID", h.Disponibili)

	w := eseguiJSON(t, r, http.MethodGet, "/colloqui/disponibili/doc-1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, atteso 200", w.Code)
	}

	// docente senza ricevimento attivo
	mock.disponibilita = nil
	mock.err = fmt.Errorf("%w: nessun ricevimento", apperrors.ErrNonTrovato)
	w = eseguiJSON(t, r, http.MethodGet, "/colloqui/disponibili/doc-1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, atteso 404", w.Code)
	}
}

func TestRichiesteHandlerPaginazione(t *testing.T) {
	mock := &mockPrenotazioneService{
		richieste:    []dto.PrenotazioneResponse{{ID: "p-1"}, {ID: "p-2"}},
		richiesteTot: 25,
	}
	h := NewColloquiHandler(&mockCalendarioService{}, mock, nil)

	r := gin.New()
	r.GET("/colloqui/richieste", iniettaAttore("doc-1", model.RuoloDocente, ""), h.Richieste)

	w := eseguiJSON(t, r, http.MethodGet, "/colloqui/richieste?pagina=2", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, atteso 200", w.Code)
	}

	body := decodifica(t, w)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data mancante: %s", w.Body.String())
	}
	// 25 elementi su pagine da 10: finestra [1,3]
	if data["pagina"] != float64(2) || data["max"] != float64(3) ||
		data["inizio"] != float64(1) || data["fine"] != float64(3) {
		t.Errorf("finestra inattesa: %v", data)
	}
	if lista, ok := data["lista"].([]interface{}); !ok || len(lista) != 2 {
		t.Errorf("lista inattesa: %v", data["lista"])
	}
}

func TestListDocentiHandler(t *testing.T) {
	mock := &mockUtenteService{
		docenti: []dto.UtenteResponse{{ID: "doc-1", Cognome: "Rossi"}},
		total:   1,
	}
	h := NewUtenteHandler(mock, nil)

	r := gin.New()
	r.GET("/docenti", iniettaAttore("gen-1", model.RuoloGenitore, "cls-1"), h.ListDocenti)

	w := eseguiJSON(t, r, http.MethodGet, "/docenti?cognome=ros", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, atteso 200", w.Code)
	}

	body := decodifica(t, w)
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("data mancante: %s", w.Body.String())
	}
	if data["pagina"] != float64(1) || data["max"] != float64(1) {
		t.Errorf("finestra inattesa: %v", data)
	}
}

func TestResetPasswordHandler(t *testing.T) {
	mockAuth := &mockAuthService{
		resetResult: &dto.ResetPasswordResponse{Username: "bianchi.luca", PasswordProvvisoria: "abc123XYZ9"},
	}
	h := NewAuthHandler(mockAuth)

	r := gin.New()
	r.POST("/utenti/:id/reset-password", iniettaAttore("adm-1", model.RuoloAmministratore, ""), h.ResetPassword)

	w := eseguiJSON(t, r, http.MethodPost, "/utenti/alu-1/reset-password", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, atteso 200", w.Code)
	}

	mockAuth.resetResult = nil
	mockAuth.resetErr = fmt.Errorf("%w: utente x", apperrors.ErrNonTrovato)
	w = eseguiJSON(t, r, http.MethodPost, "/utenti/ignoto/reset-password", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, atteso 404", w.Code)
	}
}

func TestExportHandler(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("contenuto"),
		filename: "colloqui_20260302.xlsx",
	}
	h := NewExportHandler(mock)

	r := gin.New()
	r.GET("/export/colloqui.xlsx", iniettaAttore("doc-1", model.RuoloDocente, ""), h.ColloquiXLSX)

	w := eseguiJSON(t, r, http.MethodGet, "/export/colloqui.xlsx", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, atteso 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != contentTypeXLSX {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename*=UTF-8''colloqui_20260302.xlsx" {
		t.Errorf("Content-Disposition = %q", cd)
	}

	// nessuna prenotazione
	mock.buf = nil
	mock.err = service.ErrExportVuoto
	w = eseguiJSON(t, r, http.MethodGet, "/export/colloqui.xlsx", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, atteso 404", w.Code)
	}
}

func TestRispostaHandlerValidazione(t *testing.T) {
	mock := &mockPrenotazioneService{
		rispostaErr: fmt.Errorf("%w: segnaposto non sostituito", apperrors.ErrValidazione),
	}
	h := NewColloquiHandler(&mockCalendarioService{}, mock, nil)

	r := gin.New()
	r.PUT("/colloqui/richieste/:id/risposta", iniettaAttore("doc-1", model.RuoloDocente, ""), h.Risposta)

	w := eseguiJSON(t, r, http.MethodPut, "/colloqui/richieste/p-1/risposta",
		dto.RispostaRequest{Esito: "conferma", Messaggio: "Confermo per %ORA%"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, atteso 400", w.Code)
	}
	if body := decodifica(t, w); body["code"] != float64(14002) {
		t.Errorf("code = %v, atteso 14002", body["code"])
	}

	// esito fuori insieme: respinto già dal binding
	w = eseguiJSON(t, r, http.MethodPut, "/colloqui/richieste/p-1/risposta",
		dto.RispostaRequest{Esito: "forse", Messaggio: "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, atteso 400", w.Code)
	}
}
