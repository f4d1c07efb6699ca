package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/internal/model"
	"github.com/iisgiua/giuaschool-colloqui/internal/repository"
	apperrors "github.com/iisgiua/giuaschool-colloqui/pkg/errors"
)

// SegnapostoOra token riservato alla sostituzione dell'orario nei template
// di risposta. Un messaggio del docente che lo contiene ancora è un template
// non personalizzato e viene respinto, mai corretto in silenzio.
const SegnapostoOra = "%ORA%"

// modelloConferma template di sistema anteposto alla risposta di conferma
const modelloConferma = "Colloquio confermato per " + SegnapostoOra + "."

// ── esiti della risposta del docente ──

const (
	EsitoConferma = "conferma"
	EsitoRifiuto  = "rifiuto"
)

// PrenotazioneService macchina a stati delle prenotazioni.
// Stati: aperto (virtuale, nessun record), pendente, confermata, rifiutata,
// bloccata. L'invariante di unicità per (ricevimento, slot) è garantito in
// ultima istanza dall'indice univoco parziale sul database; il controllo
// applicativo è solo una via rapida.
type PrenotazioneService interface {
	// Prenota aperto → pendente
	Prenota(ctx context.Context, attore dto.Attore, req *dto.PrenotaRequest) (*dto.PrenotazioneResponse, error)
	// Rispondi pendente|rifiutata → confermata|rifiutata
	Rispondi(ctx context.Context, attore dto.Attore, prenotazioneID string, req *dto.RispostaRequest) (*dto.PrenotazioneResponse, error)
	// Blocca aperto → bloccata (record sintetico senza richiedente)
	Blocca(ctx context.Context, attore dto.Attore, dataOra time.Time) (*dto.PrenotazioneResponse, error)
	// Sblocca bloccata → aperto (il record sintetico viene eliminato)
	Sblocca(ctx context.Context, attore dto.Attore, prenotazioneID string) error
	// SbloccaSlot come Sblocca, individuando il blocco dallo slot
	SbloccaSlot(ctx context.Context, attore dto.Attore, dataOra time.Time) error
	// ListRichieste richieste sul ricevimento del docente, paginate
	ListRichieste(ctx context.Context, docenteID string, criteri *dto.CriteriRichieste, offset, limit int) ([]dto.PrenotazioneResponse, int64, error)
	// ParseChiave decodifica la chiave di rotta YYYY-MM-DD-H-M
	ParseChiave(chiave string) (time.Time, error)
}

type prenotazioneService struct {
	repo       *repository.Repository
	calendario CalendarioService
	loc        *time.Location
	logger     *zap.Logger
}

// NewPrenotazioneService crea un'istanza di PrenotazioneService
func NewPrenotazioneService(repo *repository.Repository, calendario CalendarioService, loc *time.Location, logger *zap.Logger) PrenotazioneService {
	return &prenotazioneService{
		repo:       repo,
		calendario: calendario,
		loc:        loc,
		logger:     logger,
	}
}

func (s *prenotazioneService) ParseChiave(chiave string) (time.Time, error) {
	t, err := model.ParseChiaveSlot(chiave, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrValidazione, err)
	}
	return t, nil
}

// ────────────────────── Prenota ──────────────────────

func (s *prenotazioneService) Prenota(ctx context.Context, attore dto.Attore, req *dto.PrenotaRequest) (*dto.PrenotazioneResponse, error) {
	dataOra, err := s.ParseChiave(req.Chiave)
	if err != nil {
		return nil, err
	}

	ric, err := s.repo.Ricevimento.GetAttivoByDocente(ctx, req.DocenteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrNonTrovato, ErrRicevimentoNonTrovato)
		}
		return nil, err
	}

	// abilitazione: il docente deve insegnare nella classe del richiedente
	if err := s.verificaAbilitazione(ctx, attore, ric.DocenteID); err != nil {
		return nil, err
	}

	slot, err := s.calendario.SlotValido(ctx, ric, dataOra)
	if err != nil {
		return nil, err
	}

	// via rapida: slot già occupato
	if _, err := s.repo.Prenotazione.TrovaAttiva(ctx, ric.RicevimentoID, dataOra); err == nil {
		return nil, fmt.Errorf("%w: già prenotato o bloccato", apperrors.ErrConflitto)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.Prenotazione{
		RicevimentoID: ric.RicevimentoID,
		DataOra:       slot.DataOra,
		Durata:        slot.Durata,
		Stato:         model.StatoPendente,
		Messaggio:     strings.TrimSpace(req.Messaggio),
		RichiedenteID: &attore.ID,
	}
	p.CreatedBy = &attore.ID
	p.UpdatedBy = &attore.ID

	if err := s.repo.Prenotazione.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// la guardia autoritativa è l'indice univoco parziale
			return nil, fmt.Errorf("%w: già prenotato o bloccato", apperrors.ErrConflitto)
		}
		s.logger.Error("creazione prenotazione fallita", zap.Error(err))
		return nil, err
	}

	s.registraTransizione(ctx, attore.ID, p, "prenotazione", "aperto", model.StatoPendente, p.Messaggio, "")

	return s.toPrenotazioneResponse(p), nil
}

// ────────────────────── Rispondi ──────────────────────

func (s *prenotazioneService) Rispondi(ctx context.Context, attore dto.Attore, prenotazioneID string, req *dto.RispostaRequest) (*dto.PrenotazioneResponse, error) {
	p, err := s.caricaPerDocente(ctx, attore, prenotazioneID)
	if err != nil {
		return nil, err
	}

	if p.Stato != model.StatoPendente && p.Stato != model.StatoRifiutata {
		return nil, fmt.Errorf("%w: transizione non ammessa dallo stato %q", apperrors.ErrValidazione, p.Stato)
	}

	messaggio := strings.TrimSpace(req.Messaggio)
	if messaggio == "" {
		return nil, fmt.Errorf("%w: il messaggio di risposta è obbligatorio", apperrors.ErrValidazione)
	}
	if strings.Contains(messaggio, SegnapostoOra) {
		return nil, fmt.Errorf("%w: il messaggio contiene il segnaposto %s non sostituito", apperrors.ErrValidazione, SegnapostoOra)
	}

	statoPrecedente := p.Stato
	rispostaPrecedente := p.Risposta

	switch req.Esito {
	case EsitoConferma:
		p.Stato = model.StatoConfermata
		etichetta := s.slotDiPrenotazione(p).Etichetta()
		p.Risposta = strings.ReplaceAll(modelloConferma, SegnapostoOra, etichetta) + " " + messaggio
	case EsitoRifiuto:
		p.Stato = model.StatoRifiutata
		p.Risposta = messaggio
	default:
		return nil, fmt.Errorf("%w: esito %q sconosciuto", apperrors.ErrValidazione, req.Esito)
	}
	p.UpdatedBy = &attore.ID

	if err := s.repo.Prenotazione.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// rifiutata → confermata con lo slot nel frattempo rioccupato
			return nil, fmt.Errorf("%w: lo slot è stato nel frattempo occupato", apperrors.ErrConflitto)
		}
		s.logger.Error("aggiornamento prenotazione fallito", zap.Error(err))
		return nil, err
	}

	s.registraTransizione(ctx, attore.ID, p, req.Esito, statoPrecedente, p.Stato, p.Risposta, rispostaPrecedente)

	return s.toPrenotazioneResponse(p), nil
}

// ────────────────────── Blocca / Sblocca ──────────────────────

func (s *prenotazioneService) Blocca(ctx context.Context, attore dto.Attore, dataOra time.Time) (*dto.PrenotazioneResponse, error) {
	ric, err := s.repo.Ricevimento.GetAttivoByDocente(ctx, attore.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrNonTrovato, ErrRicevimentoNonTrovato)
		}
		return nil, err
	}

	slot, err := s.calendario.SlotValido(ctx, ric, dataOra)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Prenotazione.TrovaAttiva(ctx, ric.RicevimentoID, dataOra); err == nil {
		return nil, fmt.Errorf("%w: lo slot ha già una prenotazione o un blocco", apperrors.ErrConflitto)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p := &model.Prenotazione{
		RicevimentoID: ric.RicevimentoID,
		DataOra:       slot.DataOra,
		Durata:        slot.Durata,
		Stato:         model.StatoBloccata,
	}
	p.CreatedBy = &attore.ID
	p.UpdatedBy = &attore.ID

	if err := s.repo.Prenotazione.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: lo slot ha già una prenotazione o un blocco", apperrors.ErrConflitto)
		}
		s.logger.Error("creazione blocco fallita", zap.Error(err))
		return nil, err
	}

	s.registraTransizione(ctx, attore.ID, p, "blocco", "aperto", model.StatoBloccata, "", "")

	return s.toPrenotazioneResponse(p), nil
}

func (s *prenotazioneService) Sblocca(ctx context.Context, attore dto.Attore, prenotazioneID string) error {
	p, err := s.caricaPerDocente(ctx, attore, prenotazioneID)
	if err != nil {
		return err
	}
	return s.eliminaBlocco(ctx, attore, p)
}

func (s *prenotazioneService) SbloccaSlot(ctx context.Context, attore dto.Attore, dataOra time.Time) error {
	ric, err := s.repo.Ricevimento.GetAttivoByDocente(ctx, attore.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %v", apperrors.ErrNonTrovato, ErrRicevimentoNonTrovato)
		}
		return err
	}

	p, err := s.repo.Prenotazione.TrovaAttiva(ctx, ric.RicevimentoID, dataOra)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: nessun blocco sullo slot", apperrors.ErrNonTrovato)
		}
		return err
	}
	return s.eliminaBlocco(ctx, attore, p)
}

func (s *prenotazioneService) eliminaBlocco(ctx context.Context, attore dto.Attore, p *model.Prenotazione) error {
	if !p.Blocco() {
		return fmt.Errorf("%w: il record non è un blocco", apperrors.ErrValidazione)
	}

	if err := s.repo.Prenotazione.Elimina(ctx, p.PrenotazioneID); err != nil {
		s.logger.Error("eliminazione blocco fallita", zap.Error(err))
		return err
	}

	s.registraTransizione(ctx, attore.ID, p, "sblocco", model.StatoBloccata, "aperto", "", "")
	return nil
}

// ────────────────────── ListRichieste ──────────────────────

func (s *prenotazioneService) ListRichieste(ctx context.Context, docenteID string, criteri *dto.CriteriRichieste, offset, limit int) ([]dto.PrenotazioneResponse, int64, error) {
	ric, err := s.repo.Ricevimento.GetAttivoByDocente(ctx, docenteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []dto.PrenotazioneResponse{}, 0, nil
		}
		return nil, 0, err
	}

	lista, total, err := s.repo.Prenotazione.ListByRicevimento(ctx, ric.RicevimentoID, criteri.Stato, offset, limit)
	if err != nil {
		s.logger.Error("elenco richieste fallito", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.PrenotazioneResponse, 0, len(lista))
	for i := range lista {
		result = append(result, *s.toPrenotazioneResponse(&lista[i]))
	}
	return result, total, nil
}

// ────────────────────── helper ──────────────────────

// verificaAbilitazione genitori e alunni accedono solo ai docenti della
// propria classe; l'amministratore non ha vincoli
func (s *prenotazioneService) verificaAbilitazione(ctx context.Context, attore dto.Attore, docenteID string) error {
	switch attore.Ruolo {
	case model.RuoloAmministratore:
		return nil
	case model.RuoloGenitore, model.RuoloAlunno:
		if attore.ClasseID == "" {
			return fmt.Errorf("%w: nessuna classe assegnata", apperrors.ErrAutorizzazione)
		}
		ok, err := s.repo.Cattedra.EsisteDocenteClasse(ctx, docenteID, attore.ClasseID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: il docente non insegna nella classe", apperrors.ErrAutorizzazione)
		}
		return nil
	default:
		return fmt.Errorf("%w: ruolo %q non abilitato alla prenotazione", apperrors.ErrAutorizzazione, attore.Ruolo)
	}
}

// caricaPerDocente carica la prenotazione verificando che l'attore sia il
// titolare del ricevimento o un amministratore
func (s *prenotazioneService) caricaPerDocente(ctx context.Context, attore dto.Attore, prenotazioneID string) (*model.Prenotazione, error) {
	p, err := s.repo.Prenotazione.GetByID(ctx, prenotazioneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: prenotazione %s", apperrors.ErrNonTrovato, prenotazioneID)
		}
		return nil, err
	}
	if attore.Ruolo != model.RuoloAmministratore &&
		(p.Ricevimento == nil || p.Ricevimento.DocenteID != attore.ID) {
		return nil, fmt.Errorf("%w: il ricevimento appartiene a un altro docente", apperrors.ErrAutorizzazione)
	}
	return p, nil
}

func (s *prenotazioneService) slotDiPrenotazione(p *model.Prenotazione) model.Slot {
	dataOra := p.DataOra.In(s.loc)
	return model.Slot{
		DataOra: dataOra,
		Fine:    dataOra.Add(time.Duration(p.Durata) * time.Minute),
		Durata:  p.Durata,
	}
}

// registraTransizione ogni transizione riuscita finisce nel registro con
// attore, slot, stato precedente e nuovo, messaggio e messaggio precedente
func (s *prenotazioneService) registraTransizione(ctx context.Context, attoreID string, p *model.Prenotazione, azione, da, a, messaggio, messaggioPrecedente string) {
	contesto := model.JSONMap{
		"prenotazione": p.PrenotazioneID,
		"ricevimento":  p.RicevimentoID,
		"slot":         model.FormatChiaveSlot(p.DataOra.In(s.loc)),
		"da":           da,
		"a":            a,
	}
	if messaggio != "" {
		contesto["messaggio"] = messaggio
	}
	if messaggioPrecedente != "" {
		contesto["messaggio_precedente"] = messaggioPrecedente
	}
	if err := s.repo.LogAzione.Registra(ctx, &model.LogAzione{
		Categoria: "colloqui",
		Azione:    azione,
		AttoreID:  attoreID,
		Contesto:  contesto,
	}); err != nil {
		s.logger.Warn("registrazione audit fallita", zap.Error(err))
	}
}

func (s *prenotazioneService) toPrenotazioneResponse(p *model.Prenotazione) *dto.PrenotazioneResponse {
	sl := s.slotDiPrenotazione(p)
	resp := &dto.PrenotazioneResponse{
		ID:          p.PrenotazioneID,
		Ricevimento: p.RicevimentoID,
		Chiave:      sl.ChiaveSlot(),
		DataOra:     sl.DataOra,
		Durata:      p.Durata,
		Stato:       p.Stato,
		Messaggio:   p.Messaggio,
		Risposta:    p.Risposta,
		Etichetta:   sl.Etichetta(),
	}
	if p.Richiedente != nil {
		r := toUtenteResponse(p.Richiedente)
		resp.Richiedente = &r
	}
	return resp
}
