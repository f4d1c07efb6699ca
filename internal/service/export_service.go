package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/iisgiua/giuaschool-colloqui/internal/model"
	"github.com/iisgiua/giuaschool-colloqui/internal/repository"
)

// ── errori del modulo export ──

var (
	ErrExportVuoto = errors.New("nessuna prenotazione da esportare")
)

// ExportService esportazione delle prenotazioni del docente.
//
// Due formati:
//   - .xlsx con l'elenco completo delle richieste (excelize)
//   - .ics con i soli colloqui confermati, importabile nei calendari
//
// Il contenuto viene restituito come bytes.Buffer; gli header HTTP sono a
// carico dell'Handler.
type ExportService interface {
	PrenotazioniXLSX(ctx context.Context, docenteID string) (*bytes.Buffer, string, error)
	AgendaICS(ctx context.Context, docenteID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService crea un'istanza di ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) PrenotazioniXLSX(ctx context.Context, docenteID string) (*bytes.Buffer, string, error) {
	ric, err := s.repo.Ricevimento.GetAttivoByDocente(ctx, docenteID)
	if err != nil {
		return nil, "", ErrExportVuoto
	}

	lista, _, err := s.repo.Prenotazione.ListByRicevimento(ctx, ric.RicevimentoID, "", 0, 10000)
	if err != nil {
		s.logger.Error("lettura prenotazioni per export fallita", zap.Error(err))
		return nil, "", err
	}
	if len(lista) == 0 {
		return nil, "", ErrExportVuoto
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Colloqui"
	f.SetSheetName("Sheet1", sheet)

	intestazioni := []string{"Data", "Ora", "Durata (min)", "Stato", "Richiedente", "Classe", "Messaggio", "Risposta"}
	for i, h := range intestazioni {
		cella, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cella, h)
	}

	for r, p := range lista {
		richiedente := ""
		classe := ""
		if p.Richiedente != nil {
			richiedente = p.Richiedente.Cognome + " " + p.Richiedente.Nome
			if p.Richiedente.Classe != nil {
				classe = p.Richiedente.Classe.Etichetta()
			}
		}
		valori := []interface{}{
			p.DataOra.Format("02/01/2006"),
			p.DataOra.Format("15:04"),
			p.Durata,
			p.Stato,
			richiedente,
			classe,
			p.Messaggio,
			p.Risposta,
		}
		for c, v := range valori {
			cella, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cella, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("generazione xlsx fallita", zap.Error(err))
		return nil, "", err
	}

	nome := fmt.Sprintf("colloqui_%s.xlsx", time.Now().Format("20060102"))
	return buf, nome, nil
}

func (s *exportService) AgendaICS(ctx context.Context, docenteID string) (*bytes.Buffer, string, error) {
	confermate, err := s.repo.Prenotazione.ListByStatoDocente(ctx, docenteID, model.StatoConfermata)
	if err != nil {
		s.logger.Error("lettura colloqui confermati fallita", zap.Error(err))
		return nil, "", err
	}
	if len(confermate) == 0 {
		return nil, "", ErrExportVuoto
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//giuaschool//colloqui//IT")

	for i := range confermate {
		p := &confermate[i]
		evento := cal.AddEvent(p.PrenotazioneID + "@giuaschool-colloqui")
		evento.SetCreatedTime(p.CreatedAt)
		evento.SetDtStampTime(time.Now())
		evento.SetStartAt(p.DataOra)
		evento.SetEndAt(p.DataOra.Add(time.Duration(p.Durata) * time.Minute))

		titolo := "Colloquio"
		if p.Richiedente != nil {
			titolo = "Colloquio con " + p.Richiedente.Cognome + " " + p.Richiedente.Nome
			if p.Richiedente.Classe != nil {
				titolo += " (" + p.Richiedente.Classe.Etichetta() + ")"
			}
		}
		evento.SetSummary(titolo)
		if p.Risposta != "" {
			evento.SetDescription(p.Risposta)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	nome := fmt.Sprintf("agenda_%s.ics", time.Now().Format("20060102"))
	return buf, nome, nil
}
