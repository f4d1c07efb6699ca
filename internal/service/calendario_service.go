package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/config"
	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/internal/model"
	"github.com/iisgiua/giuaschool-colloqui/internal/repository"
	apperrors "github.com/iisgiua/giuaschool-colloqui/pkg/errors"
)

// ── errori del modulo calendario ──

var (
	ErrRicevimentoNonTrovato = errors.New("il docente non ha un ricevimento attivo")
	ErrScansioneNonTrovata   = errors.New("ora non presente nella scansione oraria")
)

// CalendarioService espansione delle regole di ricevimento in slot concreti.
// Gli slot sono valori derivati calcolati a richiesta, mai persistiti.
type CalendarioService interface {
	// SlotDisponibili slot liberi e prenotabili del docente; Sospeso=true
	// quando la data odierna supera il limite di fine anno meno la
	// finestra di blocco
	SlotDisponibili(ctx context.Context, docenteID string) (*dto.DisponibilitaResponse, error)
	// SlotDelRicevimento tutti gli slot validi della regola, liberi o meno
	SlotDelRicevimento(ctx context.Context, ric *model.Ricevimento) (bool, []model.Slot, error)
	// SlotValido verifica che l'istante coincida con uno slot generabile
	// della regola (libero o occupato)
	SlotValido(ctx context.Context, ric *model.Ricevimento, dataOra time.Time) (*model.Slot, error)
	// Limite data oltre la quale i colloqui sono sospesi
	Limite() time.Time
}

type calendarioService struct {
	cfg    *config.Config
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarioService crea un'istanza di CalendarioService
func NewCalendarioService(cfg *config.Config, repo *repository.Repository, loc *time.Location, logger *zap.Logger) CalendarioService {
	return &calendarioService{
		cfg:    cfg,
		repo:   repo,
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}
}

func (s *calendarioService) Limite() time.Time {
	fine, _ := s.cfg.Scuola.FineAnnoData()
	fine = time.Date(fine.Year(), fine.Month(), fine.Day(), 0, 0, 0, 0, s.loc)
	return fine.AddDate(0, 0, -s.cfg.Scuola.GiorniBlocco)
}

func (s *calendarioService) SlotDisponibili(ctx context.Context, docenteID string) (*dto.DisponibilitaResponse, error) {
	ric, err := s.repo.Ricevimento.GetAttivoByDocente(ctx, docenteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrNonTrovato, ErrRicevimentoNonTrovato)
		}
		s.logger.Error("ricerca ricevimento fallita", zap.Error(err))
		return nil, err
	}

	sospeso, slot, err := s.SlotDelRicevimento(ctx, ric)
	if err != nil {
		return nil, err
	}
	if sospeso {
		return &dto.DisponibilitaResponse{Sospeso: true, Slot: []dto.SlotResponse{}}, nil
	}

	// esclusione degli slot già occupati da prenotazioni o blocchi attivi
	oggi := s.oggi()
	occupate, err := s.repo.Prenotazione.ListAttiveDal(ctx, ric.RicevimentoID, oggi)
	if err != nil {
		s.logger.Error("ricerca prenotazioni attive fallita", zap.Error(err))
		return nil, err
	}
	occupati := make(map[int64]bool, len(occupate))
	for i := range occupate {
		occupati[occupate[i].DataOra.Unix()] = true
	}

	liberi := make([]dto.SlotResponse, 0, len(slot))
	for _, sl := range slot {
		if occupati[sl.DataOra.Unix()] {
			continue
		}
		liberi = append(liberi, dto.SlotResponse{
			Chiave:    sl.ChiaveSlot(),
			DataOra:   sl.DataOra,
			Fine:      sl.Fine,
			Durata:    sl.Durata,
			Etichetta: sl.Etichetta(),
		})
	}

	return &dto.DisponibilitaResponse{Sospeso: false, Slot: liberi}, nil
}

func (s *calendarioService) SlotDelRicevimento(ctx context.Context, ric *model.Ricevimento) (bool, []model.Slot, error) {
	oggi := s.oggi()
	limite := s.Limite()
	if oggi.After(limite) {
		return true, nil, nil
	}

	scansione, err := s.repo.Scansione.GetByGiornoOra(ctx, ric.Giorno, ric.Ora)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil, fmt.Errorf("%w: giorno %d ora %d", ErrScansioneNonTrovata, ric.Giorno, ric.Ora)
		}
		return false, nil, err
	}

	feste, err := s.repo.Festivita.ListBetween(ctx, oggi, limite)
	if err != nil {
		s.logger.Error("lettura calendario festività fallita", zap.Error(err))
		return false, nil, err
	}
	festivi := make(map[string]bool, len(feste))
	for i := range feste {
		festivi[feste[i].Data.Format("2006-01-02")] = true
	}

	slot, err := EspandiSlot(ric, scansione, festivi, oggi, limite, s.loc)
	if err != nil {
		return false, nil, err
	}
	return false, slot, nil
}

func (s *calendarioService) SlotValido(ctx context.Context, ric *model.Ricevimento, dataOra time.Time) (*model.Slot, error) {
	sospeso, slot, err := s.SlotDelRicevimento(ctx, ric)
	if err != nil {
		return nil, err
	}
	if sospeso {
		return nil, fmt.Errorf("%w: colloqui sospesi a fine anno", apperrors.ErrValidazione)
	}
	for i := range slot {
		if slot[i].DataOra.Equal(dataOra) {
			return &slot[i], nil
		}
	}
	return nil, fmt.Errorf("%w: slot inesistente", apperrors.ErrValidazione)
}

func (s *calendarioService) oggi() time.Time {
	n := s.now().In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, s.loc)
}

// EspandiSlot espande la regola in slot concreti nell'intervallo [oggi, limite]:
// parte dalla prima occorrenza del giorno della regola, avanza di Frequenza
// settimane, salta le festività e risolve inizio e fine dall'ora di scansione.
// Le date aggiuntive vengono inserite in ordine cronologico, deduplicando
// quelle coincidenti con una ricorrenza regolare.
func EspandiSlot(
	ric *model.Ricevimento,
	scansione *model.ScansioneOraria,
	festivi map[string]bool,
	oggi, limite time.Time,
	loc *time.Location,
) ([]model.Slot, error) {
	if ric.Giorno < 1 || ric.Giorno > 6 {
		return nil, fmt.Errorf("%w: giorno %d fuori dall'intervallo 1-6", apperrors.ErrValidazione, ric.Giorno)
	}
	frequenza := ric.Frequenza
	if frequenza < 1 {
		frequenza = 1
	}

	inizio, err := oraDelGiorno(scansione.Inizio)
	if err != nil {
		return nil, err
	}
	fine, err := oraDelGiorno(scansione.Fine)
	if err != nil {
		return nil, err
	}
	durata := int(fine.Sub(inizio).Minutes())
	if durata <= 0 {
		return nil, fmt.Errorf("%w: scansione oraria con durata non positiva", apperrors.ErrValidazione)
	}

	var slot []model.Slot
	visti := make(map[int64]bool)

	// prima occorrenza del giorno della regola a partire da oggi
	d := oggi
	for giornoSettimana(d) != ric.Giorno {
		d = d.AddDate(0, 0, 1)
	}

	for !d.After(limite) {
		if !festivi[d.Format("2006-01-02")] {
			sl := componiSlot(d, inizio, fine, durata, loc)
			slot = append(slot, sl)
			visti[sl.DataOra.Unix()] = true
		}
		d = d.AddDate(0, 0, 7*frequenza)
	}

	// innesto delle date aggiuntive una tantum
	for i := range ric.Date {
		extra := ric.Date[i]
		dataOra := extra.DataOra.In(loc)
		giorno := time.Date(dataOra.Year(), dataOra.Month(), dataOra.Day(), 0, 0, 0, 0, loc)
		if giorno.Before(oggi) || giorno.After(limite) {
			continue
		}
		if festivi[giorno.Format("2006-01-02")] {
			continue
		}
		if visti[dataOra.Unix()] {
			continue // coincide con una ricorrenza regolare
		}
		visti[dataOra.Unix()] = true
		slot = append(slot, model.Slot{
			DataOra: dataOra,
			Fine:    dataOra.Add(time.Duration(extra.Durata) * time.Minute),
			Durata:  extra.Durata,
		})
	}

	sort.Slice(slot, func(i, j int) bool { return slot[i].DataOra.Before(slot[j].DataOra) })
	return slot, nil
}

func componiSlot(giorno, inizio, fine time.Time, durata int, loc *time.Location) model.Slot {
	dataOra := time.Date(giorno.Year(), giorno.Month(), giorno.Day(),
		inizio.Hour(), inizio.Minute(), 0, 0, loc)
	return model.Slot{
		DataOra: dataOra,
		Fine: time.Date(giorno.Year(), giorno.Month(), giorno.Day(),
			fine.Hour(), fine.Minute(), 0, 0, loc),
		Durata: durata,
	}
}

// giornoSettimana 1=lunedì .. 7=domenica
func giornoSettimana(d time.Time) int {
	g := int(d.Weekday())
	if g == 0 {
		return 7
	}
	return g
}

// oraDelGiorno interpreta i formati TIME di PostgreSQL ("08:10:00" o "08:10")
func oraDelGiorno(v string) (time.Time, error) {
	t, err := time.Parse("15:04:05", v)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("15:04", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: orario %q non valido", apperrors.ErrValidazione, v)
	}
	return t, nil
}
