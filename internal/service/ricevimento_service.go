package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/config"
	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/internal/model"
	"github.com/iisgiua/giuaschool-colloqui/internal/repository"
	apperrors "github.com/iisgiua/giuaschool-colloqui/pkg/errors"
)

// RicevimentoService gestione della regola di disponibilità del docente.
// Ogni docente ha al più una coppia giorno+ora attiva (indice univoco
// parziale) più un numero illimitato di date aggiuntive una tantum.
type RicevimentoService interface {
	GetMio(ctx context.Context, docenteID string) (*dto.RicevimentoResponse, error)
	// Upsert crea o aggiorna la regola attiva del docente
	Upsert(ctx context.Context, docenteID string, req *dto.RicevimentoRequest) (*dto.RicevimentoResponse, error)
	// AggiungiData inserisce una data una tantum, validata sul calendario
	// festività e sulla finestra dell'anno scolastico
	AggiungiData(ctx context.Context, docenteID string, req *dto.DataAggiuntivaRequest) (*dto.DataAggiuntivaResponse, error)
	EliminaData(ctx context.Context, docenteID, dataID string) error
}

type ricevimentoService struct {
	cfg    *config.Config
	repo   *repository.Repository
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewRicevimentoService crea un'istanza di RicevimentoService
func NewRicevimentoService(cfg *config.Config, repo *repository.Repository, loc *time.Location, logger *zap.Logger) RicevimentoService {
	return &ricevimentoService{
		cfg:    cfg,
		repo:   repo,
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}
}

func (s *ricevimentoService) GetMio(ctx context.Context, docenteID string) (*dto.RicevimentoResponse, error) {
	ric, err := s.repo.Ricevimento.GetAttivoByDocente(ctx, docenteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrNonTrovato, ErrRicevimentoNonTrovato)
		}
		return nil, err
	}
	return s.toRicevimentoResponse(ric), nil
}

func (s *ricevimentoService) Upsert(ctx context.Context, docenteID string, req *dto.RicevimentoRequest) (*dto.RicevimentoResponse, error) {
	// la coppia giorno+ora deve esistere nella scansione oraria
	if _, err := s.repo.Scansione.GetByGiornoOra(ctx, req.Giorno, req.Ora); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidazione, ErrScansioneNonTrovata)
		}
		return nil, err
	}

	ric, err := s.repo.Ricevimento.GetAttivoByDocente(ctx, docenteID)
	switch {
	case err == nil:
		ric.Giorno = req.Giorno
		ric.Ora = req.Ora
		ric.Frequenza = req.Frequenza
		ric.Attivo = req.Attivo
		ric.UpdatedBy = &docenteID
		if err := s.repo.Ricevimento.Update(ctx, ric); err != nil {
			s.logger.Error("aggiornamento ricevimento fallito", zap.Error(err))
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		ric = &model.Ricevimento{
			DocenteID: docenteID,
			Giorno:    req.Giorno,
			Ora:       req.Ora,
			Frequenza: req.Frequenza,
			Attivo:    req.Attivo,
		}
		ric.CreatedBy = &docenteID
		ric.UpdatedBy = &docenteID
		if err := s.repo.Ricevimento.Create(ctx, ric); err != nil {
			s.logger.Error("creazione ricevimento fallita", zap.Error(err))
			return nil, err
		}
	default:
		return nil, err
	}

	return s.toRicevimentoResponse(ric), nil
}

func (s *ricevimentoService) AggiungiData(ctx context.Context, docenteID string, req *dto.DataAggiuntivaRequest) (*dto.DataAggiuntivaResponse, error) {
	ric, err := s.repo.Ricevimento.GetAttivoByDocente(ctx, docenteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrNonTrovato, ErrRicevimentoNonTrovato)
		}
		return nil, err
	}

	dataOra, err := model.ParseChiaveSlot(req.DataOra, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidazione, err)
	}

	// validazione individuale: dentro la finestra dell'anno e mai festiva
	oggi := s.now().In(s.loc)
	oggi = time.Date(oggi.Year(), oggi.Month(), oggi.Day(), 0, 0, 0, 0, s.loc)
	if dataOra.Before(oggi) {
		return nil, fmt.Errorf("%w: la data è nel passato", apperrors.ErrValidazione)
	}
	fineAnno, _ := s.cfg.Scuola.FineAnnoData()
	limite := time.Date(fineAnno.Year(), fineAnno.Month(), fineAnno.Day(), 0, 0, 0, 0, s.loc).
		AddDate(0, 0, -s.cfg.Scuola.GiorniBlocco)
	if dataOra.After(limite) {
		return nil, fmt.Errorf("%w: la data supera il limite di fine anno", apperrors.ErrValidazione)
	}
	festiva, err := s.repo.Festivita.EsisteData(ctx, dataOra)
	if err != nil {
		return nil, err
	}
	if festiva {
		return nil, fmt.Errorf("%w: la data è festiva", apperrors.ErrValidazione)
	}

	d := &model.RicevimentoData{
		RicevimentoID: ric.RicevimentoID,
		DataOra:       dataOra,
		Durata:        req.Durata,
	}
	if err := s.repo.Ricevimento.AggiungiData(ctx, d); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: data già presente", apperrors.ErrConflitto)
		}
		s.logger.Error("inserimento data aggiuntiva fallito", zap.Error(err))
		return nil, err
	}

	return &dto.DataAggiuntivaResponse{
		ID:      d.DataID,
		DataOra: d.DataOra,
		Durata:  d.Durata,
	}, nil
}

func (s *ricevimentoService) EliminaData(ctx context.Context, docenteID, dataID string) error {
	d, err := s.repo.Ricevimento.GetData(ctx, dataID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: data %s", apperrors.ErrNonTrovato, dataID)
		}
		return err
	}

	ric, err := s.repo.Ricevimento.GetByID(ctx, d.RicevimentoID)
	if err != nil {
		return err
	}
	if ric.DocenteID != docenteID {
		return fmt.Errorf("%w: il ricevimento appartiene a un altro docente", apperrors.ErrAutorizzazione)
	}

	return s.repo.Ricevimento.EliminaData(ctx, dataID)
}

func (s *ricevimentoService) toRicevimentoResponse(ric *model.Ricevimento) *dto.RicevimentoResponse {
	date := make([]dto.DataAggiuntivaResponse, 0, len(ric.Date))
	for i := range ric.Date {
		date = append(date, dto.DataAggiuntivaResponse{
			ID:      ric.Date[i].DataID,
			DataOra: ric.Date[i].DataOra.In(s.loc),
			Durata:  ric.Date[i].Durata,
		})
	}
	return &dto.RicevimentoResponse{
		ID:        ric.RicevimentoID,
		DocenteID: ric.DocenteID,
		Giorno:    ric.Giorno,
		Ora:       ric.Ora,
		Frequenza: ric.Frequenza,
		Attivo:    ric.Attivo,
		Date:      date,
	}
}
