package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/internal/model"
)

// PrenotazioneRepository accesso dati prenotazioni e blocchi
type PrenotazioneRepository interface {
	GetByID(ctx context.Context, id string) (*model.Prenotazione, error)
	// TrovaAttiva record attivo (non rifiutato) per (ricevimento, slot);
	// gorm.ErrRecordNotFound se lo slot è libero
	TrovaAttiva(ctx context.Context, ricevimentoID string, dataOra time.Time) (*model.Prenotazione, error)
	// ListAttiveDal record attivi del ricevimento a partire da un istante
	ListAttiveDal(ctx context.Context, ricevimentoID string, dal time.Time) ([]model.Prenotazione, error)
	Create(ctx context.Context, p *model.Prenotazione) error
	Update(ctx context.Context, p *model.Prenotazione) error
	// Elimina cancellazione fisica, riservata ai blocchi sintetici
	Elimina(ctx context.Context, id string) error
	ListByRicevimento(ctx context.Context, ricevimentoID, stato string, offset, limit int) ([]model.Prenotazione, int64, error)
	// ListByStatoDocente prenotazioni di un docente filtrate per stato
	ListByStatoDocente(ctx context.Context, docenteID, stato string) ([]model.Prenotazione, error)
}

type prenotazioneRepo struct {
	db *gorm.DB
}

// NewPrenotazioneRepo crea un'istanza di PrenotazioneRepository
func NewPrenotazioneRepo(db *gorm.DB) PrenotazioneRepository {
	return &prenotazioneRepo{db: db}
}

func (r *prenotazioneRepo) GetByID(ctx context.Context, id string) (*model.Prenotazione, error) {
	var p model.Prenotazione
	err := r.db.WithContext(ctx).
		Preload("Ricevimento").
		Preload("Richiedente").
		Preload("Richiedente.Classe").
		Where("prenotazione_id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *prenotazioneRepo) TrovaAttiva(ctx context.Context, ricevimentoID string, dataOra time.Time) (*model.Prenotazione, error) {
	var p model.Prenotazione
	err := r.db.WithContext(ctx).
		Where("ricevimento_id = ? AND data_ora = ? AND stato IN ?", ricevimentoID, dataOra, model.StatiAttivi).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *prenotazioneRepo) ListAttiveDal(ctx context.Context, ricevimentoID string, dal time.Time) ([]model.Prenotazione, error) {
	var lista []model.Prenotazione
	err := r.db.WithContext(ctx).
		Where("ricevimento_id = ? AND data_ora >= ? AND stato IN ?", ricevimentoID, dal, model.StatiAttivi).
		Order("data_ora ASC").
		Find(&lista).Error
	return lista, err
}

func (r *prenotazioneRepo) Create(ctx context.Context, p *model.Prenotazione) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *prenotazioneRepo) Update(ctx context.Context, p *model.Prenotazione) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *prenotazioneRepo) Elimina(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("prenotazione_id = ?", id).
		Delete(&model.Prenotazione{}).Error
}

func (r *prenotazioneRepo) ListByRicevimento(ctx context.Context, ricevimentoID, stato string, offset, limit int) ([]model.Prenotazione, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Prenotazione{}).
		Where("ricevimento_id = ?", ricevimentoID)
	if stato != "" {
		q = q.Where("stato = ?", stato)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var lista []model.Prenotazione
	err := q.Preload("Richiedente").
		Preload("Richiedente.Classe").
		Order("data_ora ASC").
		Offset(offset).
		Limit(limit).
		Find(&lista).Error
	return lista, total, err
}

func (r *prenotazioneRepo) ListByStatoDocente(ctx context.Context, docenteID, stato string) ([]model.Prenotazione, error) {
	var lista []model.Prenotazione
	err := r.db.WithContext(ctx).
		Joins("JOIN ricevimenti ON ricevimenti.ricevimento_id = prenotazioni.ricevimento_id").
		Where("ricevimenti.docente_id = ? AND prenotazioni.stato = ?", docenteID, stato).
		Preload("Richiedente").
		Preload("Richiedente.Classe").
		Order("prenotazioni.data_ora ASC").
		Find(&lista).Error
	return lista, err
}
