package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/internal/model"
)

// RicevimentoRepository accesso dati regole di ricevimento
type RicevimentoRepository interface {
	GetByID(ctx context.Context, id string) (*model.Ricevimento, error)
	// GetAttivoByDocente regola attiva del docente (al più una)
	GetAttivoByDocente(ctx context.Context, docenteID string) (*model.Ricevimento, error)
	Create(ctx context.Context, r *model.Ricevimento) error
	Update(ctx context.Context, r *model.Ricevimento) error
	AggiungiData(ctx context.Context, d *model.RicevimentoData) error
	GetData(ctx context.Context, dataID string) (*model.RicevimentoData, error)
	EliminaData(ctx context.Context, dataID string) error
	ListDate(ctx context.Context, ricevimentoID string) ([]model.RicevimentoData, error)
}

type ricevimentoRepo struct {
	db *gorm.DB
}

// NewRicevimentoRepo crea un'istanza di RicevimentoRepository
func NewRicevimentoRepo(db *gorm.DB) RicevimentoRepository {
	return &ricevimentoRepo{db: db}
}

func (r *ricevimentoRepo) GetByID(ctx context.Context, id string) (*model.Ricevimento, error) {
	var ric model.Ricevimento
	err := r.db.WithContext(ctx).
		Preload("Date").
		Where("ricevimento_id = ?", id).
		First(&ric).Error
	if err != nil {
		return nil, err
	}
	return &ric, nil
}

func (r *ricevimentoRepo) GetAttivoByDocente(ctx context.Context, docenteID string) (*model.Ricevimento, error) {
	var ric model.Ricevimento
	err := r.db.WithContext(ctx).
		Preload("Date").
		Where("docente_id = ? AND attivo", docenteID).
		First(&ric).Error
	if err != nil {
		return nil, err
	}
	return &ric, nil
}

func (r *ricevimentoRepo) Create(ctx context.Context, ric *model.Ricevimento) error {
	return r.db.WithContext(ctx).Create(ric).Error
}

func (r *ricevimentoRepo) Update(ctx context.Context, ric *model.Ricevimento) error {
	return r.db.WithContext(ctx).Save(ric).Error
}

func (r *ricevimentoRepo) AggiungiData(ctx context.Context, d *model.RicevimentoData) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *ricevimentoRepo) GetData(ctx context.Context, dataID string) (*model.RicevimentoData, error) {
	var d model.RicevimentoData
	err := r.db.WithContext(ctx).Where("data_id = ?", dataID).First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *ricevimentoRepo) EliminaData(ctx context.Context, dataID string) error {
	return r.db.WithContext(ctx).
		Where("data_id = ?", dataID).
		Delete(&model.RicevimentoData{}).Error
}

func (r *ricevimentoRepo) ListDate(ctx context.Context, ricevimentoID string) ([]model.RicevimentoData, error) {
	var date []model.RicevimentoData
	err := r.db.WithContext(ctx).
		Where("ricevimento_id = ?", ricevimentoID).
		Order("data_ora ASC").
		Find(&date).Error
	return date, err
}
