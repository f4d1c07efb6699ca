package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/internal/model"
)

// FestivitaRepository accesso dati calendario festività
type FestivitaRepository interface {
	// ListBetween festività nell'intervallo [da, a] inclusi
	ListBetween(ctx context.Context, da, a time.Time) ([]model.Festivita, error)
	// EsisteData true se la data è festiva
	EsisteData(ctx context.Context, data time.Time) (bool, error)
}

type festivitaRepo struct {
	db *gorm.DB
}

// NewFestivitaRepo crea un'istanza di FestivitaRepository
func NewFestivitaRepo(db *gorm.DB) FestivitaRepository {
	return &festivitaRepo{db: db}
}

func (r *festivitaRepo) ListBetween(ctx context.Context, da, a time.Time) ([]model.Festivita, error) {
	var feste []model.Festivita
	err := r.db.WithContext(ctx).
		Where("data BETWEEN ? AND ?", da.Format("2006-01-02"), a.Format("2006-01-02")).
		Order("data ASC").
		Find(&feste).Error
	return feste, err
}

func (r *festivitaRepo) EsisteData(ctx context.Context, data time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Festivita{}).
		Where("data = ?", data.Format("2006-01-02")).
		Count(&n).Error
	return n > 0, err
}
