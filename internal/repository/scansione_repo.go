package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/internal/model"
)

// ScansioneRepository accesso dati scansione oraria
type ScansioneRepository interface {
	// OrePerGiorno ore di lezione di un giorno della settimana, in ordine
	OrePerGiorno(ctx context.Context, giorno int) ([]model.ScansioneOraria, error)
	// GetByGiornoOra scansione della singola ora
	GetByGiornoOra(ctx context.Context, giorno, ora int) (*model.ScansioneOraria, error)
}

type scansioneRepo struct {
	db *gorm.DB
}

// NewScansioneRepo crea un'istanza di ScansioneRepository
func NewScansioneRepo(db *gorm.DB) ScansioneRepository {
	return &scansioneRepo{db: db}
}

func (r *scansioneRepo) OrePerGiorno(ctx context.Context, giorno int) ([]model.ScansioneOraria, error) {
	var ore []model.ScansioneOraria
	err := r.db.WithContext(ctx).
		Where("giorno = ?", giorno).
		Order("ora ASC").
		Find(&ore).Error
	return ore, err
}

func (r *scansioneRepo) GetByGiornoOra(ctx context.Context, giorno, ora int) (*model.ScansioneOraria, error) {
	var s model.ScansioneOraria
	err := r.db.WithContext(ctx).
		Where("giorno = ? AND ora = ?", giorno, ora).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}
