package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/internal/model"
)

// CattedraRepository accesso dati cattedre
type CattedraRepository interface {
	// EsisteDocenteClasse verifica che il docente insegni nella classe
	EsisteDocenteClasse(ctx context.Context, docenteID, classeID string) (bool, error)
	ListByDocente(ctx context.Context, docenteID string) ([]model.Cattedra, error)
}

type cattedraRepo struct {
	db *gorm.DB
}

// NewCattedraRepo crea un'istanza di CattedraRepository
func NewCattedraRepo(db *gorm.DB) CattedraRepository {
	return &cattedraRepo{db: db}
}

func (r *cattedraRepo) EsisteDocenteClasse(ctx context.Context, docenteID, classeID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Cattedra{}).
		Where("docente_id = ? AND classe_id = ? AND attiva", docenteID, classeID).
		Count(&n).Error
	return n > 0, err
}

func (r *cattedraRepo) ListByDocente(ctx context.Context, docenteID string) ([]model.Cattedra, error) {
	var cattedre []model.Cattedra
	err := r.db.WithContext(ctx).
		Preload("Classe").
		Where("docente_id = ? AND attiva", docenteID).
		Order("materia ASC").
		Find(&cattedre).Error
	return cattedre, err
}
