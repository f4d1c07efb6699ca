package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/internal/model"
)

// UtenteRepository accesso dati utenti
type UtenteRepository interface {
	GetByID(ctx context.Context, id string) (*model.Utente, error)
	GetByUsername(ctx context.Context, username string) (*model.Utente, error)
	ListDocenti(ctx context.Context, cognome string, offset, limit int) ([]model.Utente, int64, error)
	UpdatePassword(ctx context.Context, id, hash string, updatedBy string) error
}

type utenteRepo struct {
	db *gorm.DB
}

// NewUtenteRepo crea un'istanza di UtenteRepository
func NewUtenteRepo(db *gorm.DB) UtenteRepository {
	return &utenteRepo{db: db}
}

func (r *utenteRepo) GetByID(ctx context.Context, id string) (*model.Utente, error) {
	var u model.Utente
	err := r.db.WithContext(ctx).
		Preload("Classe").
		Where("utente_id = ?", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *utenteRepo) GetByUsername(ctx context.Context, username string) (*model.Utente, error) {
	var u model.Utente
	err := r.db.WithContext(ctx).
		Preload("Classe").
		Where("username = ?", username).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *utenteRepo) ListDocenti(ctx context.Context, cognome string, offset, limit int) ([]model.Utente, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Utente{}).
		Where("ruolo = ?", model.RuoloDocente)
	if cognome != "" {
		q = q.Where("cognome ILIKE ?", cognome+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docenti []model.Utente
	err := q.Order("cognome ASC, nome ASC").
		Offset(offset).
		Limit(limit).
		Find(&docenti).Error
	return docenti, total, err
}

func (r *utenteRepo) UpdatePassword(ctx context.Context, id, hash string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Utente{}).
		Where("utente_id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": hash,
			"updated_by":    updatedBy,
			"updated_at":    gorm.Expr("NOW()"),
		}).Error
}
