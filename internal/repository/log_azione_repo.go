package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/internal/model"
)

// LogAzioneRepository registro delle azioni
type LogAzioneRepository interface {
	Registra(ctx context.Context, l *model.LogAzione) error
}

type logAzioneRepo struct {
	db *gorm.DB
}

// NewLogAzioneRepo crea un'istanza di LogAzioneRepository
func NewLogAzioneRepo(db *gorm.DB) LogAzioneRepository {
	return &logAzioneRepo{db: db}
}

func (r *logAzioneRepo) Registra(ctx context.Context, l *model.LogAzione) error {
	return r.db.WithContext(ctx).Create(l).Error
}
