package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/internal/repository"
)

// UtenteService interfaccia del modulo utenti
type UtenteService interface {
	// ListDocenti elenco paginato dei docenti filtrato per cognome
	ListDocenti(ctx context.Context, criteri *dto.CriteriDocenti, offset, limit int) ([]dto.UtenteResponse, int64, error)
}

type utenteService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUtenteService crea un'istanza di UtenteService
func NewUtenteService(repo *repository.Repository, logger *zap.Logger) UtenteService {
	return &utenteService{repo: repo, logger: logger}
}

func (s *utenteService) ListDocenti(ctx context.Context, criteri *dto.CriteriDocenti, offset, limit int) ([]dto.UtenteResponse, int64, error) {
	docenti, total, err := s.repo.Utente.ListDocenti(ctx, criteri.Cognome, offset, limit)
	if err != nil {
		s.logger.Error("elenco docenti fallito", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UtenteResponse, 0, len(docenti))
	for i := range docenti {
		result = append(result, toUtenteResponse(&docenti[i]))
	}
	return result, total, nil
}
