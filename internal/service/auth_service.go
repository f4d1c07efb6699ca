package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/config"
	"github.com/iisgiua/giuaschool-colloqui/internal/dto"
	"github.com/iisgiua/giuaschool-colloqui/internal/model"
	"github.com/iisgiua/giuaschool-colloqui/internal/repository"
	apperrors "github.com/iisgiua/giuaschool-colloqui/pkg/errors"
	"github.com/iisgiua/giuaschool-colloqui/pkg/jwt"
	"github.com/iisgiua/giuaschool-colloqui/pkg/redis"
)

// ── errori del modulo autenticazione ──

var (
	ErrCredenzialiNonValide = errors.New("username o password errati")
	ErrUtenteNonTrovato     = errors.New("utente non trovato")
)

// AuthService interfaccia del modulo autenticazione
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UtenteResponse, error)
	// ResetPassword genera una password provvisoria secondo la politica del
	// ruolo dell'utente (template, lunghezza, saluto scelti dal tag di ruolo)
	ResetPassword(ctx context.Context, adminID, targetID string) (*dto.ResetPasswordResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService crea un'istanza di AuthService
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	utente, err := s.repo.Utente.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredenzialiNonValide
		}
		s.logger.Error("ricerca utente fallita", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(utente.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrCredenzialiNonValide
	}

	return s.emettiToken(utente)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(refreshToken)
	if err != nil {
		return nil, ErrCredenzialiNonValide
	}
	if claims.TokenType != "refresh" {
		return nil, ErrCredenzialiNonValide
	}

	if s.rdb != nil {
		bloccato, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err == nil && bloccato {
			return nil, ErrCredenzialiNonValide
		}
	}

	utente, err := s.repo.Utente.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUtenteNonTrovato
		}
		return nil, err
	}

	// rotazione: il refresh token usato finisce in blacklist
	if s.rdb != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("inserimento in blacklist fallito", zap.Error(err))
		}
	}

	return s.emettiToken(utente)
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UtenteResponse, error) {
	utente, err := s.repo.Utente.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUtenteNonTrovato
		}
		return nil, err
	}
	resp := toUtenteResponse(utente)
	return &resp, nil
}

func (s *authService) ResetPassword(ctx context.Context, adminID, targetID string) (*dto.ResetPasswordResponse, error) {
	utente, err := s.repo.Utente.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: utente %s", apperrors.ErrNonTrovato, targetID)
		}
		return nil, err
	}

	politica := s.politicaRecupero(utente.Ruolo)

	password, err := generaPassword(politica.LunghezzaPassword)
	if err != nil {
		s.logger.Error("generazione password fallita", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Utente.UpdatePassword(ctx, utente.UtenteID, string(hash), adminID); err != nil {
		s.logger.Error("aggiornamento password fallito", zap.Error(err))
		return nil, err
	}

	if err := s.repo.LogAzione.Registra(ctx, &model.LogAzione{
		Categoria: "sicurezza",
		Azione:    "reset_password",
		AttoreID:  adminID,
		Contesto: model.JSONMap{
			"utente": utente.UtenteID,
			"ruolo":  utente.Ruolo,
		},
	}); err != nil {
		s.logger.Warn("registrazione audit fallita", zap.Error(err))
	}

	return &dto.ResetPasswordResponse{
		Username:            utente.Username,
		PasswordProvvisoria: password,
		Template:            politica.Template,
		Saluto:              politica.Saluto,
	}, nil
}

// politicaRecupero seleziona la politica configurata per il ruolo, con un
// ripiego prudente per i ruoli senza voce dedicata
func (s *authService) politicaRecupero(ruolo string) config.RecuperoRuolo {
	if p, ok := s.cfg.Scuola.Recupero[ruolo]; ok {
		if p.LunghezzaPassword < 8 {
			p.LunghezzaPassword = 8
		}
		return p
	}
	return config.RecuperoRuolo{
		Template:          "recupero_generico",
		LunghezzaPassword: 12,
		Saluto:            "Gentile utente",
	}
}

func (s *authService) emettiToken(utente *model.Utente) (*dto.TokenResponse, error) {
	classeID := ""
	if utente.ClasseID != nil {
		classeID = *utente.ClasseID
	}

	accessToken, err := s.jwtMgr.GenerateAccessToken(utente.UtenteID, utente.Ruolo, classeID)
	if err != nil {
		s.logger.Error("generazione access token fallita", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(utente.UtenteID, utente.Ruolo, classeID)
	if err != nil {
		s.logger.Error("generazione refresh token fallita", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		Utente:       toUtenteResponse(utente),
	}, nil
}

const alfabetoPassword = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generaPassword password casuale dall'alfabeto senza caratteri ambigui
func generaPassword(n int) (string, error) {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(alfabetoPassword))))
		if err != nil {
			return "", err
		}
		b[i] = alfabetoPassword[idx.Int64()]
	}
	return string(b), nil
}

func toUtenteResponse(u *model.Utente) dto.UtenteResponse {
	var classe *dto.ClasseResponse
	if u.Classe != nil {
		classe = &dto.ClasseResponse{
			ID:        u.Classe.ClasseID,
			Anno:      u.Classe.Anno,
			Sezione:   u.Classe.Sezione,
			Etichetta: u.Classe.Etichetta(),
		}
	}
	return dto.UtenteResponse{
		ID:      u.UtenteID,
		Nome:    u.Nome,
		Cognome: u.Cognome,
		Email:   u.Email,
		Ruolo:   u.Ruolo,
		Classe:  classe,
	}
}
