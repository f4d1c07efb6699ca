package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iisgiua/giuaschool-colloqui/config"
)

var (
	ErrTokenExpired = errors.New("token scaduto")
	ErrTokenInvalid = errors.New("token non valido")
)

// Claims dichiarazioni JWT personalizzate.
// Ruolo appartiene all'insieme chiuso: docente, genitore, alunno, ata,
// amministratore. ClasseID è valorizzato solo per genitore e alunno.
type Claims struct {
	UserID    string `json:"user_id"`
	Ruolo     string `json:"ruolo"`
	ClasseID  string `json:"classe_id,omitempty"`
	TokenType string `json:"token_type"` // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// Manager gestore dei token JWT
type Manager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager crea il gestore JWT
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken genera un Access Token
func (m *Manager) GenerateAccessToken(userID, ruolo, classeID string) (string, error) {
	return m.generate(userID, ruolo, classeID, "access", m.accessTokenTTL)
}

// GenerateRefreshToken genera un Refresh Token
func (m *Manager) GenerateRefreshToken(userID, ruolo, classeID string) (string, error) {
	return m.generate(userID, ruolo, classeID, "refresh", m.refreshTokenTTL)
}

func (m *Manager) generate(userID, ruolo, classeID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Ruolo:     ruolo,
		ClasseID:  classeID,
		TokenType: tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "giuaschool-colloqui",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken analizza e verifica un token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
