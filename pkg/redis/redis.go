package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iisgiua/giuaschool-colloqui/config"
)

// Client incapsula la connessione Redis.
// Usi correnti: blacklist token, rate limiting, criteri di ricerca per utente.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient crea la connessione Redis ed esegue un Ping di verifica
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connessione Redis fallita: %w", err)
	}

	logger.Info("connessione Redis riuscita", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── blacklist token ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken inserisce il JWT ID in blacklist con TTL pari alla vita residua del token
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token già scaduto, inutile inserirlo
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted verifica se il JWT ID è in blacklist
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── rate limiting ──

// CheckRateLimit finestra scorrevole approssimata con contatore + scadenza.
// Restituisce false quando la chiave ha superato limit richieste nella finestra.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := c.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(limit), nil
}

// ── criteri di ricerca per utente ──
//
// Ogni endpoint di lista ricorda i criteri dell'ultima ricerca dell'utente
// (pagina, filtri) con semantica last-write-wins. La chiave è esplicita per
// utente e rotta: mai stato globale di processo.

const (
	criteriPrefix = "criteri:"
	criteriTTL    = 12 * time.Hour
)

// SalvaCriteri serializza e memorizza i criteri di ricerca dell'utente per una rotta
func (c *Client) SalvaCriteri(ctx context.Context, userID, rotta string, criteri interface{}) error {
	data, err := json.Marshal(criteri)
	if err != nil {
		return fmt.Errorf("serializzazione criteri fallita: %w", err)
	}
	return c.rdb.Set(ctx, criteriPrefix+userID+":"+rotta, data, criteriTTL).Err()
}

// LeggiCriteri recupera i criteri salvati; restituisce false se assenti
func (c *Client) LeggiCriteri(ctx context.Context, userID, rotta string, criteri interface{}) (bool, error) {
	data, err := c.rdb.Get(ctx, criteriPrefix+userID+":"+rotta).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, criteri); err != nil {
		return false, fmt.Errorf("deserializzazione criteri fallita: %w", err)
	}
	return true, nil
}

// Close chiude la connessione Redis
func (c *Client) Close() error {
	return c.rdb.Close()
}
