package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config configurazione globale dell'applicazione
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Scuola   ScuolaConfig   `mapstructure:"scuola"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig configurazione del server HTTP
type ServerConfig struct {
	Port    int        `mapstructure:"port"`
	BaseURL string     `mapstructure:"base_url"`
	CORS    CORSConfig `mapstructure:"cors"`
}

// CORSConfig configurazione cross-origin
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig configurazione PostgreSQL
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minuti
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minuti
}

// DSN genera la stringa di connessione PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig configurazione Redis
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig configurazione autenticazione JWT
type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwt_secret"`
	AccessTokenTTL  time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTL time.Duration `mapstructure:"refresh_token_ttl"`
}

// ScuolaConfig parametri dell'anno scolastico e dei colloqui
type ScuolaConfig struct {
	// FineAnno data di fine anno scolastico, formato 2006-01-02
	FineAnno string `mapstructure:"fine_anno"`
	// GiorniBlocco finestra prima della fine anno in cui i colloqui sono sospesi
	GiorniBlocco int `mapstructure:"giorni_blocco"`
	// Recupero politica di reset password per ruolo
	Recupero map[string]RecuperoRuolo `mapstructure:"recupero"`
}

// RecuperoRuolo politica di recupero credenziali associata a un ruolo
// (sostituisce la selezione dinamica per tipo dell'implementazione storica)
type RecuperoRuolo struct {
	Template          string `mapstructure:"template"`
	LunghezzaPassword int    `mapstructure:"lunghezza_password"`
	Saluto            string `mapstructure:"saluto"`
}

// FineAnnoData restituisce la data di fine anno come time.Time (mezzanotte locale)
func (c *ScuolaConfig) FineAnnoData() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.FineAnno)
	if err != nil {
		return time.Time{}, fmt.Errorf("scuola.fine_anno non valida %q: %w", c.FineAnno, err)
	}
	return t, nil
}

// LogConfig configurazione log
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load carica la configurazione da file e variabili d'ambiente
// Priorità: variabili d'ambiente > file di configurazione > valori di default
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── default ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "giuaschool_colloqui")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Europe/Rome")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl", "24h")

	v.SetDefault("scuola.fine_anno", "2026-06-10")
	v.SetDefault("scuola.giorni_blocco", 30)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── file di configurazione ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── variabili d'ambiente ──
	v.SetEnvPrefix("GIUA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("lettura configurazione fallita: %w", err)
		}
		// senza file si procede con default e variabili d'ambiente
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configurazione fallito: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate verifica le voci di configurazione critiche
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("configurazione non valida: auth.jwt_secret non può essere vuoto")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("configurazione non valida: auth.jwt_secret deve avere almeno 16 caratteri")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("configurazione non valida: server.port deve essere tra 1 e 65535")
	}
	if _, err := c.Scuola.FineAnnoData(); err != nil {
		return fmt.Errorf("configurazione non valida: %w", err)
	}
	if c.Scuola.GiorniBlocco < 0 {
		return fmt.Errorf("configurazione non valida: scuola.giorni_blocco non può essere negativo")
	}
	return nil
}
