package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONMap mappa serializzata su colonna JSONB
type JSONMap map[string]interface{}

// Scan implementa sql.Scanner
func (m *JSONMap) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("JSONMap.Scan: tipo non supportato %T", src)
	}
	return json.Unmarshal(data, m)
}

// Value implementa driver.Valuer
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// LogAzione voce del registro delle azioni — tabella log_azioni.
// Ogni transizione di stato riuscita viene registrata con attore, slot,
// stato precedente e nuovo, messaggio e messaggio precedente.
type LogAzione struct {
	LogID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"log_id"`
	Categoria string    `gorm:"type:varchar(50);not null"                      json:"categoria"`
	Azione    string    `gorm:"type:varchar(50);not null"                      json:"azione"`
	AttoreID  string    `gorm:"type:uuid;not null"                             json:"attore_id"`
	Contesto  JSONMap   `gorm:"type:jsonb;not null;default:'{}'"               json:"contesto"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName nome tabella
func (LogAzione) TableName() string { return "log_azioni" }
