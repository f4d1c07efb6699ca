package model

import "time"

// Festivita giorno non di lezione — tabella festivita
type Festivita struct {
	FestivitaID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"festivita_id"`
	Data        time.Time `gorm:"type:date;not null;unique"                      json:"data"`
	Descrizione string    `gorm:"type:varchar(200);not null;default:''"          json:"descrizione,omitempty"`
}

// TableName nome tabella
func (Festivita) TableName() string { return "festivita" }
