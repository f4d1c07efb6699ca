package model

import "time"

// BaseModel campi di audit comuni (incorporato da tutti i modelli di business)
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:uuid"                          json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:uuid"                          json:"updated_by,omitempty"`
}

// ── ruoli utente ──
//
// Insieme chiuso di varianti: il comportamento per ruolo si seleziona per
// confronto sul tag, mai per ispezione di tipo.

const (
	RuoloDocente        = "docente"
	RuoloGenitore       = "genitore"
	RuoloAlunno         = "alunno"
	RuoloAta            = "ata"
	RuoloAmministratore = "amministratore"
)

// RuoloValido verifica che il tag appartenga all'insieme chiuso dei ruoli
func RuoloValido(r string) bool {
	switch r {
	case RuoloDocente, RuoloGenitore, RuoloAlunno, RuoloAta, RuoloAmministratore:
		return true
	}
	return false
}
