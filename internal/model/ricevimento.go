package model

import "time"

// Ricevimento regola di disponibilità del docente — tabella ricevimenti.
// Una sola coppia giorno+ora attiva per docente (indice parziale univoco);
// le date aggiuntive una tantum sono illimitate.
type Ricevimento struct {
	RicevimentoID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"ricevimento_id"`
	DocenteID     string `gorm:"type:uuid;not null"                             json:"docente_id"`
	Giorno        int    `gorm:"type:smallint;not null"                         json:"giorno"` // 1-6
	Ora           int    `gorm:"type:smallint;not null"                         json:"ora"`
	Frequenza     int    `gorm:"type:smallint;not null;default:1"               json:"frequenza"` // ogni N settimane
	Attivo        bool   `gorm:"not null;default:true"                          json:"attivo"`
	BaseModel

	// associazioni
	Docente *Utente           `gorm:"foreignKey:DocenteID;references:UtenteID"          json:"docente,omitempty"`
	Date    []RicevimentoData `gorm:"foreignKey:RicevimentoID;references:RicevimentoID" json:"date,omitempty"`
}

// TableName nome tabella
func (Ricevimento) TableName() string { return "ricevimenti" }

// RicevimentoData data aggiuntiva una tantum — tabella ricevimento_date.
// Validata contro il calendario festività al momento dell'inserimento.
type RicevimentoData struct {
	DataID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"data_id"`
	RicevimentoID string    `gorm:"type:uuid;not null"                             json:"ricevimento_id"`
	DataOra       time.Time `gorm:"not null"                                       json:"data_ora"`
	Durata        int       `gorm:"type:smallint;not null"                         json:"durata"` // minuti
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName nome tabella
func (RicevimentoData) TableName() string { return "ricevimento_date" }
