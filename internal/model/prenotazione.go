package model

import "time"

// ── stati prenotazione ──
//
// Lo stato "aperto" è virtuale: uno slot senza record attivo è libero.

const (
	StatoPendente   = "pendente"
	StatoConfermata = "confermata"
	StatoRifiutata  = "rifiutata"
	StatoBloccata   = "bloccata"
)

// StatiAttivi stati che occupano lo slot (esclusa la sola Rifiutata)
var StatiAttivi = []string{StatoPendente, StatoConfermata, StatoBloccata}

// Prenotazione richiesta di colloquio o blocco amministrativo di uno slot —
// tabella prenotazioni. RichiedenteID è NULL per i blocchi sintetici.
// Una prenotazione reale non viene mai cancellata, solo ristatuita;
// i blocchi vengono eliminati alla rimozione.
type Prenotazione struct {
	PrenotazioneID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"prenotazione_id"`
	RicevimentoID  string    `gorm:"type:uuid;not null"                             json:"ricevimento_id"`
	DataOra        time.Time `gorm:"not null"                                       json:"data_ora"`
	Durata         int       `gorm:"type:smallint;not null"                         json:"durata"` // minuti
	Stato          string    `gorm:"type:varchar(20);not null;default:'pendente'"   json:"stato"`
	Messaggio      string    `gorm:"type:varchar(500);not null;default:''"          json:"messaggio,omitempty"`
	Risposta       string    `gorm:"type:varchar(500);not null;default:''"          json:"risposta,omitempty"`
	RichiedenteID  *string   `gorm:"type:uuid"                                      json:"richiedente_id,omitempty"`
	BaseModel

	// associazioni
	Ricevimento *Ricevimento `gorm:"foreignKey:RicevimentoID;references:RicevimentoID" json:"ricevimento,omitempty"`
	Richiedente *Utente      `gorm:"foreignKey:RichiedenteID;references:UtenteID"      json:"richiedente,omitempty"`
}

// TableName nome tabella
func (Prenotazione) TableName() string { return "prenotazioni" }

// Attiva true se la prenotazione occupa lo slot
func (p *Prenotazione) Attiva() bool {
	return p.Stato == StatoPendente || p.Stato == StatoConfermata || p.Stato == StatoBloccata
}

// Blocco true se il record è un blocco sintetico senza richiedente
func (p *Prenotazione) Blocco() bool {
	return p.Stato == StatoBloccata && p.RichiedenteID == nil
}
