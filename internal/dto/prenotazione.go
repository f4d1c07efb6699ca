package dto

import "time"

// ── DTO modulo colloqui ──

// SlotResponse slot prenotabile in forma di risposta
type SlotResponse struct {
	Chiave    string    `json:"chiave"` // YYYY-MM-DD-H-M
	DataOra   time.Time `json:"data_ora"`
	Fine      time.Time `json:"fine"`
	Durata    int       `json:"durata"`
	Etichetta string    `json:"etichetta"`
}

// DisponibilitaResponse esito della generazione slot per un docente.
// Sospeso è true quando l'anno scolastico è oltre la finestra di blocco:
// il chiamante mostra lo stato "colloqui sospesi", non una lista vuota.
type DisponibilitaResponse struct {
	Sospeso bool           `json:"sospeso"`
	Slot    []SlotResponse `json:"slot"`
}

// PrenotaRequest richiesta di prenotazione di uno slot
type PrenotaRequest struct {
	DocenteID string `json:"docente_id" binding:"required,uuid"`
	Chiave    string `json:"chiave"     binding:"required"` // YYYY-MM-DD-H-M
	Messaggio string `json:"messaggio"  binding:"max=500"`
}

// RispostaRequest risposta del docente a una richiesta pendente o rifiutata
type RispostaRequest struct {
	Esito     string `json:"esito"     binding:"required,oneof=conferma rifiuto"`
	Messaggio string `json:"messaggio" binding:"required,max=500"`
}

// BloccoRequest blocco amministrativo di uno slot libero
type BloccoRequest struct {
	Chiave string `json:"chiave" binding:"required"` // YYYY-MM-DD-H-M
	Blocco bool   `json:"blocco"`
}

// PrenotazioneResponse prenotazione in forma di risposta
type PrenotazioneResponse struct {
	ID          string          `json:"id"`
	Ricevimento string          `json:"ricevimento_id"`
	Chiave      string          `json:"chiave"`
	DataOra     time.Time       `json:"data_ora"`
	Durata      int             `json:"durata"`
	Stato       string          `json:"stato"`
	Messaggio   string          `json:"messaggio,omitempty"`
	Risposta    string          `json:"risposta,omitempty"`
	Etichetta   string          `json:"etichetta"`
	Richiedente *UtenteResponse `json:"richiedente,omitempty"`
}

// CriteriRichieste criteri di ricerca della lista richieste del docente
type CriteriRichieste struct {
	Stato  string `form:"stato"  json:"stato"`
	Pagina int    `form:"pagina" json:"pagina"`
}
