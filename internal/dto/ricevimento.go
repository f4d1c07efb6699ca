package dto

import "time"

// ── DTO modulo ricevimenti ──

// RicevimentoRequest creazione/aggiornamento della regola di disponibilità
type RicevimentoRequest struct {
	Giorno    int  `json:"giorno"    binding:"required,min=1,max=6"`
	Ora       int  `json:"ora"       binding:"required,min=1"`
	Frequenza int  `json:"frequenza" binding:"required,min=1,max=4"`
	Attivo    bool `json:"attivo"`
}

// DataAggiuntivaRequest inserimento di una data una tantum.
// DataOra usa la codifica di rotta YYYY-MM-DD-H-M.
type DataAggiuntivaRequest struct {
	DataOra string `json:"data_ora" binding:"required"`
	Durata  int    `json:"durata"   binding:"required,min=5,max=60"`
}

// DataAggiuntivaResponse data una tantum in forma di risposta
type DataAggiuntivaResponse struct {
	ID      string    `json:"id"`
	DataOra time.Time `json:"data_ora"`
	Durata  int       `json:"durata"`
}

// RicevimentoResponse regola di disponibilità in forma di risposta
type RicevimentoResponse struct {
	ID        string                   `json:"id"`
	DocenteID string                   `json:"docente_id"`
	Giorno    int                      `json:"giorno"`
	Ora       int                      `json:"ora"`
	Frequenza int                      `json:"frequenza"`
	Attivo    bool                     `json:"attivo"`
	Date      []DataAggiuntivaResponse `json:"date"`
}
