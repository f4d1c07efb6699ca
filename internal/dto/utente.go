package dto

// ── DTO modulo utenti ──

// ClasseResponse classe in forma di risposta
type ClasseResponse struct {
	ID        string `json:"id"`
	Anno      int    `json:"anno"`
	Sezione   string `json:"sezione"`
	Etichetta string `json:"etichetta"`
}

// UtenteResponse utente in forma di risposta
type UtenteResponse struct {
	ID      string          `json:"id"`
	Nome    string          `json:"nome"`
	Cognome string          `json:"cognome"`
	Email   string          `json:"email"`
	Ruolo   string          `json:"ruolo"`
	Classe  *ClasseResponse `json:"classe,omitempty"`
}

// CriteriDocenti criteri di ricerca della lista docenti; persistiti per
// utente in Redis con semantica last-write-wins
type CriteriDocenti struct {
	Cognome string `form:"cognome" json:"cognome"`
	Pagina  int    `form:"pagina"  json:"pagina"`
}
