package errors

import "errors"

// Errori trasversali del dominio colloqui. I Service li avvolgono con
// fmt.Errorf("%w: ...") per aggiungere contesto; gli Handler li mappano
// sugli stati HTTP con errors.Is.
var (
	// ErrNonTrovato entità inesistente (ricevimento, prenotazione, utente)
	ErrNonTrovato = errors.New("entità non trovata")
	// ErrConflitto lo slot ha già una prenotazione o un blocco attivo
	ErrConflitto = errors.New("slot già occupato")
	// ErrValidazione dati della transizione non validi (messaggio mancante,
	// segnaposto non sostituito, data fuori intervallo)
	ErrValidazione = errors.New("dati non validi")
	// ErrAutorizzazione l'attore non è abilitato sul ricevimento richiesto
	ErrAutorizzazione = errors.New("operazione non autorizzata")
)
