package model

import (
	"fmt"
	"time"
)

// Slot appuntamento concreto derivato dall'espansione di un Ricevimento
// sull'orario d'istituto. È un valore calcolato a richiesta, mai persistito.
// Invariante: non cade mai in una festività né fuori dalla scansione oraria.
type Slot struct {
	DataOra time.Time `json:"data_ora"`
	Fine    time.Time `json:"fine"`
	Durata  int       `json:"durata"` // minuti
}

var giorniSettimana = [...]string{"", "lunedì", "martedì", "mercoledì", "giovedì", "venerdì", "sabato", "domenica"}

// Etichetta forma leggibile dello slot usata nei template di risposta,
// es. "lunedì 16/03/2026 alle 09:00"
func (s Slot) Etichetta() string {
	giorno := int(s.DataOra.Weekday())
	if giorno == 0 {
		giorno = 7
	}
	return fmt.Sprintf("%s %s alle %s",
		giorniSettimana[giorno],
		s.DataOra.Format("02/01/2006"),
		s.DataOra.Format("15:04"),
	)
}

// ChiaveSlot codifica dello slot sulla rotta HTTP: YYYY-MM-DD-H-M
func (s Slot) ChiaveSlot() string {
	return FormatChiaveSlot(s.DataOra)
}

// FormatChiaveSlot serializza un istante nel formato di rotta YYYY-MM-DD-H-M
func FormatChiaveSlot(t time.Time) string {
	return fmt.Sprintf("%04d-%02d-%02d-%d-%d", t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// ParseChiaveSlot decodifica il formato di rotta YYYY-MM-DD-H-M in un istante
// nel fuso indicato
func ParseChiaveSlot(chiave string, loc *time.Location) (time.Time, error) {
	var anno, mese, giorno, ora, minuto int
	n, err := fmt.Sscanf(chiave, "%d-%d-%d-%d-%d", &anno, &mese, &giorno, &ora, &minuto)
	if err != nil || n != 5 {
		return time.Time{}, fmt.Errorf("chiave slot non valida %q", chiave)
	}
	if mese < 1 || mese > 12 || giorno < 1 || giorno > 31 || ora < 0 || ora > 23 || minuto < 0 || minuto > 59 {
		return time.Time{}, fmt.Errorf("chiave slot non valida %q", chiave)
	}
	return time.Date(anno, time.Month(mese), giorno, ora, minuto, 0, 0, loc), nil
}
