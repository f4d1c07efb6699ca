package repository

import "gorm.io/gorm"

// Repository punto di ingresso aggregato di tutti i Repository
type Repository struct {
	Utente       UtenteRepository
	Cattedra     CattedraRepository
	Scansione    ScansioneRepository
	Festivita    FestivitaRepository
	Ricevimento  RicevimentoRepository
	Prenotazione PrenotazioneRepository
	LogAzione    LogAzioneRepository
}

// NewRepository crea l'aggregato dei Repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Utente:       NewUtenteRepo(db),
		Cattedra:     NewCattedraRepo(db),
		Scansione:    NewScansioneRepo(db),
		Festivita:    NewFestivitaRepo(db),
		Ricevimento:  NewRicevimentoRepo(db),
		Prenotazione: NewPrenotazioneRepo(db),
		LogAzione:    NewLogAzioneRepo(db),
	}
}
