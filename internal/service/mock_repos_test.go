package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iisgiua/giuaschool-colloqui/internal/model"
	"github.com/iisgiua/giuaschool-colloqui/internal/repository"
)

// Mock in memoria dei Repository. Il mock delle prenotazioni replica
// l'indice univoco parziale del database restituendo gorm.ErrDuplicatedKey
// quando un record attivo occupa già lo slot.

func newMockRepository() *repository.Repository {
	ricevimenti := &mockRicevimentoRepo{regole: map[string]*model.Ricevimento{}, date: map[string]*model.RicevimentoData{}}
	return &repository.Repository{
		Utente:       &mockUtenteRepo{utenti: map[string]*model.Utente{}},
		Cattedra:     &mockCattedraRepo{coppie: map[string]bool{}},
		Scansione:    &mockScansioneRepo{},
		Festivita:    &mockFestivitaRepo{date: map[string]bool{}},
		Ricevimento:  ricevimenti,
		Prenotazione: &mockPrenotazioneRepo{record: map[string]*model.Prenotazione{}, ricevimenti: ricevimenti},
		LogAzione:    &mockLogAzioneRepo{},
	}
}

// ── utenti ──

type mockUtenteRepo struct {
	utenti map[string]*model.Utente
}

func (m *mockUtenteRepo) aggiungi(u *model.Utente) *model.Utente {
	if u.UtenteID == "" {
		u.UtenteID = uuid.NewString()
	}
	m.utenti[u.UtenteID] = u
	return u
}

func (m *mockUtenteRepo) GetByID(_ context.Context, id string) (*model.Utente, error) {
	u, ok := m.utenti[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUtenteRepo) GetByUsername(_ context.Context, username string) (*model.Utente, error) {
	for _, u := range m.utenti {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUtenteRepo) ListDocenti(_ context.Context, cognome string, offset, limit int) ([]model.Utente, int64, error) {
	var tutti []model.Utente
	for _, u := range m.utenti {
		if u.Ruolo != model.RuoloDocente {
			continue
		}
		if cognome != "" && !strings.Contains(strings.ToLower(u.Cognome), strings.ToLower(cognome)) {
			continue
		}
		tutti = append(tutti, *u)
	}
	sort.Slice(tutti, func(i, j int) bool { return tutti[i].Cognome < tutti[j].Cognome })
	total := int64(len(tutti))
	if offset >= len(tutti) {
		return []model.Utente{}, total, nil
	}
	fine := offset + limit
	if fine > len(tutti) {
		fine = len(tutti)
	}
	return tutti[offset:fine], total, nil
}

func (m *mockUtenteRepo) UpdatePassword(_ context.Context, id, hash string, _ string) error {
	u, ok := m.utenti[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.PasswordHash = hash
	return nil
}

// ── cattedre ──

type mockCattedraRepo struct {
	coppie map[string]bool // docenteID + "|" + classeID
}

func (m *mockCattedraRepo) assegna(docenteID, classeID string) {
	m.coppie[docenteID+"|"+classeID] = true
}

func (m *mockCattedraRepo) EsisteDocenteClasse(_ context.Context, docenteID, classeID string) (bool, error) {
	return m.coppie[docenteID+"|"+classeID], nil
}

func (m *mockCattedraRepo) ListByDocente(_ context.Context, docenteID string) ([]model.Cattedra, error) {
	var out []model.Cattedra
	for coppia := range m.coppie {
		parti := strings.SplitN(coppia, "|", 2)
		if parti[0] == docenteID {
			out = append(out, model.Cattedra{DocenteID: parti[0], ClasseID: parti[1], Attiva: true})
		}
	}
	return out, nil
}

// ── scansioni orarie ──

type mockScansioneRepo struct {
	ore []model.ScansioneOraria
}

func (m *mockScansioneRepo) OrePerGiorno(_ context.Context, giorno int) ([]model.ScansioneOraria, error) {
	var out []model.ScansioneOraria
	for _, s := range m.ore {
		if s.Giorno == giorno {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ora < out[j].Ora })
	return out, nil
}

func (m *mockScansioneRepo) GetByGiornoOra(_ context.Context, giorno, ora int) (*model.ScansioneOraria, error) {
	for i := range m.ore {
		if m.ore[i].Giorno == giorno && m.ore[i].Ora == ora {
			return &m.ore[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── festività ──

type mockFestivitaRepo struct {
	date map[string]bool // "2006-01-02"
}

func (m *mockFestivitaRepo) ListBetween(_ context.Context, da, a time.Time) ([]model.Festivita, error) {
	var out []model.Festivita
	for giorno := range m.date {
		d, err := time.Parse("2006-01-02", giorno)
		if err != nil {
			return nil, err
		}
		if !d.Before(da) && !d.After(a) {
			out = append(out, model.Festivita{Data: d})
		}
	}
	return out, nil
}

func (m *mockFestivitaRepo) EsisteData(_ context.Context, data time.Time) (bool, error) {
	return m.date[data.Format("2006-01-02")], nil
}

// ── ricevimenti ──

type mockRicevimentoRepo struct {
	regole map[string]*model.Ricevimento
	date   map[string]*model.RicevimentoData
}

func (m *mockRicevimentoRepo) GetByID(_ context.Context, id string) (*model.Ricevimento, error) {
	r, ok := m.regole[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockRicevimentoRepo) GetAttivoByDocente(_ context.Context, docenteID string) (*model.Ricevimento, error) {
	for _, r := range m.regole {
		if r.DocenteID == docenteID && r.Attivo {
			copia := *r
			copia.Date = nil
			for _, d := range m.date {
				if d.RicevimentoID == r.RicevimentoID {
					copia.Date = append(copia.Date, *d)
				}
			}
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRicevimentoRepo) Create(_ context.Context, r *model.Ricevimento) error {
	if r.RicevimentoID == "" {
		r.RicevimentoID = uuid.NewString()
	}
	m.regole[r.RicevimentoID] = r
	return nil
}

func (m *mockRicevimentoRepo) Update(_ context.Context, r *model.Ricevimento) error {
	if _, ok := m.regole[r.RicevimentoID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.regole[r.RicevimentoID] = r
	return nil
}

func (m *mockRicevimentoRepo) AggiungiData(_ context.Context, d *model.RicevimentoData) error {
	for _, e := range m.date {
		if e.RicevimentoID == d.RicevimentoID && e.DataOra.Equal(d.DataOra) {
			return gorm.ErrDuplicatedKey
		}
	}
	if d.DataID == "" {
		d.DataID = uuid.NewString()
	}
	m.date[d.DataID] = d
	return nil
}

func (m *mockRicevimentoRepo) GetData(_ context.Context, dataID string) (*model.RicevimentoData, error) {
	d, ok := m.date[dataID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (m *mockRicevimentoRepo) EliminaData(_ context.Context, dataID string) error {
	delete(m.date, dataID)
	return nil
}

func (m *mockRicevimentoRepo) ListDate(_ context.Context, ricevimentoID string) ([]model.RicevimentoData, error) {
	var out []model.RicevimentoData
	for _, d := range m.date {
		if d.RicevimentoID == ricevimentoID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataOra.Before(out[j].DataOra) })
	return out, nil
}

// ── prenotazioni ──

type mockPrenotazioneRepo struct {
	record      map[string]*model.Prenotazione
	ricevimenti *mockRicevimentoRepo
}

// occupato replica l'indice univoco parziale ux_prenotazioni_slot_attivo
func (m *mockPrenotazioneRepo) occupato(ricevimentoID string, dataOra time.Time, escludi string) bool {
	for _, p := range m.record {
		if p.PrenotazioneID == escludi {
			continue
		}
		if p.RicevimentoID == ricevimentoID && p.DataOra.Equal(dataOra) && p.Attiva() {
			return true
		}
	}
	return false
}

func (m *mockPrenotazioneRepo) GetByID(_ context.Context, id string) (*model.Prenotazione, error) {
	p, ok := m.record[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	// emulazione del Preload dell'associazione Ricevimento
	if ric, ok := m.ricevimenti.regole[p.RicevimentoID]; ok {
		copia.Ricevimento = ric
	}
	return &copia, nil
}

func (m *mockPrenotazioneRepo) TrovaAttiva(_ context.Context, ricevimentoID string, dataOra time.Time) (*model.Prenotazione, error) {
	for _, p := range m.record {
		if p.RicevimentoID == ricevimentoID && p.DataOra.Equal(dataOra) && p.Attiva() {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPrenotazioneRepo) ListAttiveDal(_ context.Context, ricevimentoID string, dal time.Time) ([]model.Prenotazione, error) {
	var out []model.Prenotazione
	for _, p := range m.record {
		if p.RicevimentoID == ricevimentoID && p.Attiva() && !p.DataOra.Before(dal) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPrenotazioneRepo) Create(_ context.Context, p *model.Prenotazione) error {
	if p.Attiva() && m.occupato(p.RicevimentoID, p.DataOra, "") {
		return gorm.ErrDuplicatedKey
	}
	if p.PrenotazioneID == "" {
		p.PrenotazioneID = uuid.NewString()
	}
	copia := *p
	m.record[p.PrenotazioneID] = &copia
	return nil
}

func (m *mockPrenotazioneRepo) Update(_ context.Context, p *model.Prenotazione) error {
	if _, ok := m.record[p.PrenotazioneID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Attiva() && m.occupato(p.RicevimentoID, p.DataOra, p.PrenotazioneID) {
		return gorm.ErrDuplicatedKey
	}
	copia := *p
	m.record[p.PrenotazioneID] = &copia
	return nil
}

func (m *mockPrenotazioneRepo) Elimina(_ context.Context, id string) error {
	if _, ok := m.record[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.record, id)
	return nil
}

func (m *mockPrenotazioneRepo) ListByRicevimento(_ context.Context, ricevimentoID, stato string, offset, limit int) ([]model.Prenotazione, int64, error) {
	var tutti []model.Prenotazione
	for _, p := range m.record {
		if p.RicevimentoID != ricevimentoID {
			continue
		}
		if stato != "" && p.Stato != stato {
			continue
		}
		tutti = append(tutti, *p)
	}
	sort.Slice(tutti, func(i, j int) bool { return tutti[i].DataOra.Before(tutti[j].DataOra) })
	total := int64(len(tutti))
	if offset >= len(tutti) {
		return []model.Prenotazione{}, total, nil
	}
	fine := offset + limit
	if fine > len(tutti) {
		fine = len(tutti)
	}
	return tutti[offset:fine], total, nil
}

func (m *mockPrenotazioneRepo) ListByStatoDocente(_ context.Context, docenteID, stato string) ([]model.Prenotazione, error) {
	var out []model.Prenotazione
	for _, p := range m.record {
		if p.Stato != stato {
			continue
		}
		ric, ok := m.ricevimenti.regole[p.RicevimentoID]
		if !ok || ric.DocenteID != docenteID {
			continue
		}
		copia := *p
		copia.Ricevimento = ric
		out = append(out, copia)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DataOra.Before(out[j].DataOra) })
	return out, nil
}

// ── registro azioni ──

type mockLogAzioneRepo struct {
	registro []model.LogAzione
}

func (m *mockLogAzioneRepo) Registra(_ context.Context, l *model.LogAzione) error {
	m.registro = append(m.registro, *l)
	return nil
}
