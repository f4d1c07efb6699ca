package dto

// Attore identità dell'utente corrente estratta dal token.
// ClasseID è valorizzato solo per genitori e alunni.
type Attore struct {
	ID       string
	Ruolo    string
	ClasseID string
}
