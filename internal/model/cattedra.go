package model

// Cattedra assegnazione di un docente a classe e materia — tabella cattedre.
// È la base del controllo di abilitazione: genitori e alunni possono
// prenotare solo i ricevimenti dei docenti della propria classe.
type Cattedra struct {
	CattedraID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"cattedra_id"`
	DocenteID  string `gorm:"type:uuid;not null"                             json:"docente_id"`
	ClasseID   string `gorm:"type:uuid;not null"                             json:"classe_id"`
	Materia    string `gorm:"type:varchar(100);not null"                     json:"materia"`
	Attiva     bool   `gorm:"not null;default:true"                          json:"attiva"`

	// associazioni
	Docente *Utente `gorm:"foreignKey:DocenteID;references:UtenteID" json:"docente,omitempty"`
	Classe  *Classe `gorm:"foreignKey:ClasseID;references:ClasseID"  json:"classe,omitempty"`
}

// TableName nome tabella
func (Cattedra) TableName() string { return "cattedre" }
