package model

// Utente tabella utenti
type Utente struct {
	UtenteID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"utente_id"`
	Nome         string  `gorm:"type:varchar(100);not null"                     json:"nome"`
	Cognome      string  `gorm:"type:varchar(100);not null"                     json:"cognome"`
	Username     string  `gorm:"type:varchar(100);not null;unique"              json:"username"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Ruolo        string  `gorm:"type:varchar(20);not null"                      json:"ruolo"`
	ClasseID     *string `gorm:"type:uuid"                                      json:"classe_id,omitempty"`
	BaseModel

	// associazioni
	Classe *Classe `gorm:"foreignKey:ClasseID;references:ClasseID" json:"classe,omitempty"`
}

// TableName nome tabella
func (Utente) TableName() string { return "utenti" }
