package model

import "fmt"

// Classe tabella classi
type Classe struct {
	ClasseID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"classe_id"`
	Anno     int    `gorm:"type:smallint;not null"                         json:"anno"`
	Sezione  string `gorm:"type:varchar(10);not null"                      json:"sezione"`
}

// TableName nome tabella
func (Classe) TableName() string { return "classi" }

// Etichetta forma leggibile, es. "3A"
func (c *Classe) Etichetta() string {
	return fmt.Sprintf("%d%s", c.Anno, c.Sezione)
}
