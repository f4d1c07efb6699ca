package model

// ScansioneOraria ora di lezione nell'orario d'istituto — tabella scansioni_orarie.
// Giorno: 1=lunedì .. 6=sabato. Inizio/Fine in formato "15:04".
type ScansioneOraria struct {
	ScansioneID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"scansione_id"`
	Giorno      int    `gorm:"type:smallint;not null"                         json:"giorno"`
	Ora         int    `gorm:"type:smallint;not null"                         json:"ora"`
	Inizio      string `gorm:"type:time;not null"                             json:"inizio"`
	Fine        string `gorm:"type:time;not null"                             json:"fine"`
}

// TableName nome tabella
func (ScansioneOraria) TableName() string { return "scansioni_orarie" }
