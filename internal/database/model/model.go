package model

import "time"

// SchemaVersionCurrent is written on every save so future readers can
// migrate old rows.
const SchemaVersionCurrent = 1

// Entry is a persisted notebook entry. Examples are stored flat as JSON;
// the (norm_term, source_lang, target_lang) triple is unique per notebook.
type Entry struct {
	ID               string    `gorm:"primaryKey;size:36"`
	SchemaVersion    int       `gorm:"not null"`
	SourceTerm       string    `gorm:"size:255;not null"`
	NormTerm         string    `gorm:"size:255;not null;uniqueIndex:idx_entry_key"`
	SourceLang       string    `gorm:"size:64;not null;uniqueIndex:idx_entry_key"`
	TargetLang       string    `gorm:"size:64;not null;uniqueIndex:idx_entry_key"`
	TargetTerm       string    `gorm:"size:255;not null"`
	Phonetic         string    `gorm:"size:255"`
	NativeDefinition string    `gorm:"type:text"`
	Examples         []Example `gorm:"serializer:json;type:json"`
	UsageNote        string    `gorm:"type:text"`
	ImageRef         *string   `gorm:"size:512"`
	Position         int       `gorm:"not null;index"`
	CreatedAt        time.Time
}

type Example struct {
	Text        string `json:"text"`
	Phonetic    string `json:"phonetic"`
	Translation string `json:"translation"`
}
