package model

import "time"

// KVEntry backs the SQL key-value drivers.
type KVEntry struct {
	Key       string    `json:"key" gorm:"primaryKey;size:191"`
	Value     string    `json:"value" gorm:"type:longtext;not null"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name independent of gorm's pluralization.
func (KVEntry) TableName() string {
	return "kv_entries"
}
