package models

import "time"

// SystemSettings is the single persisted bootstrap document. It replaces
// the per-device "seen setup" flag: initialization state lives in the
// store and is checked once at startup.
type SystemSettings struct {
	ID            string    `bson:"id" json:"id"` // always "system"
	Initialized   bool      `bson:"initialized" json:"initialized"`
	InitializedAt time.Time `bson:"initialized_at,omitempty" json:"initializedAt,omitempty"`
	InitializedBy string    `bson:"initialized_by,omitempty" json:"initializedBy,omitempty"`
}

// SystemSettingsID is the fixed document id for the bootstrap record.
const SystemSettingsID = "system"
