package model

import (
	"github.com/google/uuid"
)

// Medication is a named drug that dosage entries refer to.
type Medication struct {
	Name string    `json:"name"`
	UUID uuid.UUID `json:"uuid"`
}

// Entry records a single dose of a medication.
type Entry struct {
	Amount         int64     `json:"amount"`
	Time           Timestamp `json:"time"`
	MedicationUUID uuid.UUID `json:"medication_uuid"`
	UUID           uuid.UUID `json:"uuid"`
}

// MedicationEntry is an entry joined with the name of its medication.
type MedicationEntry struct {
	EntryUUID      uuid.UUID `json:"entry_uuid"`
	EntryAmount    int64     `json:"entry_amount"`
	EntryTime      Timestamp `json:"entry_time"`
	MedicationUUID uuid.UUID `json:"medication_uuid"`
	MedicationName string    `json:"medication_name"`
}

// MedicationFilter narrows a medication listing. Zero values do not constrain.
type MedicationFilter struct {
	UUID *uuid.UUID
	Name *string
}

// EntryFilter narrows an entry listing. Zero values do not constrain.
type EntryFilter struct {
	UUID           *uuid.UUID
	MedicationUUID *uuid.UUID
}
