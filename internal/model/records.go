package model

import (
	"time"

	"github.com/google/uuid"
)

// NewMedication creates a medication with a freshly generated uuid.
func NewMedication(name string) Medication {
	return Medication{
		Name: name,
		UUID: uuid.New(),
	}
}

// NewEntry creates an entry for the given medication at t, converted to UTC.
func NewEntry(amount int64, t time.Time, medicationUUID uuid.UUID) Entry {
	return Entry{
		Amount:         amount,
		Time:           NewTimestamp(t),
		MedicationUUID: medicationUUID,
		UUID:           uuid.New(),
	}
}

// NewEntryNow creates an entry for the given medication at the current time.
func NewEntryNow(amount int64, medicationUUID uuid.UUID) Entry {
	return NewEntry(amount, time.Now(), medicationUUID)
}
