package client

import "github.com/medtimer/medtimer-server/internal/model"

// Record types returned by the API. They alias the server's own records so
// callers outside this module can name them.
type (
	Medication      = model.Medication
	Entry           = model.Entry
	MedicationEntry = model.MedicationEntry
	Timestamp       = model.Timestamp
)
