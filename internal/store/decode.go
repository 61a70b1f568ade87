package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medtimer/medtimer-server/internal/model"
)

// RowScanner is satisfied by *sql.Rows and *sql.Row.
type RowScanner interface {
	Scan(dest ...any) error
}

// Decoder turns one row into a record. A returned error drops the row.
type Decoder[T any] func(RowScanner) (T, error)

var (
	errNull             = errors.New("unexpected NULL")
	errNonCanonicalUUID = errors.New("uuid is not in lowercase hyphenated form")
)

// MedicationColumns is the projection DecodeMedication expects.
var MedicationColumns = []string{"name", "uuid"}

// DecodeMedication decodes a row projected as MedicationColumns.
func DecodeMedication(row RowScanner) (model.Medication, error) {
	var name, id sql.NullString
	if err := row.Scan(&name, &id); err != nil {
		return model.Medication{}, &DecodeError{Err: err}
	}

	var m model.Medication
	var err error
	if m.UUID, err = decodeUUID("uuid", id, id.String); err != nil {
		return model.Medication{}, err
	}
	if m.Name, err = decodeText("name", name, id.String); err != nil {
		return model.Medication{}, err
	}
	return m, nil
}

// EntryColumns is the projection DecodeEntry expects.
var EntryColumns = []string{"amount", "time", "medication_uuid", "uuid"}

// DecodeEntry decodes a row projected as EntryColumns.
func DecodeEntry(row RowScanner) (model.Entry, error) {
	var amount sql.NullInt64
	var at, medID, id sql.NullString
	if err := row.Scan(&amount, &at, &medID, &id); err != nil {
		return model.Entry{}, &DecodeError{Err: err}
	}

	var e model.Entry
	var err error
	if e.UUID, err = decodeUUID("uuid", id, id.String); err != nil {
		return model.Entry{}, err
	}
	if e.MedicationUUID, err = decodeUUID("medication_uuid", medID, id.String); err != nil {
		return model.Entry{}, err
	}
	if e.Amount, err = decodeAmount("amount", amount, id.String); err != nil {
		return model.Entry{}, err
	}
	if e.Time, err = decodeTime("time", at, id.String); err != nil {
		return model.Entry{}, err
	}
	return e, nil
}

// MedicationEntryColumns is the projection DecodeMedicationEntry expects.
var MedicationEntryColumns = []string{"entry_uuid", "entry_amount", "entry_time", "medication_uuid", "medication_name"}

// DecodeMedicationEntry decodes a joined row projected as MedicationEntryColumns.
func DecodeMedicationEntry(row RowScanner) (model.MedicationEntry, error) {
	var amount sql.NullInt64
	var id, at, medID, medName sql.NullString
	if err := row.Scan(&id, &amount, &at, &medID, &medName); err != nil {
		return model.MedicationEntry{}, &DecodeError{Err: err}
	}

	var me model.MedicationEntry
	var err error
	if me.EntryUUID, err = decodeUUID("entry_uuid", id, id.String); err != nil {
		return model.MedicationEntry{}, err
	}
	if me.EntryAmount, err = decodeAmount("entry_amount", amount, id.String); err != nil {
		return model.MedicationEntry{}, err
	}
	if me.EntryTime, err = decodeTime("entry_time", at, id.String); err != nil {
		return model.MedicationEntry{}, err
	}
	if me.MedicationUUID, err = decodeUUID("medication_uuid", medID, id.String); err != nil {
		return model.MedicationEntry{}, err
	}
	if me.MedicationName, err = decodeText("medication_name", medName, id.String); err != nil {
		return model.MedicationEntry{}, err
	}
	return me, nil
}

func decodeText(field string, v sql.NullString, rowID string) (string, error) {
	if !v.Valid {
		return "", &DecodeError{Field: field, RowID: rowID, Err: errNull}
	}
	return v.String, nil
}

func decodeUUID(field string, v sql.NullString, rowID string) (uuid.UUID, error) {
	if !v.Valid {
		return uuid.Nil, &DecodeError{Field: field, RowID: rowID, Err: errNull}
	}
	id, err := uuid.Parse(v.String)
	if err != nil {
		return uuid.Nil, &DecodeError{Field: field, RowID: rowID, Err: err}
	}
	// Lookups compare stored text, so only the form the API renders is
	// accepted.
	if id.String() != v.String {
		return uuid.Nil, &DecodeError{Field: field, RowID: rowID, Err: errNonCanonicalUUID}
	}
	return id, nil
}

func decodeAmount(field string, v sql.NullInt64, rowID string) (int64, error) {
	if !v.Valid {
		return 0, &DecodeError{Field: field, RowID: rowID, Err: errNull}
	}
	if v.Int64 < 0 {
		return 0, &DecodeError{Field: field, RowID: rowID, Err: fmt.Errorf("negative amount %d", v.Int64)}
	}
	return v.Int64, nil
}

func decodeTime(field string, v sql.NullString, rowID string) (model.Timestamp, error) {
	if !v.Valid {
		return model.Timestamp{}, &DecodeError{Field: field, RowID: rowID, Err: errNull}
	}
	ts, err := model.ParseTimestamp(v.String)
	if err != nil {
		return model.Timestamp{}, &DecodeError{Field: field, RowID: rowID, Err: err}
	}
	return ts, nil
}
