// Package openapi describes the HTTP API as a Swagger 2.0 document.
package openapi

import (
	"encoding/json"
	"fmt"

	"github.com/go-openapi/spec"
	"gopkg.in/yaml.v3"
)

const (
	Title       = "medtimer-server"
	Description = "Read-only access to medications and dosage entries."
	jsonMIME    = "application/json"
)

// Document builds the API description for the given version.
func Document(version string) *spec.Swagger {
	return &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger:  "2.0",
			BasePath: "/",
			Schemes:  []string{"http"},
			Produces: []string{jsonMIME},
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       Title,
					Description: Description,
					Version:     version,
				},
			},
			Definitions: definitions(),
			Paths:       &spec.Paths{Paths: paths()},
		},
	}
}

// JSON renders doc as indented JSON.
func JSON(doc *spec.Swagger) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal openapi json: %w", err)
	}
	return b, nil
}

// YAML renders doc as YAML with keys in sorted order.
func YAML(doc *spec.Swagger) ([]byte, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi json: %w", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("decode openapi json: %w", err)
	}
	b, err := yaml.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi yaml: %w", err)
	}
	return b, nil
}

func definitions() spec.Definitions {
	uuidProp := func() spec.Schema { return *spec.StrFmtProperty("uuid") }
	return spec.Definitions{
		"Medication": *new(spec.Schema).
			Typed("object", "").
			WithDescription("A named medication.").
			SetProperty("name", *spec.StringProperty()).
			SetProperty("uuid", uuidProp()).
			WithRequired("name", "uuid"),
		"Entry": *new(spec.Schema).
			Typed("object", "").
			WithDescription("A single dose of a medication.").
			SetProperty("amount", *spec.Int64Property().WithMinimum(0, false)).
			SetProperty("time", *spec.DateTimeProperty()).
			SetProperty("medication_uuid", uuidProp()).
			SetProperty("uuid", uuidProp()).
			WithRequired("amount", "time", "medication_uuid", "uuid"),
		"MedicationEntry": *new(spec.Schema).
			Typed("object", "").
			WithDescription("An entry joined with its medication's name.").
			SetProperty("entry_uuid", uuidProp()).
			SetProperty("entry_amount", *spec.Int64Property().WithMinimum(0, false)).
			SetProperty("entry_time", *spec.DateTimeProperty()).
			SetProperty("medication_uuid", uuidProp()).
			SetProperty("medication_name", *spec.StringProperty()).
			WithRequired("entry_uuid", "entry_amount", "entry_time", "medication_uuid", "medication_name"),
	}
}

func ref(name string) *spec.Schema {
	return spec.RefSchema("#/definitions/" + name)
}

func countParam() *spec.Parameter {
	return spec.QueryParam("count").
		Typed("integer", "int32").
		WithDescription("Maximum number of records. Absent, non-numeric or non-positive values select the default of 100.")
}

func uuidParam() *spec.Parameter {
	return spec.PathParam("uuid").Typed("string", "uuid")
}

func nameParam() *spec.Parameter {
	return spec.PathParam("name").Typed("string", "").WithDescription("Exact medication name.")
}

func listOp(id, summary, tag, def string, params ...*spec.Parameter) *spec.Operation {
	op := spec.NewOperation(id).WithSummary(summary).WithTags(tag)
	for _, p := range params {
		op.AddParam(p)
	}
	op.AddParam(countParam())
	return op.RespondsWith(200, spec.NewResponse().
		WithDescription("Matching records; empty when none match or the store is unavailable.").
		WithSchema(spec.ArrayProperty(ref(def))))
}

func getOp(id, summary, tag, def string) *spec.Operation {
	return spec.NewOperation(id).WithSummary(summary).WithTags(tag).
		AddParam(uuidParam()).
		RespondsWith(200, spec.NewResponse().
			WithDescription("The record, or null when absent.").
			WithSchema(ref(def)))
}

func get(op *spec.Operation) spec.PathItem {
	return spec.PathItem{PathItemProps: spec.PathItemProps{Get: op}}
}

func paths() map[string]spec.PathItem {
	return map[string]spec.PathItem{
		"/med/": get(listOp("listMedications", "List medications", "medications", "Medication")),
		"/med/by-uuid/{uuid}/": get(getOp("getMedication", "Get a medication by uuid", "medications", "Medication")),
		"/med/by-name/{name}/": get(listOp("listMedicationsByName", "List medications with a given name", "medications", "Medication",
			nameParam())),
		"/entry/": get(listOp("listEntries", "List entries, most recent first", "entries", "Entry")),
		"/entry/by-entry-uuid/{uuid}/": get(getOp("getEntry", "Get an entry by uuid", "entries", "Entry")),
		"/entry/by-med-uuid/{uuid}/": get(listOp("listEntriesByMedicationUUID", "List a medication's entries, most recent first", "entries", "Entry",
			uuidParam())),
		"/entry/by-med-name/{name}/": get(listOp("listEntriesByMedicationName", "List entries for medications with a given name, most recent first", "entries", "MedicationEntry",
			nameParam())),
	}
}
