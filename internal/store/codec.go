package store

import (
	"bytes"
	"encoding/json"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
)

// DraftVersion is the version tag written with every persisted draft.
// Drafts without a tag are treated as version 0 (written before tagging existed).
const DraftVersion = 1

type draftEnvelope struct {
	Version int `json:"version"`
	types.ResumeData
}

// EncodeDraft serializes a document in the persisted format.
func EncodeDraft(doc types.ResumeData) ([]byte, error) {
	doc = doc.Clone()
	doc.Normalize()
	return json.Marshal(draftEnvelope{Version: DraftVersion, ResumeData: doc})
}

// DecodeDraft parses a persisted draft, migrating older versions.
func DecodeDraft(data []byte) (types.ResumeData, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return types.ResumeData{}, &DecodeError{Message: "draft is not a JSON object"}
	}

	var env draftEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return types.ResumeData{}, &DecodeError{Message: "malformed JSON", Cause: err}
	}

	switch {
	case env.Version > DraftVersion:
		return types.ResumeData{}, &DecodeError{Message: "unsupported draft version"}
	case env.Version < 0:
		return types.ResumeData{}, &DecodeError{Message: "invalid draft version"}
	}

	doc := env.ResumeData
	doc.Normalize()
	if env.Version == 0 {
		ensureIDs(&doc)
	}
	return doc, nil
}

// ImportDraft parses a document supplied by the user (an uploaded or
// hand-edited file). Its shape is checked against the document schema, and
// missing or duplicate ids are replaced whatever its version.
func ImportDraft(data []byte) (types.ResumeData, error) {
	if err := schemas.Validate(types.ResumeData{}, string(data)); err != nil {
		return types.ResumeData{}, &DecodeError{Message: "document does not match the resume schema", Cause: err}
	}
	doc, err := DecodeDraft(data)
	if err != nil {
		return types.ResumeData{}, err
	}
	ensureIDs(&doc)
	return doc, nil
}

// ensureIDs fills in missing or duplicate element ids. Untagged drafts may
// have been edited by hand.
func ensureIDs(doc *types.ResumeData) {
	seen := make(map[string]bool)
	fix := func(id *string) {
		if *id == "" || seen[*id] {
			*id = types.NewID()
		}
		seen[*id] = true
	}
	for i := range doc.Education {
		fix(&doc.Education[i].ID)
	}
	for i := range doc.Experience {
		fix(&doc.Experience[i].ID)
	}
	for i := range doc.Projects {
		fix(&doc.Projects[i].ID)
	}
}
