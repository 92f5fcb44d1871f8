package store

import (
	"github.com/jonathan/resume-builder/internal/types"
)

// Action is one transition of the document. The set of actions is closed:
// only the variants in this file implement it.
type Action interface {
	apply(doc *types.ResumeData) error
	// Kind names the action for logs
	Kind() string
}

// SetField replaces a single scalar field
type SetField struct {
	Field types.Field
	Value string
}

// AddItem appends a new element with empty fields to a list
type AddItem struct {
	List types.ListName

	id string // preassigned by Store.Add so the caller learns the new id
}

// UpdateItem replaces the non-nil fields of Patch on the element with ID.
// A missing ID leaves the list unchanged.
type UpdateItem struct {
	List  types.ListName
	ID    string
	Patch ItemPatch
}

// DeleteItem removes the element with ID. A missing ID leaves the list unchanged.
type DeleteItem struct {
	List types.ListName
	ID   string
}

// LoadDraft replaces the whole document
type LoadDraft struct {
	Data types.ResumeData
}

// ResetData replaces the document with the default placeholder document
type ResetData struct{}

// Kind implements Action
func (SetField) Kind() string { return "SET_FIELD" }

// Kind implements Action
func (AddItem) Kind() string { return "ADD_ITEM" }

// Kind implements Action
func (UpdateItem) Kind() string { return "UPDATE_ITEM" }

// Kind implements Action
func (DeleteItem) Kind() string { return "DELETE_ITEM" }

// Kind implements Action
func (LoadDraft) Kind() string { return "LOAD_DRAFT" }

// Kind implements Action
func (ResetData) Kind() string { return "RESET_DATA" }

func (a SetField) apply(doc *types.ResumeData) error {
	if _, err := types.ParseField(string(a.Field)); err != nil {
		return err
	}
	doc.SetField(a.Field, a.Value)
	return nil
}

func (a AddItem) apply(doc *types.ResumeData) error {
	id := a.id
	if id == "" {
		id = types.NewID()
	}

	switch a.List {
	case types.ListEducation:
		doc.Education = append(doc.Education, types.Education{ID: id})
	case types.ListExperience:
		doc.Experience = append(doc.Experience, types.Experience{ID: id})
	case types.ListProjects:
		doc.Projects = append(doc.Projects, types.Project{ID: id})
	default:
		return &UnknownListError{List: a.List}
	}
	return nil
}

func (a UpdateItem) apply(doc *types.ResumeData) error {
	if a.Patch == nil {
		return &PatchMismatchError{List: a.List, Patch: "nil"}
	}
	if a.Patch.list() != a.List {
		return &PatchMismatchError{List: a.List, Patch: string(a.Patch.list())}
	}

	switch p := a.Patch.(type) {
	case EducationPatch:
		for i := range doc.Education {
			if doc.Education[i].ID == a.ID {
				p.applyTo(&doc.Education[i])
				break
			}
		}
	case ExperiencePatch:
		for i := range doc.Experience {
			if doc.Experience[i].ID == a.ID {
				p.applyTo(&doc.Experience[i])
				break
			}
		}
	case ProjectPatch:
		for i := range doc.Projects {
			if doc.Projects[i].ID == a.ID {
				p.applyTo(&doc.Projects[i])
				break
			}
		}
	}
	return nil
}

func (a DeleteItem) apply(doc *types.ResumeData) error {
	switch a.List {
	case types.ListEducation:
		doc.Education = removeFirst(doc.Education, func(e types.Education) bool { return e.ID == a.ID })
	case types.ListExperience:
		doc.Experience = removeFirst(doc.Experience, func(e types.Experience) bool { return e.ID == a.ID })
	case types.ListProjects:
		doc.Projects = removeFirst(doc.Projects, func(p types.Project) bool { return p.ID == a.ID })
	default:
		return &UnknownListError{List: a.List}
	}
	return nil
}

func (a LoadDraft) apply(doc *types.ResumeData) error {
	*doc = a.Data.Clone()
	doc.Normalize()
	return nil
}

func (ResetData) apply(doc *types.ResumeData) error {
	*doc = types.DefaultResume()
	return nil
}

// removeFirst drops the first element matching match, preserving order.
func removeFirst[T any](items []T, match func(T) bool) []T {
	for i, item := range items {
		if match(item) {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...)
		}
	}
	return items
}
