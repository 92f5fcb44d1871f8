package types

import (
	"fmt"
	"strings"
)

// Field names one of the six scalar fields of ResumeData
type Field string

// Scalar fields, named by their JSON keys
const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
	FieldWebsite Field = "website"
	FieldSummary Field = "summary"
	FieldSkills  Field = "skills"
)

// Fields lists every scalar field in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldWebsite, FieldSummary, FieldSkills}

// ParseField validates a scalar field name.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field %q (want one of %s)", s, joinNames(Fields))
}

// ListName names one of the three item lists of ResumeData
type ListName string

// Item lists
const (
	ListEducation  ListName = "education"
	ListExperience ListName = "experience"
	ListProjects   ListName = "projects"
)

// Lists enumerates the item lists.
var Lists = []ListName{ListEducation, ListExperience, ListProjects}

// ParseListName validates a list name.
func ParseListName(s string) (ListName, error) {
	for _, l := range Lists {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown list %q (want one of %s)", s, joinNames(Lists))
}

// TemplateID identifies one of the visual templates
type TemplateID string

// Template identifiers
const (
	TemplateClassic     TemplateID = "classic"
	TemplateModern      TemplateID = "modern"
	TemplateCreative    TemplateID = "creative"
	TemplateTechnical   TemplateID = "technical"
	TemplateMinimalist  TemplateID = "minimalist"
	TemplateAcademic    TemplateID = "academic"
	TemplateExecutive   TemplateID = "executive"
	TemplateInfographic TemplateID = "infographic"
	TemplateStartup     TemplateID = "startup"
)

// DefaultTemplate is used for unknown or empty template ids.
const DefaultTemplate = TemplateClassic

// Templates lists every template in gallery order.
var Templates = []TemplateID{
	TemplateClassic,
	TemplateModern,
	TemplateCreative,
	TemplateTechnical,
	TemplateMinimalist,
	TemplateAcademic,
	TemplateExecutive,
	TemplateInfographic,
	TemplateStartup,
}

// Valid reports whether id is one of the known templates.
func (id TemplateID) Valid() bool {
	for _, t := range Templates {
		if t == id {
			return true
		}
	}
	return false
}

// Theme is the persisted UI color preference
type Theme string

// Themes
const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme applies when no valid preference is stored.
const DefaultTheme = ThemeDark

// ParseTheme returns the theme for s, or DefaultTheme with ok=false.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.TrimSpace(s)) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	}
	return DefaultTheme, false
}

func joinNames[T ~string](names []T) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = string(n)
	}
	return strings.Join(parts, ", ")
}
