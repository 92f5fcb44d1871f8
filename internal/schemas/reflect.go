package schemas

import (
	"encoding/json"
	"reflect"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// draft07 is the dialect gojsonschema understands
const draft07 = "http://json-schema.org/draft-07/schema#"

var reflected sync.Map // reflect.Type -> string

// Reflect returns the JSON Schema for the type of v. Properties are required
// only when tagged `jsonschema:"required"`, and unknown properties are allowed.
// Results are cached per type.
func Reflect(v any) (string, error) {
	t := reflect.TypeOf(v)
	if cached, ok := reflected.Load(t); ok {
		return cached.(string), nil
	}

	r := &jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		DoNotReference:             true,
		Anonymous:                  true,
	}
	schema := r.Reflect(v)
	schema.Version = draft07

	data, err := json.Marshal(schema)
	if err != nil {
		return "", &SchemaLoadError{Path: t.String(), Message: "failed to encode reflected schema", Cause: err}
	}

	reflected.Store(t, string(data))
	return string(data), nil
}

// Validate checks jsonContent against the schema reflected from v's type.
func Validate(v any, jsonContent string) error {
	schema, err := Reflect(v)
	if err != nil {
		return err
	}
	return validate(reflect.TypeOf(v).String(), gojsonschema.NewStringLoader(schema), jsonContent)
}
