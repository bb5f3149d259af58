// Package schema holds the dynamic mapping schema served by the backend:
// the JSON-Schema document plus the field type and operation catalogs
// derived from it, with an explicit ETag-keyed cache for offline fallback.
package schema

import (
	"bytes"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/mappingstudio/mapping-studio/internal/pkg/encoding/json"
	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

// pseudoSchemaFile - the fetched schema is registered as this resource.
const pseudoSchemaFile = "file:///mappings-schema.json"

// Info is the parsed schema payload.
type Info struct {
	Schema     map[string]any `json:"schema"`
	FieldTypes []string       `json:"fieldTypes"`
	Operations []string       `json:"operations"`
	ETag       string         `json:"-"`

	compiled *jsonschema.Schema
}

// Parse decodes the GET /mappings/schema payload and compiles the embedded
// JSON-Schema document, so mappings can be pre-checked locally.
func Parse(payload []byte, etag string) (*Info, error) {
	info := &Info{}
	if err := json.Decode(payload, info); err != nil {
		return nil, errors.PrefixError(err, "malformed schema payload")
	}
	info.ETag = etag

	if info.Schema != nil {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(pseudoSchemaFile, bytes.NewReader(json.MustEncode(info.Schema, false))); err != nil {
			return nil, errors.PrefixError(err, "invalid mapping schema")
		}
		compiled, err := compiler.Compile(pseudoSchemaFile)
		if err != nil {
			return nil, errors.PrefixError(err, "invalid mapping schema")
		}
		info.compiled = compiled
	}
	return info, nil
}

// ValidateDocument checks a mapping document against the compiled schema.
// Without a compiled schema the check passes, the server remains the
// authority.
func (i *Info) ValidateDocument(document any) error {
	if i.compiled == nil {
		return nil
	}
	// The library validates plain JSON values only
	normalized := any(nil)
	json.MustDecode(json.MustEncode(document, false), &normalized)

	if err := i.compiled.Validate(normalized); err != nil {
		validationErr := &jsonschema.ValidationError{}
		if errors.As(err, &validationErr) {
			out := errors.NewMultiError()
			for _, cause := range validationErr.Causes {
				out.Append(errors.Errorf("%s: %s", cause.InstanceLocation, cause.Message))
			}
			if out.Len() == 0 {
				out.Append(errors.New(validationErr.Message))
			}
			return errors.PrefixError(out.ErrorOrNil(), "mapping doesn't match schema")
		}
		return err
	}
	return nil
}

// HasFieldType reports whether the type is part of the catalog.
// An empty catalog accepts everything.
func (i *Info) HasFieldType(fieldType string) bool {
	if len(i.FieldTypes) == 0 {
		return true
	}
	for _, t := range i.FieldTypes {
		if t == fieldType {
			return true
		}
	}
	return false
}
