package leadsource

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"sellerconsole/internal/jsonutil"
	"sellerconsole/internal/lead"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func leadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	})
	return schema, schemaErr
}

// Decode validates a lead document against the embedded schema and decodes it.
func Decode(data []byte) ([]lead.Lead, error) {
	s, err := leadSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling lead schema: %w", err)
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return nil, fmt.Errorf("lead document invalid: %s", strings.Join(errs, "; "))
	}
	return jsonutil.UnmarshalArray[lead.Lead](data, "decoding leads")
}
