package analysis

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed analysis_response.schema.json
var responseSchema string

// validateResponseShape checks the model's JSON payload against the response
// schema before any field is trusted. The schema is deliberately loose about
// scalar types, which are coerced later; it rejects payloads whose list
// fields are not arrays or that are not JSON objects at all.
func validateResponseShape(jsonText string) error {
	schemaLoader := gojsonschema.NewStringLoader(responseSchema)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("response failed schema validation: %s", errs[0].String())
		}
		return fmt.Errorf("response failed schema validation")
	}
	return nil
}
