package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const itemsSchemaURL = "tada://schemas/items.json"

// Only id and text are required; older payloads without a flag still load.
const itemsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text"],
    "properties": {
      "id":      {"type": "integer"},
      "text":    {"type": "string"},
      "checked": {"type": "boolean"},
      "removed": {"type": "boolean"}
    }
  }
}`

var itemsValidator = jsonschema.MustCompileString(itemsSchemaURL, itemsSchema)

func validate(raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("json decode: %w", err)
	}
	if err := itemsValidator.Validate(doc); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError flattens a validation tree into one line per leaf cause.
func schemaError(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var msgs []string
	collectSchemaErrors(ve, &msgs)
	return fmt.Errorf("not a todo list: %s", strings.Join(msgs, "; "))
}

func collectSchemaErrors(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, loc+": "+ve.Message)
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, msgs)
	}
}
