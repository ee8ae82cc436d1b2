package configstore

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/fastxteam/fastx-tui/internal/interfaces"
)

// fieldSchema is one recognized key of a typed view: its JSON Schema
// fragment (validated against the value alone, not a wrapping object) and
// its default when unset.
type fieldSchema struct {
	Schema  string
	Default interface{}
}

// appFields is the schema for ConfigEntry.Type == "app". Unknown app keys
// are permitted on write (forward compatibility, §3) but bypass the typed
// view on read.
var appFields = map[string]fieldSchema{
	"theme": {
		Schema:  `{"type":"string","enum":["dark","light"]}`,
		Default: "dark",
	},
	"auto_check_updates": {
		Schema:  `{"type":"boolean"}`,
		Default: true,
	},
	"check_interval_hours": {
		Schema:  `{"type":"integer","minimum":1,"maximum":168}`,
		Default: float64(24),
	},
	"log_level": {
		Schema:  `{"type":"string","enum":["debug","info","warn","error"]}`,
		Default: "info",
	},
	"plugins_dir": {
		Schema:  `{"type":"string","minLength":1}`,
		Default: "",
	},
}

// prefFields is the schema for ConfigEntry.Type == "preference".
var prefFields = map[string]fieldSchema{
	"search_history_cap": {
		Schema:  `{"type":"integer","minimum":1,"maximum":500}`,
		Default: float64(20),
	},
	"recents_cap": {
		Schema:  `{"type":"integer","minimum":1,"maximum":200}`,
		Default: float64(10),
	},
	"search_history": {
		Schema:  `{"type":"array","items":{"type":"string"}}`,
		Default: []interface{}{},
	},
	"recents": {
		Schema:  `{"type":"array","items":{"type":"string"}}`,
		Default: []interface{}{},
	},
	"confirm_destructive_actions": {
		Schema:  `{"type":"boolean"}`,
		Default: true,
	},
}

// validateValue validates value (already in its plain Go form — string,
// float64, bool, []interface{}, map[string]interface{}) against the JSON
// Schema fragment schemaJSON.
func validateValue(schemaJSON string, value interface{}) []string {
	schemaLoader := gojsonschema.NewStringLoader(schemaJSON)
	docLoader := gojsonschema.NewGoLoader(value)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return []string{fmt.Sprintf("schema evaluation failed: %v", err)}
	}
	if result.Valid() {
		return nil
	}
	reasons := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		reasons = append(reasons, e.String())
	}
	return reasons
}

// pluginFieldsToSchema converts a plugin's declared PluginConfigField list
// (see interfaces.ConfigSchemaProvider) into a JSON Schema object document,
// restoring original_source/models/plugin_schema.py's PluginConfigSchema
// shape as a validation document.
func pluginFieldsToSchema(fields []interfaces.PluginConfigField) string {
	properties := make(map[string]interface{}, len(fields))
	var required []string

	for _, f := range fields {
		prop := map[string]interface{}{"type": jsonSchemaType(f.Type)}
		if len(f.Options) > 0 {
			prop["enum"] = f.Options
		}
		if f.Min != nil {
			prop["minimum"] = *f.Min
		}
		if f.Max != nil {
			prop["maximum"] = *f.Max
		}
		properties[f.Key] = prop
		if f.Required {
			required = append(required, f.Key)
		}
	}

	doc := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}

	encoded, _ := json.Marshal(doc)
	return string(encoded)
}

func jsonSchemaType(pluginType string) string {
	switch pluginType {
	case "integer":
		return "integer"
	case "number":
		return "number"
	case "boolean":
		return "boolean"
	case "array":
		return "array"
	case "object":
		return "object"
	default:
		return "string"
	}
}
