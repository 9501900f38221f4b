package templates

import "github.com/ppiankov/sectorbook/internal/schema"

// sectorSchema constrains a sector file: system_type -> risk_tier -> entry.
// Entry lists are optional; a missing list reads as empty.
var sectorSchema = schema.MustCompile("sector-templates", `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "additionalProperties": {
      "type": "object",
      "properties": {
        "controls": {"$ref": "#/$defs/list"},
        "validation": {"$ref": "#/$defs/list"},
        "monitoring": {"$ref": "#/$defs/list"},
        "incident_triggers": {"$ref": "#/$defs/list"}
      },
      "additionalProperties": false
    }
  },
  "$defs": {
    "list": {"type": "array", "items": {"type": "string"}}
  }
}`)
