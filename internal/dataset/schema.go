package dataset

// optionSchema accepts a bare option text or a keyed option object.
var optionSchema = map[string]any{
	"oneOf": []any{
		map[string]any{"type": "string"},
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"key":  map[string]any{"type": "string", "minLength": 1},
				"text": map[string]any{"type": "string"},
			},
			"required": []any{"text"},
		},
	},
}

// Schema is the JSON schema every dataset document must satisfy before
// semantic validation runs.
var Schema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":      map[string]any{"type": "string"},
		"title":   map[string]any{"type": "string"},
		"variant": map[string]any{"type": "string", "enum": []any{"profile", "scored"}},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":   map[string]any{"type": []any{"string", "integer"}},
					"text": map[string]any{"type": "string", "minLength": 1},
					"type": map[string]any{
						"type": "string",
						"enum": []any{"letter-choice", "indexed-choice", "numeric", "letter", "choice", "number"},
					},
					"options":       map[string]any{"type": "array", "items": optionSchema},
					"block":         map[string]any{"type": "string"},
					"correctKey":    map[string]any{"type": "integer", "minimum": 0},
					"correctNumber": map[string]any{"type": "number"},
					"tolerance":     map[string]any{"type": "number", "minimum": 0},
				},
				"required": []any{"text"},
			},
		},
		"profiles": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title":      map[string]any{"type": "string", "minLength": 1},
					"role":       map[string]any{"type": "string"},
					"superpower": map[string]any{"type": "string"},
					"learning":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"image":      map[string]any{"type": "string"},
				},
				"required": []any{"title"},
			},
		},
		"letters":  map[string]any{"type": "array", "items": map[string]any{"type": "string", "minLength": 1}},
		"priority": map[string]any{"type": "array", "items": map[string]any{"type": "string", "minLength": 1}},
		"tieBreak": map[string]any{"type": "array", "items": map[string]any{"type": []any{"string", "integer"}}},
		"resultBands": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"min":   map[string]any{"type": "integer"},
					"max":   map[string]any{"type": "integer"},
					"title": map[string]any{"type": "string"},
					"text":  map[string]any{"type": "string"},
				},
				"required": []any{"min", "max", "title"},
			},
		},
		"timeLimitSec": map[string]any{"type": "integer", "minimum": 0},
	},
	"required": []any{"questions"},
}
