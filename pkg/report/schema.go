package report

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	werrors "github.com/r3d91ll/qmreport/pkg/errors"
)

func metricSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []string{"name", "value"},
		"properties": map[string]interface{}{
			"name":        map[string]interface{}{"type": "string", "minLength": 1},
			"value":       map[string]interface{}{"type": "number", "minimum": 0, "maximum": 100},
			"description": map[string]interface{}{"type": "string"},
			"threshold": map[string]interface{}{
				"type":     "object",
				"required": []string{"good", "warning"},
				"properties": map[string]interface{}{
					"good":    map[string]interface{}{"type": "number"},
					"warning": map[string]interface{}{"type": "number"},
				},
			},
		},
	}
}

// RequestSchema is the JSON Schema a serialized Request must satisfy.
func RequestSchema() map[string]interface{} {
	return map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]interface{}{
			"metrics":   map[string]interface{}{"type": "array", "items": metricSchema()},
			"modelName": map[string]interface{}{"type": "string"},
			"timestamp": map[string]interface{}{"type": "string"},
			"charts": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"trainingProgress": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":     "object",
							"required": []string{"epoch", "accuracy"},
							"properties": map[string]interface{}{
								"epoch":    map[string]interface{}{"type": "number"},
								"accuracy": map[string]interface{}{"type": "number"},
								"loss":     map[string]interface{}{"type": "number"},
							},
						},
					},
					"metricsComparison": map[string]interface{}{"type": "array", "items": metricSchema()},
					"confusionMatrix": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type":  "array",
							"items": map[string]interface{}{"type": "integer", "minimum": 0},
						},
					},
					"confusionLabels": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
				},
			},
		},
	}
}

// DecodeRequest validates data against RequestSchema and decodes it.
// Every schema violation is listed in the returned REQUEST_INVALID error.
func DecodeRequest(data []byte) (*Request, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return &Request{}, nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(RequestSchema()),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, werrors.Wrap(err, werrors.ErrRequestInvalid, werrors.CategoryValidation, "request is not valid JSON")
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, werrors.E(werrors.ErrRequestInvalid, "request does not match schema").
			WithContext("violations", strings.Join(problems, "; "))
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, werrors.Wrap(err, werrors.ErrRequestInvalid, werrors.CategoryValidation, "request could not be decoded")
	}
	return &req, nil
}
