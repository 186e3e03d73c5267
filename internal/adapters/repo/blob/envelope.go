package blob

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gowebpki/jcs"
	"github.com/kaptinlin/jsonschema"
)

// ErrMalformed marks a stored blob that cannot be read as an envelope.
var ErrMalformed = errors.New("malformed blob")

//go:embed envelope.schema.json
var envelopeSchemaJSON []byte

var envelopeSchema = mustCompileSchema(envelopeSchemaJSON)

type envelope struct {
	Version int `json:"version"`
	State   any `json:"state"`
}

func mustCompileSchema(data []byte) *jsonschema.Schema {
	schema, err := jsonschema.NewCompiler().Compile(data)
	if err != nil {
		panic(fmt.Sprintf("compile envelope schema: %v", err))
	}
	return schema
}

// encodeEnvelope wraps state and renders it in RFC 8785 canonical form so
// equal states always produce equal bytes.
func encodeEnvelope(version int, state any) ([]byte, error) {
	raw, err := json.Marshal(envelope{Version: version, State: state})
	if err != nil {
		return nil, fmt.Errorf("encode blob: %w", err)
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("canonicalize blob: %w", err)
	}
	return canonical, nil
}

func decodeEnvelope(data []byte) (int, map[string]any, error) {
	result := envelopeSchema.ValidateJSON(data)
	if !result.IsValid() {
		return 0, nil, fmt.Errorf("%w: %v", ErrMalformed, result.Errors)
	}

	var decoded struct {
		Version int            `json:"version"`
		State   map[string]any `json:"state"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return decoded.Version, decoded.State, nil
}

// decodeState moves a migrated generic state into its typed schema.
func decodeState(state map[string]any, out any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
