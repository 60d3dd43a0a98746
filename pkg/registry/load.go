package registry

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/wasmregistry/codemap/pkg/errors"
)

// LoadRaw reads the registry file and decodes it without typing, so the
// schema validator inspects exactly what is on disk, unknown keys and all.
func LoadRaw(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return value, nil
}

// Load reads the registry file and strictly decodes it into typed
// records. Fields absent from the Contract model fail the decode rather
// than being dropped.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var contracts []Contract
	if err := unmarshalStrict(data, &contracts); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	return &Collection{Path: path, Contracts: contracts}, nil
}

// unmarshalStrict unmarshals JSON and rejects unknown fields.
func unmarshalStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
