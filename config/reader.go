package config

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"

	"github.com/a8m/envsubst"
	"github.com/go-viper/mapstructure/v2"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.viam.com/rdk/logging"
)

// Read reads a request from the given file, expanding environment variables first.
func Read(filePath string, logger logging.Logger) (*Request, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf), logger)
}

// FromReader reads a request from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader, logger logging.Logger) (*Request, error) {
	var req Request
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrapf(err, "cannot parse request %q", originalPath)
	}
	if req.Name == "" {
		req.Name = originalPath
	}
	if err := req.Validate(""); err != nil {
		return nil, err
	}
	logger.Debugw("read grasp request", "path", originalPath, "resolution", req.Grasp.AngleResolution)
	return &req, nil
}

// DecodeAttributes decodes a request from a loosely typed attribute map, e.g. one embedded in
// a larger machine config.
func DecodeAttributes(attributes map[string]interface{}) (*Request, error) {
	var req Request
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &req,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			rawMessageHook,
		),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, errors.Wrap(err, "cannot decode request attributes")
	}
	if err := req.Validate(""); err != nil {
		return nil, err
	}
	return &req, nil
}

var rawMessageType = reflect.TypeOf(json.RawMessage{})

// rawMessageHook re-encodes nested values destined for json.RawMessage fields.
func rawMessageHook(from, to reflect.Type, data interface{}) (interface{}, error) {
	if to != rawMessageType || from == rawMessageType {
		return data, nil
	}
	return json.Marshal(data)
}

// Schema returns the JSON schema of a request file.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Request{})
}
