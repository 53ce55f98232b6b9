package tikz

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	perrors "github.com/matzehuels/tikzgrid/pkg/errors"
)

// Request encodings accepted by DecodeRequest.
const (
	EncodingJSON = "json"
	EncodingYAML = "yaml"
)

// DecodeRequest reads a GridRequest encoded as JSON or YAML. An empty
// document decodes to an empty request.
func DecodeRequest(r io.Reader, encoding string) (GridRequest, error) {
	var req GridRequest
	switch strings.ToLower(encoding) {
	case "", EncodingJSON:
		if err := json.NewDecoder(r).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, perrors.Wrap(perrors.ErrCodeInvalidRequest, err, "invalid JSON request")
		}
	case EncodingYAML, "yml":
		if err := yaml.NewDecoder(r).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, perrors.Wrap(perrors.ErrCodeInvalidRequest, err, "invalid YAML request")
		}
	default:
		return req, perrors.New(perrors.ErrCodeInvalidFormat, "unknown request encoding %q (want json or yaml)", encoding)
	}
	return req, nil
}

// EncodingForPath guesses the encoding from a file extension.
func EncodingForPath(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return EncodingYAML
	}
	return EncodingJSON
}
