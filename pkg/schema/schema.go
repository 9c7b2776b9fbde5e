// Package schema renders JSON schemas for the run file and its sections.
package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
)

// Generate reflects v into a JSON schema with every definition inlined. Field names follow the
// json tags, and jsonschema tags carry defaults, enums and descriptions.
func Generate[T any](v T) (string, error) {
	reflector := &jsonschema.Reflector{DoNotReference: true} //nolint:exhaustruct // library defaults

	out, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to encode schema", err)
	}

	return string(out), nil
}
