package exportio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"content-migrator/internal/model"
)

// wrappedExport is the object form of an export file.
type wrappedExport struct {
	ContentModels []model.ContentModel `json:"contentModels"`
}

// ReadFile reads content models from a JSON file.
func ReadFile(path string) ([]model.ContentModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export %s: %w", path, err)
	}
	defer f.Close()

	models, err := ReadModels(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read export %s: %w", path, err)
	}

	return models, nil
}

// ReadModels decodes content models from r. The input is either a JSON array of
// content models or an object with a "contentModels" array.
func ReadModels(r io.Reader) ([]model.ContentModel, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty export")
	}

	switch trimmed[0] {
	case '[':
		var models []model.ContentModel

		err = json.Unmarshal(trimmed, &models)
		if err != nil {
			return nil, fmt.Errorf("invalid content model list: %w", err)
		}

		return models, nil

	case '{':
		var wrapped wrappedExport

		err = json.Unmarshal(trimmed, &wrapped)
		if err != nil {
			return nil, fmt.Errorf("invalid content model export: %w", err)
		}

		if wrapped.ContentModels == nil {
			return nil, errors.New(`export object has no "contentModels" list`)
		}

		return wrapped.ContentModels, nil

	default:
		return nil, fmt.Errorf("expected a JSON array or object, got %q", trimmed[0])
	}
}
