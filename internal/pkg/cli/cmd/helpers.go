package cmd

import (
	"os"

	"github.com/mappingstudio/mapping-studio/internal/pkg/encoding/json"
	"github.com/mappingstudio/mapping-studio/internal/pkg/model"
	"github.com/mappingstudio/mapping-studio/internal/pkg/utils/errors"
)

func loadMapping(path string) (*model.Mapping, error) {
	m := &model.Mapping{}
	if err := loadJSONFile(path, m); err != nil {
		return nil, err
	}
	return m, nil
}

func saveMapping(path string, m *model.Mapping) error {
	data, err := json.Encode(m, true)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.PrefixErrorf(err, `cannot write file "%s"`, path)
	}
	return nil
}

// loadRows reads sample rows, either a JSON array of objects or a single
// object.
func loadRows(path string) ([]map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	var rows []map[string]any
	if err := loadJSONFile(path, &rows); err == nil {
		return rows, nil
	}
	row := map[string]any{}
	if err := loadJSONFile(path, &row); err != nil {
		return nil, err
	}
	return []map[string]any{row}, nil
}

func loadGlobals(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	globals := map[string]any{}
	if err := loadJSONFile(path, &globals); err != nil {
		return nil, err
	}
	return globals, nil
}

func loadJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.PrefixErrorf(err, `cannot read file "%s"`, path)
	}
	if err := json.Decode(data, target); err != nil {
		return errors.PrefixErrorf(err, `invalid JSON in file "%s"`, path)
	}
	return nil
}

func (root *rootCommand) printJSON(v any) error {
	data, err := json.EncodeString(v, true)
	if err != nil {
		return err
	}
	root.logger.Info(data)
	return nil
}
