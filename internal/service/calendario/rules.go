package calendario

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"famigliapp/internal/storage"
)

// LoadRulesFile читает правила из YAML. Отсутствующий файл означает пустые правила.
func LoadRulesFile(path string) (storage.ShiftRules, error) {
	const op = "service.calendario.LoadRulesFile"

	var rules storage.ShiftRules
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return rules, nil
		}
		return rules, fmt.Errorf("%s: %w", op, err)
	}

	if err := yaml.Unmarshal(data, &rules); err != nil {
		return storage.ShiftRules{}, fmt.Errorf("%s: parse %s: %w", op, path, err)
	}
	return rules, nil
}
