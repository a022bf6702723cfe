package export

import (
	"encoding/json"
	"os"

	"github.com/dshills/floorplan/pkg/solve"
)

// ExportJSON serializes a solve result (plan state plus score) to JSON with
// 2-space indentation. Map fields (PlanState.Placed) serialize with sorted
// keys, per encoding/json's own determinism guarantee for string-keyed maps.
func ExportJSON(result *solve.Result) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

// ExportJSONCompact serializes a solve result without indentation, suitable
// for storage or transmission.
func ExportJSONCompact(result *solve.Result) ([]byte, error) {
	return json.Marshal(result)
}

// SaveJSONToFile exports a solve result to an indented JSON file.
func SaveJSONToFile(result *solve.Result, filepath string) error {
	data, err := ExportJSON(result)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}

// SaveJSONCompactToFile exports a solve result to a compact JSON file.
func SaveJSONCompactToFile(result *solve.Result, filepath string) error {
	data, err := ExportJSONCompact(result)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath, data, 0644)
}
