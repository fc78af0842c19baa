package memstore

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/vacancy-matching/internal/lookup"
	"github.com/jonathan/vacancy-matching/internal/schemas"
	"github.com/jonathan/vacancy-matching/internal/types"
	schemadefs "github.com/jonathan/vacancy-matching/schemas"
)

// Dataset is the on-disk form of a Store.
type Dataset struct {
	Codes    map[lookup.Table][]types.CodeEntity `json:"codes"`
	Requests []types.Request                     `json:"requests"`
	Profiles []types.Profile                     `json:"profiles"`
}

// LoadDataset validates the JSON file at path against the dataset schema and
// returns a Store populated from it.
func LoadDataset(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	if err := schemas.ValidateDocument("dataset.schema.json", schemadefs.Dataset, data); err != nil {
		return nil, fmt.Errorf("invalid dataset %s: %w", path, err)
	}
	var ds Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse dataset JSON: %w", err)
	}
	return FromDataset(&ds)
}

// FromDataset builds a Store from ds.
func FromDataset(ds *Dataset) (*Store, error) {
	s := New()
	for table, entities := range ds.Codes {
		if !table.Valid() {
			return nil, fmt.Errorf("dataset references unknown lookup table %q", table)
		}
		for _, e := range entities {
			s.AddCode(table, e)
		}
	}
	for _, r := range ds.Requests {
		s.AddRequest(r)
	}
	for _, p := range ds.Profiles {
		s.AddProfile(p)
	}
	return s, nil
}
