package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// SlotCount is the number of attack waves every target table must cover.
const SlotCount = 9

//go:embed data/tb_data.json
var defaultData []byte

// Data mirrors the catalog JSON document.
type Data struct {
	Troops                []Troop            `json:"troops"`
	Citadels              map[string]Citadel `json:"citadels"`
	AdditionalBonusNormal map[string]float64 `json:"additionalBonusNormal"`
	PhoenixExtra          map[string]float64 `json:"phoenixExtra"`
	FirstStrikerAllowed   struct {
		With    []string `json:"WITH"`
		Without []string `json:"WITHOUT"`
	} `json:"firstStrikerAllowed"`
}

// New validates d and builds a catalog from it.
func New(d Data) (*Catalog, error) {
	for lvl, cit := range d.Citadels {
		if len(cit.NormalTargets) != SlotCount {
			return nil, fmt.Errorf("citadel %s: normalTargets has %d entries, want %d", lvl, len(cit.NormalTargets), SlotCount)
		}
		if len(cit.M8M9Targets) != SlotCount {
			return nil, fmt.Errorf("citadel %s: m8m9Targets has %d entries, want %d", lvl, len(cit.M8M9Targets), SlotCount)
		}
	}
	return build(d), nil
}

// Load decodes a catalog JSON document.
func Load(r io.Reader) (*Catalog, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(d)
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the embedded sample catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultData))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}
