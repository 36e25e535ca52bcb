package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"compintel/server/internal/models"
)

var (
	rulesLock    sync.RWMutex
	keywordTable = DefaultKeywordTable()
	costSchedule = DefaultCostSchedule()
)

// DefaultKeywordTable returns the built-in classification rules. A YAML file
// in the rules directory replaces these wholesale.
func DefaultKeywordTable() models.KeywordTable {
	return models.KeywordTable{
		Version:    1,
		Supplement: []string{"supplement", "revision"},
		Demolition: []string{"demo", "demolition"},
		MEP:        []string{"electrical", "plumbing", "mechanical", "hvac", "heat pump", "water heater", "solar"},
		Building:   []string{"bldg", "building", "addition", "new", "adu", "accessory dwelling", "remodel", "alteration", "dwelling", "sfd"},

		ADU:            []string{"adu", "accessory dwelling"},
		NewStructure:   []string{"new sfd", "new single family", "new construction", "new dwelling", "new 2-story", "new two story", "ground-up"},
		Addition:       []string{"addition"},
		MajorRemodel:   []string{"major remodel", "substantial remodel", "interior remodel of entire"},
		Pool:           []string{"pool", "spa"},
		GradingHill:    []string{"grading", "hillside", "retaining wall", "caisson", "shoring"},
		Methane:        []string{"methane"},
		FireSprinklers: []string{"fire sprinkler", "sprinkler", "nfpa"},
		SprinklerOut:   []string{"remove fire sprinkler", "removal of fire sprinkler", "sprinkler removal"},
	}
}

// DefaultCostSchedule returns the built-in cost-model constants.
func DefaultCostSchedule() models.CostSchedule {
	return models.CostSchedule{
		Version:            1,
		NewConstructionPSF: 400,
		RemodelPSF:         150,
		AdditionPSF:        300,
		GaragePSF:          100,
		ADUPSF:             350,
		LandscapeDemoFlat:  50000,
		PoolFlat:           80000,
		TypicalADUSF:       800,
		SoftCostPct:        0.06,
		AnnualInterestRate: 0.10,
		LoanPointsPct:      0.02,
		DefaultHoldMonths:  12,
	}
}

// LoadRules reads keywords.yaml and cost_schedule.yaml from dir when present.
// A missing file keeps the built-in defaults; a malformed file is an error.
func LoadRules(dir string) error {
	rulesLock.Lock()
	defer rulesLock.Unlock()

	kt := DefaultKeywordTable()
	if err := readYAMLIfPresent(filepath.Join(dir, "keywords.yaml"), &kt); err != nil {
		return fmt.Errorf("failed to load keyword table: %w", err)
	}
	cs := DefaultCostSchedule()
	if err := readYAMLIfPresent(filepath.Join(dir, "cost_schedule.yaml"), &cs); err != nil {
		return fmt.Errorf("failed to load cost schedule: %w", err)
	}

	keywordTable = kt
	costSchedule = cs
	return nil
}

func readYAMLIfPresent(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// GetKeywordTable returns a copy of the active classification rules.
func GetKeywordTable() models.KeywordTable {
	rulesLock.RLock()
	defer rulesLock.RUnlock()
	return keywordTable
}

// GetCostSchedule returns a copy of the active cost-model constants.
func GetCostSchedule() models.CostSchedule {
	rulesLock.RLock()
	defer rulesLock.RUnlock()
	return costSchedule
}

// SaveRules writes the active rule tables back to dir as YAML.
func SaveRules(dir string) error {
	rulesLock.RLock()
	defer rulesLock.RUnlock()

	if err := writeYAML(filepath.Join(dir, "keywords.yaml"), keywordTable); err != nil {
		return err
	}
	return writeYAML(filepath.Join(dir, "cost_schedule.yaml"), costSchedule)
}

func writeYAML(path string, in interface{}) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
