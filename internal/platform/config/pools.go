package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"didpool/internal/ledger"
	"didpool/internal/pool"
)

type poolsFile struct {
	Pools []poolEntry `yaml:"pools"`
}

type poolEntry struct {
	ID                  string              `yaml:"id"`
	IsProduction        bool                `yaml:"isProduction"`
	Namespace           string              `yaml:"namespace"`
	GenesisPath         string              `yaml:"genesisPath"`
	GenesisTransactions string              `yaml:"genesisTransactions"`
	TAA                 *pool.TAAAcceptance `yaml:"transactionAuthorAgreement"`
}

// LoadPools reads the ordered pool list from a YAML file.
func LoadPools(path string) ([]pool.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool config %s: %w", path, err)
	}
	configs, err := ParsePools(data)
	if err != nil {
		return nil, fmt.Errorf("pool config %s: %w", path, err)
	}
	return configs, nil
}

// ParsePools decodes a YAML pool list, preserving file order.
func ParsePools(data []byte) ([]pool.Config, error) {
	var file poolsFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode pools: %w", err)
	}

	configs := make([]pool.Config, 0, len(file.Pools))
	for i, entry := range file.Pools {
		if err := entry.validate(); err != nil {
			return nil, fmt.Errorf("pools[%d]: %w", i, err)
		}
		configs = append(configs, pool.Config{
			ID:           entry.ID,
			IsProduction: entry.IsProduction,
			Namespace:    entry.Namespace,
			Connection: ledger.ConnectionParams{
				GenesisPath:         entry.GenesisPath,
				GenesisTransactions: entry.GenesisTransactions,
			},
			TAA: entry.TAA,
		})
	}
	return configs, nil
}

func (e poolEntry) validate() error {
	if e.ID == "" {
		return errors.New("id is required")
	}
	if e.GenesisPath == "" && e.GenesisTransactions == "" {
		return fmt.Errorf("pool %s: genesisPath or genesisTransactions is required", e.ID)
	}
	if e.TAA != nil && (e.TAA.Version == "" || e.TAA.AcceptanceMechanism == "") {
		return fmt.Errorf("pool %s: transactionAuthorAgreement needs version and acceptanceMechanism", e.ID)
	}
	return nil
}
