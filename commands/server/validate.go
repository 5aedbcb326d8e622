package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
	"github.com/iov-one/settle/store"
	"github.com/spf13/cobra"
)

// ValidateCmd loads each given genesis file with the application
// initializer and reports the first failure.
func ValidateCmd(ini settle.Initializer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <genesis.json>...",
		Short: "Ensure genesis files can be loaded by the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{GenesisFile(homeDir(cmd))}
			}
			return ValidateGenesis(ini, args)
		},
	}
}

// ValidateGenesis ensures the app_state of every genesis file is accepted
// by the initializer.
func ValidateGenesis(ini settle.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := validateGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func validateGenesis(ini settle.Initializer, genesisPath string) error {
	b, err := ioutil.ReadFile(genesisPath)
	if err != nil {
		return errors.Wrap(err, "cannot read genesis file")
	}

	var genesis struct {
		State settle.Options `json:"app_state"`
	}
	if err := json.Unmarshal(b, &genesis); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	// Use in memory store because we want to discard the result.
	db := store.MemStore()

	if err := ini.FromGenesis(genesis.State, db); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}
