package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/settle/errors"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// FlagHome is the persistent root flag pointing to the node directory.
	FlagHome = "home"

	flagForce   = "force"
	appStateKey = "app_state"
)

// GenOptions can parse command-line and flag to
// generate default app_options for the genesis file.
// This is application-specific
type GenOptions func(args []string) (json.RawMessage, error)

// InitCmd sets the app_state of the genesis file found in the node
// directory. The genesis file itself must be created first by
// `tendermint init`.
func InitCmd(gen GenOptions, logger log.Logger) *cobra.Command {
	c := initCmd{gen: gen, logger: logger}
	cmd := &cobra.Command{
		Use:   "init [args...]",
		Short: "Initialize app options in genesis file",
		RunE:  c.run,
	}
	cmd.Flags().BoolP(flagForce, "f", false, "overwrite an existing app_state")
	return cmd
}

type initCmd struct {
	gen    GenOptions
	logger log.Logger
}

func (c initCmd) run(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool(flagForce)
	if err != nil {
		return err
	}
	genFile := GenesisFile(homeDir(cmd))
	if err := InitGenesis(genFile, c.gen, args, force); err != nil {
		return err
	}
	c.logger.Info("App state written", "genesis", genFile)
	return nil
}

// GenesisFile returns the location of the genesis file within the node
// directory.
func GenesisFile(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitGenesis generates the application options and stores them as the
// app_state of given genesis file. An existing app_state is overwritten only
// when force is set.
func InitGenesis(genFile string, gen GenOptions, args []string, force bool) error {
	if _, err := os.Stat(genFile); os.IsNotExist(err) {
		return errors.Wrapf(errors.ErrNotFound, "%s: run `tendermint init` first", genFile)
	}
	doc, err := readGenesis(genFile)
	if err != nil {
		return err
	}
	if _, ok := doc[appStateKey]; ok && !force {
		return errors.Wrap(errors.ErrDuplicate, "app_state already set, use --force to overwrite")
	}

	options, err := gen(args)
	if err != nil {
		return errors.Wrap(err, "generate app options")
	}
	doc[appStateKey] = options
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "serialize genesis")
	}
	if err := ioutil.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	return nil
}

// genesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type genesisDoc map[string]json.RawMessage

func readGenesis(filename string) (genesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis")
	}
	var doc genesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return doc, nil
}

// homeDir reads the home flag, inherited from the root command.
func homeDir(cmd *cobra.Command) string {
	if f := cmd.Flag(FlagHome); f != nil {
		return f.Value.String()
	}
	return ""
}
