package commands

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/settle"
	"github.com/iov-one/settle/errors"
)

// Example will be written out to a file, .json and .bin
// Filename should have no path and no extension
type Example struct {
	Filename string
	Obj      settle.Persistent
}

// TestGenCmd generates sample protobuf and json encodings
// of various objects to test against.
func TestGenCmd(examples []Example, args []string) error {
	outdir := "testdata"
	if len(args) > 0 {
		outdir = args[0]
	}
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	for _, ex := range examples {
		js, err := json.MarshalIndent(ex.Obj, "", "  ")
		if err != nil {
			return errors.Wrapf(err, "json %s", ex.Filename)
		}
		jsFile := filepath.Join(outdir, ex.Filename+".json")
		if err := ioutil.WriteFile(jsFile, js, 0644); err != nil {
			return errors.Wrap(err, "write json")
		}

		pb, err := ex.Obj.Marshal()
		if err != nil {
			return errors.Wrapf(err, "protobuf %s", ex.Filename)
		}
		pbFile := filepath.Join(outdir, ex.Filename+".bin")
		if err := ioutil.WriteFile(pbFile, pb, 0644); err != nil {
			return errors.Wrap(err, "write protobuf")
		}
	}
	return nil
}
