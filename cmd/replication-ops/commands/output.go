package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sanity-io/litter"
	apperrors "github.com/savaki/replication-ops/internal/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
	outputDump = "dump"
)

var outputFlag = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "Output format: json, yaml or dump",
	Value:   outputJSON,
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)

	case outputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()

	case outputDump:
		_, err := fmt.Fprintln(w, litter.Sdump(v))
		return err

	default:
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidOutputFormat, format)
	}
}
