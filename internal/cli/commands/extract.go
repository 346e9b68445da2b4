package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swiftcheck/internal/cli"
	"swiftcheck/internal/extract"
)

// ExtractCommand handles the extract command
type ExtractCommand struct {
	app *cli.App
}

// NewExtractCommand creates a new ExtractCommand
func NewExtractCommand(app *cli.App) *ExtractCommand {
	return &ExtractCommand{app: app}
}

// Execute runs the command
func (ec *ExtractCommand) Execute(cmd *cobra.Command, args []string) error {
	extractor, err := extract.New(ec.app.Config.Anchor, ec.app.Config.Terminators)
	if err != nil {
		return err
	}

	var raw []byte
	if len(args) == 1 && args[0] != "-" {
		raw, err = os.ReadFile(args[0])
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("read page text: %w", err)
	}

	return printExtraction(cmd.OutOrStdout(), extractor.Extract(string(raw)))
}

func printExtraction(w io.Writer, res extract.Result) error {
	if !res.Found {
		color.New(color.FgRed).Fprintln(w, "✗ no translation found")
		return nil
	}
	color.New(color.FgGreen).Fprint(w, "✓ found ")
	fmt.Fprintf(w, "(terminated by %q)\n", res.Terminator)
	fmt.Fprintln(w, res.Candidate)
	_, err := fmt.Fprintf(w, "%q\n", res.Candidate)
	return err
}
