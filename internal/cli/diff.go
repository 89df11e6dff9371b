package cli

import (
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/vellumcad/vellum"
)

var diffExitCodeFlag bool

// diffCmd represents the diff command.
var diffCmd = newDiffCmd()

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff [old] [new]",
		Short: "Compare two drawings",
		Long: `Compare two drawings structurally. Both are loaded, reduced to a
canonical JSON form with sorted keys, and compared line by line, so the
comparison sees geometry rather than file formatting.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldDoc, err := canonicalDrawing(args[0])
			if err != nil {
				return err
			}
			newDoc, err := canonicalDrawing(args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if oldDoc == newDoc {
				fmt.Fprintf(out, "%s\n", styled(out, styleSuccess, "drawings are identical"))
				return nil
			}

			text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(oldDoc),
				B:        difflib.SplitLines(newDoc),
				FromFile: args[0],
				ToFile:   args[1],
				Context:  3,
			})
			if err != nil {
				return fmt.Errorf("computing diff: %w", err)
			}

			cmd.Print(text)

			if diffExitCodeFlag {
				return fmt.Errorf("drawings differ")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&diffExitCodeFlag, exitCodeFlagName, false, "exit with an error when the drawings differ")

	return cmd
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

// canonicalDrawing loads a drawing and renders it as indented JSON.
// Map keys come out sorted, so equal drawings produce equal text no
// matter which format or field order they were stored with.
func canonicalDrawing(file string) (string, error) {
	m, err := vellum.Load(file)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", file, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", file, err)
	}

	return string(data) + "\n", nil
}
