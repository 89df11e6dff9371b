package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/vellumcad/vellum"
	"github.com/vellumcad/vellum/format"
)

var convertToFlag string
var convertUnitsFlag string
var convertOutDirFlag string
var convertParallelFlag int

// convertCmd represents the convert command.
var convertCmd = newConvertCmd()

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert drawings to another format",
		Long:  convertLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := format.Parse(viper.GetString(convertToKey))
			if target == format.Unknown {
				return fmt.Errorf("unknown target format %q", viper.GetString(convertToKey))
			}

			destUnits := viper.GetString(convertUnitsKey)

			parallel := viper.GetInt(convertParallelKey)
			if parallel < 1 {
				parallel = 1
			}

			results := make([]convertResult, len(args))

			var group errgroup.Group
			group.SetLimit(parallel)
			for i, file := range args {
				i, file := i, file
				group.Go(func() error {
					results[i] = convertFile(file, convertOutDirFlag, destUnits, target)
					return nil
				})
			}
			// Goroutines only record into their own slot.
			_ = group.Wait()

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				if res.err != nil {
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", styled(out, styleFailure, "FAIL"), res.source, res.err)
					continue
				}

				fmt.Fprintf(out, "%s %s -> %s\n", styled(out, styleSuccess, "  ok"), res.source, res.output)
				for _, warning := range res.warnings {
					fmt.Fprintf(out, "%s %s: %s\n", styled(out, styleWarning, "warn"), res.source, warning.String())
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d conversions failed", failed, len(args))
			}

			return nil
		},
	}

	configureConvertFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func configureConvertFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&convertToFlag, toFlagName, "t", viper.GetString(convertToKey), "target format (json, yaml, svg, dxf, pdf, png)")
	bindFlagToConfig(cmd.Flags().Lookup(toFlagName), convertToKey)

	cmd.Flags().StringVarP(&convertUnitsFlag, unitsFlagName, "u", viper.GetString(convertUnitsKey), "convert drawings to these units (mm, cm, m, inch, foot)")
	bindFlagToConfig(cmd.Flags().Lookup(unitsFlagName), convertUnitsKey)

	cmd.Flags().IntVarP(&convertParallelFlag, parallelFlagName, "p", viper.GetInt(convertParallelKey), "number of parallel conversions")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), convertParallelKey)

	cmd.Flags().StringVarP(&convertOutDirFlag, outDirFlagName, "d", "", "directory for converted files (default: next to each input)")
}

type convertResult struct {
	source   string
	output   string
	warnings []vellum.Warning
	err      error
}

// convertFile loads one drawing, optionally rescales it to destUnits,
// and saves it under the target format's extension.
func convertFile(file, outDir, destUnits string, target format.Format) convertResult {
	res := convertResult{source: file}

	m, err := vellum.Load(file)
	if err != nil {
		res.err = err
		return res
	}

	if destUnits != "" {
		converted, warnings, err := vellum.FromModel(m).ConvertUnits(destUnits).Model()
		if err != nil {
			res.err = err
			return res
		}
		res.warnings = warnings
		m = converted
	}

	res.output = outputName(file, outDir, target)
	if res.output == file {
		res.err = fmt.Errorf("output would overwrite input")
		return res
	}

	res.err = vellum.Save(m, res.output)
	return res
}

func outputName(file, outDir string, target format.Format) string {
	dir := outDir
	if dir == "" {
		dir = filepath.Dir(file)
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	return filepath.Join(dir, base+target.Extension())
}
