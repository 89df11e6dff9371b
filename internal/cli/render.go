package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vellumcad/vellum"
	"github.com/vellumcad/vellum/format"
	"github.com/vellumcad/vellum/pdf"
	"github.com/vellumcad/vellum/raster"
	"github.com/vellumcad/vellum/svg"
)

var renderOutputFlag string
var renderScaleFlag float64
var renderMarginFlag float64
var renderMaxDimFlag int

// renderCmd represents the render command.
var renderCmd = newRenderCmd()

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a drawing to an image or page",
		Long:  renderLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			output := renderOutputFlag
			if output == "" {
				base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
				output = filepath.Join(filepath.Dir(input), base+".png")
			}

			target := format.Detect(output)
			m, err := vellum.Load(input)
			if err != nil {
				return fmt.Errorf("reading %s: %w", input, err)
			}

			scale := viper.GetFloat64(renderScaleKey)
			margin := viper.GetFloat64(renderMarginKey)

			switch target {
			case format.PNG:
				cfg := raster.DefaultConfig()
				cfg.Scale = scale
				cfg.Margin = margin
				cfg.MaxDimension = viper.GetInt(renderMaxDimKey)
				err = raster.NewRendererWithConfig(cfg).ExportToFile(m, output)
			case format.SVG:
				cfg := svg.DefaultConfig()
				cfg.Scale = scale
				cfg.Margin = margin
				err = svg.NewExporterWithConfig(cfg).ExportToFile(m, output)
			case format.PDF:
				cfg := pdf.DefaultConfig()
				cfg.Scale = scale
				cfg.Margin = margin
				err = pdf.NewExporterWithConfig(cfg).ExportToFile(m, output)
			default:
				return fmt.Errorf("render writes png, svg, or pdf, not %q", filepath.Ext(output))
			}
			if err != nil {
				return fmt.Errorf("rendering %s: %w", input, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s -> %s\n", styled(out, styleSuccess, "  ok"), input, output)

			return nil
		},
	}

	configureRenderFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func configureRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&renderOutputFlag, outputFlagName, "o", "", "output file; the extension picks the format (default: input name with .png)")

	cmd.Flags().Float64Var(&renderScaleFlag, scaleFlagName, viper.GetFloat64(renderScaleKey), "drawing units to output units multiplier")
	bindFlagToConfig(cmd.Flags().Lookup(scaleFlagName), renderScaleKey)

	cmd.Flags().Float64Var(&renderMarginFlag, marginFlagName, viper.GetFloat64(renderMarginKey), "blank border around the drawing")
	bindFlagToConfig(cmd.Flags().Lookup(marginFlagName), renderMarginKey)

	cmd.Flags().IntVar(&renderMaxDimFlag, maxDimFlagName, viper.GetInt(renderMaxDimKey), "shrink png output to fit within this many pixels")
	bindFlagToConfig(cmd.Flags().Lookup(maxDimFlagName), renderMaxDimKey)
}
