// Package cli provides the root command and CLI setup for vellum.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// logPathFlag overrides the log file location.
var logPathFlag string

// verboseFlag raises the log level to debug.
var verboseFlag bool

const formatsHelp = `Supported drawing formats:
  - json, yaml     drawing documents (read/write)
  - svg, dxf       interchange formats (read/write)
  - pdf, png       render targets (write only)`

const rootLongDescription = `Vellum loads 2D vector drawings, applies transforms, and writes them
back out in any supported format. A drawing is a tree of named paths
and child drawings, each child positioned by its own origin.

` + formatsHelp

const convertLongDescription = `Convert drawings to another format, deriving each output name from the
input name. Drawings can be rescaled to different units on the way
through. Conversions run in parallel.

` + formatsHelp

const renderLongDescription = `Render a drawing to an image or page format with control over scale
and margins.

` + formatsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vellum",
		Short: "2D vector drawing toolkit",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logPathFlag, verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	return cmd
}

func init() {
	configureRootFlags(rootCmd)
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logPathFlag, "log", "", "log file path (default "+defaultLogFilename+")")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "log debug details")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// ============================================================================
// Styled Output
// ============================================================================

var (
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleFailure = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// isTTY reports whether w is an interactive terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// styled renders text with style when w is a terminal, plain otherwise.
func styled(w io.Writer, style lipgloss.Style, text string) string {
	if !isTTY(w) {
		return text
	}

	return style.Render(text)
}
