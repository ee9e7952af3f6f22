package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pixgrid",
	Short: "Row-oriented pixel buffer toolbox",
	Long: `pixgrid — applies format-agnostic pixel operations to images through
a row-oriented pixel buffer with safe, scoped row access.

Operations run over canonical float pixels, so the same transform works
for every supported encoding. Output filenames are content-addressed.`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"pixgrid %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[pixgrid] "+format+"\n", args...)
	}
}
