// Package cli implements the scrollgrip command-line interface: it loads
// the configuration, reads the document and runs the terminal viewer.
package cli

import (
	"context"
	"fmt"
	"io"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// options holds the flag values of the root command
type options struct {
	verbose    bool
	logFile    string
	configPath string
	dir        string
	native     bool
	saveConfig bool

	// overrides, empty means keep the configured value
	direction     string
	rtlConvention string
	pointerEvents string
	visibility    string
	orientation   string
	appearance    string
	position      string
	trackClick    string
	easing        string

	logCloser io.Closer
}

// Execute runs the scrollgrip CLI and returns an error if the command fails.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "scrollgrip [file]",
		Short: "ScrollGrip pages text with custom scrollbars",
		Long: `ScrollGrip is a terminal pager whose scrollbars can be dragged, clicked and
held like desktop scrollbars. It reads the file named on the command line, or
standard input when no file is given.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if opts.verbose {
				level = charmlog.DebugLevel
			}
			w, err := openLogFile(opts.logFile)
			if err != nil {
				return err
			}
			opts.logCloser = w
			cmd.SetContext(withLogger(cmd.Context(), newLogger(w, level)))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logCloser == nil {
				return nil
			}
			return opts.logCloser.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.InOrStdin(), opts, args)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("scrollgrip %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&opts.logFile, "log-file", "scrollgrip.log", "log file, empty to disable logging")

	f := root.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "config file (default: per-directory .scrollgrip.toml, then user config)")
	f.StringVarP(&opts.dir, "dir", "d", "", "directory searched for .scrollgrip.toml (default: current directory)")
	f.BoolVar(&opts.native, "native", false, "use the plain pager without custom scrollbars")
	f.BoolVar(&opts.saveConfig, "save-config", false, "write the effective configuration to the user config file")
	f.StringVar(&opts.direction, "direction", "", "text direction: ltr or rtl")
	f.StringVar(&opts.rtlConvention, "rtl-convention", "", "rtl offset convention: normal, negated or inverted")
	f.StringVar(&opts.pointerEvents, "pointer-events", "", "pointer source: viewport or scrollbar")
	f.StringVar(&opts.visibility, "visibility", "", "scrollbar visibility: native, always or hover")
	f.StringVar(&opts.orientation, "orientation", "", "scrollbars: auto, vertical or horizontal")
	f.StringVar(&opts.appearance, "appearance", "", "standard or compact")
	f.StringVar(&opts.position, "position", "", "native, invertX, invertY or invertAll")
	f.StringVar(&opts.trackClick, "track-click", "", "track press behavior: steps or to")
	f.StringVar(&opts.easing, "easing", "", "scroll easing: easeInOutQuad, linear, easeInOutCubic or easeOutCubic")

	return root
}
