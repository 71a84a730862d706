package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // semantic version, set with SetVersion
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version. main
// calls it with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// app holds state shared by all commands.
type app struct {
	configPath string
	verbose    bool
	cfg        Config
}

// Execute runs the nbt CLI.
//
// Logging goes to stderr at info level, or debug level with --verbose.
// The logger is attached to the command context.
func Execute(ctx context.Context) error {
	return newRootCommand().ExecuteContext(ctx)
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "nbt",
		Short: "Inspect and convert named binary tag files",
		Long: `nbt reads and writes named binary tag files in any of the common
compressions, renders them as text, converts them to CBOR and frames them
for streaming.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(withLogger(cmd.Context(), logger))

			cfg, err := loadConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logger.Debug("configuration",
				"max_depth", cfg.MaxDepth,
				"max_array_len", cfg.MaxArrayLen,
				"compression", cfg.compression(),
				"max_frame_payload", cfg.MaxFramePayload,
				"max_tag_size", cfg.MaxTagSize)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("nbt %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "TOML config file (default $"+configEnv+")")

	root.AddCommand(a.dumpCommand())
	root.AddCommand(a.textCommand())
	root.AddCommand(a.parseCommand())
	root.AddCommand(a.hashCommand())
	root.AddCommand(a.regionCommand())
	root.AddCommand(a.framesCommand())
	root.AddCommand(a.cborCommand())

	return root
}
