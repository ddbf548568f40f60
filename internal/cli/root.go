// Package cli provides the adoptium command-line interface, a local driver
// for the plugin contract.
package cli

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/git-pkgs/adoptium/client"
	"github.com/git-pkgs/adoptium/internal/platform"
	"github.com/git-pkgs/adoptium/internal/version"
)

// options holds the global flags.
type options struct {
	verbose    bool
	jsonOutput bool
	apiURL     string
	timeout    time.Duration
	retries    int
	pluginPath string

	os   string
	arch string
	libc string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "adoptium",
		Short: "Resolve Eclipse Temurin JDK releases",
		Long: `adoptium drives the Eclipse Temurin version-manager plugin from the
command line: list available JDK versions, resolve the archive and checksum
for a version, and show where executables live in an installed JDK.

The target platform defaults to the current host and can be overridden with
--os, --arch and --libc.`,
		Version:      version.Version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(version.String() + "\n")

	detected := platform.Detect()

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print results as JSON")
	flags.StringVar(&opts.apiURL, "api-url", client.BaseURLFromEnv(), "Adoptium API base URL (env "+client.EnvBaseURL+")")
	flags.DurationVar(&opts.timeout, "timeout", client.TimeoutFromEnv(), "HTTP timeout (env "+client.EnvTimeout+")")
	flags.IntVar(&opts.retries, "retries", 0, "retries on 429 and 5xx responses")
	flags.StringVar(&opts.pluginPath, "plugin", "", "run requests through an adoptium-plugin binary instead of in-process")
	flags.StringVar(&opts.os, "os", string(detected.OS), "target operating system")
	flags.StringVar(&opts.arch, "arch", string(detected.Arch), "target architecture")
	flags.StringVar(&opts.libc, "libc", string(detected.Libc), "target libc (gnu or musl)")

	root.AddCommand(
		newVersionsCmd(opts),
		newResolveCmd(opts),
		newReleaseNameCmd(opts),
		newExecutablesCmd(opts),
		newInfoCmd(opts),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) triple() platform.Triple {
	return platform.Triple{
		OS:   platform.ParseOS(o.os),
		Arch: platform.ParseArch(o.arch),
		Libc: platform.ParseLibc(o.libc),
	}
}

func (o *options) logger(w io.Writer) hclog.Logger {
	level := hclog.LevelFromString(os.Getenv("ADOPTIUM_LOG_LEVEL"))
	if o.verbose {
		level = hclog.Debug
	}
	if level == hclog.NoLevel {
		level = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "adoptium",
		Output: w,
		Level:  level,
	})
}
