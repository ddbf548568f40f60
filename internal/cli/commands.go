package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/adoptium/internal/core"
	"github.com/git-pkgs/adoptium/internal/release"
	"github.com/git-pkgs/adoptium/internal/tool"
)

func newVersionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "versions",
		Short: "List available JDK versions for the target platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(cmd.ErrOrStderr())
			impl, closeFn, err := openTool(opts, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			list, err := impl.LoadVersions(cmd.Context(), opts.triple())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, list)
			}
			for _, v := range list.Versions {
				marker := ""
				if v == list.Latest {
					marker = "  (" + core.LatestAlias + ")"
				}
				fmt.Fprintf(out, "%s%s\n", v, marker)
			}
			return nil
		},
	}
}

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <version>",
		Short: "Resolve the download URL and checksum for a JDK version",
		Example: `  adoptium resolve 21.0.5+11
  adoptium resolve 8.0.432+6 --os macos --arch x64`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(cmd.ErrOrStderr())
			impl, closeFn, err := openTool(opts, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			artifact, err := impl.DownloadPrebuilt(cmd.Context(), opts.triple(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, artifact)
			}
			fmt.Fprintf(out, "url:      %s\n", artifact.DownloadURL)
			fmt.Fprintf(out, "checksum: %s:%s\n", artifact.Checksum.Algorithm, artifact.Checksum.Hash)
			fmt.Fprintf(out, "prefix:   %s\n", artifact.ArchivePrefix)
			if artifact.PURL != "" {
				fmt.Fprintf(out, "purl:     %s\n", artifact.PURL)
			}
			return nil
		},
	}
}

func newReleaseNameCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "release-name <version>",
		Short: "Print the upstream release name for a version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := core.ParseVersion(args[0])
			if err != nil {
				return err
			}
			name := release.Name(v)

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, map[string]string{"version": v.String(), "release": name})
			}
			fmt.Fprintln(out, name)
			return nil
		},
	}
}

func newExecutablesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "executables",
		Short: "Show executable locations inside an installed JDK",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(cmd.ErrOrStderr())
			impl, closeFn, err := openTool(opts, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			set, err := impl.LocateExecutables(cmd.Context(), opts.triple())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				return writeJSON(out, set)
			}
			names := make([]string, 0, len(set.Exes))
			for name := range set.Exes {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				exe := set.Exes[name]
				marker := ""
				if exe.Primary {
					marker = "  (primary)"
				}
				fmt.Fprintf(out, "%-8s %s%s\n", name, exe.Path, marker)
			}
			return nil
		},
	}
}

func newInfoCmd(opts *options) *cobra.Command {
	var allowed []string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show plugin metadata and check the license against an allow list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger(cmd.ErrOrStderr())
			impl, closeFn, err := openTool(opts, logger)
			if err != nil {
				return err
			}
			defer closeFn()

			meta, err := impl.RegisterTool(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := tool.LicenseAllowed(meta.License, allowed)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOutput {
				if err := writeJSON(out, meta); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "name:    %s\n", meta.Name)
				fmt.Fprintf(out, "type:    %s\n", meta.Type)
				fmt.Fprintf(out, "license: %s\n", meta.License)
				if meta.PluginVersion != "" {
					fmt.Fprintf(out, "version: %s\n", meta.PluginVersion)
				}
				if meta.MinimumHostVersion != "" {
					fmt.Fprintf(out, "host:    >= %s\n", meta.MinimumHostVersion)
				}
			}
			if !ok {
				return fmt.Errorf("license %s is not allowed by %v", meta.License, allowed)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&allowed, "allow", nil, "SPDX license identifiers to accept")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
