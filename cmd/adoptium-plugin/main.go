// adoptium-plugin serves the Eclipse Temurin JDK tool to a version manager
// host over the go-plugin RPC protocol.
//
// Run with --plugin-info to print the tool metadata as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/git-pkgs/adoptium/client"
	"github.com/git-pkgs/adoptium/internal/protocol"
	"github.com/git-pkgs/adoptium/internal/release"
	"github.com/git-pkgs/adoptium/internal/tool"
	"github.com/git-pkgs/adoptium/internal/version"
)

func main() {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "adoptium",
		Output:     os.Stderr,
		Level:      hclog.LevelFromString(os.Getenv("ADOPTIUM_LOG_LEVEL")),
		JSONFormat: true,
	})

	opts := append(client.FromEnv(), client.WithLogger(logger.Named("http")), client.WithCircuitBreaker(5))
	httpClient := client.NewClient(opts...)

	resolver := release.New(client.BaseURLFromEnv(), httpClient, release.WithLogger(logger.Named("release")))
	impl := tool.New(resolver, tool.WithLogger(logger), tool.WithPluginVersion(version.Version))

	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(impl.RegisterTool()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: protocol.Handshake,
		Plugins:         protocol.PluginMap(impl),
		Logger:          logger,
	})
}
