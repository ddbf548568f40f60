package cli

import (
	"fmt"
	"os/exec"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/git-pkgs/adoptium/client"
	"github.com/git-pkgs/adoptium/internal/protocol"
	"github.com/git-pkgs/adoptium/internal/release"
	"github.com/git-pkgs/adoptium/internal/tool"
	"github.com/git-pkgs/adoptium/internal/version"
)

// openTool returns the plugin contract implementation selected by the
// flags and a function that releases it.
func openTool(o *options, logger hclog.Logger) (protocol.Tool, func(), error) {
	if o.pluginPath != "" {
		return openPlugin(o.pluginPath, logger)
	}

	httpClient := client.NewClient(
		client.WithTimeout(o.timeout),
		client.WithMaxRetries(o.retries),
		client.WithLogger(logger.Named("http")),
	)
	resolver := release.New(o.apiURL, httpClient, release.WithLogger(logger.Named("release")))
	impl := tool.New(resolver, tool.WithLogger(logger), tool.WithPluginVersion(version.Version))
	return protocol.Local(impl), func() {}, nil
}

// openPlugin launches a plugin binary and dispenses its tool.
func openPlugin(path string, logger hclog.Logger) (protocol.Tool, func(), error) {
	pc := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: protocol.Handshake,
		Plugins: map[string]plugin.Plugin{
			protocol.PluginName: &protocol.ToolPlugin{},
		},
		Cmd:              exec.Command(path),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           logger.Named("plugin"),
	})

	rpcClient, err := pc.Client()
	if err != nil {
		pc.Kill()
		return nil, nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(protocol.PluginName)
	if err != nil {
		pc.Kill()
		return nil, nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	impl, ok := raw.(protocol.Tool)
	if !ok {
		pc.Kill()
		return nil, nil, fmt.Errorf("plugin returned unexpected type %T", raw)
	}
	return impl, pc.Kill, nil
}
