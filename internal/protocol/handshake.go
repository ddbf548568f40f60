// Package protocol exposes the plugin contract over HashiCorp go-plugin.
package protocol

import (
	"github.com/hashicorp/go-plugin"
)

// ProtocolVersion must match between host and plugin.
const ProtocolVersion = 1

// PluginName is the key the tool is dispensed under.
const PluginName = "tool"

// Handshake is the go-plugin handshake for the Adoptium JDK plugin.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  ProtocolVersion,
	MagicCookieKey:   "ADOPTIUM_PLUGIN",
	MagicCookieValue: "temurin_jdk",
}

// PluginMap returns the plugin set served by the guest binary.
func PluginMap(impl Provider) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginName: &ToolPlugin{Impl: impl},
	}
}
