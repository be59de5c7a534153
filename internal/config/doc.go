// Package config provides the persisted JSON configuration for vibe.
//
// The configuration lives in a single file under the user config
// directory (vibe.json) and holds the CLI version that created it, a
// creation timestamp, a snapshot of the host system, the package
// manager versions detected at generation time, registered MCP
// servers, and the telemetry switch.
//
// # Self-healing
//
// The file is never required to exist or to parse. Load materializes a
// default config when the file is missing and silently replaces it
// when it is corrupt; a broken config can degrade behavior but must
// not take the tool down. The only fatal condition is being unable to
// write the replacement.
//
// # Formats
//
// Files are read through tidwall/jsonc, so comments and trailing
// commas are tolerated on input. Writes always produce plain
// two-space-indented JSON.
//
// # Dotted paths
//
// Get, Set, and Delete address values by dotted path, for example:
//
//	vibe config set mcpServers.github.command npx
//	vibe config get system.os
//
// Set creates intermediate objects as needed and rewrites the whole
// file; Get never creates anything and reports missing paths as
// ErrKeyNotFound. Set values that parse as JSON literals (true, 42,
// ["a","b"]) are stored typed, anything else is stored as a string.
//
// # Variable interpolation
//
// String values may reference environment variables with {env:VAR}
// placeholders. Expansion happens on load only, so secrets referenced
// by MCP server entries never land on disk:
//
//	{
//	  "mcpServers": {
//	    "github": {
//	      "command": "npx",
//	      "args": ["-y", "@modelcontextprotocol/server-github"],
//	      "env": {"GITHUB_TOKEN": "{env:GITHUB_TOKEN}"}
//	    }
//	  }
//	}
//
// # Path management
//
// The Paths type resolves XDG Base Directory locations:
//   - Data: ~/.local/share/vibe (XDG_DATA_HOME)
//   - Config: ~/.config/vibe (XDG_CONFIG_HOME)
//   - Cache: ~/.cache/vibe (XDG_CACHE_HOME)
//   - State: ~/.local/state/vibe (XDG_STATE_HOME)
//
// On Windows these fall back to APPDATA.
package config
