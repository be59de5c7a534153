// Package mcp probes configured MCP servers. The CLI stores server
// definitions in the config file; this package answers whether a
// definition actually starts and speaks the protocol.
package mcp

import (
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vibe-cli/vibe/internal/config"
	"github.com/vibe-cli/vibe/internal/logging"
)

// CheckTimeout bounds one server probe, spawn through handshake.
const CheckTimeout = 5 * time.Second

// CheckResult is the outcome of probing one configured server.
type CheckResult struct {
	Name          string   `json:"name"`
	OK            bool     `json:"ok"`
	ServerName    string   `json:"serverName,omitempty"`
	ServerVersion string   `json:"serverVersion,omitempty"`
	Tools         []string `json:"tools,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// Checker performs initialize handshakes against configured servers
// using the official MCP SDK.
type Checker struct {
	client  *sdkmcp.Client
	timeout time.Duration
}

// Option configures a Checker.
type Option func(*Checker)

// WithTimeout overrides the per-probe timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.timeout = d }
}

// NewChecker creates a checker identifying itself with the given
// version.
func NewChecker(version string, opts ...Option) *Checker {
	c := &Checker{
		client: sdkmcp.NewClient(&sdkmcp.Implementation{
			Name:    "vibe",
			Version: version,
		}, nil),
		timeout: CheckTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check spawns the configured server over stdio, performs the
// handshake, lists its tools, and shuts it down.
func (c *Checker) Check(ctx context.Context, name string, server config.MCPServer) CheckResult {
	if strings.TrimSpace(server.Command) == "" {
		return CheckResult{Name: name, Error: "no command configured"}
	}

	cmd := exec.Command(server.Command, server.Args...)
	cmd.Env = os.Environ()
	for k, v := range server.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	return c.CheckTransport(ctx, name, &sdkmcp.CommandTransport{Command: cmd})
}

// CheckTransport performs the handshake over an explicit transport.
func (c *Checker) CheckTransport(ctx context.Context, name string, transport sdkmcp.Transport) CheckResult {
	result := CheckResult{Name: name}

	probeCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logging.Debug().Str("server", name).Msg("probing mcp server")

	session, err := c.client.Connect(probeCtx, transport, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer session.Close()

	if init := session.InitializeResult(); init != nil && init.ServerInfo != nil {
		result.ServerName = init.ServerInfo.Name
		result.ServerVersion = init.ServerInfo.Version
	}

	tools, err := session.ListTools(probeCtx, nil)
	if err != nil {
		result.Error = "handshake succeeded but listing tools failed: " + err.Error()
		return result
	}
	for _, tool := range tools.Tools {
		result.Tools = append(result.Tools, tool.Name)
	}

	result.OK = true
	return result
}

// CheckAll probes every configured server, results sorted by name.
func (c *Checker) CheckAll(ctx context.Context, servers map[string]config.MCPServer) []CheckResult {
	names := make([]string, 0, len(servers))
	for name := range servers {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]CheckResult, 0, len(names))
	for _, name := range names {
		results = append(results, c.Check(ctx, name, servers[name]))
	}
	return results
}
