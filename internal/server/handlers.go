package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"sapconnect/internal/logon"
	"sapconnect/internal/scripting"
)

// toYAML serializes a tool result payload.
func toYAML(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("marshal error: %v", err)
	}
	return string(b)
}

func (s *Server) handleConnect(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	system := stringParam(params, "system", s.cfg.System)
	if system == "" {
		return mcp.NewToolResultError("system is required"), nil
	}

	creds := logon.Credentials{
		Client:   stringParam(params, "client", s.cfg.Client),
		User:     stringParam(params, "user", s.cfg.User),
		Password: stringParam(params, "password", ""),
		Language: stringParam(params, "language", s.cfg.Language),
		Mode:     logon.AuthSSO,
	}
	if !boolParam(params, "sso", s.cfg.SSO) {
		creds.Mode = logon.AuthPassword
		// No interactive prompt over MCP; credentials must arrive as
		// parameters.
		if creds.User == "" || creds.Password == "" {
			return mcp.NewToolResultError("password logon over MCP requires both user and password parameters"), nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	launcher := logon.NewLauncher(s.log)
	launcher.Candidates = s.cfg.LogonCandidates
	launcher.Timeout = s.cfg.StartupTimeout

	timings := logon.DefaultTimings()
	timings.ReadyTimeout = s.cfg.ReadyTimeout

	connector := logon.NewConnector(launcher, s.log, logon.Options{
		Timings:         timings,
		TerminateOthers: boolParam(params, "terminate_others", s.cfg.TerminateOthers),
	})

	handle, err := connector.Connect(system, creds)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, err := handle.Info()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("connected but session info unreadable: %v", err)), nil
	}
	return mcp.NewToolResultText(toYAML(struct {
		OK         bool                  `yaml:"ok"`
		Connection int                   `yaml:"connection"`
		Session    int                   `yaml:"session"`
		Info       scripting.SessionInfo `yaml:"info"`
	}{true, handle.ConnectionIndex, handle.SessionIndex, info})), nil
}

func (s *Server) handleListSessions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	engine, err := scripting.Attach()
	if err != nil {
		return mcp.NewToolResultText("sessions: []\n"), nil
	}
	entries := logon.ListActiveSessions(engine)
	if entries == nil {
		entries = []logon.SessionEntry{}
	}
	return mcp.NewToolResultText(toYAML(struct {
		Sessions []logon.SessionEntry `yaml:"sessions"`
	}{entries})), nil
}

func (s *Server) handleClassifyScreen(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	connIndex := intParam(params, "connection", 0)
	sessIndex := intParam(params, "session", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	engine, err := scripting.Attach()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	handle, err := logon.AttachSession(engine, connIndex, sessIndex)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	state := logon.DetectScreen(handle.Session())
	return mcp.NewToolResultText(toYAML(struct {
		State string `yaml:"state"`
	}{state.String()})), nil
}

// stringParam extracts a string tool argument with a fallback.
func stringParam(params map[string]interface{}, key, fallback string) string {
	if v, ok := params[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// boolParam extracts a bool tool argument with a fallback.
func boolParam(params map[string]interface{}, key string, fallback bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return fallback
}

// intParam extracts a numeric tool argument with a fallback. JSON numbers
// decode as float64.
func intParam(params map[string]interface{}, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}
