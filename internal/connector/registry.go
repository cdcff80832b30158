package connector

import "github.com/willibrandon/dbjump/internal/config"

// For returns the connector for engine. The engine set is closed and
// validated while loading, so every engine has a connector.
func For(engine config.Engine) Connector {
	switch engine {
	case config.EngineClickHouse:
		return ClickHouse{}
	case config.EnginePostgreSQL:
		return PostgreSQL{}
	case config.EngineMySQL:
		return MySQL{}
	case config.EngineMongoDB:
		return MongoDB{}
	default:
		panic("connector: unknown engine " + string(engine))
	}
}

// CheckTool reports ToolNotFound when the binary p would run is not on PATH.
// It lets callers fail before resolving secrets or prompting.
func CheckTool(p *config.Profile) error {
	_, _, err := resolveTool(p, For(p.Engine).ToolName())
	return err
}
