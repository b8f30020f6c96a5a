package constants

type ContextKey string

const (
	PoolKey        ContextKey = "pool"
	TxKey          ContextKey = "tx"
	WorkspaceIDKey ContextKey = "workspace_id"
	LoggerKey      ContextKey = "logger"
)
