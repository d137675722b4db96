package logging

import (
	"log/slog"
)

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("aggregation")
//	log.Debug("grouping complete", "groups", n)
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithOp creates a logger tagged with the running operation.
//
// Example:
//
//	log := logging.WithOp("aggregation", "GroupBy")
//	log.Debug("group created", "key", key)
func WithOp(component, op string) *slog.Logger {
	return GetLogger().With("component", component, "op", op)
}

// WithQuery creates a logger with the query name, for report runs.
func WithQuery(name string) *slog.Logger {
	return GetLogger().With("query", name)
}

// WithError creates a logger with error context.
//
// Example:
//
//	logging.WithError(err).Error("query failed", "key", cfg.Key)
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}
