// Package logging provides the process-wide structured logger.
//
// The package wraps [log/slog] and exposes a single global logger instance
// that is initialized once and then retrieved via GetLogger. Packages obtain
// their logger here rather than constructing slog.Logger values, so level and
// destination are controlled from one place.
//
// # Initialisation
//
// Call Init once at program startup:
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug, Format: "json"}); err != nil {
//	    log.Fatal(err)
//	}
//
// If GetLogger is called before Init, an INFO text logger on stderr is
// created lazily (via sync.Once).
//
// # Context helpers
//
//	log := logging.WithComponent("aggregation") // adds component field
//	log := logging.WithOp("aggregation", "GroupBy") // adds component and op
//	log := logging.WithError(err)               // adds error field
package logging
