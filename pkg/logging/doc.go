// Package logging provides structured logging for mcpapp on top of log/slog.
//
// Every entry carries a subsystem attribute so output from the server, the
// definition loaders and the lineage exporter can be told apart:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Lineage", "Saved %d tools to %s", n, path)
//	logging.Debug("Catalog", "Loaded definition %s from %s", name, file)
//	logging.Error("MCPServer", err, "Streamable HTTP server error")
//
// When the server runs on the stdio transport, stdout is the protocol channel,
// so callers must initialize logging with os.Stderr (or io.Discard).
//
// Init selects between the text and JSON slog handlers. Logging before Init is
// a no-op.
package logging
