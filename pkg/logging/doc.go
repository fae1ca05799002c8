// Package logging provides structured logging for linkedinctl, built on the
// standard slog package.
//
// All log entries carry a subsystem attribute for categorization (for example
// "OAuthFlow", "Settings", "LinkedIn") and are written to the configured
// writer, normally stderr. Operator-facing KEY=value output is printed by the
// commands directly and never routed through the logger.
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//	logging.Info("OAuthFlow", "waiting for callback on port %d", port)
//	logging.Error("LinkedIn", err, "post creation failed")
package logging
