// Package logging configures slog output for subweave.
//
// It provides a pretty console handler for interactive use, a JSON handler
// for log shipping, attr helper aliases so call sites avoid importing slog
// directly, and context helpers that stamp run/stage identifiers onto every
// record emitted inside a pipeline stage.
package logging
