// Package events provides a lightweight in-process event system used as the
// observability seam for the motivational-message generation service. The
// service publishes lifecycle events (cache hits, retry attempts, model
// fallbacks, parse fallbacks) through an EventEmitter without knowing who
// consumes them; handlers such as the slog-backed logging handler are
// registered at startup.
package events
