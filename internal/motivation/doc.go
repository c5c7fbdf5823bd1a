// Package motivation generates short motivational messages from a user's
// monthly activity statistics by calling an external language model through
// the openrouter transport. It validates the input statistics before any
// network call, serves repeat requests from a per-user per-month TTL cache,
// escalates rate-limited or retry-exhausted requests to a fallback model,
// and defensively parses the semi-structured model response (tolerating
// markdown-fenced JSON and inferring a tone when the model omits one).
package motivation
