// Package openrouter implements the HTTP transport layer for the
// motivational-message service against an OpenRouter-style (OpenAI
// compatible) chat-completions endpoint. It owns the per-attempt timeout,
// the retry-with-backoff loop and the per-status retry policy: rate limits
// fail fast so the caller can fail over to another model, server errors and
// network failures are retried with exponential backoff, and other client
// errors are terminal immediately.
package openrouter
