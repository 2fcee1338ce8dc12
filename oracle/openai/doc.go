// Package openai implements oracle.Oracle against any OpenAI-compatible
// chat completion API (OpenAI, Ollama, LocalAI, vLLM).
//
// Judgments run at temperature 0 in JSON mode, with a bounded retry loop
// that strips markdown fences and repairs the most common structural JSON
// defects before giving up. Every call is capped by the configured timeout
// because judgment sits on the synchronous match path.
package openai
