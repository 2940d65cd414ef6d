// Package llm provides clients for the classifier backend used for
// content-based file categorization. Providers share a small Client interface
// so the classification engine stays provider-agnostic; responses are free
// text expected to embed a JSON object, parsed leniently.
package llm
