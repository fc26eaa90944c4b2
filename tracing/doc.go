// Package tracing wraps OpenTelemetry so that session operations can emit
// spans without importing the upstream packages directly. Until Init is
// called spans are no-ops.
package tracing
