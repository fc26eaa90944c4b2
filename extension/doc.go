// Package extension provides the run-time registry of action services and
// the Go types of their inputs and outputs. Callers that only hold a service
// name, a method name and a generic argument map (a CLI, a tool server) use
// Actions.Dispatch to build the typed input and invoke the method.
package extension
