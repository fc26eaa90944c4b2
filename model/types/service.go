package types

// Service is an action service exposing named methods to a dispatch layer
type Service interface {
	Name() string
	Methods() Signatures
	Method(name string) (Executable, error)
}
