package errx

import (
	"fmt"
	"sync"
)

// Code identifies a registered error, e.g. "CANDIDATE.NOT_FOUND"
type Code string

type definition struct {
	typ     Type
	status  int
	message string
}

// Registry groups the error codes of one domain under a common prefix
type Registry struct {
	prefix string
	mu     sync.RWMutex
	defs   map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register declares a code. Registering the same name twice panics, codes are
// declared once at package init.
func (r *Registry) Register(name string, typ Type, status int, message string) Code {
	code := Code(fmt.Sprintf("%s.%s", r.prefix, name))

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[code]; exists {
		panic(fmt.Sprintf("errx: duplicate code %s", code))
	}
	r.defs[code] = definition{typ: typ, status: status, message: message}
	return code
}

// New instantiates a fresh error for code
func (r *Registry) New(code Code) *Error {
	r.mu.RLock()
	def, ok := r.defs[code]
	r.mu.RUnlock()
	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: statusForType(TypeInternal),
		}
	}
	return &Error{
		Code:       code,
		Type:       def.typ,
		Message:    def.message,
		HTTPStatus: def.status,
	}
}

// Prefix returns the registry prefix
func (r *Registry) Prefix() string { return r.prefix }
