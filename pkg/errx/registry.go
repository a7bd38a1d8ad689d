package errx

import (
	"fmt"
	"sync"
)

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry holds the error codes of one domain, prefixed with its name
type Registry struct {
	prefix string

	mu    sync.RWMutex
	codes map[string]definition
}

// NewRegistry creates a registry whose codes are rendered as PREFIX.CODE
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]definition),
	}
}

// Register defines a code and returns its fully qualified name
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) string {
	full := fmt.Sprintf("%s.%s", r.prefix, code)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codes[full]; exists {
		panic(fmt.Sprintf("errx: duplicate error code %s", full))
	}
	r.codes[full] = definition{errType: errType, httpStatus: httpStatus, message: message}
	return full
}

// New builds a fresh error for a registered code
func (r *Registry) New(code string) *Error {
	r.mu.RLock()
	def, ok := r.codes[code]
	r.mu.RUnlock()

	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			HTTPStatus: TypeInternal.DefaultHTTPStatus(),
			Message:    "Unknown error",
		}
	}

	return &Error{
		Code:       code,
		Type:       def.errType,
		HTTPStatus: def.httpStatus,
		Message:    def.message,
	}
}

// NewWithCause builds an error for a registered code and records cause
func (r *Registry) NewWithCause(code string, cause error) *Error {
	return r.New(code).WithCause(cause)
}
