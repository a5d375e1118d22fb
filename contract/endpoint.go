package contract

import (
	"fmt"

	"github.com/gipsh/ethabi-dispatch/abi"
)

// MethodHandler implements one non-ctor method body: decoded argument
// values in, optional result value out.
type MethodHandler func(args []abi.ValueType) (*abi.ValueType, error)

// CtorHandler implements the constructor body.
type CtorHandler func(args []abi.ValueType) error

// Implementation is the user-supplied contract body an Endpoint wraps:
// one MethodHandler per declared non-ctor method name, plus an optional
// CtorHandler.
type Implementation struct {
	Methods map[string]MethodHandler
	Ctor    CtorHandler
}

// Endpoint wraps an Implementation behind a selector-indexed dispatch
// table built from a ContractSpec, exactly the shape §4.7 describes:
// new/dispatch/dispatch_ctor/instance.
type Endpoint struct {
	spec     ContractSpec
	table    *abi.Table
	byName   map[uint32]string
	instance Implementation
}

// NewEndpoint builds the dispatch table from spec (every non-ctor
// method becomes a selector entry; a declared ctor becomes the table's
// fallback signature) and installs instance as the wrapped
// implementation.
func NewEndpoint(spec ContractSpec, instance Implementation) (*Endpoint, error) {
	var table *abi.Table
	if ctor, ok := spec.Ctor(); ok {
		table = abi.NewTableWithFallback(ctor.Signature())
	} else {
		table = abi.NewTable()
	}

	byName := make(map[uint32]string)
	for _, m := range spec.NonCtorMethods() {
		named := m.NamedSignature()
		if err := table.PushNamed(named); err != nil {
			return nil, fmt.Errorf("contract: endpoint: method %q: %w", m.Name, err)
		}
		byName[named.Selector()] = m.Name
	}

	return &Endpoint{spec: spec, table: table, byName: byName, instance: instance}, nil
}

// Dispatch routes an inbound call payload to the matching method
// handler and returns the encoded reply.
func (e *Endpoint) Dispatch(payload []byte) ([]byte, error) {
	return e.table.Dispatch(payload, func(selector uint32, args []abi.ValueType) (*abi.ValueType, error) {
		name, ok := e.byName[selector]
		if !ok {
			return nil, fmt.Errorf("contract: endpoint: no handler registered for selector %08x", selector)
		}
		handler, ok := e.instance.Methods[name]
		if !ok {
			return nil, fmt.Errorf("contract: endpoint: implementation missing method %q", name)
		}
		return handler(args)
	})
}

// DispatchCtor decodes payload against the declared constructor's
// parameters and invokes it. It returns an error rather than aborting
// the process on a missing ctor or decode failure (§7's "a clean
// rewrite should return an error and let the host choose").
func (e *Endpoint) DispatchCtor(payload []byte) error {
	if e.instance.Ctor == nil {
		return fmt.Errorf("contract: endpoint: %w", abi.ErrNoFallback)
	}
	return e.table.FallbackDispatch(payload, e.instance.Ctor)
}

// Instance returns the wrapped implementation.
func (e *Endpoint) Instance() Implementation {
	return e.instance
}
