package abi

import "encoding/binary"

// HandlerFunc is invoked by Table.Dispatch once a call has been decoded
// against its signature's parameters. It returns the optional reply
// value, or nil if the signature declares no result.
type HandlerFunc func(selector uint32, args []ValueType) (*ValueType, error)

// FallbackFunc is invoked by Table.FallbackDispatch with the decoded
// constructor/fallback arguments. It returns no value — constructors
// cannot reply (§4.6).
type FallbackFunc func(args []ValueType) error

// TransportFunc is the host collaborator boundary for Table.Call: it
// receives the encoded outbound payload and returns the optional
// single-word reply, or an error if the call could not be delivered.
type TransportFunc func(payload []byte) (*[32]byte, error)

// Table is a selector-indexed dispatch table: an ordered list of
// HashSignature entries plus an optional fallback Signature used for
// constructor/anonymous-entry dispatch. Tables are typically built once
// at startup via Push and are not safe for concurrent Push/Dispatch use
// (§5) — callers that mutate a live table are responsible for their own
// synchronization.
type Table struct {
	entries  []HashSignature
	fallback *Signature
}

// NewTable builds an empty table with no fallback.
func NewTable() *Table {
	return &Table{}
}

// NewTableWithFallback builds an empty table whose fallback signature
// is used for constructor/anonymous dispatch.
func NewTableWithFallback(fallback Signature) *Table {
	return &Table{fallback: &fallback}
}

// Push inserts a HashSignature (or a NamedSignature converted via its
// HashSignature method) into the table. Duplicate selectors are
// rejected at construction time — the original source left this as
// first-match-wins; DESIGN.md resolves the Open Question in favor of
// rejecting collisions early.
func (t *Table) Push(entry HashSignature) error {
	for _, e := range t.entries {
		if e.Selector == entry.Selector {
			return ErrDuplicateSelector
		}
	}
	t.entries = append(t.entries, entry)
	return nil
}

// PushNamed is a convenience wrapper computing the selector via keccak
// before pushing.
func (t *Table) PushNamed(named NamedSignature) error {
	return t.Push(named.HashSignature())
}

// Lookup returns the HashSignature registered for selector.
func (t *Table) Lookup(selector uint32) (HashSignature, error) {
	for _, e := range t.entries {
		if e.Selector == selector {
			return e, nil
		}
	}
	return HashSignature{}, ErrUnknownSignature
}

// Dispatch routes an inbound call payload: it requires at least 4
// bytes, reads the big-endian selector, looks up the matching
// signature, decodes the remaining bytes against its parameters,
// invokes handler, and encodes the returned value.
func (t *Table) Dispatch(payload []byte, handler HandlerFunc) ([]byte, error) {
	if len(payload) < 4 {
		return nil, ErrNoLengthForSignature
	}
	selector := binary.BigEndian.Uint32(payload[0:4])

	entry, err := t.Lookup(selector)
	if err != nil {
		return nil, err
	}

	args, err := entry.Signature.DecodeInvoke(payload[4:])
	if err != nil {
		return nil, err
	}

	result, err := handler(selector, args)
	if err != nil {
		return nil, err
	}

	return entry.Signature.EncodeResult(result)
}

// FallbackDispatch decodes the entire payload (no selector prefix)
// against the registered fallback signature's parameters and invokes
// fn. It fails with ErrNoFallback if no fallback was registered.
func (t *Table) FallbackDispatch(payload []byte, fn FallbackFunc) error {
	if t.fallback == nil {
		return ErrNoFallback
	}
	args, err := t.fallback.DecodeInvoke(payload)
	if err != nil {
		return err
	}
	return fn(args)
}

// Call builds selector_be32 || encode_invoke(values), hands it to
// transport, and decodes the reply (or returns nil if transport
// returned none).
func (t *Table) Call(selector uint32, values []ValueType, transport TransportFunc) (*ValueType, error) {
	entry, err := t.Lookup(selector)
	if err != nil {
		return nil, err
	}

	argsPayload, err := entry.Signature.EncodeInvoke(values)
	if err != nil {
		return nil, err
	}

	payload := make([]byte, 4, 4+len(argsPayload))
	binary.BigEndian.PutUint32(payload, selector)
	payload = append(payload, argsPayload...)

	reply, err := transport(payload)
	if err != nil {
		return nil, err
	}
	if reply == nil {
		return nil, nil
	}
	return entry.Signature.DecodeResult(reply[:])
}
