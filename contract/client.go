package contract

import (
	"fmt"

	"github.com/gipsh/ethabi-dispatch/abi"
)

// Client calls a remote Endpoint's methods by name through a
// host-supplied transport. It is the Go shape of the generated Client
// object from §4.7: one logical method per declared contract method,
// expressed here as a single generic Call rather than named Go methods
// since source generation itself is out of scope.
type Client struct {
	spec      ContractSpec
	table     *abi.Table
	transport abi.TransportFunc
	value     *abi.ValueType
}

// NewClient builds a Client for spec's non-ctor methods, calling
// through transport (the host-provided "bytes in, optional 32-byte
// bytes out" boundary of §6).
func NewClient(spec ContractSpec, transport abi.TransportFunc) (*Client, error) {
	table := abi.NewTable()
	for _, m := range spec.NonCtorMethods() {
		if err := table.PushNamed(m.NamedSignature()); err != nil {
			return nil, fmt.Errorf("contract: client: method %q: %w", m.Name, err)
		}
	}
	return &Client{spec: spec, table: table, transport: transport}, nil
}

// WithValue returns a copy of the client carrying v as its call value,
// readable through Value — the Go analogue of the original's
// `.value(U256)` chained call option. The receiver is left unmodified.
// Call does not send the value: the payload handed to the transport is
// the selector and the encoded arguments only.
func (c *Client) WithValue(v abi.ValueType) *Client {
	cp := *c
	cp.value = &v
	return &cp
}

// Value returns the call value set via WithValue, if any.
func (c *Client) Value() (abi.ValueType, bool) {
	if c.value == nil {
		return abi.ValueType{}, false
	}
	return *c.value, true
}

// Call invokes the named method with args, encoding the call, sending
// it through the transport, and decoding the reply per the declared
// result type.
func (c *Client) Call(method string, args ...abi.ValueType) (*abi.ValueType, error) {
	named, err := c.namedSignature(method)
	if err != nil {
		return nil, err
	}
	return c.table.Call(named.Selector(), args, c.transport)
}

func (c *Client) namedSignature(method string) (abi.NamedSignature, error) {
	for _, m := range c.spec.NonCtorMethods() {
		if m.Name == method {
			return m.NamedSignature(), nil
		}
	}
	return abi.NamedSignature{}, fmt.Errorf("contract: client: unknown method %q", method)
}
