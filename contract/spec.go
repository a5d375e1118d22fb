// Package contract supplies the runtime shape a code generator targets:
// a declarative ContractSpec/MethodSpec pair (standing in for the
// "trait-like interface declaration"), an Endpoint that wraps a user
// implementation behind a dispatch table, and a Client that calls
// through a transport.
//
// Producing Go source from a ContractSpec is out of scope (mirroring
// the original's explicit non-goal on code-generation mechanics); this
// package only builds and runs the table these generators would emit.
package contract

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gipsh/ethabi-dispatch/abi"
)

// MethodSpec declares one contract method: its name, ordered parameter
// types, and optional result type. A MethodSpec with Ctor set to true
// is the fallback/constructor entry (§4.7) and is excluded from the
// dispatch table's selector-indexed entries.
type MethodSpec struct {
	Name   string
	Params []abi.ParamType
	Result *abi.ParamType
	Ctor   bool
}

// Signature converts this MethodSpec into an abi.Signature.
func (m MethodSpec) Signature() abi.Signature {
	if m.Result == nil {
		return abi.NewSignature(m.Params)
	}
	return abi.NewSignatureWithResult(m.Params, *m.Result)
}

// NamedSignature converts this MethodSpec into an abi.NamedSignature
// for selector derivation, valid only for non-ctor methods.
func (m MethodSpec) NamedSignature() abi.NamedSignature {
	return abi.NamedSignature{Name: m.Name, Signature: m.Signature()}
}

// ContractSpec is an ordered set of method declarations plus an
// optional constructor, exactly the input a code generator consumes
// per §4.7.
type ContractSpec struct {
	Name    string
	Methods []MethodSpec
}

// Ctor returns the declared constructor MethodSpec and true, or the
// zero value and false if none was declared.
func (c ContractSpec) Ctor() (MethodSpec, bool) {
	for _, m := range c.Methods {
		if m.Ctor {
			return m, true
		}
	}
	return MethodSpec{}, false
}

// NonCtorMethods returns every declared method except the constructor,
// in declaration order — the set that becomes dispatch table entries.
func (c ContractSpec) NonCtorMethods() []MethodSpec {
	out := make([]MethodSpec, 0, len(c.Methods))
	for _, m := range c.Methods {
		if !m.Ctor {
			out = append(out, m)
		}
	}
	return out
}

// yamlSpec/yamlMethod are the on-disk declarative form LoadContractSpec
// parses: a human-editable stand-in for a trait-like interface
// declaration a compile-time macro or build-time generator would
// otherwise walk.
//
// Example:
//
//	name: TokenContract
//	methods:
//	  - name: ctor
//	    ctor: true
//	    params: [uint256]
//	  - name: balanceOf
//	    params: [address]
//	    result: uint256
//	  - name: transfer
//	    params: [address, uint256]
//	    result: bool
type yamlSpec struct {
	Name    string        `yaml:"name"`
	Methods []yamlMethod  `yaml:"methods"`
}

type yamlMethod struct {
	Name   string   `yaml:"name"`
	Ctor   bool     `yaml:"ctor"`
	Params []string `yaml:"params"`
	Result string   `yaml:"result"`
}

// LoadContractSpec parses a YAML contract declaration into a
// ContractSpec, resolving each type string via the §4.5/§6 grammar.
func LoadContractSpec(data []byte) (ContractSpec, error) {
	var doc yamlSpec
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return ContractSpec{}, fmt.Errorf("contract: parse yaml: %w", err)
	}

	spec := ContractSpec{Name: doc.Name}
	for _, m := range doc.Methods {
		params := make([]abi.ParamType, 0, len(m.Params))
		for _, p := range m.Params {
			pt, err := parseTypeString(p)
			if err != nil {
				return ContractSpec{}, fmt.Errorf("contract: method %q: %w", m.Name, err)
			}
			params = append(params, pt)
		}

		method := MethodSpec{Name: m.Name, Params: params, Ctor: m.Ctor}
		if m.Result != "" {
			rt, err := parseTypeString(m.Result)
			if err != nil {
				return ContractSpec{}, fmt.Errorf("contract: method %q result: %w", m.Name, err)
			}
			method.Result = &rt
		}
		spec.Methods = append(spec.Methods, method)
	}
	return spec, nil
}

// parseTypeString resolves one grammar type token (§6: "identifier" for
// scalars, "T[]" for arrays) into a ParamType. It mirrors the role the
// original derive macro's ty_to_param_type match arms play for Rust
// type paths, just driven off a string grammar instead of a syntax
// tree.
func parseTypeString(s string) (abi.ParamType, error) {
	if strings.HasSuffix(s, "[]") {
		inner, err := parseTypeString(strings.TrimSuffix(s, "[]"))
		if err != nil {
			return abi.ParamType{}, err
		}
		return abi.Array(inner), nil
	}

	switch s {
	case "uint32":
		return abi.U32(), nil
	case "int32":
		return abi.I32(), nil
	case "uint64":
		return abi.U64(), nil
	case "int64":
		return abi.I64(), nil
	case "uint256":
		return abi.U256(), nil
	case "h256":
		return abi.H256(), nil
	case "address":
		return abi.Address(), nil
	case "bool":
		return abi.Bool(), nil
	case "bytes":
		return abi.Bytes(), nil
	case "string":
		return abi.String(), nil
	default:
		return abi.ParamType{}, fmt.Errorf("contract: unrecognized type %q", s)
	}
}
