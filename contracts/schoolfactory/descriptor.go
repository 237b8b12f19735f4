package schoolfactory

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

type EntryType string

const (
	EntryFunction EntryType = "function"
	EntryEvent    EntryType = "event"
)

type Mutability string

const (
	MutabilityPure       Mutability = "pure"
	MutabilityView       Mutability = "view"
	MutabilityNonpayable Mutability = "nonpayable"
	MutabilityPayable    Mutability = "payable"
)

// IsReadOnly reports whether a call with this mutability can be served by
// eth_call without a transaction.
func (m Mutability) IsReadOnly() bool {
	return m == MutabilityView || m == MutabilityPure
}

// Param is one typed input or output. Indexed is only meaningful for event
// inputs.
type Param struct {
	Name         string
	Type         string
	InternalType string
	Indexed      bool
}

// Entry is one item of the contract interface. Events leave Outputs and
// StateMutability empty, functions leave Anonymous false.
type Entry struct {
	Type            EntryType
	Name            string
	Inputs          []Param
	Outputs         []Param
	StateMutability Mutability
	Anonymous       bool
}

func (e Entry) IsEvent() bool {
	return e.Type == EntryEvent
}

func (e Entry) IsFunction() bool {
	return e.Type == EntryFunction
}

func (e Entry) IsReadOnly() bool {
	return e.IsFunction() && e.StateMutability.IsReadOnly()
}

// Signature returns the canonical form used for selector and topic hashing,
// e.g. "getSchoolsByOwner(address)".
func (e Entry) Signature() string {
	types := make([]string, len(e.Inputs))
	for i, p := range e.Inputs {
		types[i] = p.Type
	}
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(types, ","))
}

// Selector returns the 4 byte function selector. It is nil for events.
func (e Entry) Selector() []byte {
	if !e.IsFunction() {
		return nil
	}
	return crypto.Keccak256([]byte(e.Signature()))[:4]
}

// Topic returns the first log topic emitted for a non anonymous event. It is
// the zero hash for functions and anonymous events.
func (e Entry) Topic() common.Hash {
	if !e.IsEvent() || e.Anonymous {
		return common.Hash{}
	}
	return crypto.Keccak256Hash([]byte(e.Signature()))
}

func (e Entry) OutputTypes() []string {
	result := make([]string, len(e.Outputs))
	for i, p := range e.Outputs {
		result[i] = p.Type
	}
	return result
}

func cloneParams(ps []Param) []Param {
	if ps == nil {
		return nil
	}
	return append([]Param{}, ps...)
}

func (e Entry) clone() Entry {
	c := e
	c.Inputs = cloneParams(e.Inputs)
	c.Outputs = cloneParams(e.Outputs)
	return c
}

// the json shapes below follow the field order solc emits so that a
// marshalled descriptor compacts to the same bytes as the compiler artifact.

type jsonEventParam struct {
	Indexed      bool   `json:"indexed"`
	InternalType string `json:"internalType"`
	Name         string `json:"name"`
	Type         string `json:"type"`
}

type jsonFunctionParam struct {
	InternalType string `json:"internalType"`
	Name         string `json:"name"`
	Type         string `json:"type"`
}

type jsonEvent struct {
	Anonymous bool             `json:"anonymous"`
	Inputs    []jsonEventParam `json:"inputs"`
	Name      string           `json:"name"`
	Type      EntryType        `json:"type"`
}

type jsonFunction struct {
	Inputs          []jsonFunctionParam `json:"inputs"`
	Name            string              `json:"name"`
	Outputs         []jsonFunctionParam `json:"outputs"`
	StateMutability Mutability          `json:"stateMutability"`
	Type            EntryType           `json:"type"`
}

func functionParams(ps []Param) []jsonFunctionParam {
	result := []jsonFunctionParam{}
	for _, p := range ps {
		result = append(result, jsonFunctionParam{
			InternalType: p.InternalType,
			Name:         p.Name,
			Type:         p.Type,
		})
	}
	return result
}

func (e Entry) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EntryEvent:
		inputs := []jsonEventParam{}
		for _, p := range e.Inputs {
			inputs = append(inputs, jsonEventParam{
				Indexed:      p.Indexed,
				InternalType: p.InternalType,
				Name:         p.Name,
				Type:         p.Type,
			})
		}
		return json.Marshal(jsonEvent{
			Anonymous: e.Anonymous,
			Inputs:    inputs,
			Name:      e.Name,
			Type:      e.Type,
		})
	case EntryFunction:
		return json.Marshal(jsonFunction{
			Inputs:          functionParams(e.Inputs),
			Name:            e.Name,
			Outputs:         functionParams(e.Outputs),
			StateMutability: e.StateMutability,
			Type:            e.Type,
		})
	}
	return nil, fmt.Errorf("entry %q has unsupported type %q", e.Name, e.Type)
}
