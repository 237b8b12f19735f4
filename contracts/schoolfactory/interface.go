package schoolfactory

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const (
	EventSchoolSystemDeployed           = "SchoolSystemDeployed"
	MethodCreateSchoolSystem            = "createSchoolSystem"
	MethodGetDeployedSchoolSystemsCount = "getDeployedSchoolSystemsCount"
	MethodGetSchoolsByOwner             = "getSchoolsByOwner"
)

var ErrUnknownEntry = errors.New("unknown interface entry")

// entries must stay in the order of the compiled artifact, see
// schoolfactory.abi.json.
var entries = []Entry{
	{
		Type: EntryEvent,
		Name: EventSchoolSystemDeployed,
		Inputs: []Param{
			{Name: "schoolSystem", Type: "address", InternalType: "address", Indexed: true},
			{Name: "owner", Type: "address", InternalType: "address", Indexed: true},
		},
		Anonymous: false,
	},
	{
		Type: EntryFunction,
		Name: MethodCreateSchoolSystem,
		Inputs: []Param{
			{Name: "name", Type: "string", InternalType: "string"},
			{Name: "symbol", Type: "string", InternalType: "string"},
		},
		Outputs:         []Param{},
		StateMutability: MutabilityNonpayable,
	},
	{
		Type:   EntryFunction,
		Name:   MethodGetDeployedSchoolSystemsCount,
		Inputs: []Param{},
		Outputs: []Param{
			{Name: "", Type: "uint256", InternalType: "uint256"},
		},
		StateMutability: MutabilityView,
	},
	{
		Type: EntryFunction,
		Name: MethodGetSchoolsByOwner,
		Inputs: []Param{
			{Name: "owner", Type: "address", InternalType: "address"},
		},
		Outputs: []Param{
			{Name: "", Type: "address[]", InternalType: "address[]"},
		},
		StateMutability: MutabilityView,
	},
}

// Interface returns the ordered interface entries. The result is a fresh
// copy on every call.
func Interface() []Entry {
	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.clone())
	}
	return result
}

// Functions returns the function entries in declaration order.
func Functions() []Entry {
	result := []Entry{}
	for _, e := range entries {
		if e.IsFunction() {
			result = append(result, e.clone())
		}
	}
	return result
}

// Events returns the event entries in declaration order.
func Events() []Entry {
	result := []Entry{}
	for _, e := range entries {
		if e.IsEvent() {
			result = append(result, e.clone())
		}
	}
	return result
}

// Lookup finds an entry by its exact name.
func Lookup(name string) (Entry, error) {
	for _, e := range entries {
		if e.Name == name {
			return e.clone(), nil
		}
	}
	return Entry{}, fmt.Errorf("%q: %w", name, ErrUnknownEntry)
}

func paramsFromArguments(args abi.Arguments, withIndexed bool) []Param {
	result := []Param{}
	for _, arg := range args {
		p := Param{
			Name:         arg.Name,
			Type:         arg.Type.String(),
			InternalType: arg.Type.String(),
		}
		if withIndexed {
			p.Indexed = arg.Indexed
		}
		result = append(result, p)
	}
	return result
}

func methodMutability(m abi.Method) Mutability {
	if m.StateMutability != "" {
		return Mutability(m.StateMutability)
	}
	// pre 0.4.16 artifacts only carry constant/payable flags
	switch {
	case m.Constant:
		return MutabilityView
	case m.Payable:
		return MutabilityPayable
	}
	return MutabilityNonpayable
}

// EntriesFromABI converts a parsed go-ethereum ABI into descriptor entries.
// The parsed form keeps no declaration order, so events come first and each
// group is sorted by name. Solidity internal types are not retained by the
// parser; InternalType is filled with the canonical type.
func EntriesFromABI(a *abi.ABI) []Entry {
	events := []Entry{}
	for _, ev := range a.Events {
		events = append(events, Entry{
			Type:      EntryEvent,
			Name:      ev.RawName,
			Inputs:    paramsFromArguments(ev.Inputs, true),
			Anonymous: ev.Anonymous,
		})
	}
	functions := []Entry{}
	for _, m := range a.Methods {
		functions = append(functions, Entry{
			Type:            EntryFunction,
			Name:            m.RawName,
			Inputs:          paramsFromArguments(m.Inputs, false),
			Outputs:         paramsFromArguments(m.Outputs, false),
			StateMutability: methodMutability(m),
		})
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Signature() < events[j].Signature() })
	sort.Slice(functions, func(i, j int) bool { return functions[i].Signature() < functions[j].Signature() })
	return append(events, functions...)
}
