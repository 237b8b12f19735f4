package factory

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/tranvictor/schoolfactory/contracts/schoolfactory"
	"github.com/tranvictor/schoolfactory/util/cache"
)

type MismatchKind string

const (
	// MissingOnChain is an entry the descriptor has and the verified ABI lacks.
	MissingOnChain MismatchKind = "missing_on_chain"
	// ExtraOnChain is an entry only the verified ABI has.
	ExtraOnChain MismatchKind = "extra_on_chain"
	ShapeDiffers MismatchKind = "shape_differs"
)

type Mismatch struct {
	Kind   MismatchKind `json:"kind"`
	Entry  string       `json:"entry"`
	Detail string       `json:"detail,omitempty"`
}

type DriftReport struct {
	Network              string     `json:"network"`
	Address              string     `json:"address"`
	HasCode              bool       `json:"has_code"`
	CodeSize             int        `json:"code_size"`
	ExplorerABIAvailable bool       `json:"explorer_abi_available"`
	ExplorerError        string     `json:"explorer_error,omitempty"`
	Mismatches           []Mismatch `json:"mismatches"`
}

// HasDrift is true when the address holds no code or the verified ABI
// disagrees with the descriptor. An unavailable explorer is not drift.
func (r *DriftReport) HasDrift() bool {
	return !r.HasCode || len(r.Mismatches) > 0
}

func entryKey(e schoolfactory.Entry) string {
	return fmt.Sprintf("%s %s", e.Type, e.Signature())
}

func joinTypes(types []string) string {
	return "(" + strings.Join(types, ",") + ")"
}

func indexedFlags(e schoolfactory.Entry) string {
	flags := []string{}
	for _, p := range e.Inputs {
		if p.Indexed {
			flags = append(flags, "indexed")
		} else {
			flags = append(flags, "-")
		}
	}
	return joinTypes(flags)
}

func compareEntry(expected, actual schoolfactory.Entry) []string {
	diffs := []string{}
	if expected.IsFunction() {
		if expected.StateMutability != actual.StateMutability {
			diffs = append(diffs, fmt.Sprintf("mutability %s vs %s", expected.StateMutability, actual.StateMutability))
		}
		if e, a := joinTypes(expected.OutputTypes()), joinTypes(actual.OutputTypes()); e != a {
			diffs = append(diffs, fmt.Sprintf("outputs %s vs %s", e, a))
		}
	}
	if expected.IsEvent() {
		if e, a := indexedFlags(expected), indexedFlags(actual); e != a {
			diffs = append(diffs, fmt.Sprintf("indexed %s vs %s", e, a))
		}
		if expected.Anonymous != actual.Anonymous {
			diffs = append(diffs, fmt.Sprintf("anonymous %t vs %t", expected.Anonymous, actual.Anonymous))
		}
	}
	return diffs
}

// CompareEntries matches entries by kind and canonical signature. An
// expected entry whose name exists on the other side with other inputs is
// reported once as ShapeDiffers instead of a missing/extra pair.
func CompareEntries(expected, actual []schoolfactory.Entry) []Mismatch {
	expectedKeys := map[string]bool{}
	for _, e := range expected {
		expectedKeys[entryKey(e)] = true
	}
	actualByKey := map[string]schoolfactory.Entry{}
	for _, a := range actual {
		actualByKey[entryKey(a)] = a
	}
	matched := map[string]bool{}
	result := []Mismatch{}

	for _, e := range expected {
		key := entryKey(e)
		if a, found := actualByKey[key]; found {
			matched[key] = true
			if diffs := compareEntry(e, a); len(diffs) > 0 {
				result = append(result, Mismatch{ShapeDiffers, e.Signature(), strings.Join(diffs, "; ")})
			}
			continue
		}
		overload, found := sameNameUnmatched(e, actual, expectedKeys, matched)
		if found {
			matched[entryKey(overload)] = true
			result = append(result, Mismatch{
				ShapeDiffers, e.Signature(),
				fmt.Sprintf("inputs differ, deployed %s", overload.Signature()),
			})
			continue
		}
		result = append(result, Mismatch{MissingOnChain, e.Signature(), string(e.Type)})
	}
	for _, a := range actual {
		if !matched[entryKey(a)] {
			result = append(result, Mismatch{ExtraOnChain, a.Signature(), string(a.Type)})
		}
	}
	return result
}

func sameNameUnmatched(
	e schoolfactory.Entry,
	actual []schoolfactory.Entry,
	expectedKeys, matched map[string]bool,
) (schoolfactory.Entry, bool) {
	for _, a := range actual {
		key := entryKey(a)
		if a.Type == e.Type && a.Name == e.Name && !matched[key] && !expectedKeys[key] {
			return a, true
		}
	}
	return schoolfactory.Entry{}, false
}

// ExplorerABI returns the verified ABI json of the factory, from the cache
// when possible.
func (f *SchoolFactory) ExplorerABI(refresh bool) (string, error) {
	key := cache.ABIKey(f.Network.GetName(), f.Address)
	if f.cache != nil && !refresh {
		if cached, found := f.cache.Get(key); found {
			f.lggr.Debugw("explorer abi served from cache", "key", key)
			return cached, nil
		}
	}
	abiStr, err := f.explorer.GetABIString(f.Address)
	if err != nil {
		return "", err
	}
	if f.cache != nil {
		if err := f.cache.Set(key, abiStr); err != nil {
			f.lggr.Warnw("couldn't cache explorer abi", "err", err)
		}
	}
	return abiStr, nil
}

// CheckDrift compares the descriptor with what is actually deployed. Only
// node failures are returned as errors.
func (f *SchoolFactory) CheckDrift(refresh bool) (*DriftReport, error) {
	report := &DriftReport{
		Network:    f.Network.GetName(),
		Address:    f.Address,
		Mismatches: []Mismatch{},
	}
	code, err := f.reader.GetCode(f.Address)
	if err != nil {
		return nil, fmt.Errorf("reading code at %s: %w", f.Address, err)
	}
	report.CodeSize = len(code)
	report.HasCode = len(code) > 0

	abiStr, err := f.ExplorerABI(refresh)
	if err != nil {
		f.lggr.Infow("explorer abi unavailable", "err", err)
		report.ExplorerError = err.Error()
		return report, nil
	}
	deployed, err := abi.JSON(strings.NewReader(abiStr))
	if err != nil {
		report.ExplorerError = fmt.Sprintf("explorer returned an unparsable abi: %s", err)
		return report, nil
	}
	report.ExplorerABIAvailable = true
	report.Mismatches = CompareEntries(schoolfactory.Interface(), schoolfactory.EntriesFromABI(&deployed))
	return report, nil
}
