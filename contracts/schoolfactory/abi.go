package schoolfactory

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed schoolfactory.abi.json
var abiJSON string

var (
	parsedOnce sync.Once
	parsed     abi.ABI
	parsedErr  error
)

// ABIJSON returns the interface exactly as the compiler emitted it.
func ABIJSON() string {
	return abiJSON
}

// ABI parses the interface into a new go-ethereum ABI on every call, so the
// caller is free to keep or modify it.
func ABI() (*abi.ABI, error) {
	result, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MustABI is ABI for callers that treat a broken embedded artifact as a bug.
func MustABI() *abi.ABI {
	result, err := ABI()
	if err != nil {
		panic(err)
	}
	return result
}

// shared is the package private parsed copy used by the codec. It is only
// ever read after initialisation.
func shared() (*abi.ABI, error) {
	parsedOnce.Do(func() {
		parsed, parsedErr = abi.JSON(strings.NewReader(abiJSON))
	})
	return &parsed, parsedErr
}
