package common

import (
	"errors"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// RunParallel runs every task in its own goroutine and joins whatever
// errors they return. The second value is the number of failed tasks.
func RunParallel(funcs ...func() error) (error, int) {
	var wg sync.WaitGroup
	errs := make(chan error, len(funcs))

	for _, fn := range funcs {
		wg.Add(1)
		go func(fn func() error) {
			defer wg.Done()
			if err := fn(); err != nil {
				errs <- err
			}
		}(fn)
	}
	wg.Wait()
	close(errs)

	var allErrs []error
	for err := range errs {
		allErrs = append(allErrs, err)
	}
	return errors.Join(allErrs...), len(allErrs)
}

func HexToAddresses(hexes []string) []common.Address {
	result := []common.Address{}
	for _, h := range hexes {
		result = append(result, common.HexToAddress(h))
	}
	return result
}

// IsHexAddress is stricter than common.IsHexAddress, it requires the 0x prefix.
func IsHexAddress(s string) bool {
	return len(s) == 42 && (s[:2] == "0x" || s[:2] == "0X") && common.IsHexAddress(s)
}
