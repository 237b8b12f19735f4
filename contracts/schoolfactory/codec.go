package schoolfactory

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrEmptyReturnData is returned when a view call came back with no bytes,
// which happens when the target has no code or the call reverted.
var ErrEmptyReturnData = errors.New("empty return data")

func pack(method string, args ...interface{}) ([]byte, error) {
	a, err := shared()
	if err != nil {
		return nil, err
	}
	data, err := a.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}
	return data, nil
}

func unpack(method string, data []byte) ([]interface{}, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", method, ErrEmptyReturnData)
	}
	a, err := shared()
	if err != nil {
		return nil, err
	}
	values, err := a.Unpack(method, data)
	if err != nil {
		return nil, fmt.Errorf("unpacking %s: %w", method, err)
	}
	return values, nil
}

// PackCreateSchoolSystem encodes the calldata deploying a new school system.
func PackCreateSchoolSystem(name, symbol string) ([]byte, error) {
	return pack(MethodCreateSchoolSystem, name, symbol)
}

func PackGetDeployedSchoolSystemsCount() ([]byte, error) {
	return pack(MethodGetDeployedSchoolSystemsCount)
}

// PackGetSchoolsByOwner encodes the view call listing owner's school systems.
func PackGetSchoolsByOwner(owner common.Address) ([]byte, error) {
	return pack(MethodGetSchoolsByOwner, owner)
}

func UnpackDeployedSchoolSystemsCount(data []byte) (*big.Int, error) {
	values, err := unpack(MethodGetDeployedSchoolSystemsCount, data)
	if err != nil {
		return nil, err
	}
	count, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected %T for uint256 output", values[0])
	}
	return count, nil
}

// UnpackSchoolsByOwner decodes the address[] returned by getSchoolsByOwner.
func UnpackSchoolsByOwner(data []byte) ([]common.Address, error) {
	values, err := unpack(MethodGetSchoolsByOwner, data)
	if err != nil {
		return nil, err
	}
	schools, ok := values[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("unexpected %T for address[] output", values[0])
	}
	return schools, nil
}

// UnpackCreateSchoolSystemInput decodes the calldata of a createSchoolSystem
// transaction, selector included.
func UnpackCreateSchoolSystemInput(calldata []byte) (name string, symbol string, err error) {
	a, err := shared()
	if err != nil {
		return "", "", err
	}
	method := a.Methods[MethodCreateSchoolSystem]
	if len(calldata) < 4 || !bytes.Equal(calldata[:4], method.ID) {
		return "", "", fmt.Errorf("calldata is not a %s call", MethodCreateSchoolSystem)
	}
	values, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		return "", "", fmt.Errorf("unpacking %s input: %w", MethodCreateSchoolSystem, err)
	}
	name, _ = values[0].(string)
	symbol, _ = values[1].(string)
	return name, symbol, nil
}

// MethodBySelector resolves calldata to the function it calls.
func MethodBySelector(calldata []byte) (Entry, error) {
	if len(calldata) < 4 {
		return Entry{}, fmt.Errorf("calldata shorter than a selector: %w", ErrUnknownEntry)
	}
	for _, e := range entries {
		if e.IsFunction() && bytes.Equal(e.Selector(), calldata[:4]) {
			return e.clone(), nil
		}
	}
	return Entry{}, fmt.Errorf("selector %#x: %w", calldata[:4], ErrUnknownEntry)
}
