package util

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	sfcommon "github.com/tranvictor/schoolfactory/common"
)

func ConvertToBig(str string) (*big.Int, error) {
	str = strings.TrimSpace(str)
	if strings.HasPrefix(str, "0x") {
		return hexutil.DecodeBig(str)
	}
	result, ok := new(big.Int).SetString(str, 10)
	if !ok {
		return nil, fmt.Errorf("can't convert %s to big int", str)
	}
	return result, nil
}

func ConvertToAddress(str string) (common.Address, error) {
	str = strings.TrimSpace(str)
	if !sfcommon.IsHexAddress(str) {
		return common.Address{}, fmt.Errorf("invalid address %q", str)
	}
	return common.HexToAddress(str), nil
}

func ConvertToBool(str string) (bool, error) {
	switch strings.TrimSpace(str) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("bool value must be true|false")
}

// ConvertParamStrToType turns a command line argument into the go value abi
// packing expects for t. Strings are taken verbatim, quotes are not needed.
// Integers narrower than 65 bits pack from native go ints and are not
// supported.
func ConvertParamStrToType(t abi.Type, str string) (interface{}, error) {
	switch t.T {
	case abi.StringTy:
		return str, nil
	case abi.UintTy, abi.IntTy:
		if t.Size <= 64 {
			return nil, fmt.Errorf("not supported type: %s", t)
		}
		n, err := ConvertToBig(str)
		if err != nil {
			return nil, err
		}
		if t.T == abi.UintTy && n.Sign() < 0 {
			return nil, fmt.Errorf("%s can't be negative", t)
		}
		return n, nil
	case abi.BoolTy:
		return ConvertToBool(str)
	case abi.AddressTy:
		return ConvertToAddress(str)
	}
	return nil, fmt.Errorf("not supported type: %s", t)
}

// ConvertArgs converts args positionally against inputs.
func ConvertArgs(inputs abi.Arguments, args []string) ([]interface{}, error) {
	if len(args) != len(inputs) {
		return nil, fmt.Errorf("expected %d params, got %d", len(inputs), len(args))
	}
	result := []interface{}{}
	for i, input := range inputs {
		v, err := ConvertParamStrToType(input.Type, args[i])
		if err != nil {
			return nil, fmt.Errorf("param %d (%s %s): %w", i+1, input.Type, input.Name, err)
		}
		result = append(result, v)
	}
	return result, nil
}
