package common

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// FloatToBigInt converts a float to a big int with specific decimal, rounded
// to the nearest unit. It returns nil for NaN and infinities.
// Example:
// - FloatToBigInt(1, 4) = 10000
// - FloatToBigInt(1.234, 4) = 12340
func FloatToBigInt(amount float64, decimal uint64) *big.Int {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil
	}
	f, _, err := big.ParseFloat(strconv.FormatFloat(amount, 'g', -1, 64), 10, 256, big.ToNearestEven)
	if err != nil {
		return nil
	}
	power := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10), new(big.Int).SetUint64(decimal), nil,
	))
	f.Mul(f, power)
	half := big.NewFloat(0.5)
	if f.Sign() < 0 {
		half.Neg(half)
	}
	result, _ := f.Add(f, half).Int(nil)
	return result
}

func GweiToWei(n float64) *big.Int {
	return FloatToBigInt(n, 9)
}

// BigToFloatString renders value / 10^decimal without trailing zeros.
// Example:
// - BigToFloatString(1500000000, 9) = "1.5"
// - BigToFloatString(2000000000, 9) = "2"
func BigToFloatString(value *big.Int, decimal uint64) string {
	f := new(big.Float).SetInt(value)
	power := new(big.Float).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(decimal)), nil,
	))
	res := new(big.Float).Quo(f, power)
	text := res.Text('f', int(decimal))
	if strings.Contains(text, ".") {
		text = strings.TrimRight(strings.TrimRight(text, "0"), ".")
	}
	return text
}

func WeiToGweiString(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	return BigToFloatString(wei, 9)
}
