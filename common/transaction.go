package common

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// RawTxToHash returns the hash of a hex encoded signed transaction.
func RawTxToHash(data string) string {
	return crypto.Keccak256Hash(hexutil.MustDecode(data)).Hex()
}

// FeeCap is the max fee per gas that keeps a tx includable through two
// consecutive full blocks: 2 * baseFee + tip.
func FeeCap(baseFee, tip *big.Int) *big.Int {
	if baseFee == nil {
		return new(big.Int).Set(tip)
	}
	result := new(big.Int).Mul(baseFee, big.NewInt(2))
	return result.Add(result, tip)
}

func BuildDynamicFeeTx(
	chainID *big.Int,
	nonce uint64,
	to common.Address,
	value *big.Int,
	gasLimit uint64,
	tip, feeCap *big.Int,
	data []byte,
) *types.Transaction {
	if value == nil {
		value = big.NewInt(0)
	}
	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       gasLimit,
		To:        &to,
		Value:     value,
		Data:      data,
	})
}
