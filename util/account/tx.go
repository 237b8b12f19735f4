package account

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	sfcommon "github.com/tranvictor/schoolfactory/common"
)

// MaxTipGwei bounds a user supplied priority fee.
const MaxTipGwei = 10_000

var ErrInvalidTip = errors.New("invalid gas tip")

// TxReader is what BuildTx needs from a node reader.
type TxReader interface {
	GetPendingNonce(address string) (uint64, error)
	SuggestedGasTipCap() (*big.Int, error)
	HeaderByNumber(number int64) (*types.Header, error)
	EstimateGas(from, to string, value *big.Int, data []byte) (uint64, error)
}

type TxParams struct {
	From     common.Address
	To       common.Address
	Value    *big.Int
	Data     []byte
	ChainID  *big.Int
	ExtraGas uint64
	// TipGwei overrides the node suggested tip when positive. Zero asks the
	// node, anything negative or above MaxTipGwei is rejected.
	TipGwei float64
}

// BuildTx assembles an unsigned EIP-1559 tx with the sender's pending nonce,
// the estimated gas plus ExtraGas and a fee cap of 2 * baseFee + tip.
func BuildTx(r TxReader, p TxParams) (*types.Transaction, error) {
	if err := ValidateTip(p.TipGwei); err != nil {
		return nil, err
	}
	nonce, err := r.GetPendingNonce(p.From.Hex())
	if err != nil {
		return nil, fmt.Errorf("couldn't get nonce of %s: %w", p.From.Hex(), err)
	}
	var tip *big.Int
	if p.TipGwei > 0 {
		tip = sfcommon.GweiToWei(p.TipGwei)
	} else {
		tip, err = r.SuggestedGasTipCap()
		if err != nil {
			return nil, fmt.Errorf("couldn't get gas tip: %w", err)
		}
	}
	header, err := r.HeaderByNumber(-1)
	if err != nil {
		return nil, fmt.Errorf("couldn't get latest header: %w", err)
	}
	gas, err := r.EstimateGas(p.From.Hex(), p.To.Hex(), p.Value, p.Data)
	if err != nil {
		return nil, fmt.Errorf("couldn't estimate gas: %w", err)
	}
	return sfcommon.BuildDynamicFeeTx(
		p.ChainID,
		nonce,
		p.To,
		p.Value,
		gas+p.ExtraGas,
		tip,
		sfcommon.FeeCap(header.BaseFee, tip),
		p.Data,
	), nil
}

// ValidateTip accepts zero, which means the node suggestion, and finite tips
// up to MaxTipGwei.
func ValidateTip(tipGwei float64) error {
	switch {
	case math.IsNaN(tipGwei) || math.IsInf(tipGwei, 0):
		return fmt.Errorf("%w: %v gwei", ErrInvalidTip, tipGwei)
	case tipGwei < 0:
		return fmt.Errorf("%w: %v gwei is negative", ErrInvalidTip, tipGwei)
	case tipGwei > MaxTipGwei:
		return fmt.Errorf("%w: %v gwei is above %d gwei", ErrInvalidTip, tipGwei, MaxTipGwei)
	}
	return nil
}
