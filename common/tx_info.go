package common

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	TxStatusDone     = "done"
	TxStatusReverted = "reverted"
	TxStatusPending  = "pending"
	TxStatusNotFound = "notfound"
	TxStatusLost     = "lost"
	TxStatusError    = "error"
)

type TxInfo struct {
	Status      string
	Tx          *Transaction
	Receipt     *types.Receipt
	BlockHeader *types.Header
}

// IsFinal reports whether the tx reached a state polling cannot change.
func (ti TxInfo) IsFinal() bool {
	switch ti.Status {
	case TxStatusDone, TxStatusReverted, TxStatusLost:
		return true
	}
	return false
}

func (ti *TxInfo) GasCost() *big.Int {
	if ti.Receipt == nil {
		return big.NewInt(0)
	}
	price := ti.Receipt.EffectiveGasPrice
	if price == nil && ti.Tx != nil {
		price = ti.Tx.GasPrice()
	}
	if price == nil {
		return big.NewInt(0)
	}
	return big.NewInt(0).Mul(big.NewInt(0).SetUint64(ti.Receipt.GasUsed), price)
}

// Transaction is a node returned transaction with the fields
// types.Transaction drops when it is decoded from JSON.
type Transaction struct {
	*types.Transaction
	Extra TxExtraInfo `json:"extra"`
}

type TxExtraInfo struct {
	BlockNumber *string         `json:"blockNumber,omitempty"`
	BlockHash   *common.Hash    `json:"blockHash,omitempty"`
	From        *common.Address `json:"from,omitempty"`
}

func (tx *Transaction) UnmarshalJSON(msg []byte) error {
	if err := json.Unmarshal(msg, &tx.Transaction); err != nil {
		return err
	}
	return json.Unmarshal(msg, &tx.Extra)
}

func (tx *Transaction) IsPending() bool {
	return tx.Extra.BlockNumber == nil
}
