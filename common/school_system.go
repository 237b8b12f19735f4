package common

import (
	"github.com/ethereum/go-ethereum/common"
)

// SchoolSystem is one deployment made by the factory, as seen from its
// SchoolSystemDeployed log. Name and Symbol come from the calldata of the
// deploying transaction and are empty when that could not be recovered.
type SchoolSystem struct {
	Address     common.Address `json:"address"`
	Owner       common.Address `json:"owner"`
	Name        string         `json:"name,omitempty"`
	Symbol      string         `json:"symbol,omitempty"`
	BlockNumber uint64         `json:"block_number"`
	TxHash      common.Hash    `json:"tx_hash"`
	LogIndex    uint           `json:"log_index"`
}

func (s SchoolSystem) HasMetadata() bool {
	return s.Name != "" || s.Symbol != ""
}
