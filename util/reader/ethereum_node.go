package reader

import (
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/schoolfactory/common"
)

// EthereumNode is one JSON-RPC endpoint. Negative block numbers mean latest.
type EthereumNode interface {
	NodeName() string
	NodeURL() string
	ChainID() (*big.Int, error)
	EstimateGas(from, to string, value *big.Int, data []byte) (gas uint64, err error)
	GetCode(address string) (code []byte, err error)
	GetPendingNonce(address string) (nonce uint64, err error)
	TransactionReceipt(txHash string) (receipt *types.Receipt, err error)
	TransactionByHash(txHash string) (tx *common.Transaction, isPending bool, err error)
	SuggestedGasTipCap() (*big.Int, error)
	EthCall(atBlock int64, from, to string, data []byte) ([]byte, error)
	HeaderByNumber(number int64) (*types.Header, error)
	GetLogs(fromBlock, toBlock int64, addresses []string, topic string) ([]types.Log, error)
	CurrentBlock() (uint64, error)
}
