package reader

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	sfcommon "github.com/tranvictor/schoolfactory/common"
)

var DEFAULT_ADDRESS string = "0x0000000000000000000000000000000000000000"

var (
	ErrNoNodes = errors.New("no nodes configured")
	// ErrEmptyResponse is an eth_call that returned zero bytes, which means
	// the address has no code or the call reverted without a reason.
	ErrEmptyResponse = errors.New("empty eth_call response")
)

// EthReader sends every read to all of its nodes at once and takes the first
// answer that is not an error.
type EthReader struct {
	nodes map[string]EthereumNode
}

func NewEthReaderGeneric(nodes map[string]string) *EthReader {
	ns := map[string]EthereumNode{}
	for name, url := range nodes {
		ns[name] = NewOneNodeReader(name, url)
	}
	return &EthReader{nodes: ns}
}

func NewEthReaderWithNodes(nodes ...EthereumNode) *EthReader {
	ns := map[string]EthereumNode{}
	for _, n := range nodes {
		ns[n.NodeName()] = n
	}
	return &EthReader{nodes: ns}
}

func (er *EthReader) NodeURLs() map[string]string {
	result := map[string]string{}
	for name, n := range er.nodes {
		result[name] = n.NodeURL()
	}
	return result
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type nodeResult[T any] struct {
	Value T
	Error error
}

func firstSuccess[T any](nodes map[string]EthereumNode, call func(n EthereumNode) (T, error)) (T, error) {
	var zero T
	if len(nodes) == 0 {
		return zero, ErrNoNodes
	}
	resCh := make(chan nodeResult[T], len(nodes))
	for i := range nodes {
		n := nodes[i]
		go func() {
			value, err := call(n)
			resCh <- nodeResult[T]{
				Value: value,
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return zero, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

func (er *EthReader) ChainID() (*big.Int, error) {
	return firstSuccess(er.nodes, func(n EthereumNode) (*big.Int, error) {
		return n.ChainID()
	})
}

func (er *EthReader) EstimateGas(from, to string, value *big.Int, data []byte) (uint64, error) {
	return firstSuccess(er.nodes, func(n EthereumNode) (uint64, error) {
		return n.EstimateGas(from, to, value, data)
	})
}

func (er *EthReader) GetCode(address string) ([]byte, error) {
	return firstSuccess(er.nodes, func(n EthereumNode) ([]byte, error) {
		return n.GetCode(address)
	})
}

func (er *EthReader) GetPendingNonce(address string) (uint64, error) {
	return firstSuccess(er.nodes, func(n EthereumNode) (uint64, error) {
		return n.GetPendingNonce(address)
	})
}

func (er *EthReader) SuggestedGasTipCap() (*big.Int, error) {
	return firstSuccess(er.nodes, func(n EthereumNode) (*big.Int, error) {
		return n.SuggestedGasTipCap()
	})
}

func (er *EthReader) TransactionReceipt(txHash string) (*types.Receipt, error) {
	return firstSuccess(er.nodes, func(n EthereumNode) (*types.Receipt, error) {
		return n.TransactionReceipt(txHash)
	})
}

type txByHash struct {
	Tx        *sfcommon.Transaction
	IsPending bool
}

func (er *EthReader) TransactionByHash(txHash string) (*sfcommon.Transaction, bool, error) {
	res, err := firstSuccess(er.nodes, func(n EthereumNode) (txByHash, error) {
		tx, isPending, err := n.TransactionByHash(txHash)
		return txByHash{tx, isPending}, err
	})
	return res.Tx, res.IsPending, err
}

func (er *EthReader) HeaderByNumber(number int64) (*types.Header, error) {
	return firstSuccess(er.nodes, func(n EthereumNode) (*types.Header, error) {
		return n.HeaderByNumber(number)
	})
}

func (er *EthReader) CurrentBlock() (uint64, error) {
	return firstSuccess(er.nodes, func(n EthereumNode) (uint64, error) {
		return n.CurrentBlock()
	})
}

// GetLogs queries [fromBlock, toBlock]. A negative toBlock means latest.
func (er *EthReader) GetLogs(fromBlock, toBlock int64, addresses []string, topic string) ([]types.Log, error) {
	return firstSuccess(er.nodes, func(n EthereumNode) ([]types.Log, error) {
		return n.GetLogs(fromBlock, toBlock, addresses, topic)
	})
}

// EthCall runs already encoded calldata against caddr.
func (er *EthReader) EthCall(atBlock int64, from string, caddr string, data []byte) ([]byte, error) {
	return firstSuccess(er.nodes, func(n EthereumNode) ([]byte, error) {
		return n.EthCall(atBlock, from, caddr, data)
	})
}

func (er *EthReader) ReadContractToBytes(
	atBlock int64,
	from string,
	caddr string,
	abi *abi.ABI,
	method string,
	args ...interface{},
) ([]byte, error) {
	data, err := abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("packing %s: %w", method, err)
	}
	return er.EthCall(atBlock, from, caddr, data)
}

// ReadContractWithABI calls a view method at the latest block and unpacks
// its outputs into result.
func (er *EthReader) ReadContractWithABI(
	result interface{},
	caddr string,
	abi *abi.ABI,
	method string,
	args ...interface{},
) error {
	responseBytes, err := er.ReadContractToBytes(-1, DEFAULT_ADDRESS, caddr, abi, method, args...)
	if err != nil {
		return err
	}
	if len(responseBytes) == 0 {
		return fmt.Errorf("%s on %s: %w", method, caddr, ErrEmptyResponse)
	}
	return abi.UnpackIntoInterface(result, method, responseBytes)
}

func (er *EthReader) TxInfoFromHash(tx string) (sfcommon.TxInfo, error) {
	txObj, isPending, err := er.TransactionByHash(tx)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return sfcommon.TxInfo{Status: sfcommon.TxStatusNotFound}, nil
		}
		return sfcommon.TxInfo{Status: sfcommon.TxStatusError}, err
	}
	if txObj == nil {
		return sfcommon.TxInfo{Status: sfcommon.TxStatusNotFound}, nil
	}
	if isPending {
		return sfcommon.TxInfo{Status: sfcommon.TxStatusPending, Tx: txObj}, nil
	}

	receipt, err := er.TransactionReceipt(tx)
	if receipt == nil {
		if err != nil && !errors.Is(err, ethereum.NotFound) {
			return sfcommon.TxInfo{Status: sfcommon.TxStatusPending, Tx: txObj}, err
		}
		return sfcommon.TxInfo{Status: sfcommon.TxStatusPending, Tx: txObj}, nil
	}

	// pre byzantium receipts carry a post state root instead of a status
	status := sfcommon.TxStatusReverted
	if len(receipt.PostState) == len(common.Hash{}) || receipt.Status == types.ReceiptStatusSuccessful {
		status = sfcommon.TxStatusDone
	}
	return sfcommon.TxInfo{
		Status:  status,
		Tx:      txObj,
		Receipt: receipt,
	}, nil
}
