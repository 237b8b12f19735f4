package reader_test

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"

	sfcommon "github.com/tranvictor/schoolfactory/common"
)

// fakeNode answers from canned values. A non nil err fails every call.
type fakeNode struct {
	name  string
	delay time.Duration
	err   error

	chainID  *big.Int
	code     []byte
	nonce    uint64
	tip      *big.Int
	gas      uint64
	callData []byte
	block    uint64
	header   *types.Header
	logs     []types.Log
	tx       *sfcommon.Transaction
	pending  bool
	receipt  *types.Receipt

	lastCall []byte
}

func (f *fakeNode) wait() error {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.err
}

func (f *fakeNode) NodeName() string { return f.name }
func (f *fakeNode) NodeURL() string  { return "http://" + f.name }

func (f *fakeNode) ChainID() (*big.Int, error) {
	return f.chainID, f.wait()
}

func (f *fakeNode) EstimateGas(from, to string, value *big.Int, data []byte) (uint64, error) {
	return f.gas, f.wait()
}

func (f *fakeNode) GetCode(address string) ([]byte, error) {
	return f.code, f.wait()
}

func (f *fakeNode) GetPendingNonce(address string) (uint64, error) {
	return f.nonce, f.wait()
}

func (f *fakeNode) TransactionReceipt(txHash string) (*types.Receipt, error) {
	if err := f.wait(); err != nil {
		return nil, err
	}
	if f.receipt == nil {
		return nil, ethereum.NotFound
	}
	return f.receipt, nil
}

func (f *fakeNode) TransactionByHash(txHash string) (*sfcommon.Transaction, bool, error) {
	if err := f.wait(); err != nil {
		return nil, false, err
	}
	if f.tx == nil {
		return nil, false, ethereum.NotFound
	}
	return f.tx, f.pending, nil
}

func (f *fakeNode) SuggestedGasTipCap() (*big.Int, error) {
	return f.tip, f.wait()
}

func (f *fakeNode) EthCall(atBlock int64, from, to string, data []byte) ([]byte, error) {
	f.lastCall = data
	return f.callData, f.wait()
}

func (f *fakeNode) HeaderByNumber(number int64) (*types.Header, error) {
	return f.header, f.wait()
}

func (f *fakeNode) GetLogs(fromBlock, toBlock int64, addresses []string, topic string) ([]types.Log, error) {
	return f.logs, f.wait()
}

func (f *fakeNode) CurrentBlock() (uint64, error) {
	return f.block, f.wait()
}
