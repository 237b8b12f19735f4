package reader

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	sfcommon "github.com/tranvictor/schoolfactory/common"
)

const TIMEOUT time.Duration = 4 * time.Second

// OneNodeReader dials its node on first use and keeps the connection.
type OneNodeReader struct {
	nodeName  string
	nodeURL   string
	client    *rpc.Client
	ethClient *ethclient.Client
	mu        sync.Mutex
}

func NewOneNodeReader(name, url string) *OneNodeReader {
	return &OneNodeReader{
		nodeName: name,
		nodeURL:  url,
	}
}

func (onr *OneNodeReader) NodeName() string {
	return onr.nodeName
}

func (onr *OneNodeReader) NodeURL() string {
	return onr.nodeURL
}

func (onr *OneNodeReader) connect() (*rpc.Client, *ethclient.Client, error) {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.client != nil {
		return onr.client, onr.ethClient, nil
	}
	client, err := rpc.Dial(onr.NodeURL())
	if err != nil {
		return nil, nil, fmt.Errorf("couldn't connect to %s: %w", onr.nodeName, err)
	}
	onr.client = client
	onr.ethClient = ethclient.NewClient(client)
	return onr.client, onr.ethClient, nil
}

func (onr *OneNodeReader) Client() (*rpc.Client, error) {
	client, _, err := onr.connect()
	return client, err
}

func (onr *OneNodeReader) EthClient() (*ethclient.Client, error) {
	_, ethcli, err := onr.connect()
	return ethcli, err
}

func blockArg(number int64) *big.Int {
	if number < 0 {
		return nil
	}
	return big.NewInt(number)
}

func (onr *OneNodeReader) ChainID() (*big.Int, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.ChainID(timeout)
}

func (onr *OneNodeReader) EstimateGas(from, to string, value *big.Int, data []byte) (uint64, error) {
	var toAddrPtr *common.Address
	if to != "" {
		toAddr := common.HexToAddress(to)
		toAddrPtr = &toAddr
	}
	ethcli, err := onr.EthClient()
	if err != nil {
		return 0, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.EstimateGas(timeout, ethereum.CallMsg{
		From:  common.HexToAddress(from),
		To:    toAddrPtr,
		Value: value,
		Data:  data,
	})
}

func (onr *OneNodeReader) GetCode(address string) ([]byte, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.CodeAt(timeout, common.HexToAddress(address), nil)
}

func (onr *OneNodeReader) GetPendingNonce(address string) (uint64, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return 0, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.PendingNonceAt(timeout, common.HexToAddress(address))
}

func (onr *OneNodeReader) TransactionReceipt(txHash string) (*types.Receipt, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.TransactionReceipt(timeout, common.HexToHash(txHash))
}

// TransactionByHash goes through the raw rpc client because ethclient drops
// the block number and sender the node returns.
func (onr *OneNodeReader) TransactionByHash(txHash string) (*sfcommon.Transaction, bool, error) {
	cli, err := onr.Client()
	if err != nil {
		return nil, false, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()

	var tx *sfcommon.Transaction
	err = cli.CallContext(timeout, &tx, "eth_getTransactionByHash", common.HexToHash(txHash))
	if err != nil {
		return nil, false, err
	} else if tx == nil {
		return nil, false, ethereum.NotFound
	} else if _, r, _ := tx.RawSignatureValues(); r == nil {
		return nil, false, fmt.Errorf("server returned transaction without signature")
	}
	return tx, tx.IsPending(), nil
}

func (onr *OneNodeReader) SuggestedGasTipCap() (*big.Int, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.SuggestGasTipCap(timeout)
}

func (onr *OneNodeReader) EthCall(atBlock int64, from, to string, data []byte) ([]byte, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	contract := common.HexToAddress(to)
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.CallContract(timeout, ethereum.CallMsg{
		From: common.HexToAddress(from),
		To:   &contract,
		Data: data,
	}, blockArg(atBlock))
}

func (onr *OneNodeReader) HeaderByNumber(number int64) (*types.Header, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.HeaderByNumber(timeout, blockArg(number))
}

func (onr *OneNodeReader) GetLogs(fromBlock, toBlock int64, addresses []string, topic string) ([]types.Log, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return nil, err
	}
	q := ethereum.FilterQuery{
		FromBlock: big.NewInt(fromBlock),
		ToBlock:   blockArg(toBlock),
		Addresses: sfcommon.HexToAddresses(addresses),
	}
	if topic != "" {
		q.Topics = [][]common.Hash{{common.HexToHash(topic)}}
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.FilterLogs(timeout, q)
}

func (onr *OneNodeReader) CurrentBlock() (uint64, error) {
	ethcli, err := onr.EthClient()
	if err != nil {
		return 0, err
	}
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	return ethcli.BlockNumber(timeout)
}
