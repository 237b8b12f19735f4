// Package factory reads and drives the deployed SchoolFactory through a
// node reader, using the descriptor in contracts/schoolfactory for every
// encode and decode.
package factory

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	sfcommon "github.com/tranvictor/schoolfactory/common"
	"github.com/tranvictor/schoolfactory/contracts/schoolfactory"
	"github.com/tranvictor/schoolfactory/networks"
	"github.com/tranvictor/schoolfactory/util/cache"
	"github.com/tranvictor/schoolfactory/util/logger"
	"github.com/tranvictor/schoolfactory/util/reader"
)

var (
	ErrNoCode         = errors.New("no contract code at the factory address")
	ErrEmptyName      = errors.New("school system name is empty")
	ErrEmptySymbol    = errors.New("school system symbol is empty")
	ErrInvalidAddress = errors.New("invalid address")
)

// Reader is the part of reader.EthReader the factory needs.
type Reader interface {
	ReadContractWithABI(result interface{}, caddr string, abi *abi.ABI, method string, args ...interface{}) error
	EthCall(atBlock int64, from string, caddr string, data []byte) ([]byte, error)
	GetCode(address string) ([]byte, error)
	GetLogs(fromBlock, toBlock int64, addresses []string, topic string) ([]types.Log, error)
	TransactionByHash(txHash string) (*sfcommon.Transaction, bool, error)
	CurrentBlock() (uint64, error)
}

// ABISource returns the verified ABI json of an address. Every
// networks.Network is one.
type ABISource interface {
	GetABIString(address string) (string, error)
}

type SchoolFactory struct {
	Address string
	Network networks.Network
	Abi     *abi.ABI

	reader        Reader
	explorer      ABISource
	cache         *cache.FileCache
	lggr          *zap.SugaredLogger
	retryAttempts uint
	retryDelay    time.Duration
}

type Option func(*SchoolFactory)

func WithLogger(l *zap.SugaredLogger) Option {
	return func(f *SchoolFactory) { f.lggr = l }
}

// WithCache stores explorer ABIs. A nil cache disables caching.
func WithCache(c *cache.FileCache) Option {
	return func(f *SchoolFactory) { f.cache = c }
}

func WithExplorer(e ABISource) Option {
	return func(f *SchoolFactory) { f.explorer = e }
}

// WithRetry sets how often each eth_getLogs window is tried. Zero attempts
// is treated as one.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(f *SchoolFactory) {
		if attempts == 0 {
			attempts = 1
		}
		f.retryAttempts = attempts
		f.retryDelay = delay
	}
}

func NewSchoolFactory(r Reader, network networks.Network, opts ...Option) *SchoolFactory {
	f := &SchoolFactory{
		Address:       schoolfactory.Address,
		Network:       network,
		Abi:           schoolfactory.MustABI(),
		reader:        r,
		explorer:      network,
		lggr:          logger.L(),
		retryAttempts: 3,
		retryDelay:    time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.lggr = f.lggr.Named("factory").With("network", network.GetName(), "factory", f.Address)
	return f
}

func (f *SchoolFactory) DeployedSchoolSystemsCount() (*big.Int, error) {
	data, err := schoolfactory.PackGetDeployedSchoolSystemsCount()
	if err != nil {
		return nil, err
	}
	response, err := f.reader.EthCall(-1, reader.DEFAULT_ADDRESS, f.Address, data)
	if err != nil {
		return nil, err
	}
	count, err := schoolfactory.UnpackDeployedSchoolSystemsCount(response)
	if errors.Is(err, schoolfactory.ErrEmptyReturnData) {
		return nil, fmt.Errorf("%s on %s: %w", schoolfactory.MethodGetDeployedSchoolSystemsCount, f.Network.GetName(), ErrNoCode)
	}
	return count, err
}

// SchoolsByOwner returns the checksummed addresses of every school system
// owned by owner, in deployment order.
func (f *SchoolFactory) SchoolsByOwner(owner string) ([]string, error) {
	if !sfcommon.IsHexAddress(owner) {
		return nil, fmt.Errorf("owner %q: %w", owner, ErrInvalidAddress)
	}
	schools := []common.Address{}
	err := f.reader.ReadContractWithABI(
		&schools,
		f.Address,
		f.Abi,
		schoolfactory.MethodGetSchoolsByOwner,
		common.HexToAddress(owner),
	)
	if errors.Is(err, reader.ErrEmptyResponse) {
		return nil, fmt.Errorf("%s on %s: %w", schoolfactory.MethodGetSchoolsByOwner, f.Network.GetName(), ErrNoCode)
	}
	if err != nil {
		return nil, err
	}
	result := []string{}
	for _, s := range schools {
		result = append(result, s.Hex())
	}
	return result, nil
}
