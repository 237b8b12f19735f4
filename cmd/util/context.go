package util

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/spf13/cobra"

	"github.com/tranvictor/schoolfactory/factory"
	"github.com/tranvictor/schoolfactory/networks"
	"github.com/tranvictor/schoolfactory/util/account"
	"github.com/tranvictor/schoolfactory/util/monitor"
)

// ChainReader is everything the commands read from the chain.
// *reader.EthReader satisfies it.
type ChainReader interface {
	factory.Reader
	account.TxReader
	monitor.TxReader
}

// TxBroadcaster is the minimal interface consumed by the cmd layer for
// submitting signed transactions. Tests can supply a mock implementation.
type TxBroadcaster interface {
	BroadcastTx(tx *types.Transaction) (string, bool, error)
}

// CmdContext holds what the pre-run hooks resolved. Commands read it back
// with CmdContextFrom instead of rebuilding readers from config.
type CmdContext struct {
	Network networks.Network
	ChainID *big.Int
	Reader  ChainReader
	Factory *factory.SchoolFactory
	// Broadcaster is nil for read-only commands.
	Broadcaster TxBroadcaster
}

type cmdContextKey struct{}

func WithCmdContext(ctx context.Context, cc CmdContext) context.Context {
	return context.WithValue(ctx, cmdContextKey{}, cc)
}

// CmdContextFrom returns false when no pre-run hook attached a context.
func CmdContextFrom(cmd *cobra.Command) (CmdContext, bool) {
	ctx := cmd.Context()
	if ctx == nil {
		return CmdContext{}, false
	}
	cc, ok := ctx.Value(cmdContextKey{}).(CmdContext)
	return cc, ok
}
