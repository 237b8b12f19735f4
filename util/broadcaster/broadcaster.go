package broadcaster

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	sfcommon "github.com/tranvictor/schoolfactory/common"
	"github.com/tranvictor/schoolfactory/util/logger"
)

const TIMEOUT = 4 * time.Second

// RPCClient is satisfied by *rpc.Client.
type RPCClient interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Broadcaster takes a signed tx and try to broadcast it to all
// nodes that it manages as fast as possible. The tx counts as
// broadcasted when at least 1 node accepted it.
type Broadcaster struct {
	clients map[string]RPCClient
}

func (b *Broadcaster) GetNodes() map[string]RPCClient {
	return b.clients
}

func (b *Broadcaster) broadcast(ctx context.Context, name string, client RPCClient, data string) error {
	if err := client.CallContext(ctx, nil, "eth_sendRawTransaction", data); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (b *Broadcaster) BroadcastTx(tx *types.Transaction) (string, bool, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return "", false, fmt.Errorf("tx is not valid, couldn't use rlp to encode it: %w", err)
	}
	return b.Broadcast(hexutil.Encode(data))
}

// data must be hex encoded of the signed tx
func (b *Broadcaster) Broadcast(data string) (string, bool, error) {
	if len(b.clients) == 0 {
		return "", false, fmt.Errorf("no node to broadcast to")
	}
	hash := sfcommon.RawTxToHash(data)
	timeout, cancel := context.WithTimeout(context.Background(), TIMEOUT)
	defer cancel()
	parallelTasks := []func() error{}
	for name := range b.clients {
		name, cli := name, b.clients[name]
		parallelTasks = append(parallelTasks, func() error {
			return b.broadcast(timeout, name, cli, data)
		})
	}
	err, numErrs := sfcommon.RunParallel(parallelTasks...)
	if numErrs == len(b.clients) {
		return hash, false, err
	}
	if err != nil {
		logger.L().Debugw("some nodes rejected the tx", "tx", hash, "err", err)
	}
	return hash, true, nil
}

func NewBroadcasterWithClients(clients map[string]RPCClient) *Broadcaster {
	return &Broadcaster{clients: clients}
}

func NewGenericBroadcaster(nodes map[string]string) *Broadcaster {
	clients := map[string]RPCClient{}
	for name, url := range nodes {
		client, err := rpc.Dial(url)
		if err != nil {
			logger.L().Warnw("couldn't connect to node", "node", name, "url", url, "err", err)
			continue
		}
		clients[name] = client
	}
	return NewBroadcasterWithClients(clients)
}
