package util

import (
	"github.com/tranvictor/schoolfactory/bleve"
	sfcommon "github.com/tranvictor/schoolfactory/common"
	"github.com/tranvictor/schoolfactory/factory"
	"github.com/tranvictor/schoolfactory/networks"
	"github.com/tranvictor/schoolfactory/util/broadcaster"
	"github.com/tranvictor/schoolfactory/util/cache"
	"github.com/tranvictor/schoolfactory/util/explorers"
	"github.com/tranvictor/schoolfactory/util/logger"
	"github.com/tranvictor/schoolfactory/util/reader"
)

// SchoolIndex is the local search index of discovered school systems.
type SchoolIndex interface {
	Index(network string, schools []sfcommon.SchoolSystem) error
	Search(input string, limit int) ([]bleve.Hit, error)
}

// Backend builds every collaborator that needs the network, the disk or the
// home directory. Commands depend on it so tests can run offline.
type Backend interface {
	Reader(network networks.Network, node string) (ChainReader, error)
	Broadcaster(network networks.Network, node string) (TxBroadcaster, error)
	// Explorer serves verified ABIs. apiKey, when set, replaces the key the
	// network reads from its env var.
	Explorer(network networks.Network, apiKey string) factory.ABISource
	Cache() *cache.FileCache
	Index() (SchoolIndex, error)
}

// DefaultBackend talks to real nodes and stores under ~/.schoolfactory.
type DefaultBackend struct{}

func (DefaultBackend) Reader(network networks.Network, node string) (ChainReader, error) {
	r, err := reader.NewEthReaderForNetwork(network, node)
	if err != nil {
		return nil, err
	}
	logger.L().Debugw("reading from", "network", network.GetName(), "nodes", r.NodeURLs())
	return r, nil
}

func (DefaultBackend) Broadcaster(network networks.Network, node string) (TxBroadcaster, error) {
	nodes, err := reader.GetNodes(network, node)
	if err != nil {
		return nil, err
	}
	return broadcaster.NewGenericBroadcaster(nodes), nil
}

func (DefaultBackend) Explorer(network networks.Network, apiKey string) factory.ABISource {
	if apiKey == "" {
		return network
	}
	return explorers.NewEtherscanLikeExplorer(network.GetBlockExplorerAPIURL(), apiKey, network.GetChainID())
}

func (DefaultBackend) Cache() *cache.FileCache {
	return cache.Default()
}

func (DefaultBackend) Index() (SchoolIndex, error) {
	return bleve.Default()
}
