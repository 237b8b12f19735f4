package reader

import (
	"fmt"
	"os"
	"strings"

	"github.com/tranvictor/schoolfactory/networks"
)

const CUSTOM_NODE_NAME = "custom-node"

// GetNodes resolves the node set for network. override, when set, replaces
// every other node. Otherwise the node in the network's env variable joins
// the built-in defaults.
func GetNodes(network networks.Network, override string) (map[string]string, error) {
	override = strings.TrimSpace(override)
	if override != "" {
		return map[string]string{CUSTOM_NODE_NAME: override}, nil
	}
	result := map[string]string{}
	for name, url := range network.GetDefaultNodes() {
		result[name] = url
	}
	if v := network.GetNodeVariableName(); v != "" {
		if customNode := strings.TrimSpace(os.Getenv(v)); customNode != "" {
			result[CUSTOM_NODE_NAME] = customNode
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf(
			"network %s has no default nodes, set %s or pass --node",
			network.GetName(), network.GetNodeVariableName(),
		)
	}
	return result, nil
}

func NewEthReaderForNetwork(network networks.Network, override string) (*EthReader, error) {
	nodes, err := GetNodes(network, override)
	if err != nil {
		return nil, err
	}
	return NewEthReaderGeneric(nodes), nil
}
