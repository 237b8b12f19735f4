package networks

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/tranvictor/schoolfactory/util/logger"
)

var builtinNetworks = []Network{
	EthereumMainnet,
	Sepolia,
	Holesky,
	BaseMainnet,
	BaseSepolia,
	BSCTestnet,
	PolygonAmoy,
}

var ErrNetworkNotFound = errors.New("network not found")

// CustomNetworksDir holds one json file per user defined network, in the
// GenericEtherscanNetworkConfig shape.
var CustomNetworksDir = filepath.Join(homeDir(), ".schoolfactory", "networks")

var (
	globalOnce     sync.Once
	globalNetworks *networks
)

func homeDir() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}

// networkKey is how names and alternative names are indexed, lookups are
// case insensitive.
func networkKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type networks struct {
	mu           sync.RWMutex
	networks     map[string]Network
	networksByID map[uint64]Network
}

func newNetworks(builtins []Network) (*networks, error) {
	result := &networks{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
	}
	for _, n := range builtins {
		names := append([]string{n.GetName()}, n.GetAlternativeNames()...)
		for _, name := range names {
			if _, found := result.networks[networkKey(name)]; found {
				return nil, fmt.Errorf("network with name or alternative name of '%s' already exists", name)
			}
			result.networks[networkKey(name)] = n
		}
		result.networksByID[n.GetChainID()] = n
	}
	return result, nil
}

// add registers n, replacing whatever network held the same name or chain id.
func (ns *networks) add(n Network) {
	ns.mu.Lock()
	defer ns.mu.Unlock()
	if old, found := ns.networksByID[n.GetChainID()]; found {
		for name, existing := range ns.networks {
			if existing == old {
				delete(ns.networks, name)
			}
		}
	}
	ns.networks[networkKey(n.GetName())] = n
	for _, an := range n.GetAlternativeNames() {
		ns.networks[networkKey(an)] = n
	}
	ns.networksByID[n.GetChainID()] = n
}

func (ns *networks) names() []string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	res := []string{}
	for name := range ns.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (ns *networks) getNetwork(name string) (Network, error) {
	ns.mu.RLock()
	res, found := ns.networks[networkKey(name)]
	ns.mu.RUnlock()
	if found {
		return res, nil
	}
	suggestions := suggest(name, ns.names())
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return nil, fmt.Errorf(
		"network name '%s': %w, did you mean %s?",
		name, ErrNetworkNotFound, strings.Join(suggestions, " or "),
	)
}

func (ns *networks) getNetworkByID(id uint64) (Network, error) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	res, found := ns.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (ns *networks) all() []Network {
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	res := []Network{}
	for _, n := range ns.networksByID {
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GetChainID() < res[j].GetChainID() })
	return res
}

func suggest(input string, names []string) []string {
	matches := fuzzy.Find(strings.ToLower(input), names)
	result := []string{}
	for i, m := range matches {
		if i == 3 {
			break
		}
		result = append(result, m.Str)
	}
	return result
}

func global() *networks {
	globalOnce.Do(func() {
		ns, err := newNetworks(builtinNetworks)
		if err != nil {
			panic(err)
		}
		customs, err := LoadCustomNetworks(CustomNetworksDir)
		if err != nil {
			logger.L().Warnw("ignoring custom networks", "dir", CustomNetworksDir, "err", err)
		}
		for _, n := range customs {
			if _, err := ns.getNetworkByID(n.GetChainID()); err == nil {
				logger.L().Infow("custom network replaces a built-in one", "name", n.GetName(), "chain_id", n.GetChainID())
			}
			ns.add(n)
		}
		globalNetworks = ns
	})
	return globalNetworks
}

// LoadCustomNetworks parses every *.json file in dir. A missing dir is not an
// error. Files that fail to parse are skipped with a warning.
func LoadCustomNetworks(dir string) ([]Network, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}
	result := []Network{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}
		network, err := NewNetworkFromJSON(content)
		if err != nil {
			logger.L().Warnw("skipping custom network file", "file", file, "err", err)
			continue
		}
		result = append(result, network)
	}
	return result, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericEtherscanNetworkConfig{}
	if err := json.Unmarshal(content, &networkConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if networkConfig.Name == "" {
		return nil, fmt.Errorf("network config has no name")
	}
	if networkConfig.ChainID == 0 {
		return nil, fmt.Errorf("network config '%s' has no chain_id", networkConfig.Name)
	}
	if len(networkConfig.DefaultNodes) == 0 && networkConfig.NodeVariableName == "" {
		return nil, fmt.Errorf("network config '%s' has neither default_nodes nor node_variable_name", networkConfig.Name)
	}
	return NewGenericEtherscanNetwork(networkConfig), nil
}

func GetSupportedNetworks() []Network {
	return global().all()
}

func GetSupportedNetworkNames() []string {
	return global().names()
}

func GetNetwork(name string) (Network, error) {
	return global().getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return global().getNetworkByID(id)
}

// AddNetwork registers the network for this process and saves it to
// CustomNetworksDir so later runs pick it up.
func AddNetwork(network Network) error {
	content, err := network.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal network: %w", err)
	}
	if err := os.MkdirAll(CustomNetworksDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", CustomNetworksDir, err)
	}
	path := filepath.Join(CustomNetworksDir, fmt.Sprintf("%s.json", network.GetName()))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write the new network to file: %w", err)
	}
	global().add(network)
	return nil
}
