package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/schoolfactory/networks"
	"github.com/tranvictor/schoolfactory/util/reader"
)

var (
	NetworkConfig string
	NetworkForce  bool
)

// readNetworkConfig accepts either a json object or the path of a json file.
func readNetworkConfig(input string) (networks.Network, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("pass the network json or its file path with --file")
	}
	content := []byte(input)
	if !strings.HasPrefix(input, "{") {
		var err error
		content, err = os.ReadFile(input)
		if err != nil {
			return nil, fmt.Errorf("couldn't read the network file: %w", err)
		}
	}
	n, err := networks.NewNetworkFromJSON(content)
	if err != nil {
		return nil, fmt.Errorf("not a valid network config: %w", err)
	}
	return n, nil
}

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a network to the supported networks locally",
	Long: `--file takes a network config json file path OR the json itself:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1"],
		"chain_id": 1,
		"native_token_symbol": "ETH",
		"native_token_decimal": 18,
		"block_time": 12,
		"node_variable_name": "NETWORK_NAME_NODE",
		"default_nodes": {
			"node_name_1": "node_url_1"
		},
		"block_explorer_api_key_variable_name": "ETHERSCAN_API_KEY",
		"block_explorer_api_url": "https://api.etherscan.io/v2/api"
	}

The network is saved to ` + networks.CustomNetworksDir + ` and available to every later run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		newNetwork, err := readNetworkConfig(NetworkConfig)
		if err != nil {
			return err
		}
		allNames := append([]string{newNetwork.GetName()}, newNetwork.GetAlternativeNames()...)
		for _, name := range allNames {
			if _, err := networks.GetNetwork(name); err == nil {
				if !NetworkForce {
					return fmt.Errorf("network with name %s already exists, use --force to replace it", name)
				}
				appUI.Warn("Network with name %s already exists, it will be replaced.", name)
			}
		}
		if err := networks.AddNetwork(newNetwork); err != nil {
			return fmt.Errorf("failed to add the network: %w", err)
		}
		appUI.Success("Network %s with chain ID %d added.", newNetwork.GetName(), newNetwork.GetChainID())
		return nil
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every supported network and its nodes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for i, n := range networks.GetSupportedNetworks() {
			appUI.Section(fmt.Sprintf("%d. %s", i+1, n.GetName()))
			rows := [][2]string{
				{"Chain ID", fmt.Sprintf("%d", n.GetChainID())},
				{"Native token", n.GetNativeTokenSymbol()},
			}
			if alt := n.GetAlternativeNames(); len(alt) > 0 {
				rows = append(rows, [2]string{"Also known as", strings.Join(alt, ", ")})
			}
			if v := n.GetNodeVariableName(); v != "" {
				rows = append(rows, [2]string{"Node env var", v})
			}
			nodes, err := reader.GetNodes(n, "")
			if err != nil {
				rows = append(rows, [2]string{"Nodes", err.Error()})
			} else {
				names := []string{}
				for name := range nodes {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					rows = append(rows, [2]string{"Node " + name, nodes[name]})
				}
			}
			appUI.Indent().KeyValue(rows)
		}
		appUI.Info("Add a network with \"schoolfactory networks add\", remove one by deleting its json file in %s.", networks.CustomNetworksDir)
		return nil
	},
}

var networkCmd = &cobra.Command{
	Use:     "networks",
	Aliases: []string{"network"},
	Short:   "Manage the networks schoolfactory supports",
}

func init() {
	addNetworkCmd.Flags().StringVarP(&NetworkConfig, "file", "f", "", "network config json file path, or the json itself")
	addNetworkCmd.Flags().BoolVar(&NetworkForce, "force", false, "replace networks with the same name")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
