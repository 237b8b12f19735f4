package networks

var (
	EthereumMainnet Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
		Name:               "mainnet",
		AlternativeNames:   []string{"ethereum"},
		ChainID:            1,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		BlockTime:          12,
		NodeVariableName:   "ETHEREUM_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"mainnet-publicnode": "https://ethereum-rpc.publicnode.com",
			"mainnet-llamarpc":   "https://eth.llamarpc.com",
		},
	})

	Sepolia Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
		Name:               "sepolia",
		AlternativeNames:   []string{"eth-sepolia"},
		ChainID:            11155111,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		BlockTime:          12,
		NodeVariableName:   "SEPOLIA_NODE",
		DefaultNodes: map[string]string{
			"sepolia-publicnode": "https://ethereum-sepolia-rpc.publicnode.com",
			"sepolia-drpc":       "https://sepolia.drpc.org",
		},
	})

	Holesky Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
		Name:               "holesky",
		AlternativeNames:   []string{"eth-holesky"},
		ChainID:            17000,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		BlockTime:          12,
		NodeVariableName:   "HOLESKY_NODE",
		DefaultNodes: map[string]string{
			"holesky-publicnode": "https://ethereum-holesky-rpc.publicnode.com",
		},
	})
)
