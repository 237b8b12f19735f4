package networks

var (
	BaseMainnet Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
		Name:               "base",
		AlternativeNames:   []string{},
		ChainID:            8453,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		BlockTime:          2,
		NodeVariableName:   "BASE_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"public-base": "https://mainnet.base.org",
		},
	})

	BaseSepolia Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
		Name:               "base-sepolia",
		AlternativeNames:   []string{"basesepolia"},
		ChainID:            84532,
		NativeTokenSymbol:  "ETH",
		NativeTokenDecimal: 18,
		BlockTime:          2,
		NodeVariableName:   "BASE_SEPOLIA_NODE",
		DefaultNodes: map[string]string{
			"public-base-sepolia": "https://sepolia.base.org",
		},
	})
)
