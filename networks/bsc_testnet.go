package networks

var BSCTestnet Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
	Name:               "bsc-test",
	AlternativeNames:   []string{"bsc-testnet", "chapel"},
	ChainID:            97,
	NativeTokenSymbol:  "tBNB",
	NativeTokenDecimal: 18,
	BlockTime:          3,
	NodeVariableName:   "BSC_TESTNET_NODE",
	DefaultNodes: map[string]string{
		"binance-seed-1": "https://data-seed-prebsc-1-s1.binance.org:8545",
		"binance-seed-2": "https://data-seed-prebsc-2-s1.binance.org:8545",
	},
})
