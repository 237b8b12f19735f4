package networks

var PolygonAmoy Network = NewGenericEtherscanNetwork(GenericEtherscanNetworkConfig{
	Name:               "polygon-amoy",
	AlternativeNames:   []string{"amoy"},
	ChainID:            80002,
	NativeTokenSymbol:  "POL",
	NativeTokenDecimal: 18,
	BlockTime:          2,
	NodeVariableName:   "POLYGON_AMOY_NODE",
	DefaultNodes: map[string]string{
		"polygon-amoy": "https://rpc-amoy.polygon.technology",
	},
})
