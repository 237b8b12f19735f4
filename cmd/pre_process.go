package cmd

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/schoolfactory/cmd/util"
	"github.com/tranvictor/schoolfactory/config"
	"github.com/tranvictor/schoolfactory/factory"
	"github.com/tranvictor/schoolfactory/networks"
	"github.com/tranvictor/schoolfactory/util/logger"
)

// resolveNetwork accepts a network name, one of its alternative names or
// its chain id.
func resolveNetwork(nameOrID string) (networks.Network, error) {
	if id, err := strconv.ParseUint(nameOrID, 10, 64); err == nil {
		n, err := networks.GetNetworkByID(id)
		if err != nil {
			return nil, err
		}
		nameOrID = n.GetName()
	}
	return networks.SetNetwork(nameOrID)
}

func rootPreprocess(cmd *cobra.Command, args []string) error {
	if err := config.Load(config.ConfigFile, cmd.Flags()); err != nil {
		return fmt.Errorf("couldn't load config %s: %w", config.ConfigFile, err)
	}
	if err := logger.Init(config.Debug); err != nil {
		return err
	}
	network, err := resolveNetwork(config.Network)
	if err != nil {
		return err
	}
	logger.L().Debugw("resolved settings",
		"network", network.GetName(),
		"chain_id", network.GetChainID(),
		"config", config.ConfigFile,
		"custom_node", config.Node != "",
	)
	return nil
}

func newFactory(network networks.Network, r cmdutil.ChainReader) *factory.SchoolFactory {
	return factory.NewSchoolFactory(r, network,
		factory.WithCache(backend.Cache()),
		factory.WithExplorer(backend.Explorer(network, config.ExplorerAPIKey)),
	)
}

// ReadPreprocess attaches a reader and the factory wrapper to the command.
func ReadPreprocess(cmd *cobra.Command, args []string) error {
	network := networks.CurrentNetwork()
	r, err := backend.Reader(network, config.Node)
	if err != nil {
		return fmt.Errorf("couldn't connect to %s: %w", network.GetName(), err)
	}
	cc := cmdutil.CmdContext{
		Network: network,
		ChainID: new(big.Int).SetUint64(network.GetChainID()),
		Reader:  r,
		Factory: newFactory(network, r),
	}
	cmd.SetContext(cmdutil.WithCmdContext(cmd.Context(), cc))
	return nil
}

// TxPreprocess is ReadPreprocess plus a broadcaster.
func TxPreprocess(cmd *cobra.Command, args []string) error {
	if err := ReadPreprocess(cmd, args); err != nil {
		return err
	}
	cc, _ := cmdutil.CmdContextFrom(cmd)
	b, err := backend.Broadcaster(cc.Network, config.Node)
	if err != nil {
		return err
	}
	cc.Broadcaster = b
	cmd.SetContext(cmdutil.WithCmdContext(cmd.Context(), cc))
	return nil
}

func cmdContext(cmd *cobra.Command) (cmdutil.CmdContext, error) {
	cc, ok := cmdutil.CmdContextFrom(cmd)
	if !ok {
		return cc, fmt.Errorf("%s ran without its pre-run hook", cmd.Name())
	}
	return cc, nil
}
