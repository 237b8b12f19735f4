// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	cmdutil "github.com/tranvictor/schoolfactory/cmd/util"
	"github.com/tranvictor/schoolfactory/config"
	"github.com/tranvictor/schoolfactory/contracts/schoolfactory"
	"github.com/tranvictor/schoolfactory/networks"
	"github.com/tranvictor/schoolfactory/ui"
	"github.com/tranvictor/schoolfactory/util/logger"
)

var (
	appUI   ui.UI           = ui.NewTerminalUI()
	backend cmdutil.Backend = cmdutil.DefaultBackend{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "schoolfactory",
	Short: "Read, drive and audit the SchoolFactory contract",
	Long: fmt.Sprintf(`schoolfactory is a command line tool for the SchoolFactory contract
deployed at %s. It can:

	1. Show the contract interface with selectors and topics, and encode
	calldata for any of its functions.

	2. Read the number of deployed school systems and the school systems of
	an owner.

	3. Create a school system with a keystore account, wait for it to be
	mined and decode the deployed address from the receipt.

	4. Scan SchoolSystemDeployed events into a local search index.

	5. Verify that the deployed contract still matches the interface this
	tool was built with.

The network defaults to %s. Every network reads a custom node from its
own env var (see "schoolfactory networks list"), --node replaces all nodes.
Settings can also live in %s or in SCHOOLFACTORY_* env vars.`,
		schoolfactory.Address,
		networks.DefaultNetwork,
		config.DefaultConfigFile(),
	),
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: rootPreprocess,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", networks.DefaultNetwork, "network name, alternative name or chain id. See \"schoolfactory networks list\".")
	rootCmd.PersistentFlags().StringVar(&config.Node, "node", "", "rpc url replacing every default node of the network")
	rootCmd.PersistentFlags().BoolVar(&config.Debug, "debug", false, "log debug messages to stderr")
	rootCmd.PersistentFlags().StringVar(&config.ConfigFile, "config", config.DefaultConfigFile(), "yaml config file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Sync()
	if err != nil {
		appUI.Error("Error: %s", err)
		os.Exit(1)
	}
}
