package cmd

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	sfcommon "github.com/tranvictor/schoolfactory/common"
	"github.com/tranvictor/schoolfactory/config"
	"github.com/tranvictor/schoolfactory/util/account"
	"github.com/tranvictor/schoolfactory/util/logger"
	"github.com/tranvictor/schoolfactory/util/monitor"
)

// monitorPoll is how often a broadcasted tx is checked.
var monitorPoll = monitor.DEFAULT_POLL_INTERVAL

var ErrNoKeystore = errors.New("no keystore, pass --keystore or set keystore in the config file")

func openAccount() (*account.Account, error) {
	if config.Keystore == "" {
		return nil, ErrNoKeystore
	}
	pwd, err := account.ReadPassword("Keystore password: ", appUI.Writer())
	if err != nil {
		return nil, err
	}
	acc, err := account.NewKeystoreAccount(config.Keystore, pwd)
	if err != nil {
		return nil, fmt.Errorf("couldn't unlock %s: %w", config.Keystore, err)
	}
	return acc, nil
}

var createCmd = &cobra.Command{
	Use:   "create <name> <symbol>",
	Short: "Deploy a new school system through the factory",
	Long: `Build a createSchoolSystem transaction from the keystore account, show it for
review, sign it and broadcast it to every node of the network. Unless
--no-wait is given the command waits for the tx to be mined and prints the
address of the new school system from the SchoolSystemDeployed event.

The keystore password is read from ` + account.PasswordVariable + ` when set,
otherwise it is prompted for.`,
	Args:    cobra.ExactArgs(2),
	PreRunE: TxPreprocess,
	RunE: func(cmd *cobra.Command, args []string) error {
		cc, err := cmdContext(cmd)
		if err != nil {
			return err
		}
		name, symbol := args[0], args[1]
		data, err := cc.Factory.CreateSchoolSystemData(name, symbol)
		if err != nil {
			return err
		}
		if err := account.ValidateTip(config.TipGas); err != nil {
			return err
		}
		acc, err := openAccount()
		if err != nil {
			return err
		}
		tx, err := account.BuildTx(cc.Reader, account.TxParams{
			From:     acc.Address(),
			To:       common.HexToAddress(cc.Factory.Address),
			Value:    big.NewInt(0),
			Data:     data,
			ChainID:  cc.ChainID,
			ExtraGas: config.ExtraGasLimit,
			TipGwei:  config.TipGas,
		})
		if err != nil {
			return err
		}

		appUI.Section("createSchoolSystem")
		appUI.KeyValue([][2]string{
			{"Network", fmt.Sprintf("%s (chain id %s)", cc.Network.GetName(), cc.ChainID)},
			{"From", acc.AddressHex()},
			{"To", cc.Factory.Address},
			{"Name", fmt.Sprintf("%q", name)},
			{"Symbol", fmt.Sprintf("%q", symbol)},
			{"Nonce", fmt.Sprintf("%d", tx.Nonce())},
			{"Gas limit", fmt.Sprintf("%d", tx.Gas())},
			{"Max tip", sfcommon.WeiToGweiString(tx.GasTipCap()) + " gwei"},
			{"Max fee", sfcommon.WeiToGweiString(tx.GasFeeCap()) + " gwei"},
			{"Calldata", hexutil.Encode(data)},
		})
		if !config.YesToAll && !appUI.Confirm("Sign this transaction?", false) {
			appUI.Warn("Aborted.")
			return nil
		}

		signed, err := acc.SignTx(tx, cc.ChainID)
		if err != nil {
			return fmt.Errorf("couldn't sign the tx: %w", err)
		}
		if config.DontBroadcast {
			raw, err := signed.MarshalBinary()
			if err != nil {
				return err
			}
			appUI.Critical("Signed tx %s, not broadcasted:", signed.Hash().Hex())
			appUI.Critical("%s", hexutil.Encode(raw))
			return nil
		}

		hash, broadcasted, err := cc.Broadcaster.BroadcastTx(signed)
		if !broadcasted {
			return fmt.Errorf("couldn't broadcast %s: %w", hash, err)
		}
		if err != nil {
			logger.L().Debugw("some nodes rejected the tx", "tx", hash, "err", err)
		}
		appUI.Critical("Broadcasted: %s", hash)
		if config.DontWaitToBeMined {
			return nil
		}

		stop := appUI.Spinner(fmt.Sprintf("waiting for %s to be mined", hash))
		info := monitor.NewGenericTxMonitor(cc.Reader).
			WithIntervals(monitorPoll, monitor.DEFAULT_LOST_AFTER).
			BlockingWait(cmd.Context(), hash)
		stop()

		switch info.Status {
		case sfcommon.TxStatusDone:
		case sfcommon.TxStatusReverted:
			return fmt.Errorf("tx %s reverted", hash)
		case sfcommon.TxStatusLost:
			return fmt.Errorf("tx %s was never seen by the nodes, it may have been dropped", hash)
		default:
			return fmt.Errorf("stopped waiting for %s, status %s", hash, info.Status)
		}

		schools, err := cc.Factory.SchoolSystemsFromReceipt(info.Receipt)
		if err != nil {
			return err
		}
		if len(schools) == 0 {
			appUI.Warn("Tx %s was mined but the factory emitted no SchoolSystemDeployed event.", hash)
			return nil
		}
		for i := range schools {
			schools[i].Name = name
			schools[i].Symbol = symbol
			appUI.Success("School system %s deployed in block %d, owner %s", schools[i].Address.Hex(), schools[i].BlockNumber, schools[i].Owner.Hex())
		}
		appUI.Info("Gas cost: %s %s", sfcommon.BigToFloatString(info.GasCost(), cc.Network.GetNativeTokenDecimal()), cc.Network.GetNativeTokenSymbol())
		indexSchools(cc.Network.GetName(), schools)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&config.Keystore, "keystore", "", "keystore json file of the sender")
	createCmd.Flags().Uint64Var(&config.ExtraGasLimit, "extra-gas", 0, "gas added on top of the node estimate")
	createCmd.Flags().Float64Var(&config.TipGas, "tip", 0, "priority fee in gwei, 0 uses the node suggestion")
	createCmd.Flags().BoolVar(&config.DontBroadcast, "dry", false, "sign and print the raw tx without broadcasting it")
	createCmd.Flags().BoolVar(&config.DontWaitToBeMined, "no-wait", false, "return right after broadcasting")
	createCmd.Flags().BoolVarP(&config.YesToAll, "yes", "y", false, "don't ask for confirmation")
	rootCmd.AddCommand(createCmd)
}
