package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/schoolfactory/bleve"
	cmdutil "github.com/tranvictor/schoolfactory/cmd/util"
	sfcommon "github.com/tranvictor/schoolfactory/common"
	"github.com/tranvictor/schoolfactory/contracts/schoolfactory"
	"github.com/tranvictor/schoolfactory/factory"
	"github.com/tranvictor/schoolfactory/networks"
	"github.com/tranvictor/schoolfactory/ui"
	"github.com/tranvictor/schoolfactory/util/account"
	"github.com/tranvictor/schoolfactory/util/cache"
	"github.com/tranvictor/schoolfactory/util/reader"
)

const testKeyHex = "b71c71a67e1177ad4e901695e1b4b9ee17ae16c6668d313eac2f96dbcda3f291"

var (
	factoryAddr = schoolfactory.ContractAddress()
	ownerAddr   = common.HexToAddress("0x4838B106FCe9647Bdf1E7877BF73cE8B0BAD5f97")
	schoolA     = common.HexToAddress("0x9642b23Ed1E01Df1092B92641051881a322F5D4E")
	schoolB     = common.HexToAddress("0x1111111111111111111111111111111111111111")
	gwei        = big.NewInt(1_000_000_000)
)

// fakeChain answers eth_call by method name and walks a tx through the
// statuses in txStatuses, one per poll.
type fakeChain struct {
	mu         sync.Mutex
	responses  map[string][]byte
	code       []byte
	logs       []types.Log
	txs        map[common.Hash]*sfcommon.Transaction
	block      uint64
	txStatuses []string
	receipt    *types.Receipt
	polls      int
}

func (c *fakeChain) EthCall(atBlock int64, from string, caddr string, data []byte) ([]byte, error) {
	entry, err := schoolfactory.MethodBySelector(data)
	if err != nil {
		return nil, err
	}
	return c.responses[entry.Name], nil
}

func (c *fakeChain) ReadContractWithABI(result interface{}, caddr string, a *abi.ABI, method string, args ...interface{}) error {
	data, err := a.Pack(method, args...)
	if err != nil {
		return err
	}
	response, err := c.EthCall(-1, reader.DEFAULT_ADDRESS, caddr, data)
	if err != nil {
		return err
	}
	if len(response) == 0 {
		return reader.ErrEmptyResponse
	}
	return a.UnpackIntoInterface(result, method, response)
}

func (c *fakeChain) GetCode(address string) ([]byte, error) {
	return c.code, nil
}

func (c *fakeChain) GetLogs(fromBlock, toBlock int64, addresses []string, topic string) ([]types.Log, error) {
	result := []types.Log{}
	for _, l := range c.logs {
		if int64(l.BlockNumber) >= fromBlock && int64(l.BlockNumber) <= toBlock {
			result = append(result, l)
		}
	}
	return result, nil
}

func (c *fakeChain) TransactionByHash(txHash string) (*sfcommon.Transaction, bool, error) {
	tx, found := c.txs[common.HexToHash(txHash)]
	if !found {
		return nil, false, ethereum.NotFound
	}
	return tx, false, nil
}

func (c *fakeChain) CurrentBlock() (uint64, error) {
	return c.block, nil
}

func (c *fakeChain) GetPendingNonce(address string) (uint64, error) {
	return 7, nil
}

func (c *fakeChain) SuggestedGasTipCap() (*big.Int, error) {
	return new(big.Int).Set(gwei), nil
}

func (c *fakeChain) HeaderByNumber(number int64) (*types.Header, error) {
	return &types.Header{
		Number:  big.NewInt(100),
		BaseFee: new(big.Int).Mul(gwei, big.NewInt(10)),
	}, nil
}

func (c *fakeChain) EstimateGas(from, to string, value *big.Int, data []byte) (uint64, error) {
	return 150000, nil
}

func (c *fakeChain) TxInfoFromHash(tx string) (sfcommon.TxInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	status := sfcommon.TxStatusNotFound
	if len(c.txStatuses) > 0 {
		i := c.polls
		if i >= len(c.txStatuses) {
			i = len(c.txStatuses) - 1
		}
		status = c.txStatuses[i]
	}
	c.polls++
	switch status {
	case sfcommon.TxStatusDone, sfcommon.TxStatusReverted:
		return sfcommon.TxInfo{Status: status, Receipt: c.receipt}, nil
	}
	return sfcommon.TxInfo{Status: status}, nil
}

type fakeBroadcaster struct {
	txs []*types.Transaction
}

func (b *fakeBroadcaster) BroadcastTx(tx *types.Transaction) (string, bool, error) {
	b.txs = append(b.txs, tx)
	return tx.Hash().Hex(), true, nil
}

type fakeIndex struct {
	indexed map[string][]sfcommon.SchoolSystem
	hits    []bleve.Hit
	queries []string
}

func (i *fakeIndex) Index(network string, schools []sfcommon.SchoolSystem) error {
	i.indexed[network] = append(i.indexed[network], schools...)
	return nil
}

func (i *fakeIndex) Search(input string, limit int) ([]bleve.Hit, error) {
	i.queries = append(i.queries, input)
	if limit < len(i.hits) {
		return i.hits[:limit], nil
	}
	return i.hits, nil
}

type fakeExplorer struct {
	abi   string
	err   error
	calls int
}

func (e *fakeExplorer) GetABIString(address string) (string, error) {
	e.calls++
	return e.abi, e.err
}

type fakeBackend struct {
	chain       *fakeChain
	broadcaster *fakeBroadcaster
	explorer    *fakeExplorer
	cache       *cache.FileCache
	index       *fakeIndex
	indexErr    error
	nodes       []string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	return &fakeBackend{
		chain:       &fakeChain{responses: map[string][]byte{}, txs: map[common.Hash]*sfcommon.Transaction{}},
		broadcaster: &fakeBroadcaster{},
		explorer:    &fakeExplorer{err: errors.New("contract source code not verified")},
		cache:       cache.Open(filepath.Join(t.TempDir(), "cache.json")),
		index:       &fakeIndex{indexed: map[string][]sfcommon.SchoolSystem{}},
	}
}

func (b *fakeBackend) Reader(network networks.Network, node string) (cmdutil.ChainReader, error) {
	b.nodes = append(b.nodes, node)
	return b.chain, nil
}

func (b *fakeBackend) Broadcaster(network networks.Network, node string) (cmdutil.TxBroadcaster, error) {
	return b.broadcaster, nil
}

func (b *fakeBackend) Explorer(network networks.Network, apiKey string) factory.ABISource {
	return b.explorer
}

func (b *fakeBackend) Cache() *cache.FileCache {
	return b.cache
}

func (b *fakeBackend) Index() (cmdutil.SchoolIndex, error) {
	if b.indexErr != nil {
		return nil, b.indexErr
	}
	return b.index, nil
}

// resetCommands puts every flag back to its default and drops the contexts
// a previous run attached, cobra keeps both on the package level commands.
func resetCommands(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	c.SetContext(nil) //nolint:staticcheck
	for _, child := range c.Commands() {
		resetCommands(child)
	}
}

func executeCommand(t *testing.T, b *fakeBackend, rec *ui.RecordingUI, args ...string) error {
	t.Helper()
	oldUI, oldBackend, oldPoll := appUI, backend, monitorPoll
	t.Cleanup(func() {
		appUI, backend, monitorPoll = oldUI, oldBackend, oldPoll
		_, _ = networks.SetNetwork(networks.DefaultNetwork)
	})
	appUI, backend, monitorPoll = rec, b, time.Millisecond

	resetCommands(rootCmd)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	return rootCmd.ExecuteContext(context.Background())
}

func writeKeystore(t *testing.T, password string) (string, common.Address) {
	t.Helper()
	privkey, err := crypto.HexToECDSA(testKeyHex)
	require.NoError(t, err)
	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(privkey.PublicKey),
		PrivateKey: privkey,
	}
	content, err := keystore.EncryptKey(key, password, keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "keystore.json")
	require.NoError(t, os.WriteFile(file, content, 0o600))
	return file, key.Address
}

func deployedLog(school common.Address, block uint64, tx common.Hash, index uint) types.Log {
	return types.Log{
		Address: factoryAddr,
		Topics: []common.Hash{
			schoolfactory.SchoolSystemDeployedTopic(),
			common.BytesToHash(school.Bytes()),
			common.BytesToHash(ownerAddr.Bytes()),
		},
		BlockNumber: block,
		TxHash:      tx,
		Index:       index,
	}
}

func createTx(t *testing.T, name, symbol string) *sfcommon.Transaction {
	t.Helper()
	data, err := schoolfactory.PackCreateSchoolSystem(name, symbol)
	require.NoError(t, err)
	return &sfcommon.Transaction{Transaction: types.NewTx(&types.DynamicFeeTx{
		ChainID: big.NewInt(11155111),
		To:      &factoryAddr,
		Gas:     500000,
		Data:    data,
	})}
}

func TestInterfaceCommand(t *testing.T) {
	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, newFakeBackend(t), rec, "interface"))

	assert.Contains(t, rec.Messages("KeyValue"), "Address: "+schoolfactory.Address)
	assert.Equal(t, []string{"# | Kind | Signature | Selector/Topic | Mutability | Outputs"}, rec.Messages("TableHeader"))
	assert.Equal(t, []string{
		"0 | Event | SchoolSystemDeployed(address,address) | 0x564d03cb02f204bfe54089f729051a26713bb700b4890953307dea3bed9c32e9 | - | -",
		"1 | Function | createSchoolSystem(string,string) | 0xdcf50583 | Nonpayable | ()",
		"2 | Function | getDeployedSchoolSystemsCount() | 0x02169518 | View | (uint256)",
		"3 | Function | getSchoolsByOwner(address) | 0x8f564723 | View | (address[])",
	}, rec.Messages("TableRow"))
}

func TestInterfaceCommandJSON(t *testing.T) {
	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, newFakeBackend(t), rec, "interface", "--json"))
	assert.Equal(t, schoolfactory.ABIJSON()+"\n", rec.Output())
	assert.Empty(t, rec.Messages("TableRow"))
}

func TestEncodeCommand(t *testing.T) {
	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, newFakeBackend(t), rec, "encode", "createSchoolSystem", "Springfield", "SPS"))
	expected, err := schoolfactory.PackCreateSchoolSystem("Springfield", "SPS")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Function: createSchoolSystem(string,string)",
		"Selector: 0xdcf50583",
		"Calldata: " + hexutil.Encode(expected),
	}, rec.Messages("KeyValue"))

	rec = ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, newFakeBackend(t), rec, "encode", "getSchoolsByOwner", ownerAddr.Hex()))
	assert.Contains(t, rec.Messages("KeyValue"), "Calldata: 0x8f564723"+"0000000000000000000000004838b106fce9647bdf1e7877bf73ce8b0bad5f97")
}

func TestEncodeCommandErrors(t *testing.T) {
	err := executeCommand(t, newFakeBackend(t), ui.NewRecordingUI(), "encode", "destroySchoolSystem")
	assert.ErrorIs(t, err, schoolfactory.ErrUnknownEntry)

	err = executeCommand(t, newFakeBackend(t), ui.NewRecordingUI(), "encode", "SchoolSystemDeployed")
	assert.ErrorContains(t, err, "is an event")

	err = executeCommand(t, newFakeBackend(t), ui.NewRecordingUI(), "encode", "createSchoolSystem", "Springfield")
	assert.ErrorContains(t, err, "expected 2 params, got 1")
}

func TestCountCommand(t *testing.T) {
	b := newFakeBackend(t)
	b.chain.responses[schoolfactory.MethodGetDeployedSchoolSystemsCount] = common.LeftPadBytes(big.NewInt(42).Bytes(), 32)
	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "count"))
	assert.Equal(t, []string{
		"Network: sepolia",
		"Factory: " + schoolfactory.Address,
		"Deployed school systems: 42",
	}, rec.Messages("KeyValue"))
	assert.Equal(t, []string{""}, b.nodes)

	err := executeCommand(t, newFakeBackend(t), ui.NewRecordingUI(), "count")
	assert.ErrorIs(t, err, factory.ErrNoCode)
}

func TestNetworkFlag(t *testing.T) {
	b := newFakeBackend(t)
	b.chain.responses[schoolfactory.MethodGetDeployedSchoolSystemsCount] = common.LeftPadBytes(big.NewInt(1).Bytes(), 32)

	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "count", "-k", "11155111", "--node", "http://localhost:8545"))
	assert.Contains(t, rec.Messages("KeyValue"), "Network: sepolia")
	assert.Equal(t, []string{"http://localhost:8545"}, b.nodes)

	err := executeCommand(t, b, ui.NewRecordingUI(), "count", "-k", "sepoliaa")
	assert.ErrorIs(t, err, networks.ErrNetworkNotFound)
}

func TestSchoolsCommand(t *testing.T) {
	packed, err := schoolfactory.MustABI().Methods[schoolfactory.MethodGetSchoolsByOwner].Outputs.Pack([]common.Address{schoolA, schoolB})
	require.NoError(t, err)
	b := newFakeBackend(t)
	b.chain.responses[schoolfactory.MethodGetSchoolsByOwner] = packed

	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "schools", ownerAddr.Hex()))
	assert.Equal(t, []string{"1 | " + schoolA.Hex(), "2 | " + schoolB.Hex()}, rec.Messages("TableRow"))

	err = executeCommand(t, b, ui.NewRecordingUI(), "schools", "springfield")
	assert.ErrorIs(t, err, factory.ErrInvalidAddress)

	empty, err := schoolfactory.MustABI().Methods[schoolfactory.MethodGetSchoolsByOwner].Outputs.Pack([]common.Address{})
	require.NoError(t, err)
	b.chain.responses[schoolfactory.MethodGetSchoolsByOwner] = empty
	rec = ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "schools", ownerAddr.Hex()))
	assert.True(t, rec.HasMessage("owns no school system"))
}

func TestCreateDryRun(t *testing.T) {
	file, sender := writeKeystore(t, "correct horse")
	t.Setenv(account.PasswordVariable, "correct horse")
	b := newFakeBackend(t)

	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "create", "Springfield", "SPS", "--keystore", file, "--dry", "--yes", "--extra-gas", "20000"))
	assert.Empty(t, b.broadcaster.txs)
	assert.Empty(t, rec.Messages("Confirm"))
	assert.Contains(t, rec.Messages("KeyValue"), "From: "+sender.Hex())
	assert.Contains(t, rec.Messages("KeyValue"), "Max fee: 21 gwei")

	critical := rec.Messages("Critical")
	require.Len(t, critical, 2)
	assert.Contains(t, critical[0], "not broadcasted")
	raw, err := hexutil.Decode(critical[1])
	require.NoError(t, err)
	tx := &types.Transaction{}
	require.NoError(t, tx.UnmarshalBinary(raw))

	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(11155111)), tx)
	require.NoError(t, err)
	assert.Equal(t, sender, from)
	assert.Equal(t, factoryAddr, *tx.To())
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(170000), tx.Gas())
	expected, err := schoolfactory.PackCreateSchoolSystem("Springfield", "SPS")
	require.NoError(t, err)
	assert.Equal(t, expected, tx.Data())
}

func TestCreateWaitsForTheSchoolSystem(t *testing.T) {
	file, _ := writeKeystore(t, "correct horse")
	t.Setenv(account.PasswordVariable, "correct horse")
	b := newFakeBackend(t)
	txHash := common.HexToHash("0xfeed")
	l := deployedLog(schoolA, 101, txHash, 0)
	b.chain.txStatuses = []string{sfcommon.TxStatusNotFound, sfcommon.TxStatusPending, sfcommon.TxStatusDone}
	b.chain.receipt = &types.Receipt{
		Status:            types.ReceiptStatusSuccessful,
		BlockNumber:       big.NewInt(101),
		GasUsed:           100000,
		EffectiveGasPrice: new(big.Int).Mul(gwei, big.NewInt(2)),
		Logs:              []*types.Log{&l},
	}

	rec := ui.NewRecordingUI("y")
	require.NoError(t, executeCommand(t, b, rec, "create", "Springfield", "SPS", "--keystore", file))
	require.Len(t, b.broadcaster.txs, 1)
	assert.Equal(t, []string{"Sign this transaction?"}, rec.Messages("Confirm"))
	assert.Contains(t, rec.Messages("Critical"), "Broadcasted: "+b.broadcaster.txs[0].Hash().Hex())
	require.Len(t, rec.Messages("Success"), 1)
	assert.Contains(t, rec.Messages("Success")[0], schoolA.Hex())
	assert.True(t, rec.HasMessage("Gas cost: 0.0002 ETH"))

	indexed := b.index.indexed["sepolia"]
	require.Len(t, indexed, 1)
	assert.Equal(t, schoolA, indexed[0].Address)
	assert.Equal(t, "Springfield", indexed[0].Name)
	assert.Equal(t, "SPS", indexed[0].Symbol)
}

func TestCreateFailures(t *testing.T) {
	file, _ := writeKeystore(t, "correct horse")
	t.Setenv(account.PasswordVariable, "correct horse")

	t.Run("declined", func(t *testing.T) {
		b := newFakeBackend(t)
		rec := ui.NewRecordingUI("n")
		require.NoError(t, executeCommand(t, b, rec, "create", "Springfield", "SPS", "--keystore", file))
		assert.Empty(t, b.broadcaster.txs)
		assert.Equal(t, []string{"Aborted."}, rec.Messages("Warn"))
	})

	t.Run("reverted", func(t *testing.T) {
		b := newFakeBackend(t)
		b.chain.txStatuses = []string{sfcommon.TxStatusReverted}
		b.chain.receipt = &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(101)}
		err := executeCommand(t, b, ui.NewRecordingUI(), "create", "Springfield", "SPS", "--keystore", file, "-y")
		assert.ErrorContains(t, err, "reverted")
		assert.Empty(t, b.index.indexed)
	})

	t.Run("no wait", func(t *testing.T) {
		b := newFakeBackend(t)
		require.NoError(t, executeCommand(t, b, ui.NewRecordingUI(), "create", "Springfield", "SPS", "--keystore", file, "-y", "--no-wait"))
		assert.Len(t, b.broadcaster.txs, 1)
		assert.Zero(t, b.chain.polls)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Setenv(account.PasswordVariable, "battery staple")
		err := executeCommand(t, newFakeBackend(t), ui.NewRecordingUI(), "create", "Springfield", "SPS", "--keystore", file, "-y")
		assert.ErrorContains(t, err, "couldn't unlock")
	})

	t.Run("no keystore", func(t *testing.T) {
		t.Setenv("SCHOOLFACTORY_KEYSTORE", "")
		err := executeCommand(t, newFakeBackend(t), ui.NewRecordingUI(), "create", "Springfield", "SPS", "-y")
		assert.ErrorIs(t, err, ErrNoKeystore)
	})

	t.Run("bad tip", func(t *testing.T) {
		// rejected before the keystore is unlocked
		t.Setenv(account.PasswordVariable, "battery staple")
		for _, tip := range []string{"--tip=-5", "--tip=1e12", "--tip=+Inf"} {
			b := newFakeBackend(t)
			err := executeCommand(t, b, ui.NewRecordingUI(), "create", "Springfield", "SPS", "--keystore", file, "-y", tip)
			assert.ErrorIs(t, err, account.ErrInvalidTip, tip)
			assert.Empty(t, b.broadcaster.txs)
		}
	})

	t.Run("blank name", func(t *testing.T) {
		err := executeCommand(t, newFakeBackend(t), ui.NewRecordingUI(), "create", " ", "SPS", "--keystore", file, "-y")
		assert.ErrorIs(t, err, factory.ErrEmptyName)
	})
}

func TestEventsCommand(t *testing.T) {
	b := newFakeBackend(t)
	txA := common.HexToHash("0xaa")
	txB := common.HexToHash("0xbb")
	b.chain.block = 25
	b.chain.logs = []types.Log{deployedLog(schoolA, 5, txA, 0), deployedLog(schoolB, 15, txB, 1)}
	b.chain.txs[txA] = createTx(t, "Springfield", "SPS")
	output := filepath.Join(t.TempDir(), "report.json")

	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "events", "--chunk", "10", "-o", output))

	rows := rec.Messages("TableRow")
	require.Len(t, rows, 2)
	assert.True(t, strings.HasPrefix(rows[0], "5 | "+schoolA.Hex()+" | "+ownerAddr.Hex()+" | Springfield | SPS"))
	assert.True(t, strings.HasPrefix(rows[1], "15 | "+schoolB.Hex()+" | "+ownerAddr.Hex()+" | - | -"))
	assert.Contains(t, rec.Messages("Success"), "Found 2 school systems.")

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	report := factory.DeploymentReport{}
	require.NoError(t, json.Unmarshal(content, &report))
	assert.Equal(t, uint64(0), report.FromBlock)
	assert.Equal(t, uint64(25), report.ToBlock)
	assert.Equal(t, "sepolia", report.Network)
	require.Len(t, report.SchoolSystems, 2)
	assert.Equal(t, "Springfield", report.SchoolSystems[0].Name)
	assert.NotEmpty(t, report.RunID)

	assert.Len(t, b.index.indexed["sepolia"], 2)
}

func TestEventsCommandRangeAndNoIndex(t *testing.T) {
	b := newFakeBackend(t)
	b.chain.block = 1000
	b.chain.logs = []types.Log{deployedLog(schoolA, 5, common.HexToHash("0xaa"), 0), deployedLog(schoolB, 15, common.HexToHash("0xbb"), 1)}

	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "events", "--from", "10", "--to", "20", "--no-index"))
	assert.Len(t, rec.Messages("TableRow"), 1)
	assert.Empty(t, b.index.indexed)
	// the missing deploying tx only costs the metadata
	assert.True(t, strings.HasSuffix(rec.Messages("TableRow")[0], "| - | - | "+ui.ShortHex(common.HexToHash("0xbb").Hex())))

	rec = ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "events", "--from", "100", "--to", "200"))
	assert.True(t, rec.HasMessage("No school system deployed"))

	err := executeCommand(t, b, ui.NewRecordingUI(), "events", "--from", "30", "--to", "20")
	assert.ErrorContains(t, err, "invalid block range")
}

func TestEventsCommandIndexFailureIsAWarning(t *testing.T) {
	b := newFakeBackend(t)
	b.chain.block = 10
	b.chain.logs = []types.Log{deployedLog(schoolA, 5, common.HexToHash("0xaa"), 0)}
	b.indexErr = errors.New("index is locked by another process")

	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "events"))
	require.Len(t, rec.Messages("Warn"), 1)
	assert.Contains(t, rec.Messages("Warn")[0], "index is locked")
}

func TestSearchCommand(t *testing.T) {
	b := newFakeBackend(t)
	b.index.hits = []bleve.Hit{
		{SchoolSystem: sfcommon.SchoolSystem{Address: schoolA, Owner: ownerAddr, Name: "Springfield", Symbol: "SPS"}, Network: "sepolia", Score: 1.5},
		{SchoolSystem: sfcommon.SchoolSystem{Address: schoolB, Owner: ownerAddr}, Network: "sepolia", Score: 0.25},
	}

	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "search", "spring", "field", "--limit", "1"))
	assert.Equal(t, []string{"spring field"}, b.index.queries)
	assert.Equal(t, []string{
		schoolA.Hex() + " | Springfield | SPS | " + ownerAddr.Hex() + " | sepolia | 1.500",
	}, rec.Messages("TableRow"))

	b.index.hits = nil
	rec = ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "search", "shelbyville"))
	assert.True(t, rec.HasMessage(`Nothing matches "shelbyville"`))

	b.indexErr = errors.New("no such file")
	assert.Error(t, executeCommand(t, b, ui.NewRecordingUI(), "search", "shelbyville"))
}

func TestVerifyCommand(t *testing.T) {
	b := newFakeBackend(t)
	b.chain.code = []byte{0x60, 0x80}
	b.explorer = &fakeExplorer{abi: schoolfactory.ABIJSON()}

	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "verify"))
	assert.Contains(t, rec.Messages("KeyValue"), "Has code: yes (2 bytes)")
	assert.Contains(t, rec.Messages("KeyValue"), "Explorer ABI: yes")
	assert.Equal(t, []string{"The deployed factory matches the interface."}, rec.Messages("Success"))

	// served from the cache
	require.NoError(t, executeCommand(t, b, ui.NewRecordingUI(), "verify"))
	assert.Equal(t, 1, b.explorer.calls)
	require.NoError(t, executeCommand(t, b, ui.NewRecordingUI(), "verify", "--refresh"))
	assert.Equal(t, 2, b.explorer.calls)
}

func TestVerifyCommandDrift(t *testing.T) {
	partial, err := json.Marshal(schoolfactory.Interface()[:3])
	require.NoError(t, err)
	b := newFakeBackend(t)
	b.chain.code = []byte{0x60, 0x80}
	b.explorer = &fakeExplorer{abi: string(partial)}

	rec := ui.NewRecordingUI()
	err = executeCommand(t, b, rec, "verify")
	assert.ErrorIs(t, err, ErrDrift)
	assert.Equal(t, []string{"Missing On Chain | getSchoolsByOwner(address) | function"}, rec.Messages("TableRow"))

	b = newFakeBackend(t)
	rec = ui.NewRecordingUI()
	err = executeCommand(t, b, rec, "verify", "--json")
	assert.ErrorIs(t, err, ErrDrift)
	report := factory.DriftReport{}
	require.NoError(t, json.Unmarshal([]byte(rec.Output()), &report))
	assert.False(t, report.HasCode)
	assert.False(t, report.ExplorerABIAvailable)
	assert.Equal(t, "contract source code not verified", report.ExplorerError)
}

func TestVerifyCommandWithoutExplorer(t *testing.T) {
	b := newFakeBackend(t)
	b.chain.code = []byte{0x60, 0x80}

	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, b, rec, "verify"))
	assert.Contains(t, rec.Messages("KeyValue"), "Explorer ABI: no (contract source code not verified)")
	require.Len(t, rec.Messages("Warn"), 1)
}

func TestNetworksList(t *testing.T) {
	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, newFakeBackend(t), rec, "networks", "list"))
	assert.Len(t, rec.Messages("Section"), len(networks.GetSupportedNetworks()))
	assert.True(t, rec.HasMessage("Chain ID: 11155111"))
	assert.True(t, rec.HasMessage("Node env var: SEPOLIA_NODE"))
}

func TestNetworksAddRejectsDuplicates(t *testing.T) {
	raw := `{"name": "sepolia", "chain_id": 11155111, "default_nodes": {"local": "http://localhost:8545"}}`
	err := executeCommand(t, newFakeBackend(t), ui.NewRecordingUI(), "networks", "add", "--file", raw)
	assert.ErrorContains(t, err, "already exists")

	err = executeCommand(t, newFakeBackend(t), ui.NewRecordingUI(), "networks", "add", "--file", `{"chain_id": 1}`)
	assert.ErrorContains(t, err, "not a valid network config")
}

func TestVersionCommand(t *testing.T) {
	rec := ui.NewRecordingUI()
	require.NoError(t, executeCommand(t, newFakeBackend(t), rec, "version"))
	assert.Equal(t, []string{"Version: " + VERSION}, rec.Messages("Info"))
}

func TestResolveNetworkByAlternativeName(t *testing.T) {
	t.Cleanup(func() { _, _ = networks.SetNetwork(networks.DefaultNetwork) })
	n, err := resolveNetwork("eth-sepolia")
	require.NoError(t, err)
	assert.Equal(t, "sepolia", n.GetName())
	assert.Equal(t, "sepolia", networks.CurrentNetwork().GetName())

	n, err = resolveNetwork("1")
	require.NoError(t, err)
	assert.Equal(t, n, networks.CurrentNetwork())
}
