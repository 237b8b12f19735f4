package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"go.uber.org/zap"

	sfcommon "github.com/tranvictor/schoolfactory/common"
	"github.com/tranvictor/schoolfactory/contracts/schoolfactory"
)

const DEFAULT_CHUNK_SIZE uint64 = 5000

// DeploymentReport is the result of one ScanDeployments run.
type DeploymentReport struct {
	RunID         string                  `json:"run_id"`
	Network       string                  `json:"network"`
	ChainID       uint64                  `json:"chain_id"`
	Factory       string                  `json:"factory"`
	FromBlock     uint64                  `json:"from_block"`
	ToBlock       uint64                  `json:"to_block"`
	ScannedAt     time.Time               `json:"scanned_at"`
	SchoolSystems []sfcommon.SchoolSystem `json:"school_systems"`
}

// Windows splits [from, to] into consecutive inclusive ranges of at most
// chunk blocks.
func Windows(from, to, chunk uint64) [][2]uint64 {
	if chunk == 0 {
		chunk = DEFAULT_CHUNK_SIZE
	}
	result := [][2]uint64{}
	for start := from; start <= to; {
		end := start + chunk - 1
		if end > to || end < start {
			end = to
		}
		result = append(result, [2]uint64{start, end})
		if end == to {
			break
		}
		start = end + 1
	}
	return result
}

func (f *SchoolFactory) logsInWindow(ctx context.Context, start, end uint64) ([]types.Log, error) {
	return retry.DoWithData(
		func() ([]types.Log, error) {
			return f.reader.GetLogs(
				int64(start), int64(end),
				[]string{f.Address},
				schoolfactory.SchoolSystemDeployedTopic().Hex(),
			)
		},
		retry.Context(ctx),
		retry.Attempts(f.retryAttempts),
		retry.Delay(f.retryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			f.lggr.Warnw("retrying eth_getLogs", "from", start, "to", end, "attempt", attempt+1, "err", err)
		}),
	)
}

// ScanDeployments collects every SchoolSystemDeployed log in [from, to],
// querying chunk blocks at a time. A window that still fails after the
// configured retries aborts the scan.
func (f *SchoolFactory) ScanDeployments(ctx context.Context, from, to, chunk uint64) (*DeploymentReport, error) {
	if to < from {
		return nil, fmt.Errorf("invalid block range: from %d is after to %d", from, to)
	}
	report := &DeploymentReport{
		RunID:         uuid.NewString(),
		Network:       f.Network.GetName(),
		ChainID:       f.Network.GetChainID(),
		Factory:       common.HexToAddress(f.Address).Hex(),
		FromBlock:     from,
		ToBlock:       to,
		ScannedAt:     time.Now().UTC(),
		SchoolSystems: []sfcommon.SchoolSystem{},
	}
	lggr := f.lggr.With("run_id", report.RunID)
	factory := common.HexToAddress(f.Address)

	for _, w := range Windows(from, to, chunk) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logs, err := f.logsInWindow(ctx, w[0], w[1])
		if err != nil {
			return nil, fmt.Errorf("reading logs in blocks %d-%d: %w", w[0], w[1], err)
		}
		lggr.Debugw("scanned window", "from", w[0], "to", w[1], "logs", len(logs))
		for _, l := range logs {
			if l.Removed || l.Address != factory || !schoolfactory.IsSchoolSystemDeployed(l) {
				continue
			}
			s, err := f.schoolSystemFromLog(l)
			if err != nil {
				lggr.Warnw("skipping undecodable log", "tx", l.TxHash.Hex(), "index", l.Index, "err", err)
				continue
			}
			report.SchoolSystems = append(report.SchoolSystems, s)
		}
	}
	f.recoverMetadata(lggr, report.SchoolSystems)
	return report, nil
}

type metadata struct {
	name, symbol string
	ok           bool
}

// recoverMetadata fills name and symbol from the input of each deploying
// transaction. Failures only cost the metadata, never the entry.
func (f *SchoolFactory) recoverMetadata(lggr *zap.SugaredLogger, schools []sfcommon.SchoolSystem) {
	seen := map[common.Hash]metadata{}
	for i := range schools {
		hash := schools[i].TxHash
		md, found := seen[hash]
		if !found {
			md = f.metadataFromTx(lggr, hash)
			seen[hash] = md
		}
		if md.ok {
			schools[i].Name = md.name
			schools[i].Symbol = md.symbol
		}
	}
}

func (f *SchoolFactory) metadataFromTx(lggr *zap.SugaredLogger, hash common.Hash) metadata {
	tx, _, err := f.reader.TransactionByHash(hash.Hex())
	if err != nil || tx == nil {
		lggr.Warnw("couldn't fetch deploying tx, name and symbol left empty", "tx", hash.Hex(), "err", err)
		return metadata{}
	}
	name, symbol, err := schoolfactory.UnpackCreateSchoolSystemInput(tx.Data())
	if err != nil {
		// deployments made through another contract (a multisig for
		// example) carry the factory call in their own calldata
		lggr.Warnw("deploying tx is not a direct createSchoolSystem call", "tx", hash.Hex(), "err", err)
		return metadata{}
	}
	return metadata{name: name, symbol: symbol, ok: true}
}
