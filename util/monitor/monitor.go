package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	sfcommon "github.com/tranvictor/schoolfactory/common"
	"github.com/tranvictor/schoolfactory/util/logger"
)

const (
	DEFAULT_POLL_INTERVAL = 5 * time.Second
	DEFAULT_LOST_AFTER    = 3 * time.Minute
)

// TxReader is satisfied by *reader.EthReader.
type TxReader interface {
	TxInfoFromHash(tx string) (sfcommon.TxInfo, error)
	HeaderByNumber(number int64) (*types.Header, error)
}

type TxMonitor struct {
	reader    TxReader
	poll      time.Duration
	lostAfter time.Duration
	lggr      *zap.SugaredLogger
}

func NewGenericTxMonitor(r TxReader) *TxMonitor {
	return &TxMonitor{
		reader:    r,
		poll:      DEFAULT_POLL_INTERVAL,
		lostAfter: DEFAULT_LOST_AFTER,
		lggr:      logger.L().Named("monitor"),
	}
}

// WithIntervals returns a copy polling every poll and giving up on a tx no
// node has seen after lostAfter.
func (tm TxMonitor) WithIntervals(poll, lostAfter time.Duration) *TxMonitor {
	tm.poll = poll
	tm.lostAfter = lostAfter
	return &tm
}

func (tm TxMonitor) WithLogger(l *zap.SugaredLogger) *TxMonitor {
	tm.lggr = l
	return &tm
}

func (tm TxMonitor) header(ctx context.Context, receipt *types.Receipt) *types.Header {
	if receipt == nil || receipt.BlockNumber == nil {
		return nil
	}
	header, err := retry.DoWithData(
		func() (*types.Header, error) {
			return tm.reader.HeaderByNumber(receipt.BlockNumber.Int64())
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(tm.poll/5),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		tm.lggr.Warnw("couldn't get the mining block header", "block", receipt.BlockNumber, "err", err)
		return nil
	}
	return header
}

func (tm TxMonitor) periodicCheck(ctx context.Context, tx string, info chan<- sfcommon.TxInfo) {
	ticker := time.NewTicker(tm.poll)
	defer ticker.Stop()
	startTime := time.Now()
	isOnNode := false
	for {
		var t time.Time
		select {
		case <-ctx.Done():
			info <- sfcommon.TxInfo{Status: sfcommon.TxStatusError}
			return
		case t = <-ticker.C:
		}
		txinfo, err := tm.reader.TxInfoFromHash(tx)
		tm.lggr.Debugw("polled tx", "tx", tx, "status", txinfo.Status, "err", err)
		switch txinfo.Status {
		case sfcommon.TxStatusNotFound:
			if t.Sub(startTime) > tm.lostAfter && !isOnNode {
				info <- sfcommon.TxInfo{Status: sfcommon.TxStatusLost, Tx: txinfo.Tx}
				return
			}
		case sfcommon.TxStatusPending:
			isOnNode = true
		case sfcommon.TxStatusDone, sfcommon.TxStatusReverted:
			txinfo.BlockHeader = tm.header(ctx, txinfo.Receipt)
			info <- txinfo
			return
		}
	}
}

// MakeWaitChannel delivers exactly one final TxInfo. Cancelling ctx yields
// a TxInfo with the error status.
func (tm TxMonitor) MakeWaitChannel(ctx context.Context, tx string) <-chan sfcommon.TxInfo {
	result := make(chan sfcommon.TxInfo, 1)
	go tm.periodicCheck(ctx, tx, result)
	return result
}

func (tm TxMonitor) BlockingWait(ctx context.Context, tx string) sfcommon.TxInfo {
	return <-tm.MakeWaitChannel(ctx, tx)
}

func (tm TxMonitor) BlockingWaitForMultipleTxs(ctx context.Context, txs ...string) map[string]sfcommon.TxInfo {
	var mu sync.Mutex
	var wg sync.WaitGroup
	result := map[string]sfcommon.TxInfo{}
	for _, tx := range txs {
		wg.Add(1)
		go func(tx string) {
			defer wg.Done()
			info := tm.BlockingWait(ctx, tx)
			mu.Lock()
			result[tx] = info
			mu.Unlock()
		}(tx)
	}
	wg.Wait()
	return result
}
