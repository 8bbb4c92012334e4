package recordCursor

import (
	"context"

	"github.com/blocktable/blocktable/pkg/clients/ethereum"
	"go.uber.org/zap"
)

// LogFetcher is the slice of the node client the cursor needs for the
// transfer-event traversal mode.
type LogFetcher interface {
	GetLogs(ctx context.Context, fromBlock uint64, toBlock uint64) ([]*ethereum.EthereumEventLog, error)
}

// logIterator walks the block's logs, fetching them from the collaborator on
// first access. The fetch blocks without a timeout of its own; callers
// needing bounded latency impose one through ctx.
type logIterator struct {
	fetcher LogFetcher
	block   *ethereum.EthereumBlock
	logger  *zap.Logger

	fetched bool
	logs    []*ethereum.EthereumEventLog
	pos     int
}

func newLogIterator(fetcher LogFetcher, block *ethereum.EthereumBlock, logger *zap.Logger) *logIterator {
	return &logIterator{
		fetcher: fetcher,
		block:   block,
		logger:  logger,
	}
}

// next returns the next log, or ok=false once the sequence is exhausted.
// A fetch failure propagates as-is; no retry is performed here.
func (it *logIterator) next(ctx context.Context) (*ethereum.EthereumEventLog, bool, error) {
	if !it.fetched {
		if it.fetcher != nil {
			blockNum := it.block.Number.Value()
			logs, err := it.fetcher.GetLogs(ctx, blockNum, blockNum)
			if err != nil {
				return nil, false, err
			}
			it.logs = logs
			it.logger.Sugar().Debugw("Fetched logs for block",
				zap.Uint64("blockNumber", blockNum),
				zap.Int("logCount", len(logs)),
			)
		}
		it.fetched = true
	}
	if it.pos >= len(it.logs) {
		return nil, false, nil
	}
	lg := it.logs[it.pos]
	it.pos++
	return lg, true, nil
}
