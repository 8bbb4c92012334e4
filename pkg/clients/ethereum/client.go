package ethereum

import (
	"context"
	"sync"

	"github.com/blocktable/blocktable/pkg/config"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type EthereumClientConfig struct {
	BaseUrl string
	ChainId config.ChainId
}

// Client is a thin JSON-RPC client for the node collaborator. It decodes
// responses into native structures; no wire-level parsing happens downstream.
type Client struct {
	config *EthereumClientConfig
	logger *zap.Logger

	mu        sync.Mutex
	rpcClient *rpc.Client
}

func NewEthereumClient(config *EthereumClientConfig, logger *zap.Logger) *Client {
	return &Client{
		config: config,
		logger: logger,
	}
}

// getRpcClient dials lazily so that constructing a Client never fails.
func (c *Client) getRpcClient(ctx context.Context) (*rpc.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rpcClient != nil {
		return c.rpcClient, nil
	}
	client, err := rpc.DialContext(ctx, c.config.BaseUrl)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", c.config.BaseUrl)
	}
	c.rpcClient = client
	return c.rpcClient, nil
}

// GetLatestBlock returns the current head block number.
func (c *Client) GetLatestBlock(ctx context.Context) (uint64, error) {
	client, err := c.getRpcClient(ctx)
	if err != nil {
		return 0, err
	}
	var result string
	if err := client.CallContext(ctx, &result, "eth_blockNumber"); err != nil {
		return 0, errors.Wrap(err, "eth_blockNumber failed")
	}
	blockNum, err := hexutil.DecodeUint64(result)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to decode block number %q", result)
	}
	return blockNum, nil
}

// GetBlockByNumber fetches a block with full transaction objects.
func (c *Client) GetBlockByNumber(ctx context.Context, blockNumber uint64) (*EthereumBlock, error) {
	client, err := c.getRpcClient(ctx)
	if err != nil {
		return nil, err
	}
	var block *EthereumBlock
	if err := client.CallContext(ctx, &block, "eth_getBlockByNumber", hexutil.EncodeUint64(blockNumber), true); err != nil {
		return nil, errors.Wrapf(err, "eth_getBlockByNumber failed for block %d", blockNumber)
	}
	if block == nil {
		return nil, errors.Errorf("block %d not found", blockNumber)
	}
	// the chain id never travels over the wire; stamp it from our config
	block.ChainId = c.config.ChainId
	c.logger.Sugar().Debugw("Fetched block",
		zap.Uint("chainId", uint(block.ChainId)),
		zap.Uint64("blockNumber", block.Number.Value()),
		zap.String("blockHash", block.Hash.Value()),
		zap.Int("transactionCount", len(block.Transactions)),
	)
	return block, nil
}

// GetLogs returns all logs emitted in the given inclusive block range.
func (c *Client) GetLogs(ctx context.Context, fromBlock uint64, toBlock uint64) ([]*EthereumEventLog, error) {
	client, err := c.getRpcClient(ctx)
	if err != nil {
		return nil, err
	}
	filter := map[string]string{
		"fromBlock": hexutil.EncodeUint64(fromBlock),
		"toBlock":   hexutil.EncodeUint64(toBlock),
	}
	var logs []*EthereumEventLog
	if err := client.CallContext(ctx, &logs, "eth_getLogs", filter); err != nil {
		return nil, errors.Wrapf(err, "eth_getLogs failed for blocks [%d, %d]", fromBlock, toBlock)
	}
	c.logger.Sugar().Debugw("Fetched logs",
		zap.Uint64("fromBlock", fromBlock),
		zap.Uint64("toBlock", toBlock),
		zap.Int("logCount", len(logs)),
	)
	return logs, nil
}
