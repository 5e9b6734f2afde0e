package chain

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/interfaces"
)

// NativeTransferClient moves the chain's native asset from the operator
// account. Used only by emergency recovery.
type NativeTransferClient struct {
	client *Client
	logger *zap.Logger
}

// NewNativeTransferClient binds native-asset operations to the client.
func NewNativeTransferClient(client *Client, logger *zap.Logger) *NativeTransferClient {
	return &NativeTransferClient{
		client: client,
		logger: logger,
	}
}

// Balance reads the native balance of an account.
func (c *NativeTransferClient) Balance(ctx context.Context, account common.Address) (*big.Int, error) {
	return c.client.balanceAt(ctx, account)
}

// SendValue transfers amount of the native asset to the recipient. A
// contract destination that rejects the transfer surfaces here as a gas
// estimation failure or a reverted receipt.
func (c *NativeTransferClient) SendValue(ctx context.Context, to common.Address, amount *big.Int) (*interfaces.ChainReceipt, error) {
	receipt, err := c.client.sendTx(ctx, &to, amount, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "native transfer of %s to %s failed", amount, to.Hex())
	}

	c.logger.Info("Native transfer confirmed",
		zap.String("to", to.Hex()),
		zap.String("amount", amount.String()),
		zap.String("tx_hash", receipt.TxHash.Hex()),
	)

	return toChainReceipt(receipt), nil
}
