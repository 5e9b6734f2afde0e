package chain

import (
	"context"
	"crypto/ecdsa"
	"math/big"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/interfaces"
)

// RetryConfig configures the retry behavior for read-only RPC calls.
// State-changing calls are never retried automatically.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig provides sensible defaults for read retries
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		MaxElapsedTime:  20 * time.Second,
	}
}

// Config holds the connection and signing configuration for the chain client
type Config struct {
	RPCURL        string
	PrivateKeyHex string
	Retry         *RetryConfig
}

// Client wraps a JSON-RPC connection together with the operator signing
// identity. The operator account is the agent's own address: it holds
// transient token custody and signs every state-changing call.
type Client struct {
	eth      *ethclient.Client
	chainID  *big.Int
	key      *ecdsa.PrivateKey
	operator common.Address
	retry    *RetryConfig
	logger   *zap.Logger
}

// NewClient dials the RPC endpoint, resolves the chain ID, and derives the
// operator address from the configured private key.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, errors.New("chain RPC URL not provided")
	}
	if cfg.PrivateKeyHex == "" {
		return nil, errors.New("operator private key not provided")
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKeyHex, "0x"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse operator private key")
	}

	eth, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to dial chain RPC")
	}

	retry := cfg.Retry
	if retry == nil {
		retry = DefaultRetryConfig()
	}

	client := &Client{
		eth:      eth,
		key:      key,
		operator: crypto.PubkeyToAddress(key.PublicKey),
		retry:    retry,
		logger:   logger,
	}

	// Resolve the chain ID up front; it is needed for every signature.
	var chainID *big.Int
	operation := func() error {
		var opErr error
		chainID, opErr = eth.ChainID(ctx)
		return opErr
	}
	if err := client.retryRead(ctx, operation); err != nil {
		eth.Close()
		return nil, errors.Wrap(err, "failed to resolve chain ID")
	}
	client.chainID = chainID

	logger.Info("Connected to chain RPC",
		zap.String("operator", client.operator.Hex()),
		zap.String("chain_id", chainID.String()),
	)

	return client, nil
}

// Operator returns the agent's own account address.
func (c *Client) Operator() common.Address {
	return c.operator
}

// ChainID returns the connected chain's ID.
func (c *Client) ChainID() *big.Int {
	return new(big.Int).Set(c.chainID)
}

// Close releases the underlying RPC connection.
func (c *Client) Close() {
	c.eth.Close()
	c.logger.Info("Closed chain RPC connection")
}

// retryRead runs a read-only operation with exponential backoff. Reverts are
// permanent and returned immediately; only transport-level failures retry.
func (c *Client) retryRead(ctx context.Context, operation func() error) error {
	wrapped := func() error {
		err := operation()
		if err != nil && isRevert(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.retry.InitialInterval
	expBackoff.MaxInterval = c.retry.MaxInterval
	expBackoff.MaxElapsedTime = c.retry.MaxElapsedTime

	return backoff.Retry(wrapped, backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, uint64(c.retry.MaxRetries)), ctx))
}

func isRevert(err error) bool {
	return strings.Contains(err.Error(), "execution reverted")
}

// callContract performs a read-only eth_call against the given contract.
func (c *Client) callContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	msg := ethereum.CallMsg{
		From: c.operator,
		To:   &to,
		Data: data,
	}

	var out []byte
	operation := func() error {
		var opErr error
		out, opErr = c.eth.CallContract(ctx, msg, nil)
		return opErr
	}
	if err := c.retryRead(ctx, operation); err != nil {
		return nil, errors.Wrapf(err, "eth_call to %s failed", to.Hex())
	}
	return out, nil
}

// balanceAt reads the native balance of an account.
func (c *Client) balanceAt(ctx context.Context, account common.Address) (*big.Int, error) {
	var balance *big.Int
	operation := func() error {
		var opErr error
		balance, opErr = c.eth.BalanceAt(ctx, account, nil)
		return opErr
	}
	if err := c.retryRead(ctx, operation); err != nil {
		return nil, errors.Wrapf(err, "failed to read balance of %s", account.Hex())
	}
	return balance, nil
}

// sendTx builds, signs, and submits a transaction from the operator account,
// then waits for its receipt. A reverted receipt is an error.
func (c *Client) sendTx(ctx context.Context, to *common.Address, value *big.Int, data []byte) (*types.Receipt, error) {
	nonce, err := c.eth.PendingNonceAt(ctx, c.operator)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch pending nonce")
	}

	msg := ethereum.CallMsg{
		From:  c.operator,
		To:    to,
		Value: value,
		Data:  data,
	}
	gasLimit, err := c.eth.EstimateGas(ctx, msg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to estimate gas")
	}
	// Head room for state drift between estimate and inclusion.
	gasLimit = gasLimit * 120 / 100

	head, err := c.eth.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch chain head")
	}

	var tx *types.Transaction
	if head.BaseFee != nil {
		tipCap, tipErr := c.eth.SuggestGasTipCap(ctx)
		if tipErr != nil {
			return nil, errors.Wrap(tipErr, "failed to suggest gas tip cap")
		}
		feeCap := new(big.Int).Add(tipCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))

		tx = types.NewTx(&types.DynamicFeeTx{
			ChainID:   c.chainID,
			Nonce:     nonce,
			GasTipCap: tipCap,
			GasFeeCap: feeCap,
			Gas:       gasLimit,
			To:        to,
			Value:     value,
			Data:      data,
		})
	} else {
		gasPrice, priceErr := c.eth.SuggestGasPrice(ctx)
		if priceErr != nil {
			return nil, errors.Wrap(priceErr, "failed to suggest gas price")
		}
		tx = types.NewTx(&types.LegacyTx{
			Nonce:    nonce,
			GasPrice: gasPrice,
			Gas:      gasLimit,
			To:       to,
			Value:    value,
			Data:     data,
		})
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return nil, errors.Wrapf(err, "failed to send transaction %s", signed.Hash().Hex())
	}

	c.logger.Debug("Transaction submitted",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.Uint64("nonce", nonce),
		zap.Uint64("gas_limit", gasLimit),
	)

	receipt, err := bind.WaitMined(ctx, c.eth, signed)
	if err != nil {
		return nil, errors.Wrapf(err, "failed waiting for transaction %s", signed.Hash().Hex())
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, errors.Errorf("transaction %s reverted", signed.Hash().Hex())
	}

	return receipt, nil
}

func toChainReceipt(receipt *types.Receipt) *interfaces.ChainReceipt {
	return &interfaces.ChainReceipt{
		TxHash:      receipt.TxHash,
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}
}
