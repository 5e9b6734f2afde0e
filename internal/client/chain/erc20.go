package chain

import (
	"context"
	"math/big"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/interfaces"
)

// erc20ABI covers the fungible-token primitives the fee delegation engine
// and emergency recovery consume.
const erc20ABI = `[
	{
		"type": "function",
		"name": "transferFrom",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	},
	{
		"type": "function",
		"name": "increaseAllowance",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "spender", "type": "address"},
			{"name": "addedValue", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	},
	{
		"type": "function",
		"name": "approve",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "spender", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	},
	{
		"type": "function",
		"name": "transfer",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "amount", "type": "uint256"}
		],
		"outputs": [{"name": "", "type": "bool"}]
	},
	{
		"type": "function",
		"name": "allowance",
		"stateMutability": "view",
		"inputs": [
			{"name": "owner", "type": "address"},
			{"name": "spender", "type": "address"}
		],
		"outputs": [{"name": "", "type": "uint256"}]
	},
	{
		"type": "function",
		"name": "balanceOf",
		"stateMutability": "view",
		"inputs": [{"name": "account", "type": "address"}],
		"outputs": [{"name": "", "type": "uint256"}]
	}
]`

// ERC20Client executes fungible-token calls against arbitrary token
// contracts with the operator account as sender.
type ERC20Client struct {
	client *Client
	abi    abi.ABI
	logger *zap.Logger
}

// NewERC20Client parses the token ABI once for all token addresses.
func NewERC20Client(client *Client, logger *zap.Logger) (*ERC20Client, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse ERC-20 ABI")
	}
	return &ERC20Client{
		client: client,
		abi:    parsed,
		logger: logger,
	}, nil
}

// TransferFrom pulls amount of token from the given account to the
// recipient. The sender must hold a sufficient allowance granted by from.
func (c *ERC20Client) TransferFrom(ctx context.Context, token, from, to common.Address, amount *big.Int) (*interfaces.ChainReceipt, error) {
	data, err := c.abi.Pack("transferFrom", from, to, amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack transferFrom call")
	}

	receipt, err := c.client.sendTx(ctx, &token, nil, data)
	if err != nil {
		return nil, errors.Wrapf(err, "transferFrom of %s from %s failed", amount, from.Hex())
	}

	c.logger.Debug("Token pull confirmed",
		zap.String("token", token.Hex()),
		zap.String("from", from.Hex()),
		zap.String("amount", amount.String()),
		zap.String("tx_hash", receipt.TxHash.Hex()),
	)

	return toChainReceipt(receipt), nil
}

// IncreaseAllowance raises the spender's allowance over the operator's
// balance of token.
func (c *ERC20Client) IncreaseAllowance(ctx context.Context, token, spender common.Address, amount *big.Int) (*interfaces.ChainReceipt, error) {
	data, err := c.abi.Pack("increaseAllowance", spender, amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack increaseAllowance call")
	}

	receipt, err := c.client.sendTx(ctx, &token, nil, data)
	if err != nil {
		return nil, errors.Wrapf(err, "increaseAllowance of %s for %s failed", amount, spender.Hex())
	}

	return toChainReceipt(receipt), nil
}

// Approve sets the spender's allowance to exactly amount.
func (c *ERC20Client) Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*interfaces.ChainReceipt, error) {
	data, err := c.abi.Pack("approve", spender, amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack approve call")
	}

	receipt, err := c.client.sendTx(ctx, &token, nil, data)
	if err != nil {
		return nil, errors.Wrapf(err, "approve of %s for %s failed", amount, spender.Hex())
	}

	return toChainReceipt(receipt), nil
}

// Transfer moves amount of token from the operator to the recipient.
func (c *ERC20Client) Transfer(ctx context.Context, token, to common.Address, amount *big.Int) (*interfaces.ChainReceipt, error) {
	data, err := c.abi.Pack("transfer", to, amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack transfer call")
	}

	receipt, err := c.client.sendTx(ctx, &token, nil, data)
	if err != nil {
		return nil, errors.Wrapf(err, "transfer of %s to %s failed", amount, to.Hex())
	}

	return toChainReceipt(receipt), nil
}

// Allowance reads the outstanding allowance owner has granted spender.
func (c *ERC20Client) Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error) {
	data, err := c.abi.Pack("allowance", owner, spender)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack allowance call")
	}

	out, err := c.client.callContract(ctx, token, data)
	if err != nil {
		return nil, errors.Wrap(err, "allowance call failed")
	}

	return c.unpackAmount("allowance", out)
}

// BalanceOf reads the token balance of an account.
func (c *ERC20Client) BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error) {
	data, err := c.abi.Pack("balanceOf", account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack balanceOf call")
	}

	out, err := c.client.callContract(ctx, token, data)
	if err != nil {
		return nil, errors.Wrap(err, "balanceOf call failed")
	}

	return c.unpackAmount("balanceOf", out)
}

func (c *ERC20Client) unpackAmount(method string, out []byte) (*big.Int, error) {
	values, err := c.abi.Unpack(method, out)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unpack %s result", method)
	}

	amount, ok := values[0].(*big.Int)
	if !ok {
		c.logger.Debug("Unexpected token payload",
			zap.String("method", method),
			zap.String("dump", spew.Sdump(values)),
		)
		return nil, errors.Errorf("%s returned an unexpected payload", method)
	}
	return amount, nil
}
