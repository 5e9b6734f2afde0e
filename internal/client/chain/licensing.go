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

// licensingModuleABI covers the two collaborator entry points the agent
// consumes: the read-only fee quote and the state-changing registration.
const licensingModuleABI = `[
	{
		"type": "function",
		"name": "predictMintingFee",
		"stateMutability": "view",
		"inputs": [
			{"name": "licensorIpId", "type": "address"},
			{"name": "licenseTemplate", "type": "address"},
			{"name": "licenseTermsId", "type": "uint256"},
			{"name": "amount", "type": "uint256"},
			{"name": "receiver", "type": "address"},
			{"name": "royaltyContext", "type": "bytes"}
		],
		"outputs": [
			{"name": "currencyToken", "type": "address"},
			{"name": "tokenAmount", "type": "uint256"}
		]
	},
	{
		"type": "function",
		"name": "registerDerivative",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "childIpId", "type": "address"},
			{"name": "parentIpIds", "type": "address[]"},
			{"name": "licenseTermsIds", "type": "uint256[]"},
			{"name": "licenseTemplate", "type": "address"},
			{"name": "royaltyContext", "type": "bytes"},
			{"name": "maxMintingFee", "type": "uint256"},
			{"name": "maxRts", "type": "uint32"},
			{"name": "maxRevenueShare", "type": "uint32"}
		],
		"outputs": []
	}
]`

// LicensingModule is the ethclient-backed licensing collaborator.
type LicensingModule struct {
	client  *Client
	address common.Address
	abi     abi.ABI
	logger  *zap.Logger
}

// NewLicensingModule parses the collaborator ABI and binds it to the module
// address.
func NewLicensingModule(client *Client, address common.Address, logger *zap.Logger) (*LicensingModule, error) {
	parsed, err := abi.JSON(strings.NewReader(licensingModuleABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse licensing module ABI")
	}
	return &LicensingModule{
		client:  client,
		address: address,
		abi:     parsed,
		logger:  logger,
	}, nil
}

// Address returns the bound collaborator address.
func (m *LicensingModule) Address() common.Address {
	return m.address
}

// PredictMintingFee quotes the fee currency and amount for one derivative
// registration. Read-only; the result is only authoritative for the
// transaction that requested it.
func (m *LicensingModule) PredictMintingFee(ctx context.Context, params interfaces.PredictMintingFeeParams) (*interfaces.MintingFeeQuote, error) {
	royaltyContext := params.RoyaltyContext
	if royaltyContext == nil {
		royaltyContext = []byte{}
	}

	data, err := m.abi.Pack("predictMintingFee",
		params.LicensorIPID,
		params.LicenseTemplate,
		params.LicenseTermsID,
		params.Amount,
		params.Receiver,
		royaltyContext,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack predictMintingFee call")
	}

	out, err := m.client.callContract(ctx, m.address, data)
	if err != nil {
		return nil, errors.Wrap(err, "predictMintingFee call failed")
	}

	values, err := m.abi.Unpack("predictMintingFee", out)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unpack predictMintingFee result")
	}

	currency, currencyOK := values[0].(common.Address)
	amount, amountOK := values[1].(*big.Int)
	if !currencyOK || !amountOK {
		m.logger.Debug("Unexpected predictMintingFee payload",
			zap.String("dump", spew.Sdump(values)),
		)
		return nil, errors.New("predictMintingFee returned an unexpected payload")
	}

	m.logger.Debug("Minting fee quoted",
		zap.String("licensor", params.LicensorIPID.Hex()),
		zap.String("currency", currency.Hex()),
		zap.String("amount", amount.String()),
	)

	return &interfaces.MintingFeeQuote{
		CurrencyToken: currency,
		TokenAmount:   amount,
	}, nil
}

// RegisterDerivative submits the registration call and waits for its receipt.
func (m *LicensingModule) RegisterDerivative(ctx context.Context, params interfaces.RegisterDerivativeParams) (*interfaces.ChainReceipt, error) {
	royaltyContext := params.RoyaltyContext
	if royaltyContext == nil {
		royaltyContext = []byte{}
	}
	maxMintingFee := params.MaxMintingFee
	if maxMintingFee == nil {
		maxMintingFee = new(big.Int)
	}

	data, err := m.abi.Pack("registerDerivative",
		params.ChildIPID,
		params.ParentIPIDs,
		params.LicenseTermsIDs,
		params.LicenseTemplate,
		royaltyContext,
		maxMintingFee,
		params.MaxRts,
		params.MaxRevenueShare,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack registerDerivative call")
	}

	receipt, err := m.client.sendTx(ctx, &m.address, nil, data)
	if err != nil {
		return nil, errors.Wrap(err, "registerDerivative transaction failed")
	}

	m.logger.Info("Derivative registration confirmed on chain",
		zap.String("child", params.ChildIPID.Hex()),
		zap.String("tx_hash", receipt.TxHash.Hex()),
		zap.Uint64("gas_used", receipt.GasUsed),
	)

	return toChainReceipt(receipt), nil
}
