package interfaces

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gregsantos/ip-derivative-agent/internal/domain"
)

// LicensingClient is the fee-quote and registration collaborator. Quotes are
// read-only calls; registration is a state-changing transaction.
type LicensingClient interface {
	PredictMintingFee(ctx context.Context, params PredictMintingFeeParams) (*MintingFeeQuote, error)
	RegisterDerivative(ctx context.Context, params RegisterDerivativeParams) (*ChainReceipt, error)
}

// PredictMintingFeeParams contains parameters for a minting fee quote
type PredictMintingFeeParams struct {
	LicensorIPID    common.Address
	LicenseTemplate common.Address
	LicenseTermsID  *big.Int
	Amount          *big.Int
	Receiver        common.Address
	RoyaltyContext  []byte
}

// MintingFeeQuote is the quoted fee currency and amount
type MintingFeeQuote struct {
	CurrencyToken common.Address
	TokenAmount   *big.Int
}

// RegisterDerivativeParams contains parameters for the registration call
type RegisterDerivativeParams struct {
	ChildIPID       common.Address
	ParentIPIDs     []common.Address
	LicenseTermsIDs []*big.Int
	LicenseTemplate common.Address
	RoyaltyContext  []byte
	MaxMintingFee   *big.Int
	MaxRts          uint32
	MaxRevenueShare uint32
}

// ChainReceipt is the confirmed result of a state-changing chain call
type ChainReceipt struct {
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
}

// TokenClient exposes the fungible-token primitives consumed by the fee
// delegation engine and emergency recovery.
type TokenClient interface {
	TransferFrom(ctx context.Context, token, from, to common.Address, amount *big.Int) (*ChainReceipt, error)
	IncreaseAllowance(ctx context.Context, token, spender common.Address, amount *big.Int) (*ChainReceipt, error)
	Approve(ctx context.Context, token, spender common.Address, amount *big.Int) (*ChainReceipt, error)
	Transfer(ctx context.Context, token, to common.Address, amount *big.Int) (*ChainReceipt, error)
	Allowance(ctx context.Context, token, owner, spender common.Address) (*big.Int, error)
	BalanceOf(ctx context.Context, token, account common.Address) (*big.Int, error)
}

// NativeClient exposes native-balance reads and transfers for emergency
// recovery.
type NativeClient interface {
	Balance(ctx context.Context, account common.Address) (*big.Int, error)
	SendValue(ctx context.Context, to common.Address, amount *big.Int) (*ChainReceipt, error)
}

// EventEmitter records a completed mutating operation. Emission is
// best-effort: sink failures are logged by implementations, never returned.
type EventEmitter interface {
	Emit(ctx context.Context, eventType string, payload interface{}) domain.Event
}

// EventPublisher delivers agent events to an external queue.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// EventJournal persists agent events for later listing.
type EventJournal interface {
	Append(ctx context.Context, event domain.Event) error
	List(ctx context.Context, eventType string, limit, offset int) ([]domain.Event, error)
}

// SecretsProvider resolves a secret through AWS Secrets Manager with an
// environment variable fallback.
type SecretsProvider interface {
	GetSecretString(ctx context.Context, secretArnEnvVar string, fallbackEnvVar string) (string, error)
}
