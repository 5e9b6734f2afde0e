package services_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/gregsantos/ip-derivative-agent/internal/constants"
	"github.com/gregsantos/ip-derivative-agent/internal/domain"
	"github.com/gregsantos/ip-derivative-agent/internal/interfaces"
	"github.com/gregsantos/ip-derivative-agent/internal/services"
)

var testTxHash = common.HexToHash("0xfeed")

func registrationRequest() services.RegistrationRequest {
	return services.RegistrationRequest{
		ChildIPID:       childAddr,
		ParentIPID:      parentAddr,
		LicenseTermsID:  1,
		LicenseTemplate: templateAddr,
		MaxFee:          new(big.Int),
	}
}

func quoteParams() interfaces.PredictMintingFeeParams {
	return interfaces.PredictMintingFeeParams{
		LicensorIPID:    parentAddr,
		LicenseTemplate: templateAddr,
		LicenseTermsID:  big.NewInt(1),
		Amount:          big.NewInt(1),
		Receiver:        licenseeAddr,
		RoyaltyContext:  []byte{},
	}
}

func registerParams() interfaces.RegisterDerivativeParams {
	return interfaces.RegisterDerivativeParams{
		ChildIPID:       childAddr,
		ParentIPIDs:     []common.Address{parentAddr},
		LicenseTermsIDs: []*big.Int{big.NewInt(1)},
		LicenseTemplate: templateAddr,
		RoyaltyContext:  []byte{},
		MaxMintingFee:   new(big.Int),
		MaxRts:          0,
		MaxRevenueShare: 0,
	}
}

// whitelistExact seeds the store with the exact licensee tuple, bypassing the
// owner-gated service path so tests stay focused on registration.
func (f *agentFixture) whitelistExact(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.Add(context.Background(), exactTerms()))
}

func (f *agentFixture) whitelistWildcard(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.Add(context.Background(), exactTerms().Wildcard()))
}

func TestAgentServiceRegisterDerivative(t *testing.T) {
	ctx := context.Background()

	t.Run("runs the full fee delegation protocol in order", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)

		fee := big.NewInt(10)
		quote := f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), quoteParams()).
			Return(&interfaces.MintingFeeQuote{CurrencyToken: feeTokenAddr, TokenAmount: fee}, nil)
		pull := f.tokens.EXPECT().
			TransferFrom(gomock.Any(), feeTokenAddr, licenseeAddr, operatorAddr, fee).
			Return(&interfaces.ChainReceipt{TxHash: common.HexToHash("0x1")}, nil)
		grant := f.tokens.EXPECT().
			IncreaseAllowance(gomock.Any(), feeTokenAddr, royaltyAddr, fee).
			Return(&interfaces.ChainReceipt{TxHash: common.HexToHash("0x2")}, nil)
		register := f.licensing.EXPECT().
			RegisterDerivative(gomock.Any(), registerParams()).
			Return(&interfaces.ChainReceipt{TxHash: testTxHash, BlockNumber: 7}, nil)
		cleanup := f.tokens.EXPECT().
			Allowance(gomock.Any(), feeTokenAddr, operatorAddr, royaltyAddr).
			Return(new(big.Int), nil)
		gomock.InOrder(quote, pull, grant, register, cleanup)

		var payload domain.DerivativeRegisteredPayload
		f.emitter.EXPECT().
			Emit(gomock.Any(), constants.EventDerivativeRegistered, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, p any) domain.Event {
				payload = p.(domain.DerivativeRegisteredPayload)
				return domain.Event{}
			})

		result, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())
		require.NoError(t, err)

		assert.Equal(t, testTxHash, result.TxHash)
		assert.Equal(t, feeTokenAddr, result.FeeToken)
		assert.Zero(t, fee.Cmp(result.FeeAmount))

		assert.Equal(t, licenseeAddr.Hex(), payload.Caller)
		assert.Equal(t, childAddr.Hex(), payload.ChildIPID)
		assert.Equal(t, parentAddr.Hex(), payload.ParentIPID)
		assert.Equal(t, uint64(1), payload.LicenseTermsID)
		assert.Equal(t, "10", payload.FeeAmount)
		assert.Equal(t, testTxHash.Hex(), payload.TxHash)
	})

	t.Run("resets a residual allowance after registration", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)
		f.expectEvent(constants.EventDerivativeRegistered)

		fee := big.NewInt(10)
		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			Return(&interfaces.MintingFeeQuote{CurrencyToken: feeTokenAddr, TokenAmount: fee}, nil)
		f.tokens.EXPECT().
			TransferFrom(gomock.Any(), feeTokenAddr, licenseeAddr, operatorAddr, fee).
			Return(&interfaces.ChainReceipt{}, nil)
		f.tokens.EXPECT().
			IncreaseAllowance(gomock.Any(), feeTokenAddr, royaltyAddr, fee).
			Return(&interfaces.ChainReceipt{}, nil)
		f.licensing.EXPECT().
			RegisterDerivative(gomock.Any(), gomock.Any()).
			Return(&interfaces.ChainReceipt{TxHash: testTxHash}, nil)
		f.tokens.EXPECT().
			Allowance(gomock.Any(), feeTokenAddr, operatorAddr, royaltyAddr).
			Return(big.NewInt(3), nil)
		f.tokens.EXPECT().
			Approve(gomock.Any(), feeTokenAddr, royaltyAddr, new(big.Int)).
			Return(&interfaces.ChainReceipt{}, nil)

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())
		require.NoError(t, err)
	})

	t.Run("skips the fee leg entirely for a free registration", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)
		f.expectEvent(constants.EventDerivativeRegistered)

		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			Return(&interfaces.MintingFeeQuote{CurrencyToken: common.Address{}, TokenAmount: new(big.Int)}, nil)
		f.licensing.EXPECT().
			RegisterDerivative(gomock.Any(), registerParams()).
			Return(&interfaces.ChainReceipt{TxHash: testTxHash}, nil)

		result, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())
		require.NoError(t, err)
		assert.Zero(t, result.FeeAmount.Sign())
	})

	t.Run("treats a nil quoted amount as zero", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)
		f.expectEvent(constants.EventDerivativeRegistered)

		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			Return(&interfaces.MintingFeeQuote{CurrencyToken: feeTokenAddr, TokenAmount: nil}, nil)
		f.licensing.EXPECT().
			RegisterDerivative(gomock.Any(), gomock.Any()).
			Return(&interfaces.ChainReceipt{TxHash: testTxHash}, nil)

		result, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())
		require.NoError(t, err)
		assert.Zero(t, result.FeeAmount.Sign())
	})

	t.Run("accepts a wildcard-authorized caller", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistWildcard(t)
		f.expectEvent(constants.EventDerivativeRegistered)

		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			Return(&interfaces.MintingFeeQuote{}, nil)
		f.licensing.EXPECT().
			RegisterDerivative(gomock.Any(), gomock.Any()).
			Return(&interfaces.ChainReceipt{TxHash: testTxHash}, nil)

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())
		require.NoError(t, err)
	})

	t.Run("fails while paused", func(t *testing.T) {
		f := newAgentFixture(t)
		f.expectEvent(constants.EventPaused)
		require.NoError(t, f.service.Pause(ctx, ownerAddr))

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())

		var pauseErr *domain.InvalidPauseStateError
		require.ErrorAs(t, err, &pauseErr)
		assert.Equal(t, domain.PauseStatePaused, pauseErr.Current)
		assert.Equal(t, domain.PauseStateActive, pauseErr.Required)
	})

	t.Run("rejects zero identifiers", func(t *testing.T) {
		f := newAgentFixture(t)

		req := registrationRequest()
		req.ChildIPID = common.Address{}

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, req)

		var invalid *domain.InvalidParamsError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "childIpId", invalid.Param)
	})

	t.Run("rejects an unauthorized caller", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)

		_, err := f.service.RegisterDerivative(ctx, strangerAddr, registrationRequest())

		var missing *domain.NotWhitelistedError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, strangerAddr, missing.Licensee)
	})

	t.Run("enforces the caller's fee cap before pulling tokens", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)

		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			Return(&interfaces.MintingFeeQuote{CurrencyToken: feeTokenAddr, TokenAmount: big.NewInt(10)}, nil)

		req := registrationRequest()
		req.MaxFee = big.NewInt(5)

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, req)

		var tooHigh *domain.FeeTooHighError
		require.ErrorAs(t, err, &tooHigh)
		assert.Zero(t, big.NewInt(10).Cmp(tooHigh.Quoted))
		assert.Zero(t, big.NewInt(5).Cmp(tooHigh.Cap))
	})

	t.Run("a zero cap means no limit", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)
		f.expectEvent(constants.EventDerivativeRegistered)

		fee := big.NewInt(1_000_000)
		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			Return(&interfaces.MintingFeeQuote{CurrencyToken: feeTokenAddr, TokenAmount: fee}, nil)
		f.tokens.EXPECT().
			TransferFrom(gomock.Any(), feeTokenAddr, licenseeAddr, operatorAddr, fee).
			Return(&interfaces.ChainReceipt{}, nil)
		f.tokens.EXPECT().
			IncreaseAllowance(gomock.Any(), feeTokenAddr, royaltyAddr, fee).
			Return(&interfaces.ChainReceipt{}, nil)
		f.licensing.EXPECT().
			RegisterDerivative(gomock.Any(), gomock.Any()).
			Return(&interfaces.ChainReceipt{TxHash: testTxHash}, nil)
		f.tokens.EXPECT().
			Allowance(gomock.Any(), feeTokenAddr, operatorAddr, royaltyAddr).
			Return(new(big.Int), nil)

		req := registrationRequest()
		req.MaxFee = nil

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, req)
		require.NoError(t, err)
	})

	t.Run("propagates a failed fee pull", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)

		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			Return(&interfaces.MintingFeeQuote{CurrencyToken: feeTokenAddr, TokenAmount: big.NewInt(10)}, nil)
		f.tokens.EXPECT().
			TransferFrom(gomock.Any(), feeTokenAddr, licenseeAddr, operatorAddr, big.NewInt(10)).
			Return(nil, errors.New("insufficient allowance"))

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to pull minting fee")
	})

	t.Run("propagates a failed registration call without cleanup", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)

		fee := big.NewInt(10)
		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			Return(&interfaces.MintingFeeQuote{CurrencyToken: feeTokenAddr, TokenAmount: fee}, nil)
		f.tokens.EXPECT().
			TransferFrom(gomock.Any(), feeTokenAddr, licenseeAddr, operatorAddr, fee).
			Return(&interfaces.ChainReceipt{}, nil)
		f.tokens.EXPECT().
			IncreaseAllowance(gomock.Any(), feeTokenAddr, royaltyAddr, fee).
			Return(&interfaces.ChainReceipt{}, nil)
		f.licensing.EXPECT().
			RegisterDerivative(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("execution reverted"))

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to register derivative")
	})

	t.Run("blocks nested registration while one is in flight", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)

		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ interfaces.PredictMintingFeeParams) (*interfaces.MintingFeeQuote, error) {
				_, nested := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())
				require.ErrorIs(t, nested, domain.ErrReentrancy)
				return nil, errors.New("quote aborted")
			})

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())
		require.Error(t, err)
	})

	t.Run("blocks emergency withdraw while registration is in flight", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)

		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, _ interfaces.PredictMintingFeeParams) (*interfaces.MintingFeeQuote, error) {
				_, nested := f.service.EmergencyWithdraw(ctx, ownerAddr, feeTokenAddr, ownerAddr, big.NewInt(1))
				require.ErrorIs(t, nested, domain.ErrReentrancy)
				return nil, errors.New("quote aborted")
			})

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())
		require.Error(t, err)
	})

	t.Run("releases the busy flag after a failure", func(t *testing.T) {
		f := newAgentFixture(t)
		f.whitelistExact(t)
		f.expectEvent(constants.EventDerivativeRegistered)

		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("rpc down"))

		_, err := f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())
		require.Error(t, err)

		f.licensing.EXPECT().
			PredictMintingFee(gomock.Any(), gomock.Any()).
			Return(&interfaces.MintingFeeQuote{}, nil)
		f.licensing.EXPECT().
			RegisterDerivative(gomock.Any(), gomock.Any()).
			Return(&interfaces.ChainReceipt{TxHash: testTxHash}, nil)

		_, err = f.service.RegisterDerivative(ctx, licenseeAddr, registrationRequest())
		require.NoError(t, err)
	})
}
