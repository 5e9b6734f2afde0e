package services

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/constants"
	"github.com/gregsantos/ip-derivative-agent/internal/domain"
	"github.com/gregsantos/ip-derivative-agent/internal/interfaces"
	"github.com/gregsantos/ip-derivative-agent/internal/whitelist"
)

// RegistrationRequest is the caller-supplied input for a delegated derivative
// registration. A nil or zero MaxFee means no cap on the quoted minting fee.
type RegistrationRequest struct {
	ChildIPID       common.Address
	ParentIPID      common.Address
	LicenseTermsID  uint64
	LicenseTemplate common.Address
	MaxFee          *big.Int
}

// RegistrationResult reports a completed derivative registration.
type RegistrationResult struct {
	TxHash    common.Hash
	FeeToken  common.Address
	FeeAmount *big.Int
}

// RegisterDerivative runs the delegated registration protocol for caller:
// authorization against the whitelist, minting fee quote, fee cap enforcement,
// fee pull and allowance grant, the external registration call, and residual
// allowance cleanup. The whole sequence is serialized with emergency
// withdrawals through the shared busy flag.
func (s *AgentService) RegisterDerivative(ctx context.Context, caller common.Address, req RegistrationRequest) (*RegistrationResult, error) {
	if !s.busy.TryLock() {
		return nil, domain.ErrReentrancy
	}
	defer s.busy.Unlock()

	if err := s.requirePauseState(false); err != nil {
		return nil, err
	}

	terms := whitelist.Terms{
		ParentIPID:      req.ParentIPID,
		ChildIPID:       req.ChildIPID,
		LicenseTemplate: req.LicenseTemplate,
		LicenseTermsID:  req.LicenseTermsID,
		Licensee:        caller,
	}
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	authorized, err := s.IsAuthorized(ctx, terms)
	if err != nil {
		return nil, err
	}
	if !authorized {
		return nil, whitelist.NewNotWhitelistedError(terms)
	}

	quote, err := s.licensing.PredictMintingFee(ctx, interfaces.PredictMintingFeeParams{
		LicensorIPID:    req.ParentIPID,
		LicenseTemplate: req.LicenseTemplate,
		LicenseTermsID:  new(big.Int).SetUint64(req.LicenseTermsID),
		Amount:          big.NewInt(1),
		Receiver:        caller,
		RoyaltyContext:  []byte{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to quote minting fee: %w", err)
	}

	feeAmount := quote.TokenAmount
	if feeAmount == nil {
		feeAmount = new(big.Int)
	}

	if req.MaxFee != nil && req.MaxFee.Sign() > 0 && feeAmount.Cmp(req.MaxFee) > 0 {
		return nil, &domain.FeeTooHighError{
			Quoted: new(big.Int).Set(feeAmount),
			Cap:    new(big.Int).Set(req.MaxFee),
		}
	}

	chargesFee := !domain.IsZeroAddress(quote.CurrencyToken) && feeAmount.Sign() > 0
	if chargesFee {
		if _, err := s.tokens.TransferFrom(ctx, quote.CurrencyToken, caller, s.operator, feeAmount); err != nil {
			return nil, fmt.Errorf("failed to pull minting fee from caller: %w", err)
		}
		if _, err := s.tokens.IncreaseAllowance(ctx, quote.CurrencyToken, s.royaltyModule, feeAmount); err != nil {
			return nil, fmt.Errorf("failed to grant fee allowance to royalty module: %w", err)
		}
	}

	maxFee := req.MaxFee
	if maxFee == nil {
		maxFee = new(big.Int)
	}

	receipt, err := s.licensing.RegisterDerivative(ctx, interfaces.RegisterDerivativeParams{
		ChildIPID:       req.ChildIPID,
		ParentIPIDs:     []common.Address{req.ParentIPID},
		LicenseTermsIDs: []*big.Int{new(big.Int).SetUint64(req.LicenseTermsID)},
		LicenseTemplate: req.LicenseTemplate,
		RoyaltyContext:  []byte{},
		MaxMintingFee:   maxFee,
		MaxRts:          0,
		MaxRevenueShare: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register derivative: %w", err)
	}

	// Any allowance the registration call did not consume must not survive
	// this request.
	if chargesFee {
		if err := s.resetResidualAllowance(ctx, quote.CurrencyToken); err != nil {
			return nil, err
		}
	}

	s.logger.Info("derivative registered",
		zap.String("caller", caller.Hex()),
		zap.String("childIpId", req.ChildIPID.Hex()),
		zap.String("parentIpId", req.ParentIPID.Hex()),
		zap.Uint64("licenseTermsId", req.LicenseTermsID),
		zap.String("feeToken", quote.CurrencyToken.Hex()),
		zap.String("feeAmount", feeAmount.String()),
		zap.String("txHash", receipt.TxHash.Hex()),
	)
	s.events.Emit(ctx, constants.EventDerivativeRegistered, domain.DerivativeRegisteredPayload{
		Caller:          caller.Hex(),
		ChildIPID:       req.ChildIPID.Hex(),
		ParentIPID:      req.ParentIPID.Hex(),
		LicenseTermsID:  req.LicenseTermsID,
		LicenseTemplate: req.LicenseTemplate.Hex(),
		FeeToken:        quote.CurrencyToken.Hex(),
		FeeAmount:       feeAmount.String(),
		TxHash:          receipt.TxHash.Hex(),
	})

	return &RegistrationResult{
		TxHash:    receipt.TxHash,
		FeeToken:  quote.CurrencyToken,
		FeeAmount: feeAmount,
	}, nil
}

func (s *AgentService) resetResidualAllowance(ctx context.Context, token common.Address) error {
	remaining, err := s.tokens.Allowance(ctx, token, s.operator, s.royaltyModule)
	if err != nil {
		return fmt.Errorf("failed to read residual allowance: %w", err)
	}
	if remaining == nil || remaining.Sign() == 0 {
		return nil
	}

	s.logger.Warn("resetting residual royalty module allowance",
		zap.String("token", token.Hex()),
		zap.String("remaining", remaining.String()),
	)
	if _, err := s.tokens.Approve(ctx, token, s.royaltyModule, new(big.Int)); err != nil {
		return fmt.Errorf("failed to reset residual allowance: %w", err)
	}
	return nil
}
