package services

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/constants"
	"github.com/gregsantos/ip-derivative-agent/internal/domain"
)

// WithdrawResult reports a completed emergency withdrawal.
type WithdrawResult struct {
	TxHash common.Hash
}

// BalanceReport describes the operator account's recoverable balances.
type BalanceReport struct {
	Native *big.Int
	Tokens map[common.Address]*big.Int
}

// EmergencyWithdraw sweeps funds from the operator account to destination.
// Owner only, allowed only while paused, and serialized with registration
// through the shared busy flag. A zero token address selects the native
// balance; otherwise the given fungible token is transferred.
func (s *AgentService) EmergencyWithdraw(ctx context.Context, caller, token, destination common.Address, amount *big.Int) (*WithdrawResult, error) {
	if !s.busy.TryLock() {
		return nil, domain.ErrReentrancy
	}
	defer s.busy.Unlock()

	if err := s.requireOwner(caller); err != nil {
		return nil, err
	}
	if domain.IsZeroAddress(destination) {
		return nil, domain.NewZeroIdentifierError("destination")
	}
	if destination == s.operator {
		return nil, &domain.InvalidParamsError{Param: "destination", Reason: "cannot withdraw to the agent's own account"}
	}
	if amount == nil {
		amount = new(big.Int)
	}
	if amount.Sign() < 0 {
		return nil, &domain.InvalidParamsError{Param: "amount", Reason: "negative amount"}
	}
	if err := s.requirePauseState(true); err != nil {
		return nil, err
	}

	var txHash common.Hash
	if domain.IsZeroAddress(token) {
		receipt, err := s.native.SendValue(ctx, destination, amount)
		if err != nil {
			return nil, &domain.EmergencyWithdrawFailedError{
				Destination: destination,
				Amount:      new(big.Int).Set(amount),
				Err:         err,
			}
		}
		txHash = receipt.TxHash
	} else {
		receipt, err := s.tokens.Transfer(ctx, token, destination, amount)
		if err != nil {
			return nil, fmt.Errorf("failed to transfer token balance: %w", err)
		}
		txHash = receipt.TxHash
	}

	s.logger.Info("emergency withdrawal executed",
		zap.String("token", token.Hex()),
		zap.String("destination", destination.Hex()),
		zap.String("amount", amount.String()),
		zap.String("txHash", txHash.Hex()),
	)
	s.events.Emit(ctx, constants.EventEmergencyWithdraw, domain.EmergencyWithdrawPayload{
		Token:       token.Hex(),
		Destination: destination.Hex(),
		Amount:      amount.String(),
		TxHash:      txHash.Hex(),
	})

	return &WithdrawResult{TxHash: txHash}, nil
}

// Balances reports the operator account's native balance plus the balance of
// each requested token, for recovery planning.
func (s *AgentService) Balances(ctx context.Context, tokens []common.Address) (*BalanceReport, error) {
	native, err := s.native.Balance(ctx, s.operator)
	if err != nil {
		return nil, fmt.Errorf("failed to read native balance: %w", err)
	}

	report := &BalanceReport{
		Native: native,
		Tokens: make(map[common.Address]*big.Int, len(tokens)),
	}
	for _, token := range tokens {
		if domain.IsZeroAddress(token) {
			return nil, domain.NewZeroIdentifierError("token")
		}
		balance, err := s.tokens.BalanceOf(ctx, token, s.operator)
		if err != nil {
			return nil, fmt.Errorf("failed to read balance of token %s: %w", token.Hex(), err)
		}
		report.Tokens[token] = balance
	}
	return report, nil
}
