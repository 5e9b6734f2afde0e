package services

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/constants"
	"github.com/gregsantos/ip-derivative-agent/internal/domain"
	"github.com/gregsantos/ip-derivative-agent/internal/interfaces"
	"github.com/gregsantos/ip-derivative-agent/internal/whitelist"
)

// AgentService handles business logic for the delegated registration agent:
// whitelist administration, the fee-forwarding registration protocol, pause
// control, and emergency recovery. All mutating administrative operations are
// restricted to the configured owner account.
type AgentService struct {
	licensing interfaces.LicensingClient
	tokens    interfaces.TokenClient
	native    interfaces.NativeClient
	store     whitelist.Store
	events    interfaces.EventEmitter
	logger    *zap.Logger

	owner           common.Address
	operator        common.Address
	licensingModule common.Address
	royaltyModule   common.Address

	stateMu sync.RWMutex
	paused  bool

	// busy serializes the registration and emergency-withdraw paths; a failed
	// TryLock surfaces as ErrReentrancy instead of queueing.
	busy sync.Mutex
}

// AgentParams carries the collaborators and identities the agent service needs.
type AgentParams struct {
	Licensing interfaces.LicensingClient
	Tokens    interfaces.TokenClient
	Native    interfaces.NativeClient
	Whitelist whitelist.Store
	Events    interfaces.EventEmitter
	Logger    *zap.Logger

	// Owner may be zero or equal to Operator; both assign ownership to the
	// operator account.
	Owner           common.Address
	Operator        common.Address
	LicensingModule common.Address
	RoyaltyModule   common.Address
}

// NewAgentService creates a new instance of AgentService. The agent starts in
// the active (unpaused) state.
func NewAgentService(params AgentParams) (*AgentService, error) {
	if domain.IsZeroAddress(params.Operator) {
		return nil, domain.NewZeroIdentifierError("operator")
	}
	if domain.IsZeroAddress(params.LicensingModule) {
		return nil, domain.NewZeroIdentifierError("licensingModule")
	}
	if domain.IsZeroAddress(params.RoyaltyModule) {
		return nil, domain.NewZeroIdentifierError("royaltyModule")
	}

	owner := params.Owner
	if domain.IsZeroAddress(owner) {
		owner = params.Operator
	}

	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &AgentService{
		licensing:       params.Licensing,
		tokens:          params.Tokens,
		native:          params.Native,
		store:           params.Whitelist,
		events:          params.Events,
		logger:          logger,
		owner:           owner,
		operator:        params.Operator,
		licensingModule: params.LicensingModule,
		royaltyModule:   params.RoyaltyModule,
	}, nil
}

// AgentInfo describes the agent's configured identities and pause state.
type AgentInfo struct {
	Owner           common.Address
	Operator        common.Address
	LicensingModule common.Address
	RoyaltyModule   common.Address
	Paused          bool
}

// Info returns the agent's configured identities and current pause state.
func (s *AgentService) Info() AgentInfo {
	return AgentInfo{
		Owner:           s.owner,
		Operator:        s.operator,
		LicensingModule: s.licensingModule,
		RoyaltyModule:   s.royaltyModule,
		Paused:          s.Paused(),
	}
}

// Owner returns the account allowed to administer the agent.
func (s *AgentService) Owner() common.Address {
	return s.owner
}

// Operator returns the account that signs outbound transactions and holds
// fees in transit.
func (s *AgentService) Operator() common.Address {
	return s.operator
}

// Paused reports whether registration is currently halted.
func (s *AgentService) Paused() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.paused
}

// Pause halts registration and enables emergency withdrawals. Owner only.
// Pausing an already paused agent succeeds without emitting a second event.
func (s *AgentService) Pause(ctx context.Context, caller common.Address) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}

	s.stateMu.Lock()
	already := s.paused
	s.paused = true
	s.stateMu.Unlock()

	if already {
		return nil
	}

	s.logger.Info("agent paused", zap.String("owner", caller.Hex()))
	s.events.Emit(ctx, constants.EventPaused, domain.PauseEventPayload{Paused: true})
	return nil
}

// Unpause resumes registration and disables emergency withdrawals. Owner only.
// Unpausing an already active agent succeeds without emitting a second event.
func (s *AgentService) Unpause(ctx context.Context, caller common.Address) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}

	s.stateMu.Lock()
	already := !s.paused
	s.paused = false
	s.stateMu.Unlock()

	if already {
		return nil
	}

	s.logger.Info("agent unpaused", zap.String("owner", caller.Hex()))
	s.events.Emit(ctx, constants.EventUnpaused, domain.PauseEventPayload{Paused: false})
	return nil
}

func (s *AgentService) requireOwner(caller common.Address) error {
	if caller != s.owner {
		return &domain.UnauthorizedError{Caller: caller}
	}
	return nil
}

func (s *AgentService) requirePauseState(wantPaused bool) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	if s.paused != wantPaused {
		return &domain.InvalidPauseStateError{
			Current:  pauseStateName(s.paused),
			Required: pauseStateName(wantPaused),
		}
	}
	return nil
}

func pauseStateName(paused bool) string {
	if paused {
		return domain.PauseStatePaused
	}
	return domain.PauseStateActive
}
