package services

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/constants"
	"github.com/gregsantos/ip-derivative-agent/internal/domain"
	"github.com/gregsantos/ip-derivative-agent/internal/whitelist"
)

// AddWhitelist authorizes the exact licensee tuple. Owner only.
func (s *AgentService) AddWhitelist(ctx context.Context, caller common.Address, terms whitelist.Terms) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := terms.Validate(); err != nil {
		return err
	}
	if err := s.store.Add(ctx, terms); err != nil {
		return err
	}

	s.logger.Info("whitelist entry added",
		zap.String("key", terms.Key().Hex()),
		zap.String("parentIpId", terms.ParentIPID.Hex()),
		zap.String("childIpId", terms.ChildIPID.Hex()),
		zap.String("licensee", terms.Licensee.Hex()),
	)
	s.events.Emit(ctx, constants.EventWhitelistAdded, whitelistPayload(terms))
	return nil
}

// RemoveWhitelist revokes the exact licensee tuple. Owner only. The wildcard
// key for the same four-tuple is never touched here.
func (s *AgentService) RemoveWhitelist(ctx context.Context, caller common.Address, terms whitelist.Terms) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if err := terms.Validate(); err != nil {
		return err
	}
	if err := s.store.Remove(ctx, terms); err != nil {
		return err
	}

	s.logger.Info("whitelist entry removed",
		zap.String("key", terms.Key().Hex()),
		zap.String("parentIpId", terms.ParentIPID.Hex()),
		zap.String("childIpId", terms.ChildIPID.Hex()),
		zap.String("licensee", terms.Licensee.Hex()),
	)
	s.events.Emit(ctx, constants.EventWhitelistRemoved, whitelistPayload(terms))
	return nil
}

// AddWildcardWhitelist authorizes any licensee for the four-tuple. Unlike the
// exact-tuple path, the wildcard helper rejects a zero license terms ID.
func (s *AgentService) AddWildcardWhitelist(ctx context.Context, caller common.Address, terms whitelist.Terms) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if terms.LicenseTermsID == 0 {
		return &domain.InvalidParamsError{Param: "licenseTermsId", Reason: "zero license terms ID"}
	}
	return s.AddWhitelist(ctx, caller, terms.Wildcard())
}

// RemoveWildcardWhitelist revokes the wildcard entry for the four-tuple. The
// same zero terms ID restriction as AddWildcardWhitelist applies.
func (s *AgentService) RemoveWildcardWhitelist(ctx context.Context, caller common.Address, terms whitelist.Terms) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}
	if terms.LicenseTermsID == 0 {
		return &domain.InvalidParamsError{Param: "licenseTermsId", Reason: "zero license terms ID"}
	}
	return s.RemoveWhitelist(ctx, caller, terms.Wildcard())
}

// AddWhitelistBatch authorizes several exact tuples atomically. Owner only.
// The five argument slices must share one length; the first invalid or
// conflicting entry aborts the whole batch with no partial mutation.
func (s *AgentService) AddWhitelistBatch(ctx context.Context, caller common.Address, parents, children, templates []common.Address, termIDs []uint64, licensees []common.Address) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}

	entries, err := assembleBatch(parents, children, templates, termIDs, licensees)
	if err != nil {
		return err
	}
	if err := s.store.AddBatch(ctx, entries); err != nil {
		return err
	}

	s.logger.Info("whitelist batch added", zap.Int("count", len(entries)))
	s.events.Emit(ctx, constants.EventBatchWhitelistAdded, domain.BatchWhitelistEventPayload{Count: len(entries)})
	return nil
}

// RemoveWhitelistBatch revokes several exact tuples atomically. Owner only.
// The same length and all-or-nothing rules as AddWhitelistBatch apply.
func (s *AgentService) RemoveWhitelistBatch(ctx context.Context, caller common.Address, parents, children, templates []common.Address, termIDs []uint64, licensees []common.Address) error {
	if err := s.requireOwner(caller); err != nil {
		return err
	}

	entries, err := assembleBatch(parents, children, templates, termIDs, licensees)
	if err != nil {
		return err
	}
	if err := s.store.RemoveBatch(ctx, entries); err != nil {
		return err
	}

	s.logger.Info("whitelist batch removed", zap.Int("count", len(entries)))
	s.events.Emit(ctx, constants.EventBatchWhitelistRemoved, domain.BatchWhitelistEventPayload{Count: len(entries)})
	return nil
}

// IsAuthorized reports whether the licensee named in terms may register the
// described derivative. The exact key is consulted first, then the wildcard
// key for the same four-tuple.
func (s *AgentService) IsAuthorized(ctx context.Context, terms whitelist.Terms) (bool, error) {
	ok, err := s.store.Has(ctx, terms.Key())
	if err != nil {
		return false, fmt.Errorf("failed to check exact whitelist key: %w", err)
	}
	if ok {
		return true, nil
	}

	ok, err = s.store.Has(ctx, terms.Wildcard().Key())
	if err != nil {
		return false, fmt.Errorf("failed to check wildcard whitelist key: %w", err)
	}
	return ok, nil
}

// KeyOf returns the deterministic storage key for the tuple.
func (s *AgentService) KeyOf(terms whitelist.Terms) common.Hash {
	return terms.Key()
}

// ListWhitelist returns stored entries ordered by key. A non-positive limit
// returns everything after the offset.
func (s *AgentService) ListWhitelist(ctx context.Context, limit, offset int) ([]whitelist.Terms, error) {
	return s.store.List(ctx, limit, offset)
}

func assembleBatch(parents, children, templates []common.Address, termIDs []uint64, licensees []common.Address) ([]whitelist.Terms, error) {
	n := len(parents)
	if len(children) != n || len(templates) != n || len(termIDs) != n || len(licensees) != n {
		return nil, &domain.BatchLengthMismatchError{
			Parents:   len(parents),
			Children:  len(children),
			Templates: len(templates),
			TermsIDs:  len(termIDs),
			Licensees: len(licensees),
		}
	}

	entries := make([]whitelist.Terms, 0, n)
	for i := 0; i < n; i++ {
		t := whitelist.Terms{
			ParentIPID:      parents[i],
			ChildIPID:       children[i],
			LicenseTemplate: templates[i],
			LicenseTermsID:  termIDs[i],
			Licensee:        licensees[i],
		}
		if err := t.Validate(); err != nil {
			return nil, err
		}
		entries = append(entries, t)
	}
	return entries, nil
}

func whitelistPayload(t whitelist.Terms) domain.WhitelistEventPayload {
	return domain.WhitelistEventPayload{
		ParentIPID:      t.ParentIPID.Hex(),
		ChildIPID:       t.ChildIPID.Hex(),
		LicenseTemplate: t.LicenseTemplate.Hex(),
		LicenseTermsID:  t.LicenseTermsID,
		Licensee:        t.Licensee.Hex(),
		Key:             t.Key().Hex(),
	}
}
