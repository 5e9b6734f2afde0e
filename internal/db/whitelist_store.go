package db

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gregsantos/ip-derivative-agent/internal/whitelist"
)

// WhitelistStore persists whitelist entries in Postgres. Batch mutations run
// inside a single transaction so the first conflicting entry rolls the whole
// batch back.
type WhitelistStore struct {
	pool *pgxpool.Pool
}

// NewWhitelistStore creates a Postgres-backed whitelist store.
func NewWhitelistStore(pool *pgxpool.Pool) *WhitelistStore {
	return &WhitelistStore{pool: pool}
}

// batchTxRetries bounds retries of batch transactions on serialization failures.
const batchTxRetries = 3

const insertWhitelistEntry = `
INSERT INTO whitelist_entries (key, parent_ip_id, child_ip_id, license_template, license_terms_id, licensee)
VALUES ($1, $2, $3, $4, $5::numeric, $6)
ON CONFLICT (key) DO NOTHING
`

const deleteWhitelistEntry = `
DELETE FROM whitelist_entries WHERE key = $1
`

const whitelistEntryExists = `
SELECT EXISTS (SELECT 1 FROM whitelist_entries WHERE key = $1)
`

const listWhitelistEntries = `
SELECT parent_ip_id, child_ip_id, license_template, license_terms_id::text, licensee
FROM whitelist_entries
ORDER BY key
LIMIT $1 OFFSET $2
`

// Add inserts the exact-tuple key, failing if it is already present.
func (s *WhitelistStore) Add(ctx context.Context, terms whitelist.Terms) error {
	tag, err := s.pool.Exec(ctx, insertWhitelistEntry, whitelistArgs(terms)...)
	if err != nil {
		return fmt.Errorf("failed to insert whitelist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return whitelist.NewAlreadyWhitelistedError(terms)
	}
	return nil
}

// Remove deletes the exact-tuple key, failing if it is absent.
func (s *WhitelistStore) Remove(ctx context.Context, terms whitelist.Terms) error {
	tag, err := s.pool.Exec(ctx, deleteWhitelistEntry, terms.Key().Hex())
	if err != nil {
		return fmt.Errorf("failed to delete whitelist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return whitelist.NewNotWhitelistedError(terms)
	}
	return nil
}

// AddBatch inserts every entry or none. A conflict with an existing entry, or
// the same key appearing twice in the batch, aborts the transaction.
func (s *WhitelistStore) AddBatch(ctx context.Context, entries []whitelist.Terms) error {
	return WithTransactionRetry(ctx, s.pool, batchTxRetries, func(tx pgx.Tx) error {
		for _, t := range entries {
			tag, err := tx.Exec(ctx, insertWhitelistEntry, whitelistArgs(t)...)
			if err != nil {
				return fmt.Errorf("failed to insert whitelist entry: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return whitelist.NewAlreadyWhitelistedError(t)
			}
		}
		return nil
	})
}

// RemoveBatch deletes every entry or none. A missing entry, or the same key
// appearing twice in the batch, aborts the transaction.
func (s *WhitelistStore) RemoveBatch(ctx context.Context, entries []whitelist.Terms) error {
	return WithTransactionRetry(ctx, s.pool, batchTxRetries, func(tx pgx.Tx) error {
		for _, t := range entries {
			tag, err := tx.Exec(ctx, deleteWhitelistEntry, t.Key().Hex())
			if err != nil {
				return fmt.Errorf("failed to delete whitelist entry: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return whitelist.NewNotWhitelistedError(t)
			}
		}
		return nil
	})
}

// Has reports whether the given key is present.
func (s *WhitelistStore) Has(ctx context.Context, key common.Hash) (bool, error) {
	var exists bool
	if err := s.pool.QueryRow(ctx, whitelistEntryExists, key.Hex()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to query whitelist entry: %w", err)
	}
	return exists, nil
}

// List returns stored entries ordered by key for stable pagination. A
// non-positive limit returns everything after the offset.
func (s *WhitelistStore) List(ctx context.Context, limit, offset int) ([]whitelist.Terms, error) {
	var queryLimit interface{}
	if limit > 0 {
		queryLimit = limit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.pool.Query(ctx, listWhitelistEntries, queryLimit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list whitelist entries: %w", err)
	}
	defer rows.Close()

	entries := []whitelist.Terms{}
	for rows.Next() {
		var parent, child, template, termsID, licensee string
		if err := rows.Scan(&parent, &child, &template, &termsID, &licensee); err != nil {
			return nil, fmt.Errorf("failed to scan whitelist entry: %w", err)
		}

		parsed, err := strconv.ParseUint(termsID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse license terms ID %q: %w", termsID, err)
		}

		entries = append(entries, whitelist.Terms{
			ParentIPID:      common.HexToAddress(parent),
			ChildIPID:       common.HexToAddress(child),
			LicenseTemplate: common.HexToAddress(template),
			LicenseTermsID:  parsed,
			Licensee:        common.HexToAddress(licensee),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate whitelist entries: %w", err)
	}

	return entries, nil
}

func whitelistArgs(t whitelist.Terms) []interface{} {
	return []interface{}{
		t.Key().Hex(),
		t.ParentIPID.Hex(),
		t.ChildIPID.Hex(),
		t.LicenseTemplate.Hex(),
		strconv.FormatUint(t.LicenseTermsID, 10),
		t.Licensee.Hex(),
	}
}
