package services_test

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregsantos/ip-derivative-agent/internal/constants"
	"github.com/gregsantos/ip-derivative-agent/internal/domain"
)

func TestAgentServiceAddWhitelist(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-owner", func(t *testing.T) {
		f := newAgentFixture(t)

		err := f.service.AddWhitelist(ctx, strangerAddr, exactTerms())

		var unauthorized *domain.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
	})

	t.Run("rejects zero identifiers", func(t *testing.T) {
		f := newAgentFixture(t)

		terms := exactTerms()
		terms.ParentIPID = common.Address{}

		err := f.service.AddWhitelist(ctx, ownerAddr, terms)

		var invalid *domain.InvalidParamsError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "parentIpId", invalid.Param)
	})

	t.Run("adds the entry and authorizes the exact licensee", func(t *testing.T) {
		f := newAgentFixture(t)
		f.expectEvent(constants.EventWhitelistAdded)

		require.NoError(t, f.service.AddWhitelist(ctx, ownerAddr, exactTerms()))

		authorized, err := f.service.IsAuthorized(ctx, exactTerms())
		require.NoError(t, err)
		assert.True(t, authorized)

		other := exactTerms()
		other.Licensee = strangerAddr
		authorized, err = f.service.IsAuthorized(ctx, other)
		require.NoError(t, err)
		assert.False(t, authorized)
	})

	t.Run("rejects a duplicate entry", func(t *testing.T) {
		f := newAgentFixture(t)
		f.expectEvent(constants.EventWhitelistAdded).Times(1)

		require.NoError(t, f.service.AddWhitelist(ctx, ownerAddr, exactTerms()))
		err := f.service.AddWhitelist(ctx, ownerAddr, exactTerms())

		var dup *domain.AlreadyWhitelistedError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, licenseeAddr, dup.Licensee)
	})

	t.Run("add remove add cycles like a fresh add", func(t *testing.T) {
		f := newAgentFixture(t)
		f.expectEvent(constants.EventWhitelistAdded).Times(2)
		f.expectEvent(constants.EventWhitelistRemoved).Times(1)

		require.NoError(t, f.service.AddWhitelist(ctx, ownerAddr, exactTerms()))
		require.NoError(t, f.service.RemoveWhitelist(ctx, ownerAddr, exactTerms()))
		require.NoError(t, f.service.AddWhitelist(ctx, ownerAddr, exactTerms()))

		authorized, err := f.service.IsAuthorized(ctx, exactTerms())
		require.NoError(t, err)
		assert.True(t, authorized)
	})
}

func TestAgentServiceRemoveWhitelist(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an absent entry", func(t *testing.T) {
		f := newAgentFixture(t)

		err := f.service.RemoveWhitelist(ctx, ownerAddr, exactTerms())

		var missing *domain.NotWhitelistedError
		require.ErrorAs(t, err, &missing)
	})

	t.Run("never removes through the wildcard key", func(t *testing.T) {
		f := newAgentFixture(t)
		f.expectEvent(constants.EventWhitelistAdded)

		require.NoError(t, f.service.AddWildcardWhitelist(ctx, ownerAddr, exactTerms()))

		// The wildcard entry exists, but removing the exact tuple must fail.
		err := f.service.RemoveWhitelist(ctx, ownerAddr, exactTerms())

		var missing *domain.NotWhitelistedError
		require.ErrorAs(t, err, &missing)

		authorized, err := f.service.IsAuthorized(ctx, exactTerms())
		require.NoError(t, err)
		assert.True(t, authorized)
	})
}

func TestAgentServiceWildcardWhitelist(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a zero license terms ID", func(t *testing.T) {
		f := newAgentFixture(t)

		terms := exactTerms()
		terms.LicenseTermsID = 0

		err := f.service.AddWildcardWhitelist(ctx, ownerAddr, terms)

		var invalid *domain.InvalidParamsError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "licenseTermsId", invalid.Param)

		err = f.service.RemoveWildcardWhitelist(ctx, ownerAddr, terms)
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("authorizes every licensee on the four-tuple", func(t *testing.T) {
		f := newAgentFixture(t)
		f.expectEvent(constants.EventWhitelistAdded)

		require.NoError(t, f.service.AddWildcardWhitelist(ctx, ownerAddr, exactTerms()))

		for _, licensee := range []common.Address{licenseeAddr, strangerAddr, ownerAddr} {
			terms := exactTerms()
			terms.Licensee = licensee

			authorized, err := f.service.IsAuthorized(ctx, terms)
			require.NoError(t, err)
			assert.True(t, authorized, "licensee %s", licensee.Hex())
		}
	})

	t.Run("removing the wildcard revokes blanket access", func(t *testing.T) {
		f := newAgentFixture(t)
		f.expectEvent(constants.EventWhitelistAdded)
		f.expectEvent(constants.EventWhitelistRemoved)

		require.NoError(t, f.service.AddWildcardWhitelist(ctx, ownerAddr, exactTerms()))
		require.NoError(t, f.service.RemoveWildcardWhitelist(ctx, ownerAddr, exactTerms()))

		authorized, err := f.service.IsAuthorized(ctx, exactTerms())
		require.NoError(t, err)
		assert.False(t, authorized)
	})

	t.Run("exact entry survives wildcard removal", func(t *testing.T) {
		f := newAgentFixture(t)
		f.expectEvent(constants.EventWhitelistAdded).Times(2)
		f.expectEvent(constants.EventWhitelistRemoved)

		require.NoError(t, f.service.AddWhitelist(ctx, ownerAddr, exactTerms()))
		require.NoError(t, f.service.AddWildcardWhitelist(ctx, ownerAddr, exactTerms()))
		require.NoError(t, f.service.RemoveWildcardWhitelist(ctx, ownerAddr, exactTerms()))

		authorized, err := f.service.IsAuthorized(ctx, exactTerms())
		require.NoError(t, err)
		assert.True(t, authorized)

		other := exactTerms()
		other.Licensee = strangerAddr
		authorized, err = f.service.IsAuthorized(ctx, other)
		require.NoError(t, err)
		assert.False(t, authorized)
	})
}

func TestAgentServiceWhitelistBatch(t *testing.T) {
	ctx := context.Background()

	secondLicensee := common.HexToAddress("0x66")

	t.Run("rejects mismatched slice lengths", func(t *testing.T) {
		f := newAgentFixture(t)

		err := f.service.AddWhitelistBatch(ctx, ownerAddr,
			[]common.Address{parentAddr, parentAddr},
			[]common.Address{childAddr},
			[]common.Address{templateAddr, templateAddr},
			[]uint64{1, 2},
			[]common.Address{licenseeAddr, secondLicensee},
		)

		var mismatch *domain.BatchLengthMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.Equal(t, 2, mismatch.Parents)
		assert.Equal(t, 1, mismatch.Children)
	})

	t.Run("one invalid entry leaves zero entries added", func(t *testing.T) {
		f := newAgentFixture(t)

		err := f.service.AddWhitelistBatch(ctx, ownerAddr,
			[]common.Address{parentAddr, {}},
			[]common.Address{childAddr, childAddr},
			[]common.Address{templateAddr, templateAddr},
			[]uint64{1, 2},
			[]common.Address{licenseeAddr, secondLicensee},
		)

		var invalid *domain.InvalidParamsError
		require.ErrorAs(t, err, &invalid)

		entries, listErr := f.service.ListWhitelist(ctx, 0, 0)
		require.NoError(t, listErr)
		assert.Empty(t, entries)
	})

	t.Run("one conflicting entry leaves the store untouched", func(t *testing.T) {
		f := newAgentFixture(t)
		f.expectEvent(constants.EventWhitelistAdded)

		require.NoError(t, f.service.AddWhitelist(ctx, ownerAddr, exactTerms()))

		err := f.service.AddWhitelistBatch(ctx, ownerAddr,
			[]common.Address{parentAddr, parentAddr},
			[]common.Address{childAddr, childAddr},
			[]common.Address{templateAddr, templateAddr},
			[]uint64{2, 1},
			[]common.Address{secondLicensee, licenseeAddr},
		)

		var dup *domain.AlreadyWhitelistedError
		require.ErrorAs(t, err, &dup)

		entries, listErr := f.service.ListWhitelist(ctx, 0, 0)
		require.NoError(t, listErr)
		assert.Len(t, entries, 1)
	})

	t.Run("adds and removes a batch atomically", func(t *testing.T) {
		f := newAgentFixture(t)
		f.expectEvent(constants.EventBatchWhitelistAdded)
		f.expectEvent(constants.EventBatchWhitelistRemoved)

		parents := []common.Address{parentAddr, parentAddr}
		children := []common.Address{childAddr, childAddr}
		templates := []common.Address{templateAddr, templateAddr}
		termIDs := []uint64{1, 2}
		licensees := []common.Address{licenseeAddr, secondLicensee}

		require.NoError(t, f.service.AddWhitelistBatch(ctx, ownerAddr, parents, children, templates, termIDs, licensees))

		entries, err := f.service.ListWhitelist(ctx, 0, 0)
		require.NoError(t, err)
		assert.Len(t, entries, 2)

		require.NoError(t, f.service.RemoveWhitelistBatch(ctx, ownerAddr, parents, children, templates, termIDs, licensees))

		entries, err = f.service.ListWhitelist(ctx, 0, 0)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("rejects non-owner", func(t *testing.T) {
		f := newAgentFixture(t)

		err := f.service.AddWhitelistBatch(ctx, strangerAddr, nil, nil, nil, nil, nil)

		var unauthorized *domain.UnauthorizedError
		require.ErrorAs(t, err, &unauthorized)
	})
}

func TestAgentServiceKeyOf(t *testing.T) {
	f := newAgentFixture(t)

	key := f.service.KeyOf(exactTerms())

	assert.Equal(t, exactTerms().Key(), key)
	assert.NotEqual(t, exactTerms().Wildcard().Key(), key)
}
