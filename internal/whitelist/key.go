package whitelist

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gregsantos/ip-derivative-agent/internal/domain"
)

// Terms identifies one derivative licensing relationship: which parent and
// child assets, under which license template and terms id, and for which
// licensee. A zero licensee is the wildcard sentinel and matches any caller.
type Terms struct {
	ParentIPID      common.Address
	ChildIPID       common.Address
	LicenseTemplate common.Address
	LicenseTermsID  uint64
	Licensee        common.Address
}

// Wildcard returns a copy of t with the licensee replaced by the wildcard
// sentinel.
func (t Terms) Wildcard() Terms {
	t.Licensee = domain.WildcardLicensee
	return t
}

// IsWildcard reports whether the licensee is the wildcard sentinel.
func (t Terms) IsWildcard() bool {
	return domain.IsZeroAddress(t.Licensee)
}

// Key derives the content address for t. The tuple is packed in declaration
// order with the terms id widened to a 32-byte word, then hashed with
// Keccak-256. The key is a pure function of the five fields.
func (t Terms) Key() common.Hash {
	termsID := math.U256Bytes(new(big.Int).SetUint64(t.LicenseTermsID))
	return crypto.Keccak256Hash(
		t.ParentIPID.Bytes(),
		t.ChildIPID.Bytes(),
		t.LicenseTemplate.Bytes(),
		termsID,
		t.Licensee.Bytes(),
	)
}

// Validate rejects zero parent, child, and template identifiers. A zero
// licensee is the wildcard and passes; a zero terms id also passes, the
// wildcard convenience path applies its own stricter check.
func (t Terms) Validate() error {
	if domain.IsZeroAddress(t.ParentIPID) {
		return domain.NewZeroIdentifierError("parentIpId")
	}
	if domain.IsZeroAddress(t.ChildIPID) {
		return domain.NewZeroIdentifierError("childIpId")
	}
	if domain.IsZeroAddress(t.LicenseTemplate) {
		return domain.NewZeroIdentifierError("licenseTemplate")
	}
	return nil
}
