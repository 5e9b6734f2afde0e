package domain

import (
	"github.com/ethereum/go-ethereum/common"
)

// ZeroAddress is the null identifier. It is rejected wherever an asset,
// template, or destination address is required.
var ZeroAddress = common.Address{}

// WildcardLicensee is the reserved licensee value meaning "any caller".
// A whitelist entry keyed with it authorizes every account for its
// (parent, child, template, terms) combination.
var WildcardLicensee = common.Address{}

// Pause states as reported to callers.
const (
	PauseStateActive = "active"
	PauseStatePaused = "paused"
)

// IsZeroAddress reports whether a is the null identifier.
func IsZeroAddress(a common.Address) bool {
	return a == ZeroAddress
}
