package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is a structured record of a completed mutating operation, published
// for off-chain observation.
type Event struct {
	ID        uuid.UUID   `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// WhitelistEventPayload describes a single whitelist addition or removal.
type WhitelistEventPayload struct {
	ParentIPID      string `json:"parent_ip_id"`
	ChildIPID       string `json:"child_ip_id"`
	LicenseTemplate string `json:"license_template"`
	LicenseTermsID  uint64 `json:"license_terms_id"`
	Licensee        string `json:"licensee"`
	Key             string `json:"key"`
}

// BatchWhitelistEventPayload describes a batch whitelist mutation. Only the
// entry count is carried, matching the batch event shape.
type BatchWhitelistEventPayload struct {
	Count int `json:"count"`
}

// DerivativeRegisteredPayload describes a completed registration.
type DerivativeRegisteredPayload struct {
	Caller          string `json:"caller"`
	ChildIPID       string `json:"child_ip_id"`
	ParentIPID      string `json:"parent_ip_id"`
	LicenseTermsID  uint64 `json:"license_terms_id"`
	LicenseTemplate string `json:"license_template"`
	FeeToken        string `json:"fee_token"`
	FeeAmount       string `json:"fee_amount"`
	TxHash          string `json:"tx_hash,omitempty"`
}

// EmergencyWithdrawPayload describes a completed emergency sweep.
type EmergencyWithdrawPayload struct {
	Token       string `json:"token"`
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
	TxHash      string `json:"tx_hash,omitempty"`
}

// PauseEventPayload describes a pause state transition.
type PauseEventPayload struct {
	Paused bool `json:"paused"`
}
