package model

import (
	"encoding/json"
	"strings"
)

// ClaimStatus is the lifecycle state of a claim as reported by the API.
type ClaimStatus string

const (
	// StatusUnknown is used for values the client does not recognize.
	StatusUnknown ClaimStatus = "UNKNOWN"
	// StatusSubmitted is the initial state of every claim.
	StatusSubmitted ClaimStatus = "SUBMITTED"
	// StatusApproved means an admin accepted the claim.
	StatusApproved ClaimStatus = "APPROVED"
	// StatusPaid means the payout was sent.
	StatusPaid ClaimStatus = "PAID"
	// StatusFinished means the claimant confirmed receipt.
	StatusFinished ClaimStatus = "FINISHED"
	// StatusRejected means an admin declined the claim.
	StatusRejected ClaimStatus = "REJECTED"
	// StatusPaymentFailed means the payout could not be completed.
	StatusPaymentFailed ClaimStatus = "PAYMENT_FAILED"
	// StatusWithdraw means the claimant withdrew the claim.
	StatusWithdraw ClaimStatus = "WITHDRAW"
)

// AllStatuses lists every known status, UNKNOWN first.
var AllStatuses = []ClaimStatus{
	StatusUnknown,
	StatusSubmitted,
	StatusApproved,
	StatusPaid,
	StatusFinished,
	StatusRejected,
	StatusPaymentFailed,
	StatusWithdraw,
}

var statusLabels = map[ClaimStatus]string{
	StatusUnknown:       "Unknown",
	StatusSubmitted:     "Submitted",
	StatusApproved:      "Approved",
	StatusPaid:          "Paid",
	StatusFinished:      "Finished",
	StatusRejected:      "Rejected",
	StatusPaymentFailed: "Payment failed",
	StatusWithdraw:      "Withdrawn",
}

// ParseClaimStatus maps s to a known status. Unrecognized values become StatusUnknown.
func ParseClaimStatus(s string) ClaimStatus {
	candidate := ClaimStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := statusLabels[candidate]; ok {
		return candidate
	}
	return StatusUnknown
}

// Valid reports whether s is one of the known statuses.
func (s ClaimStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label returns a human readable name.
func (s ClaimStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return statusLabels[StatusUnknown]
}

// UnmarshalJSON decodes a status, falling back to StatusUnknown for unrecognized values.
func (s *ClaimStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ParseClaimStatus(raw)
	return nil
}
