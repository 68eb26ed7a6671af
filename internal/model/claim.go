// Package model holds the client-side projection of claims, photos and tags.
package model

import (
	"strings"
	"time"
)

// PayoutInfo describes where the reimbursement is sent.
// Account numbers are strings because their formats vary by bank.
type PayoutInfo struct {
	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
	IBAN          string `json:"iban,omitempty"`
	SWIFT         string `json:"swift,omitempty"`
	RoutingNumber string `json:"routingNumber,omitempty"`
	BankAddress   string `json:"bankAddress,omitempty"`
}

// HasIdentifier reports whether an IBAN or account number is present.
func (p PayoutInfo) HasIdentifier() bool {
	return strings.TrimSpace(p.IBAN) != "" || strings.TrimSpace(p.AccountNumber) != ""
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (p PayoutInfo) Trimmed() PayoutInfo {
	return PayoutInfo{
		BankName:      strings.TrimSpace(p.BankName),
		AccountNumber: strings.TrimSpace(p.AccountNumber),
		IBAN:          strings.TrimSpace(p.IBAN),
		SWIFT:         strings.TrimSpace(p.SWIFT),
		RoutingNumber: strings.TrimSpace(p.RoutingNumber),
		BankAddress:   strings.TrimSpace(p.BankAddress),
	}
}

// Claim is a reimbursement request as returned by the API.
// The ID is both the locator and the capability used to reach the claim.
type Claim struct {
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	ExpenseAt   time.Time   `json:"expenseAt"`
	Amount      Amount      `json:"amount"`
	Payout      PayoutInfo  `json:"payout"`
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Recipient   string      `json:"recipient,omitempty"`
	Currency    Currency    `json:"currency"`
	Status      ClaimStatus `json:"status"`
	Photos      []Photo     `json:"photos,omitempty"`
	Tags        []Tag       `json:"tags,omitempty"`
}

// PhotoIDs returns the ids of the claim's attachments in order.
func (c *Claim) PhotoIDs() []string {
	ids := make([]string, 0, len(c.Photos))
	for _, p := range c.Photos {
		ids = append(ids, p.ID)
	}
	return ids
}

// ClaimRequest is the body of POST /api/claims.
type ClaimRequest struct {
	ExpenseAt   time.Time   `json:"expenseAt"`
	Amount      Amount      `json:"amount"`
	Payout      PayoutInfo  `json:"payout"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Status      ClaimStatus `json:"status,omitempty"`
	Currency    Currency    `json:"currency,omitempty"`
	Recipient   string      `json:"recipient,omitempty"`
	Password    string      `json:"password,omitempty"`
	PhotoIDs    []string    `json:"photoIds,omitempty"`
	TagIDs      []string    `json:"tagIds,omitempty"`
}

// ClaimPatchRequest is the body of PATCH /api/claims/{id}.
// Anonymous callers may only change the status; the remaining fields are admin-only.
type ClaimPatchRequest struct {
	ExpenseAt   *time.Time  `json:"expenseAt,omitempty"`
	Amount      *Amount     `json:"amount,omitempty"`
	Payout      *PayoutInfo `json:"payout,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Status      ClaimStatus `json:"status,omitempty"`
	Currency    Currency    `json:"currency,omitempty"`
	Recipient   string      `json:"recipient,omitempty"`
	Password    string      `json:"password,omitempty"`
}
