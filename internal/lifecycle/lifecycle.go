// Package lifecycle describes the claim status graph and who may move a claim along it.
package lifecycle

import (
	"slices"

	"github.com/Veraticus/claimflow/internal/model"
)

// Role identifies the caller when deciding which transitions are allowed.
type Role int

const (
	// RoleAnonymous is anyone holding the claim id (and password, if set).
	RoleAnonymous Role = iota
	// RoleAdmin is a back-office operator.
	RoleAdmin
)

// Edge is a directed transition in the status graph.
type Edge struct {
	From model.ClaimStatus
	To   model.ClaimStatus
}

// MainPath is the ordered happy path every claim is expected to follow.
var MainPath = []model.ClaimStatus{
	model.StatusSubmitted,
	model.StatusApproved,
	model.StatusPaid,
	model.StatusFinished,
}

// Branches are terminal side states.
var Branches = []model.ClaimStatus{
	model.StatusWithdraw,
	model.StatusRejected,
	model.StatusPaymentFailed,
}

var transitions = map[model.ClaimStatus][]model.ClaimStatus{
	model.StatusSubmitted: {
		model.StatusApproved,
		model.StatusWithdraw,
		model.StatusRejected,
	},
	model.StatusApproved: {
		model.StatusPaid,
		model.StatusRejected,
		model.StatusPaymentFailed,
	},
	model.StatusPaid: {
		model.StatusFinished,
	},
}

// anonymous transitions are the only ones the claimant may trigger.
// PAYMENT_FAILED has no claimant-side recovery.
var anonymous = []Edge{
	{From: model.StatusSubmitted, To: model.StatusWithdraw},
	{From: model.StatusPaid, To: model.StatusFinished},
}

// Nodes returns every status drawn in the graph, main path first.
func Nodes() []model.ClaimStatus {
	return slices.Concat(MainPath, Branches)
}

// Next returns the statuses reachable from s in one step.
func Next(s model.ClaimStatus) []model.ClaimStatus {
	return slices.Clone(transitions[s])
}

// Edges returns all graph edges in a stable order.
func Edges() []Edge {
	var edges []Edge
	for _, from := range MainPath {
		for _, to := range transitions[from] {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// CanTransition reports whether role may move a claim from one status to another.
// The server remains the authority; this only drives what the client offers.
func CanTransition(role Role, from, to model.ClaimStatus) bool {
	if role == RoleAdmin {
		return slices.Contains(transitions[from], to)
	}
	return slices.Contains(anonymous, Edge{From: from, To: to})
}

// Terminal reports whether no transition leaves s.
func Terminal(s model.ClaimStatus) bool {
	return len(transitions[s]) == 0
}

// MainIndex returns the position of s on the main path, or -1.
func MainIndex(s model.ClaimStatus) int {
	return slices.Index(MainPath, s)
}
