package lifecycle

import (
	"testing"

	"github.com/Veraticus/claimflow/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsActive_MainPathOrder(t *testing.T) {
	for ci, current := range MainPath {
		for ni, node := range MainPath {
			assert.Equal(t, ni <= ci, IsActive(node, current), "node %s current %s", node, current)
		}
	}
}

func TestIsActive_BranchNodes(t *testing.T) {
	for _, current := range model.AllStatuses {
		for _, branch := range Branches {
			assert.False(t, IsActive(branch, current), "branch %s current %s", branch, current)
		}
	}
}

func TestAnnotate_BranchHighlightedOnlyWhenCurrent(t *testing.T) {
	g := Annotate(model.StatusWithdraw)

	withdraw, ok := g.Node(model.StatusWithdraw)
	require.True(t, ok)
	assert.True(t, withdraw.Current)
	assert.False(t, withdraw.Active)

	rejected, ok := g.Node(model.StatusRejected)
	require.True(t, ok)
	assert.False(t, rejected.Current)

	// Withdrawn claims never passed SUBMITTED on the main path order.
	submitted, _ := g.Node(model.StatusSubmitted)
	assert.False(t, submitted.Active)
}

func TestEdgeActive(t *testing.T) {
	tests := []struct {
		name    string
		current model.ClaimStatus
		active  []Edge
	}{
		{
			name:    "submitted highlights nothing",
			current: model.StatusSubmitted,
		},
		{
			name:    "paid highlights path to paid",
			current: model.StatusPaid,
			active: []Edge{
				{model.StatusSubmitted, model.StatusApproved},
				{model.StatusApproved, model.StatusPaid},
			},
		},
		{
			name:    "payment failed highlights branch from approved",
			current: model.StatusPaymentFailed,
		},
		{
			name:    "finished highlights whole main path",
			current: model.StatusFinished,
			active: []Edge{
				{model.StatusSubmitted, model.StatusApproved},
				{model.StatusApproved, model.StatusPaid},
				{model.StatusPaid, model.StatusFinished},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Annotate(tt.current)
			var got []Edge
			for _, e := range g.Edges {
				if e.Active {
					got = append(got, e.Edge)
				}
			}
			assert.ElementsMatch(t, tt.active, got)
		})
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[Edge]bool{
		{model.StatusSubmitted, model.StatusWithdraw}: true,
		{model.StatusPaid, model.StatusFinished}:      true,
	}

	for _, from := range model.AllStatuses {
		for _, to := range model.AllStatuses {
			e := Edge{From: from, To: to}
			assert.Equal(t, allowed[e], CanTransition(RoleAnonymous, from, to), "%s -> %s", from, to)
		}
	}

	assert.True(t, CanTransition(RoleAdmin, model.StatusApproved, model.StatusPaymentFailed))
	assert.False(t, CanTransition(RoleAdmin, model.StatusPaymentFailed, model.StatusPaid))
	assert.True(t, Terminal(model.StatusPaymentFailed))
}

func TestActions_Enabled(t *testing.T) {
	for _, s := range model.AllStatuses {
		actions := Actions(s)
		assert.Equal(t, s == model.StatusSubmitted, actions[ActionWithdraw], "withdraw in %s", s)
		assert.Equal(t, s == model.StatusPaid, actions[ActionConfirmFinish], "finish in %s", s)
	}
}

func TestEdges_ContainsBranches(t *testing.T) {
	edges := Edges()
	assert.Contains(t, edges, Edge{model.StatusSubmitted, model.StatusRejected})
	assert.Contains(t, edges, Edge{model.StatusApproved, model.StatusRejected})
	assert.Contains(t, edges, Edge{model.StatusApproved, model.StatusPaymentFailed})
	assert.Len(t, edges, 7)
}
