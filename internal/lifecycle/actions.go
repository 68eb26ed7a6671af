package lifecycle

import "github.com/Veraticus/claimflow/internal/model"

// Action is a status change the claimant can request.
type Action string

const (
	// ActionWithdraw retracts a submitted claim.
	ActionWithdraw Action = "withdraw"
	// ActionConfirmFinish confirms a paid claim was received.
	ActionConfirmFinish Action = "confirm-finish"
)

// Target returns the status an action moves to.
func (a Action) Target() model.ClaimStatus {
	switch a {
	case ActionWithdraw:
		return model.StatusWithdraw
	case ActionConfirmFinish:
		return model.StatusFinished
	}
	return model.StatusUnknown
}

// Requires returns the exact status the claim must be in for the action.
func (a Action) Requires() model.ClaimStatus {
	switch a {
	case ActionWithdraw:
		return model.StatusSubmitted
	case ActionConfirmFinish:
		return model.StatusPaid
	}
	return model.StatusUnknown
}

// Enabled reports whether the action is offered for a claim in status s.
// Credential presence does not matter; the server checks that.
func (a Action) Enabled(s model.ClaimStatus) bool {
	return s == a.Requires() && CanTransition(RoleAnonymous, s, a.Target())
}

// Actions returns the claimant actions with their enabled flag for status s.
func Actions(s model.ClaimStatus) map[Action]bool {
	return map[Action]bool{
		ActionWithdraw:      ActionWithdraw.Enabled(s),
		ActionConfirmFinish: ActionConfirmFinish.Enabled(s),
	}
}
