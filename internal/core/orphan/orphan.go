// Package orphan contains the pure logic of the orphan-resolution workflow.
//
// A session moves SELECT_CANDIDATE -> PRESENT -> AWAIT_ACTION -> one of
// RENAME, DELETE or TRANSFER -> DONE. Selection with nothing left to resolve
// goes straight to DONE. Guards are pure functions that evaluate
// preconditions without side effects.
package orphan

import (
	"fmt"
	"strings"

	"github.com/example/schemadoc/internal/core/catalog"
)

// State is a step of the orphan-resolution session.
type State string

// Session states.
const (
	StateAwaitAction State = "AWAIT_ACTION"
	StateRename      State = "RENAME"
	StateDelete      State = "DELETE"
	StateTransfer    State = "TRANSFER"
)

// Action is an operator choice for an orphaned record.
type Action string

// Operator actions, keyed by the character typed at the prompt.
const (
	ActionRename   Action = "r"
	ActionDelete   Action = "d"
	ActionTransfer Action = "t"
)

// ActionPrompt lists the accepted choices.
const ActionPrompt = "(r=rename, d=delete, t=transfer) "

// ParseAction reads a single-character choice. Anything else is rejected so
// the caller can re-prompt.
func ParseAction(input string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(input))); a {
	case ActionRename, ActionDelete, ActionTransfer:
		return a, true
	}
	return "", false
}

// Next returns the state an accepted action leads to.
func Next(a Action) State {
	switch a {
	case ActionRename:
		return StateRename
	case ActionDelete:
		return StateDelete
	case ActionTransfer:
		return StateTransfer
	}
	return StateAwaitAction
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// RenameContext provides context for rename guards.
type RenameContext struct {
	Current      string // current identity, for messages
	IsOrphaned   bool
	NewName      string
	TargetExists bool // a record already uses the new identity
}

// CanRename evaluates whether an orphaned record can be renamed.
// Rules:
// - record must be orphaned
// - new name must be a single name part (no dots or control characters)
// - new identity must not already be documented (use transfer instead)
func CanRename(ctx RenameContext) GuardResult {
	if !ctx.IsOrphaned {
		return GuardResult{Reason: fmt.Sprintf("%s is not orphaned", ctx.Current)}
	}
	if !catalog.ValidName(ctx.NewName) {
		return GuardResult{Reason: fmt.Sprintf("invalid name %q: names cannot contain dots or control characters", ctx.NewName)}
	}
	if ctx.TargetExists {
		return GuardResult{Reason: fmt.Sprintf("%s is already documented; use transfer to move the documentation onto it", ctx.NewName)}
	}
	return GuardResult{Allowed: true}
}

// DeleteContext provides context for delete guards.
type DeleteContext struct {
	Current    string
	IsOrphaned bool
}

// CanDelete evaluates whether a record can be deleted.
// Rules:
// - record must be orphaned
func CanDelete(ctx DeleteContext) GuardResult {
	if !ctx.IsOrphaned {
		return GuardResult{Reason: fmt.Sprintf("%s is not orphaned", ctx.Current)}
	}
	return GuardResult{Allowed: true}
}

// TransferContext provides context for transfer guards.
type TransferContext struct {
	Current          string
	IsOrphaned       bool
	Target           string
	TargetExists     bool
	TargetIsOrphaned bool
}

// CanTransfer evaluates whether documentation can move from an orphaned
// record onto another documented record.
// Rules:
// - source must be orphaned
// - target must differ from the source
// - target must be documented and not itself orphaned
func CanTransfer(ctx TransferContext) GuardResult {
	if !ctx.IsOrphaned {
		return GuardResult{Reason: fmt.Sprintf("%s is not orphaned", ctx.Current)}
	}
	if ctx.Target == ctx.Current {
		return GuardResult{Reason: "cannot transfer documentation onto itself"}
	}
	if !ctx.TargetExists {
		return GuardResult{Reason: fmt.Sprintf("%s is not documented; run sync first", ctx.Target)}
	}
	if ctx.TargetIsOrphaned {
		return GuardResult{Reason: fmt.Sprintf("%s is orphaned too", ctx.Target)}
	}
	return GuardResult{Allowed: true}
}
