package ir

import "errors"

// ErrUnsupportedTerminator is returned when the core encounters a block
// terminator that is neither a conditional branch, an unconditional branch,
// nor a return (spec.md §7's "Unsupported terminator"). Switch terminators
// must be lowered by a downstream pass before the core runs.
var ErrUnsupportedTerminator = errors.New("ir: unsupported terminator")
