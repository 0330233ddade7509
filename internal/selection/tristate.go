// Package selection implements the tri-state selection engine: an explicit
// per-path selection store, a memoizing directory-state cache, recursive
// selection propagation, and bottom-up tri-state resolution over a mutable
// directory tree.
package selection

// TriState describes a directory's aggregate selection.
type TriState int

const (
	NotSelected TriState = iota
	PartiallySelected
	FullySelected
)

// String returns the marker used by the tree views: "[ ]", "[~]", "[x]".
func (s TriState) String() string {
	switch s {
	case PartiallySelected:
		return "[~]"
	case FullySelected:
		return "[x]"
	default:
		return "[ ]"
	}
}
