// Package dice models the configured dice of a match and the rule that
// governs which die each side may pick.
//
// A Die has exactly six non-negative faces, which need not be 1 to 6 and may
// repeat. A Set holds at least three pairwise distinct dice and is read-only
// once built. The second side to choose may never take the die already
// chosen by the first side.
package dice
