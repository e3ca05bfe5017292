// Package notation parses change-ringing place notation into method definitions.
//
// A place notation string lists, change by change, the positions whose bells
// stay put. Every other position swaps with its neighbour:
//
//   - digits 1-9, 0, E and T name positions 1 to 12
//   - x (or X) is a cross: every pair swaps
//   - . separates two changes that both name places
//   - - mirrors everything rung so far, except the last change
//
// # Example
//
//	m := notation.Parse("x16x16x16-12", false)
//	fmt.Println(m.Bells, m.Lead())
//
// Parsing never fails. Characters outside the alphabet are logged and skipped,
// and an empty string yields plain rounds on twelve.
package notation
