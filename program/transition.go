// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package program

import "fmt"

// Apply returns the state that results from executing [ix] against [s].
//
// Increment wraps on overflow. Decrement stops at zero.
func Apply(s CounterState, ix Instruction) CounterState {
	switch ix := ix.(type) {
	case Increment:
		s.Counter += ix.Value
	case Decrement:
		if ix.Value > s.Counter {
			s.Counter = 0
		} else {
			s.Counter -= ix.Value
		}
	case Update:
		s.Counter = ix.Value
	case Reset:
		s.Counter = 0
	default:
		// Instruction is closed to this package.
		panic(fmt.Sprintf("unexpected instruction %T", ix))
	}
	return s
}
