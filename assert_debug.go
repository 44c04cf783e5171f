//go:build debug

package notifier

import "sync/atomic"

// bindGuard detects concurrent Init calls on one Service (debug only).
type bindGuard struct {
	busy atomic.Bool
}

func (g *bindGuard) enter(id ID) {
	if !g.busy.CompareAndSwap(false, true) {
		contractViolation(
			"concurrent Init of %s; bind every endpoint from the owner's constructor",
			id,
		)
	}
}

func (g *bindGuard) exit() {
	g.busy.Store(false)
}
