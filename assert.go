//go:build !debug

package notifier

// bindGuard detects concurrent Init calls on one Service (debug only).
type bindGuard struct{}

func (bindGuard) enter(ID) {}

func (bindGuard) exit() {}
