package tabstore

import (
	"fmt"

	"github.com/mesh-intelligence/tabvault/pkg/types"
)

// lifecycle owns the exclusive storage handle and its open/closed state.
// "Open" is defined as handle non-nil; there is no separate flag that could
// fall out of agreement with the handle. Methods are not synchronized: the
// store's dispatch goroutine is the only caller.
type lifecycle struct {
	open   Opener
	config types.Config
	handle Handle
}

func (lc *lifecycle) isOpen() bool {
	return lc.handle != nil
}

// openHandle constructs a fresh handle bound to the configured data
// directory. The already-open check belongs to the store, not here.
func (lc *lifecycle) openHandle() error {
	h, err := lc.open(lc.config)
	if err != nil {
		return fmt.Errorf("opening storage handle: %w", err)
	}
	lc.handle = h
	return nil
}

// closeHandle drops the handle and releases its resources. The handle is
// cleared before Close runs, so the lifecycle reads as closed even if the
// engine reports a release error.
func (lc *lifecycle) closeHandle() error {
	if lc.handle == nil {
		return nil
	}
	h := lc.handle
	lc.handle = nil
	return h.Close()
}
