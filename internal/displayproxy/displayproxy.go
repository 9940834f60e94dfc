// Package displayproxy abstracts an optional collaborator that can show
// a live thumbnail of a hidden window in place of actually showing it.
// When a workspace is scrolled out of view, the window manager hides
// its windows outright; a Proxy lets an adapter instead keep a
// lightweight visual stand-in on screen (akin to a desktop-composited
// thumbnail with the real window cloaked beneath it), without the core
// layout engine knowing the difference.
package displayproxy

import "github.com/Glitch752/winscrollwm/internal/geom"

// Proxy manages thumbnail stand-ins for hidden windows. Every method is
// keyed by the window's platform id as a plain uint32 so this package
// has no dependency on internal/platform, keeping it adoptable by any
// adapter regardless of platform.
type Proxy interface {
	// Create registers a thumbnail for sourceID showing sourceRect's
	// content, placed at the given screen position.
	Create(sourceID uint32, sourceRect geom.Rect, posX, posY int) error

	// Update moves or resizes an existing thumbnail.
	Update(sourceID uint32, sourceRect geom.Rect, posX, posY int) error

	// Show and Hide toggle the thumbnail's visibility without
	// destroying it.
	Show(sourceID uint32) error
	Hide(sourceID uint32) error

	// Reorder restacks the thumbnail directly above or below its
	// source window, keeping click-through interactions sane.
	Reorder(sourceID uint32) error

	// Close destroys the thumbnail and releases its resources.
	Close(sourceID uint32) error
}

// NoOp is the default Proxy: every method is a no-op success. Adapters
// that don't support thumbnails (or platforms with no compositor
// thumbnail API) use this so the window manager core never has to
// special-case a missing collaborator.
type NoOp struct{}

var _ Proxy = NoOp{}

func (NoOp) Create(sourceID uint32, sourceRect geom.Rect, posX, posY int) error  { return nil }
func (NoOp) Update(sourceID uint32, sourceRect geom.Rect, posX, posY int) error  { return nil }
func (NoOp) Show(sourceID uint32) error                                         { return nil }
func (NoOp) Hide(sourceID uint32) error                                         { return nil }
func (NoOp) Reorder(sourceID uint32) error                                      { return nil }
func (NoOp) Close(sourceID uint32) error                                        { return nil }
