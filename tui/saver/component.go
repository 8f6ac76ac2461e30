// Package saver exposes the save capabilities to the view layer. The
// component owns no presentation: rendering is delegated entirely to a
// child function that receives the style class, the always-available
// download action, and the full capability descriptor.
package saver

import (
	"fmt"

	"blockpad-cli/save"
)

// Child builds the actual view from the save capabilities.
type Child func(styleClass string, download save.Action, caps save.Capabilities) string

// CapabilitySource produces the current capability descriptor.
type CapabilitySource interface {
	Capabilities() save.Capabilities
}

// Component bridges the save orchestrator and a caller-supplied view.
type Component struct {
	source     CapabilitySource
	styleClass string
	child      Child
}

// New creates the component. The child function is required: without it
// there is nothing to render.
func New(source CapabilitySource, styleClass string, child Child) (*Component, error) {
	if source == nil {
		return nil, fmt.Errorf("saver: capability source is required")
	}
	if child == nil {
		return nil, fmt.Errorf("saver: child render function is required")
	}
	return &Component{
		source:     source,
		styleClass: styleClass,
		child:      child,
	}, nil
}

// View queries the current capabilities and hands them to the child.
func (c *Component) View() string {
	caps := c.source.Capabilities()
	return c.child(c.styleClass, caps.Download, caps)
}
