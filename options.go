package ofd

import "image/color"

// renderOptions holds configuration for one RenderPage call.
type renderOptions struct {
	scale         float64
	background    color.Color
	resourceCache bool
}

// defaultOptions returns the default rendering options: 100% zoom,
// white paper, cached resources.
func defaultOptions() renderOptions {
	return renderOptions{
		scale:         1.0,
		background:    color.White,
		resourceCache: true,
	}
}

// Option configures a RenderPage call.
type Option func(*renderOptions)

// WithScale sets the zoom factor multiplying the fixed millimetre to
// pixel density. 1.0 renders at 96 DPI; 0.25 through 2.0 cover the
// usual viewer presets. Values at or below zero are ignored.
func WithScale(scale float64) Option {
	return func(o *renderOptions) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// WithBackground sets the paper color painted before any content. A
// nil color is ignored.
func WithBackground(c color.Color) Option {
	return func(o *renderOptions) {
		if c != nil {
			o.background = c
		}
	}
}

// WithResourceCache toggles the per-document cache of decoded images
// and resolved fonts. Disabling it makes the call decode every
// resource again.
func WithResourceCache(enabled bool) Option {
	return func(o *renderOptions) {
		o.resourceCache = enabled
	}
}
