// Package ui holds layout constants and helpers shared by the views.
package ui

const (
	// BorderHeight is the vertical space taken by a rounded border.
	BorderHeight = 2

	// MinSliderWidth is the narrowest slider worth drawing. Below it the
	// transport row shows times only.
	MinSliderWidth = 5

	// MinSurfaceHeight is the smallest surface that shows the title.
	MinSurfaceHeight = 3
)
