package device

// presetPositions are the default floor-plan placements for the first
// eight discovered devices, in discovery order. They are spread across the
// plan so none of the first eight collide.
var presetPositions = [8]Position{
	{X: 0.3, Y: 0.4}, // kitchen area
	{X: 0.6, Y: 0.6}, // living room
	{X: 0.7, Y: 0.8}, // master bedroom
	{X: 0.2, Y: 0.7}, // bathroom
	{X: 0.8, Y: 0.4}, // balcony
	{X: 0.5, Y: 0.3}, // dining
	{X: 0.4, Y: 0.8}, // guest bedroom
	{X: 0.9, Y: 0.7}, // office
}

// Grid parameters for devices beyond the preset table. Later devices wrap
// in a 4×3 grid without bound-checking against prior placements; collisions
// are possible and accepted.
const (
	gridOriginX = 0.2
	gridOriginY = 0.3
	gridStepX   = 0.2
	gridStepY   = 0.25
	gridCols    = 4
	gridRows    = 3
)

// PositionForIndex returns the default position for the device at the
// given discovery order index. Indices 0–7 use the preset table; later
// indices fall back to the wrapping grid formula.
func PositionForIndex(index int) Position {
	if index >= 0 && index < len(presetPositions) {
		return presetPositions[index]
	}
	return Position{
		X: gridOriginX + float64(index%gridCols)*gridStepX,
		Y: gridOriginY + float64((index/gridCols)%gridRows)*gridStepY,
	}
}
