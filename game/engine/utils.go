package engine

// PickRandom returns a uniformly chosen element, or false for an empty slice
func PickRandom[T any](items []T, rng Rand) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[rng.IntN(len(items))], true
}

// CountShipCells counts the non-zero cells in a grid
func CountShipCells(grid Grid) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if cell != 0 {
				count++
			}
		}
	}
	return count
}
