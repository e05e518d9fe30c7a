package party

// ToPercent converts a pixel coordinate to a percentage of dim.
func ToPercent(v, dim float64) float64 {
	if dim == 0 {
		return 0
	}
	return v / dim * 100
}

// FromPercent converts a percentage back to pixels of dim.
func FromPercent(pct, dim float64) float64 {
	return pct / 100 * dim
}

// PaddleFromPercent converts a stored paddle field to pixels, using fallback
// while the field is still PaddleUnset.
func PaddleFromPercent(pct, dim, fallback float64) float64 {
	if pct < 0 {
		return fallback
	}
	return FromPercent(pct, dim)
}
