package standings

// Scale bounds the visual magnitude of a standing, e.g. a bar height in rem.
type Scale struct {
	Floor   float64 `json:"floor" yaml:"floor" validate:"gte=0"`
	Ceiling float64 `json:"ceiling" yaml:"ceiling" validate:"gtefield=Floor"`
}

// DefaultScale matches the podium bars of the public board.
var DefaultScale = Scale{Floor: 12, Ceiling: 22}

// Magnitude interpolates linearly between floor and ceiling by points/maxPoints.
// The ratio is clamped to [0, 1] and the divisor is never below 1.
func Magnitude(points, maxPoints int, scale Scale) float64 {
	divisor := maxPoints
	if divisor < 1 {
		divisor = 1
	}
	ratio := float64(points) / float64(divisor)
	switch {
	case ratio < 0:
		ratio = 0
	case ratio > 1:
		ratio = 1
	}
	return scale.Floor + (scale.Ceiling-scale.Floor)*ratio
}
