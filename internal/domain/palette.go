package domain

// Palette lists the gradient tokens the front end knows how to render.
var Palette = []string{
	"from-red-500 to-red-600",
	"from-blue-500 to-blue-600",
	"from-green-500 to-green-600",
	"from-yellow-500 to-yellow-600",
	"from-purple-500 to-purple-600",
	"from-pink-500 to-pink-600",
	"from-indigo-500 to-indigo-600",
	"from-orange-500 to-orange-600",
	"from-teal-500 to-teal-600",
	"from-amber-500 to-amber-600",
	"from-cyan-500 to-cyan-600",
	"from-lime-500 to-lime-600",
}

// RandomColor picks a palette entry using rng.
func RandomColor(rng RNG) string {
	idx := int(rng.Float64() * float64(len(Palette)))
	if idx >= len(Palette) {
		idx = len(Palette) - 1
	}
	return Palette[idx]
}
