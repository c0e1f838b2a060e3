package domain

var allowedLocations = map[string]struct{}{
	"Albuquerque, New Mexico":    {},
	"Carlsbad, California":       {},
	"Chula Vista, California":    {},
	"Colorado Springs, Colorado": {},
	"Denver, Colorado":           {},
	"El Cajon, California":       {},
	"El Paso, Texas":             {},
	"Escondido, California":      {},
	"Fresno, California":         {},
	"La Mesa, California":        {},
	"Las Vegas, Nevada":          {},
	"Los Angeles, California":    {},
	"Oceanside, California":      {},
	"Phoenix, Arizona":           {},
	"Sacramento, California":     {},
	"Salt Lake City, Utah":       {},
	"San Diego, California":      {},
	"Tucson, Arizona":            {},
}

// IsAllowedLocation reports whether loc is one of the fixed review locations.
// Matching is exact and case-sensitive.
func IsAllowedLocation(loc string) bool {
	_, ok := allowedLocations[loc]
	return ok
}
