package normalize

// Most frequent surnames from US census data. A single-token name that is
// also a common surname is far more likely to be an ambiguous person
// reference than a business identity, so the fuser penalizes such matches.
var commonSurnames = map[string]struct{}{
	"smith":     {},
	"johnson":   {},
	"williams":  {},
	"brown":     {},
	"jones":     {},
	"garcia":    {},
	"miller":    {},
	"davis":     {},
	"rodriguez": {},
	"martinez":  {},
	"hernandez": {},
	"lopez":     {},
	"gonzalez":  {},
	"wilson":    {},
	"anderson":  {},
	"thomas":    {},
	"taylor":    {},
	"moore":     {},
	"jackson":   {},
	"martin":    {},
	"lee":       {},
	"perez":     {},
	"thompson":  {},
	"white":     {},
	"harris":    {},
	"sanchez":   {},
	"clark":     {},
	"ramirez":   {},
	"lewis":     {},
	"robinson":  {},
	"walker":    {},
	"young":     {},
	"allen":     {},
	"king":      {},
	"wright":    {},
	"scott":     {},
	"torres":    {},
	"nguyen":    {},
	"hill":      {},
	"flores":    {},
	"green":     {},
	"adams":     {},
	"nelson":    {},
	"baker":     {},
	"hall":      {},
	"rivera":    {},
	"campbell":  {},
	"mitchell":  {},
	"carter":    {},
	"roberts":   {},
}

// IsCommonSurname reports whether the given normalized token is a common
// personal surname.
func IsCommonSurname(token string) bool {
	_, ok := commonSurnames[token]
	return ok
}
