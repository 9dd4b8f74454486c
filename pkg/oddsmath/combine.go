package oddsmath

// Combine multiplies the decimal multipliers of every leg that carries a
// usable price and converts the product back to American odds. Legs without
// a usable price are skipped. A result of 0 means there was nothing to
// combine and must not be shown as a price.
func Combine(odds []Odds) int64 {
	product, _ := CombineDecimal(odds)

	american, err := DecimalToAmerican(product)
	if err != nil {
		return 0
	}
	return american
}

// CombineDecimal returns the product of the usable multipliers and the number
// of legs that contributed to it. With no usable legs the product is 1.0.
func CombineDecimal(odds []Odds) (float64, int) {
	product := 1.0
	used := 0
	for _, o := range odds {
		m, err := o.Multiplier()
		if err != nil {
			continue
		}
		product *= m
		used++
	}
	return product, used
}
