package domain

import "math"

// Prices maps every color to its current stock price. A Prices value always
// carries all four colors.
type Prices map[Color]int

// NoCeiling disables the upper price bound.
const NoCeiling = math.MaxInt

// InitialPrices returns a price table with every color at start.
func InitialPrices(start int) Prices {
	prices := make(Prices, len(Colors()))
	for _, c := range Colors() {
		prices[c] = start
	}
	return prices
}

// ApplyDeltas returns a new price table with each non-zero delta applied and
// clamped into [floor, ceiling]. The input table is not mutated; unknown
// delta colors are ignored. Out-of-range results clamp silently, they are
// never an error.
func ApplyDeltas(prices Prices, deltas map[Color]int, floor, ceiling int) Prices {
	next := make(Prices, len(prices))
	for color, price := range prices {
		next[color] = price
	}
	for color, delta := range deltas {
		if delta == 0 {
			continue
		}
		if _, known := next[color]; !known {
			continue
		}
		next[color] = clampPrice(next[color]+delta, floor, ceiling)
	}
	return next
}

// Accumulate sums any number of delta maps into one, seeded at zero for every
// known color. Unknown color keys are dropped.
func Accumulate(deltaSets ...map[Color]int) map[Color]int {
	total := make(map[Color]int, len(Colors()))
	for _, c := range Colors() {
		total[c] = 0
	}
	for _, set := range deltaSets {
		for color, delta := range set {
			if _, known := total[color]; !known {
				continue
			}
			total[color] += delta
		}
	}
	return total
}

// LowestPricedColors returns every color tied at the minimum price, in
// canonical color order.
func LowestPricedColors(prices Prices) []Color {
	return extremeColors(prices, func(candidate, best int) bool { return candidate < best })
}

// HighestPricedColors returns every color tied at the maximum price, in
// canonical color order.
func HighestPricedColors(prices Prices) []Color {
	return extremeColors(prices, func(candidate, best int) bool { return candidate > best })
}

func extremeColors(prices Prices, better func(candidate, best int) bool) []Color {
	var out []Color
	var best int
	for _, color := range Colors() {
		price, ok := prices[color]
		if !ok {
			continue
		}
		if len(out) == 0 || better(price, best) {
			out = out[:0]
			out = append(out, color)
			best = price
			continue
		}
		if price == best {
			out = append(out, color)
		}
	}
	return out
}

// PortfolioValue sums the current price of each card. Cards whose color is
// not priced are skipped.
func PortfolioValue(cards []ResourceCard, prices Prices) int {
	total := 0
	for _, card := range cards {
		if price, ok := prices[card.Color]; ok {
			total += price
		}
	}
	return total
}

// DiffPrices returns a sparse map of only the colors whose price differs
// between the two tables.
func DiffPrices(old, updated Prices) map[Color]int {
	diff := make(map[Color]int)
	for color, price := range updated {
		if old[color] != price {
			diff[color] = price
		}
	}
	return diff
}

func clampPrice(v, floor, ceiling int) int {
	if v < floor {
		return floor
	}
	if v > ceiling {
		return ceiling
	}
	return v
}
