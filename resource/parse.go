package resource

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"guildledger"
)

// WaterPerCorpse is the fixed exchange rate for the water-to-corpse
// conversion rule: 45000 units of water buy one corpse.
const WaterPerCorpse = 45000

// Resource lists arrive as pasted crafting-calculator output: repeated
// "<amount> <name words>" fragments in arbitrary surrounding noise.
var fragmentRE = regexp.MustCompile(`(?P<amount>[0-9]+)(?P<name>\s+(?:[A-Za-z]+\s*)+)`)

var sanitizer = strings.NewReplacer(
	",", "",
	" x ", " ",
	"-", "",
	"•", "",
	":", "",
)

// Parse turns a pasted block of text into ordered (amount, name) pairs, one
// per matched fragment, in input order. Names are trimmed and lower-cased.
// Empty or no-match input yields an empty list. The only failure mode is an
// amount token that does not fit an unsigned 64-bit integer.
func Parse(raw string) ([]Quantity, error) {
	sanitized := sanitizer.Replace(raw)

	var items []Quantity
	for _, m := range fragmentRE.FindAllStringSubmatch(sanitized, -1) {
		amount, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			return nil, guildledger.ParseError(fmt.Sprintf("could not read quantity %q", m[1]), err)
		}
		name := strings.ToLower(strings.TrimSpace(m[2]))
		items = append(items, Quantity{Amount: amount, Name: name})
	}
	return items, nil
}

// Convert applies the water-to-corpse exchange to a parsed list. Water
// lines become corpse lines at WaterPerCorpse per corpse, integer-dividing
// and dropping the remainder; a water line below the rate converts to zero
// corpses and is dropped from the result. All other lines pass through
// unchanged, preserving order.
func Convert(items []Quantity) []Quantity {
	converted := make([]Quantity, 0, len(items))
	for _, it := range items {
		if it.Name != "water" {
			converted = append(converted, it)
			continue
		}
		corpses := it.Amount / WaterPerCorpse
		if corpses > 0 {
			converted = append(converted, Quantity{Amount: corpses, Name: "corpse"})
		}
	}
	return converted
}
