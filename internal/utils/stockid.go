package utils

import (
	"fmt"
	"math/rand"
)

// stockIDPrefixes maps an item type to the two-letter prefix of its
// generated stock IDs. Unknown types fall back to "XX".
var stockIDPrefixes = map[string]string{
	"Brandnew Mobile":         "BM",
	"Refurbished Mobile":      "RM",
	"Charger and Cables":      "CC",
	"Brandnew Watch":          "BW",
	"Refurbished Watch":       "RW",
	"Speaker/Headphones/Buds": "SP",
	"Mobile Phone Casing":     "MC",
	"Tempered Glasses":        "TG",
	"Power Banks":             "PB",
	"Other Item":              "OI",
}

// GenerateStockID builds a stock ID like "BM48213": type prefix plus a
// random 5-digit number.
func GenerateStockID(itemType string) string {
	prefix, ok := stockIDPrefixes[itemType]
	if !ok {
		prefix = "XX"
	}
	return fmt.Sprintf("%s%d", prefix, 10000+rand.Intn(90000))
}
