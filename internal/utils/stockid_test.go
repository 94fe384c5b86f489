package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStockIDPrefixes(t *testing.T) {
	cases := map[string]string{
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

	for itemType, prefix := range cases {
		id := GenerateStockID(itemType)
		require.Len(t, id, 7, "unexpected length for %q", id)
		assert.Equal(t, prefix, id[:2])

		n, err := strconv.Atoi(id[2:])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10000)
		assert.LessOrEqual(t, n, 99999)
	}
}

func TestGenerateStockIDUnknownType(t *testing.T) {
	id := GenerateStockID("Something Brand New")
	require.Len(t, id, 7)
	assert.Equal(t, "XX", id[:2])
}
