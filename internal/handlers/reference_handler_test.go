package handlers

import (
	"testing"

	"go-shop-manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRenameProductRewritesMatches(t *testing.T) {
	ref := models.ItemReference{Maker: "Acme", Types: map[string][]string{
		"Brandnew Mobile": {"X1", "X2", "X1"},
	}}

	renameProduct(&ref, "Brandnew Mobile", "X1", "X1 Pro")

	assert.Equal(t, []string{"X1 Pro", "X2", "X1 Pro"}, ref.Types["Brandnew Mobile"])
}

func TestRenameProductLeavesOtherTypesAlone(t *testing.T) {
	ref := models.ItemReference{Maker: "Acme", Types: map[string][]string{
		"Brandnew Mobile": {"X1"},
		"Power Banks":     {"X1"},
	}}

	renameProduct(&ref, "Brandnew Mobile", "X1", "X1 Pro")

	assert.Equal(t, []string{"X1"}, ref.Types["Power Banks"])
}

func TestRenameProductOnDocumentWithoutTypes(t *testing.T) {
	// A maker document written without a types field decodes to a nil map.
	raw, err := bson.Marshal(bson.M{"_id": "Acme"})
	require.NoError(t, err)

	var ref models.ItemReference
	require.NoError(t, bson.Unmarshal(raw, &ref))
	require.Nil(t, ref.Types)

	assert.NotPanics(t, func() {
		renameProduct(&ref, "Brandnew Mobile", "X1", "X1 Pro")
	})
	assert.NotNil(t, ref.Types)
}
