package handlers

import (
	"context"
	"errors"
	"testing"

	"go-shop-manager/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeCleanupStore records the cascade's queries and deletes.
type fakeCleanupStore struct {
	remaining []models.StockEntry
	queryErr  error
	filter    bson.M
	deleted   []string
}

func (f *fakeCleanupStore) Query(ctx context.Context, collection string, filter bson.M, out any) error {
	f.filter = filter
	if f.queryErr != nil {
		return f.queryErr
	}
	*(out.(*[]models.StockEntry)) = f.remaining
	return nil
}

func (f *fakeCleanupStore) Delete(ctx context.Context, collection, id string) error {
	f.deleted = append(f.deleted, collection+"/"+id)
	return nil
}

func TestCleanupOrphanedPricingDeletesLastEntryPricing(t *testing.T) {
	s := &fakeCleanupStore{}
	entry := models.StockEntry{
		StockID: "BM48213", Maker: "Acme", Type: "Brandnew Mobile", Item: "X1",
	}

	err := cleanupOrphanedPricing(context.Background(), s, entry)
	require.NoError(t, err)

	assert.Equal(t, bson.M{"maker": "Acme", "type": "Brandnew Mobile", "item": "X1"}, s.filter)
	assert.Equal(t, []string{models.PricingCollection + "/BM48213"}, s.deleted)
}

func TestCleanupOrphanedPricingKeepsSharedKeyPricing(t *testing.T) {
	s := &fakeCleanupStore{
		remaining: []models.StockEntry{
			{StockID: "BM11111", Maker: "Acme", Type: "Brandnew Mobile", Item: "X1"},
		},
	}
	entry := models.StockEntry{
		StockID: "BM48213", Maker: "Acme", Type: "Brandnew Mobile", Item: "X1",
	}

	err := cleanupOrphanedPricing(context.Background(), s, entry)
	require.NoError(t, err)

	assert.Empty(t, s.deleted)
}

func TestCleanupOrphanedPricingPropagatesQueryFailure(t *testing.T) {
	s := &fakeCleanupStore{queryErr: errors.New("connection reset")}
	entry := models.StockEntry{StockID: "BM48213", Maker: "Acme", Type: "Brandnew Mobile", Item: "X1"}

	err := cleanupOrphanedPricing(context.Background(), s, entry)
	assert.Error(t, err)
	assert.Empty(t, s.deleted)
}
