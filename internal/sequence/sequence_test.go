package sequence

import (
	"context"
	"testing"

	"go-shop-manager/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeRunner applies atomic updates against an in-memory document map.
type fakeRunner struct {
	docs map[string]bson.M
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{docs: map[string]bson.M{}}
}

func (f *fakeRunner) RunAtomic(ctx context.Context, collection, id string, fn store.AtomicFn) (bson.M, error) {
	current, exists := f.docs[id]
	next, err := fn(current, exists)
	if err != nil {
		return nil, err
	}
	f.docs[id] = next
	return next, nil
}

func TestNextNumberFreshCounter(t *testing.T) {
	runner := newFakeRunner()

	n, err := NextNumber(context.Background(), runner, InvoiceCounter, InvoiceStart)
	require.NoError(t, err)
	assert.Equal(t, 10001, n)
	assert.Equal(t, 10001, runner.docs[InvoiceCounter]["current"])
}

func TestNextNumberIncrements(t *testing.T) {
	runner := newFakeRunner()

	first, err := NextNumber(context.Background(), runner, InvoiceCounter, InvoiceStart)
	require.NoError(t, err)
	second, err := NextNumber(context.Background(), runner, InvoiceCounter, InvoiceStart)
	require.NoError(t, err)

	assert.Equal(t, 10001, first)
	assert.Equal(t, 10002, second)
}

func TestNextNumberSequenceHasNoRepeats(t *testing.T) {
	runner := newFakeRunner()
	seen := map[int]bool{}

	for i := 0; i < 50; i++ {
		n, err := NextNumber(context.Background(), runner, ServiceCounter, ServiceJobStart)
		require.NoError(t, err)
		assert.Equal(t, ServiceJobStart+i, n)
		assert.False(t, seen[n], "number %d issued twice", n)
		seen[n] = true
	}
}

func TestNextNumberIndependentDomains(t *testing.T) {
	runner := newFakeRunner()

	inv, err := NextNumber(context.Background(), runner, InvoiceCounter, InvoiceStart)
	require.NoError(t, err)
	job, err := NextNumber(context.Background(), runner, ServiceCounter, ServiceJobStart)
	require.NoError(t, err)

	assert.Equal(t, 10001, inv)
	assert.Equal(t, 1001, job)
}

func TestNextNumberLenientStoredTypes(t *testing.T) {
	cases := []struct {
		name   string
		stored any
		want   int
	}{
		{"int32", int32(10005), 10006},
		{"int64", int64(10005), 10006},
		{"float64", float64(10005), 10006},
		{"zero falls back to start", 0, InvoiceStart + 1},
		{"missing falls back to start", nil, InvoiceStart + 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner := newFakeRunner()
			runner.docs[InvoiceCounter] = bson.M{"current": tc.stored}

			n, err := NextNumber(context.Background(), runner, InvoiceCounter, InvoiceStart)
			require.NoError(t, err)
			assert.Equal(t, tc.want, n)
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "10001", Format(10001))
	assert.Equal(t, "01001", Format(1001))
	assert.Equal(t, "00007", Format(7))
}
