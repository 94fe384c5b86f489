package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsDuplicateKeyError(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
	assert.True(t, IsDuplicateKeyError(dup))

	bulkDup := mongo.BulkWriteException{
		WriteErrors: []mongo.BulkWriteError{{WriteError: mongo.WriteError{Code: 11000}}},
	}
	assert.True(t, IsDuplicateKeyError(bulkDup))

	other := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 121, Message: "document failed validation"}},
	}
	assert.False(t, IsDuplicateKeyError(other))

	assert.False(t, IsDuplicateKeyError(errors.New("connection reset")))
	assert.False(t, IsDuplicateKeyError(nil))
}
