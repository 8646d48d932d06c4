package document

import (
	"context"
	"testing"
	"time"

	"db-compare/core/provider"
	"db-compare/core/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalize(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2021, 6, 1, 23, 30, 0, 0, time.UTC)
	dec, err := primitive.ParseDecimal128("12.50")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   any
		want record.Value
	}{
		{"nil", nil, record.Null()},
		{"bson null", primitive.Null{}, record.Null()},
		{"empty string", "", record.Null()},
		{"string", "abc", record.String("abc")},
		{"int32", int32(5), record.Int(5)},
		{"int64", int64(5), record.Int(5)},
		{"double", 2.5, record.Float(2.5)},
		{"decimal", dec, record.Float(12.5)},
		{"bool", true, record.Bool(true)},
		{"datetime", primitive.NewDateTimeFromTime(when), record.Date(when)},
		{"object id", oid, record.String(oid.Hex())},
		{"array", primitive.A{"a", int32(1)}, record.Array(record.String("a"), record.Int(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(tt.in)
			assert.True(t, record.Equal(tt.want, got), "want %s, got %s", tt.want.Text(), got.Text())
		})
	}
}

func TestNormalize_Subdocument(t *testing.T) {
	got := normalize(bson.M{"a": int32(1)})
	assert.Equal(t, record.KindString, got.Kind())
	assert.Contains(t, got.Str(), `"a"`)
}

func TestToRecord(t *testing.T) {
	rec := toRecord(bson.M{"id": int32(1), "name": "Ann", "other": "x"}, []string{"id", "name", "email"})

	assert.Equal(t, []string{"id", "name", "email"}, rec.Fields())
	assert.True(t, rec.Get("email").IsNull())
	assert.False(t, rec.Has("other"))
}

func TestProjection(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "a", Value: 1}, {Key: "_id", Value: 0}}, projection([]string{"a"}))
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}, {Key: "a", Value: 1}}, projection([]string{"_id", "a"}))
}

func TestParseFilter(t *testing.T) {
	filter, err := parseFilter("")
	require.NoError(t, err)
	assert.Empty(t, filter)

	filter, err = parseFilter(`{"status": "active"}`)
	require.NoError(t, err)
	assert.Equal(t, bson.D{{Key: "status", Value: "active"}}, filter)

	_, err = parseFilter(`{"status":`)
	assert.ErrorContains(t, err, "invalid query")
}

func TestParsePipeline(t *testing.T) {
	pipeline, err := parsePipeline(`[{"$match": {"a": 1}}, {"$project": {"_id": 0}}]`)
	require.NoError(t, err)
	assert.Len(t, pipeline, 2)

	_, err = parsePipeline(`{"$match": {}}`)
	assert.ErrorContains(t, err, "invalid aggregation pipeline")
}

func TestOpen_InvalidConnString(t *testing.T) {
	t.Run("Malformed", func(t *testing.T) {
		_, err := Open(context.Background(), provider.Settings{Type: "mongodb", ConnString: "not-a-uri", TableName: "c"})
		assert.ErrorIs(t, err, provider.ErrProvider)
	})

	t.Run("No Database", func(t *testing.T) {
		_, err := Open(context.Background(), provider.Settings{Type: "mongodb", ConnString: "mongodb://localhost:27017", TableName: "c"})
		assert.ErrorContains(t, err, "does not name a database")
	})
}
