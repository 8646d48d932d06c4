package document

import (
	"time"

	"db-compare/core/record"
	"db-compare/core/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// toRecord maps a decoded document onto the requested fields. Missing fields are null.
func toRecord(doc bson.M, fields []string) record.Record {
	var rec record.Record
	for _, name := range fields {
		rec.Set(name, normalize(doc[name]))
	}
	return rec
}

func normalize(v any) record.Value {
	switch t := v.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return record.Null()
	case string:
		if t == "" {
			return record.Null()
		}
		return record.String(t)
	case primitive.DateTime:
		return record.Date(t.Time().UTC())
	case time.Time:
		return record.Date(t.UTC())
	case primitive.Timestamp:
		return record.Date(time.Unix(int64(t.T), 0).UTC())
	case primitive.ObjectID:
		return record.String(t.Hex())
	case primitive.Decimal128:
		if f, ok := utils.ToFloat64(t.String()); ok {
			return record.Float(f)
		}
		return record.String(t.String())
	case primitive.A:
		items := make([]record.Value, len(t))
		for i, item := range t {
			items[i] = normalize(item)
		}
		return record.Array(items...)
	case bson.M, bson.D:
		raw, err := bson.MarshalExtJSON(t, false, false)
		if err != nil {
			return record.String(utils.ToString(t))
		}
		return record.String(string(raw))
	default:
		return record.FromAny(t)
	}
}
