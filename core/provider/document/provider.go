package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"db-compare/core/provider"
	"db-compare/core/record"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const connectTimeout = 30 * time.Second

// Provider reads records from one MongoDB collection.
type Provider struct {
	client     *mongo.Client
	collection *mongo.Collection
	settings   provider.Settings
}

// Open connects to the server in settings.ConnString. The database is taken from the
// connection string path.
func Open(ctx context.Context, settings provider.Settings) (*Provider, error) {
	cs, err := connstring.ParseAndValidate(settings.ConnString)
	if err != nil {
		return nil, provider.NewError(provider.KindMongoDB, "connect", err)
	}
	if cs.Database == "" {
		return nil, provider.NewError(provider.KindMongoDB, "connect",
			errors.New("connection string does not name a database"))
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(settings.ConnString))
	if err != nil {
		return nil, provider.NewError(provider.KindMongoDB, "connect", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, provider.NewError(provider.KindMongoDB, "connect", err)
	}

	return New(client, cs.Database, settings), nil
}

// New wraps a connected client.
func New(client *mongo.Client, database string, settings provider.Settings) *Provider {
	return &Provider{
		client:     client,
		collection: client.Database(database).Collection(settings.TableName),
		settings:   settings,
	}
}

// Close disconnects the client.
func (p *Provider) Close() error {
	return p.client.Disconnect(context.Background())
}

// GetRecords reads every matching document, restricted to the requested fields.
func (p *Provider) GetRecords(ctx context.Context, fields []string) ([]record.Record, error) {
	cursor, err := p.open(ctx, fields)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(context.Background())

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, provider.NewError(provider.KindMongoDB, "decode", err)
	}

	out := make([]record.Record, len(docs))
	for i, doc := range docs {
		out[i] = toRecord(doc, fields)
	}
	return out, nil
}

func (p *Provider) open(ctx context.Context, fields []string) (*mongo.Cursor, error) {
	if p.settings.Aggregate != "" {
		pipeline, err := parsePipeline(p.settings.Aggregate)
		if err != nil {
			return nil, provider.NewError(provider.KindMongoDB, "parse aggregate", err)
		}
		cursor, err := p.collection.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, provider.NewError(provider.KindMongoDB, "aggregate", err)
		}
		return cursor, nil
	}

	filter, err := parseFilter(p.settings.Query)
	if err != nil {
		return nil, provider.NewError(provider.KindMongoDB, "parse query", err)
	}
	cursor, err := p.collection.Find(ctx, filter, options.Find().SetProjection(projection(fields)))
	if err != nil {
		return nil, provider.NewError(provider.KindMongoDB, "find", err)
	}
	return cursor, nil
}

// parseFilter decodes an extended JSON query. An empty query matches everything.
func parseFilter(query string) (bson.D, error) {
	filter := bson.D{}
	if query == "" {
		return filter, nil
	}
	if err := bson.UnmarshalExtJSON([]byte(query), false, &filter); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}
	return filter, nil
}

// parsePipeline decodes an extended JSON array of stages.
func parsePipeline(aggregate string) (bson.A, error) {
	var wrapper struct {
		Pipeline bson.A `bson:"pipeline"`
	}
	doc := `{"pipeline":` + aggregate + `}`
	if err := bson.UnmarshalExtJSON([]byte(doc), false, &wrapper); err != nil {
		return nil, fmt.Errorf("invalid aggregation pipeline: %w", err)
	}
	return wrapper.Pipeline, nil
}

// projection includes the requested fields and excludes _id unless it is one of them.
func projection(fields []string) bson.D {
	proj := bson.D{}
	wantID := false
	for _, f := range fields {
		if f == "_id" {
			wantID = true
		}
		proj = append(proj, bson.E{Key: f, Value: 1})
	}
	if !wantID {
		proj = append(proj, bson.E{Key: "_id", Value: 0})
	}
	return proj
}
