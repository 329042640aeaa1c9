// Package mongostore keeps narrators and hadiths in MongoDB.
//
// Narrators live in the "narrators" collection keyed by index; hadiths
// live in "hadiths" keyed by id with their chains embedded. Each narrator
// document carries a search_key field (see repository.SearchKey) which
// searches match against in addition to a case-insensitive regex over the
// raw names and grade.
package mongostore

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/textnorm"
	"github.com/mki/isnad/pkg/repository"
)

const (
	narratorsCollection = "narrators"
	hadithsCollection   = "hadiths"

	connectTimeout = 10 * time.Second
)

// Store is a MongoDB backed narrator and hadith store.
type Store struct {
	client    *mongo.Client
	narrators *mongo.Collection
	hadiths   *mongo.Collection
}

var _ repository.Store = (*Store)(nil)

// narratorDoc is the stored form of a narrator.
type narratorDoc struct {
	isnad.Narrator `bson:",inline"`
	SearchKey      string `bson:"search_key"`
}

// Open connects to uri and uses database. The connection is verified with
// a ping.
func Open(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetAppName("isnad"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeRepository, err, "ping mongodb")
	}
	return New(client, database), nil
}

// New uses an existing client.
func New(client *mongo.Client, database string) *Store {
	db := client.Database(database)
	return &Store{
		client:    client,
		narrators: db.Collection(narratorsCollection),
		hadiths:   db.Collection(hadithsCollection),
	}
}

// Name implements repository.Named.
func (s *Store) Name() string { return "mongo" }

// Close disconnects the client.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}

// EnsureIndexes creates the secondary indexes used by listing.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.hadiths.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "source", Value: 1}, {Key: "number", Value: 1}},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeRepository, err, "create hadith index")
	}
	return nil
}

func (s *Store) FetchNarrators(ctx context.Context, indices []int) ([]isnad.Narrator, error) {
	if len(indices) == 0 {
		return nil, nil
	}
	cur, err := s.narrators.Find(ctx, bson.M{"_id": bson.M{"$in": indices}})
	if err != nil {
		return nil, err
	}
	return decodeNarrators(ctx, cur)
}

func (s *Store) SearchNarrators(ctx context.Context, query string, limit int) ([]isnad.Narrator, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(repository.ClampLimit(limit)))
	cur, err := s.narrators.Find(ctx, searchFilter(query), opts)
	if err != nil {
		return nil, err
	}
	return decodeNarrators(ctx, cur)
}

func decodeNarrators(ctx context.Context, cur *mongo.Cursor) ([]isnad.Narrator, error) {
	var docs []narratorDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]isnad.Narrator, len(docs))
	for i, d := range docs {
		out[i] = d.Narrator
	}
	return out, nil
}

func (s *Store) FetchHadith(ctx context.Context, id string) (*isnad.Hadith, error) {
	var h isnad.Hadith
	err := s.hadiths.FindOne(ctx, bson.M{"_id": id}).Decode(&h)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *Store) ListHadiths(ctx context.Context, offset, limit int, source string) ([]isnad.Hadith, int, error) {
	filter := listFilter(source)
	total, err := s.hadiths.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if int64(offset) >= total {
		return nil, int(total), nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "source", Value: 1}, {Key: "number", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := s.hadiths.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var out []isnad.Hadith
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, int(total), nil
}

// Import upserts narrators and hadiths.
func (s *Store) Import(ctx context.Context, narrators []isnad.Narrator, hadiths []isnad.Hadith) error {
	if len(narrators) > 0 {
		models := make([]mongo.WriteModel, len(narrators))
		for i, n := range narrators {
			models[i] = mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": n.Index}).
				SetReplacement(narratorDoc{Narrator: n, SearchKey: repository.SearchKey(n)}).
				SetUpsert(true)
		}
		if _, err := s.narrators.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return errors.Wrap(errors.ErrCodeRepository, err, "import narrators")
		}
	}
	if len(hadiths) > 0 {
		models := make([]mongo.WriteModel, len(hadiths))
		for i, h := range hadiths {
			models[i] = mongo.NewReplaceOneModel().
				SetFilter(bson.M{"_id": h.ID}).
				SetReplacement(h).
				SetUpsert(true)
		}
		if _, err := s.hadiths.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
			return errors.Wrap(errors.ErrCodeRepository, err, "import hadiths")
		}
	}
	return nil
}

func searchFilter(query string) bson.M {
	raw := bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	or := bson.A{
		bson.M{"search_key": bson.M{"$regex": regexp.QuoteMeta(textnorm.Fold(query))}},
		bson.M{"grade": raw},
	}
	for _, l := range isnad.Locales {
		or = append(or, bson.M{"name." + string(l): raw})
	}
	return bson.M{"$or": or}
}

func listFilter(source string) bson.M {
	if source == "" {
		return bson.M{}
	}
	return bson.M{"source": source}
}
