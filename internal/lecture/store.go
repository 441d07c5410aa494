package lecture

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const lecturesCollection = "lectures"

// Lecture は保存済みの講義を表します。
// Content には生成された講義本体（スライド等）のJSON文字列を保持します。
type Lecture struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"-"`
	Topic     string             `bson:"topic" json:"topic"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Store は講義ストアが実装するインターフェースです。
// 見つからない場合は (nil, nil) を返します。
type Store interface {
	// Insert は講義を保存し、生成されたIDを返します。
	Insert(ctx context.Context, lec *Lecture) (string, error)

	// ListByUser は指定ユーザーの講義を新しい順に返します。
	ListByUser(ctx context.Context, userID string) ([]Lecture, error)

	// FindByID は指定ユーザーが所有する講義を1件取得します。
	FindByID(ctx context.Context, id, userID string) (*Lecture, error)
}

// MongoStore は Store の MongoDB 実装です。
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore は MongoStore を作成します。
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		coll: db.Collection(lecturesCollection),
	}
}

// Insert は講義を保存します。
func (s *MongoStore) Insert(ctx context.Context, lec *Lecture) (string, error) {
	if lec == nil {
		return "", fmt.Errorf("lecture is nil")
	}
	if lec.CreatedAt.IsZero() {
		lec.CreatedAt = time.Now().UTC()
	}

	result, err := s.coll.InsertOne(ctx, lec)
	if err != nil {
		return "", err
	}
	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	lec.ID = id
	return id.Hex(), nil
}

// ListByUser は指定ユーザーの講義を新しい順に返します。
func (s *MongoStore) ListByUser(ctx context.Context, userID string) ([]Lecture, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lectures []Lecture
	if err := cursor.All(ctx, &lectures); err != nil {
		return nil, err
	}
	return lectures, nil
}

// FindByID は指定ユーザーが所有する講義を1件取得します。
// IDの形式が不正な場合も他人の講義の場合も、単に見つからなかったとして扱います。
func (s *MongoStore) FindByID(ctx context.Context, id, userID string) (*Lecture, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var lec Lecture
	err = s.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&lec)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &lec, nil
}
