package db

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velotype/go-socket-typerace/internal/texts"
)

type TypingSentence struct {
	Story           string `bson:"story"`
	TotalCharacters int    `bson:"totalCharacters"`
	TotalWords      int    `bson:"totalWords"`
	Hash            string `bson:"hash"`
}

var client *mongo.Client

func Connect(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
	return err
}

func GetRandomSentence(ctx context.Context) (*TypingSentence, error) {
	collection := client.Database("TypeRace").Collection("passages")

	pipeline := mongo.Pipeline{
		{{Key: "$sample", Value: bson.D{{Key: "size", Value: 1}}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sentence TypingSentence
	if cursor.Next(ctx) {
		if err := cursor.Decode(&sentence); err != nil {
			return nil, err
		}
		return &sentence, nil
	}
	return nil, mongo.ErrNoDocuments
}

// Passages adapts the sentence collection to texts.Supplier. Lookup
// failures fall back to the static corpus so a flaky database never blocks
// a round from starting.
type Passages struct {
	fallback texts.Supplier
}

func NewPassages() *Passages {
	return &Passages{fallback: texts.NewStatic()}
}

func (p *Passages) Random() string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sentence, err := GetRandomSentence(ctx)
	if err != nil {
		log.Printf("Error fetching random sentence: %v", err)
		return p.fallback.Random()
	}
	return sentence.Story
}
