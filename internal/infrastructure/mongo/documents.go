package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationDocument is the GeoJSON point embedded in a store document.
// The 2dsphere index on it requires type to be "Point" and coordinates
// to be longitude, latitude.
type LocationDocument struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
	Address     string    `bson:"address"`
}

// StoreDocument is the store schema as persisted in MongoDB.
type StoreDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Slug        string             `bson:"slug"`
	Description string             `bson:"description,omitempty"`
	Tags        []string           `bson:"tags,omitempty"`
	Location    LocationDocument   `bson:"location"`
	Photo       string             `bson:"photo,omitempty"`
	Author      primitive.ObjectID `bson:"author"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// StoreCardDocument is the projection returned by proximity queries.
type StoreCardDocument struct {
	Slug        string           `bson:"slug"`
	Name        string           `bson:"name"`
	Description string           `bson:"description,omitempty"`
	Location    LocationDocument `bson:"location"`
	Photo       string           `bson:"photo,omitempty"`
}

// ReviewDocument is the review collaborator's schema. The directory
// only ever reads these.
type ReviewDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	StoreID   primitive.ObjectID `bson:"storeId"`
	Author    primitive.ObjectID `bson:"author,omitempty"`
	Text      string             `bson:"text,omitempty"`
	Rating    float64            `bson:"rating"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// UserDocument is the account schema.
type UserDocument struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Email     string               `bson:"email"`
	Name      string               `bson:"name"`
	Password  string               `bson:"password"`
	Hearts    []primitive.ObjectID `bson:"hearts,omitempty"`
	CreatedAt time.Time            `bson:"createdAt"`
}
