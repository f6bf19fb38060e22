package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoAnnouncementRepo struct {
	col *mongo.Collection
}

func NewMongoAnnouncementRepository(col *mongo.Collection) AnnouncementRepository {
	return &mongoAnnouncementRepo{col: col}
}

func (r *mongoAnnouncementRepo) GetAll() ([]Announcement, error) {
	return r.find(bson.M{})
}

func (r *mongoAnnouncementRepo) GetByClub(clubID string) ([]Announcement, error) {
	return r.find(bson.M{"club_id": clubID})
}

func (r *mongoAnnouncementRepo) find(filter bson.M) ([]Announcement, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Newest first, matching the dashboard feed order.
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Announcement
	for cur.Next(ctx) {
		var a Announcement
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, cur.Err()
}

func (r *mongoAnnouncementRepo) Create(a *Announcement) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *mongoAnnouncementRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := r.col.DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (r *mongoAnnouncementRepo) Like(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$inc": bson.M{"likes": 1}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
