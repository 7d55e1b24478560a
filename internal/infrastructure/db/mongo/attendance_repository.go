package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/attendr/attendance-api/internal/core/domain"
)

const attendanceCollection = "attendance"

// AttendanceRepository implements ports.AttendanceRepository. Documents are
// only ever inserted.
type AttendanceRepository struct {
	coll *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{coll: db.Collection(attendanceCollection)}
}

type mongoGeoPoint struct {
	Type        string    `bson:"type"`
	Coordinates []float64 `bson:"coordinates"`
}

type mongoAttendance struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Timestamp time.Time          `bson:"timestamp"`
	Location  mongoGeoPoint      `bson:"location"`
}

func (ma *mongoAttendance) toDomain() *domain.AttendanceRecord {
	var lng, lat float64
	if len(ma.Location.Coordinates) == 2 {
		lng, lat = ma.Location.Coordinates[0], ma.Location.Coordinates[1]
	}
	return &domain.AttendanceRecord{
		ID:        ma.ID.Hex(),
		UserID:    ma.UserID.Hex(),
		Timestamp: ma.Timestamp.UTC(),
		Location:  domain.NewGeoPoint(lng, lat),
	}
}

func (r *AttendanceRepository) Create(ctx context.Context, record *domain.AttendanceRecord) (*domain.AttendanceRecord, error) {
	userID, ok := objectID(record.UserID)
	if !ok {
		return nil, fmt.Errorf("insert attendance: invalid user id %q", record.UserID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAttendance{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Timestamp: record.Timestamp.UTC().Truncate(time.Millisecond),
		Location: mongoGeoPoint{
			Type:        "Point",
			Coordinates: []float64{record.Location.Longitude(), record.Location.Latitude()},
		},
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert attendance: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByUser returns the user's records, newest first.
func (r *AttendanceRepository) ListByUser(ctx context.Context, userID string) ([]*domain.AttendanceRecord, error) {
	oid, ok := objectID(userID)
	if !ok {
		return []*domain.AttendanceRecord{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer cur.Close(ctx)

	records := []*domain.AttendanceRecord{}
	for cur.Next(ctx) {
		var ma mongoAttendance
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode attendance: %w", err)
		}
		records = append(records, ma.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// EnsureIndexes creates the per-user history index and the geospatial index.
func (r *AttendanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
