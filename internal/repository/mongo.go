package repository

import (
	"context"
	"errors"
	"time"

	"shacademy-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const quizCollection = "quizzes"

type quizRepo struct {
	db *mongo.Database
}

func NewQuizRepository(db *mongo.Database) domain.QuizRepository {
	return &quizRepo{db}
}

// EnsureQuizIndexes creates the lookup index on (course_id, lesson_index).
func EnsureQuizIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(quizCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "course_id", Value: 1}, {Key: "lesson_index", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}

func (r *quizRepo) Create(ctx context.Context, quiz *domain.Quiz) error {
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now()
	}
	if quiz.Results == nil {
		quiz.Results = []domain.QuizResult{}
	}
	res, err := r.db.Collection(quizCollection).InsertOne(ctx, quiz)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		quiz.ID = id
	}
	return nil
}

func (r *quizRepo) GetByID(ctx context.Context, id string) (*domain.Quiz, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrQuizNotFound
	}
	var quiz domain.Quiz
	err = r.db.Collection(quizCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) GetByCourseAndLesson(ctx context.Context, courseID uint, lessonIndex int) (*domain.Quiz, error) {
	return r.findLatest(ctx, bson.M{"course_id": courseID, "lesson_index": lessonIndex})
}

func (r *quizRepo) GetLatestForCourses(ctx context.Context, courseIDs []uint) (*domain.Quiz, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	return r.findLatest(ctx, bson.M{"course_id": bson.M{"$in": courseIDs}})
}

func (r *quizRepo) findLatest(ctx context.Context, filter bson.M) (*domain.Quiz, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var quiz domain.Quiz
	err := r.db.Collection(quizCollection).FindOne(ctx, filter, opts).Decode(&quiz)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.Quiz, int64, error) {
	collection := r.db.Collection(quizCollection)
	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if page.Bounded() {
		opts.SetSkip(int64(page.Offset())).SetLimit(int64(page.Limit))
	}
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var quizzes []domain.Quiz
	if err := cursor.All(ctx, &quizzes); err != nil {
		return nil, 0, err
	}
	return quizzes, total, nil
}

// SaveResult drops the student's previous result and appends the new one in
// a single pipeline update, so concurrent submissions never interleave.
func (r *quizRepo) SaveResult(ctx context.Context, quizID string, result domain.QuizResult) error {
	objID, err := primitive.ObjectIDFromHex(quizID)
	if err != nil {
		return domain.ErrQuizNotFound
	}
	res, err := r.db.Collection(quizCollection).UpdateByID(ctx, objID, replaceResultPipeline(result))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrQuizNotFound
	}
	return nil
}

// replaceResultPipeline filters out the student's old result and appends the
// new one. The result goes in as a $literal so a student name starting with
// "$" is stored as text instead of resolving as a field path.
func replaceResultPipeline(result domain.QuizResult) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"results": bson.M{
				"$concatArrays": bson.A{
					bson.M{"$filter": bson.M{
						"input": bson.M{"$ifNull": bson.A{"$results", bson.A{}}},
						"as":    "r",
						"cond":  bson.M{"$ne": bson.A{"$$r.student_id", result.StudentID}},
					}},
					bson.M{"$literal": bson.A{result}},
				},
			},
		}}},
	}
}

func (r *quizRepo) DeleteByCourseID(ctx context.Context, courseID uint) error {
	_, err := r.db.Collection(quizCollection).DeleteMany(ctx, bson.M{"course_id": courseID})
	return err
}
