package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"shacademy-backend/internal/domain"
	"shacademy-backend/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxThumbnailSize is the upload limit for course thumbnails (5MB).
const MaxThumbnailSize = 5 * 1024 * 1024

const bucketName = "uploads"

type gridFSRepo struct {
	db     *mongo.Database
	bucket *gridfs.Bucket
}

func NewGridFSRepository(db *mongo.Database) (domain.FileRepository, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(bucketName))
	if err != nil {
		return nil, fmt.Errorf("failed to create GridFS bucket: %w", err)
	}
	return &gridFSRepo{db: db, bucket: bucket}, nil
}

func (r *gridFSRepo) Upload(ctx context.Context, src io.Reader, filename, contentType string, size int64, uploadedBy uint) (*domain.FileInfo, error) {
	if size > MaxThumbnailSize {
		return nil, domain.ErrFileTooLarge
	}
	contentType, ok := utils.ImageContentType(contentType, filename)
	if !ok {
		return nil, domain.ErrInvalidFileType
	}

	// +1 so an oversized stream with a lying size header still trips the limit
	limited := &io.LimitedReader{R: src, N: MaxThumbnailSize + 1}
	storedName := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(filename))
	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{
		"original_name": filename,
		"uploaded_by":   uploadedBy,
		"content_type":  contentType,
	})

	stream, err := r.bucket.OpenUploadStream(storedName, uploadOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open upload stream: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetWriteDeadline(deadline)
	}
	written, err := io.Copy(stream, limited)
	if err != nil {
		_ = stream.Abort()
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}
	if written > MaxThumbnailSize {
		_ = stream.Abort()
		return nil, domain.ErrFileTooLarge
	}
	if err := stream.Close(); err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	objectID, _ := stream.FileID.(primitive.ObjectID)
	return &domain.FileInfo{
		ID:          objectID.Hex(),
		Filename:    filename,
		ContentType: contentType,
		Size:        written,
		UploadDate:  time.Now(),
		UploadedBy:  uploadedBy,
	}, nil
}

func (r *gridFSRepo) Download(ctx context.Context, fileID string) (io.ReadCloser, *domain.FileInfo, error) {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return nil, nil, domain.ErrFileNotFound
	}

	info, err := r.fileInfo(ctx, objectID)
	if err != nil {
		return nil, nil, err
	}

	stream, err := r.bucket.OpenDownloadStream(objectID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return nil, nil, domain.ErrFileNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return stream, info, nil
}

func (r *gridFSRepo) Delete(ctx context.Context, fileID string) error {
	objectID, err := primitive.ObjectIDFromHex(fileID)
	if err != nil {
		return domain.ErrFileNotFound
	}
	err = r.bucket.DeleteContext(ctx, objectID)
	if errors.Is(err, gridfs.ErrFileNotFound) {
		return domain.ErrFileNotFound
	}
	return err
}

func (r *gridFSRepo) fileInfo(ctx context.Context, objectID primitive.ObjectID) (*domain.FileInfo, error) {
	var doc struct {
		ID         primitive.ObjectID `bson:"_id"`
		Filename   string             `bson:"filename"`
		Length     int64              `bson:"length"`
		UploadDate time.Time          `bson:"uploadDate"`
		Metadata   struct {
			OriginalName string `bson:"original_name"`
			UploadedBy   int64  `bson:"uploaded_by"`
			ContentType  string `bson:"content_type"`
		} `bson:"metadata"`
	}
	err := r.db.Collection(bucketName+".files").FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}

	name := doc.Metadata.OriginalName
	if name == "" {
		name = doc.Filename
	}
	contentType := doc.Metadata.ContentType
	if contentType == "" {
		contentType = utils.DetectContentType(doc.Filename)
	}
	return &domain.FileInfo{
		ID:          doc.ID.Hex(),
		Filename:    name,
		ContentType: contentType,
		Size:        doc.Length,
		UploadDate:  doc.UploadDate,
		UploadedBy:  uint(doc.Metadata.UploadedBy),
	}, nil
}
