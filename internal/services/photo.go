package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"taste-trail-backend/internal/models"
	"taste-trail-backend/internal/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLTTL = 5 * time.Minute

// ErrInvalidPhotoURL is returned when a confirmed photo URL does not point
// into the restaurant's S3 prefix.
var ErrInvalidPhotoURL = errors.New("photo_url does not belong to this restaurant")

// PhotoService hands out pre-signed S3 upload URLs for restaurant photos
// and writes the resulting photo URL back onto the restaurant.
type PhotoService struct {
	restaurants storage.RestaurantStore
	s3Client    *s3.Client
	bucket      string
	region      string
	endpoint    string
}

// NewPhotoService creates a photo service. When accessKey/secretKey are set
// they are used as static credentials, otherwise the default chain applies.
// A non-empty endpoint overrides the S3 endpoint for S3-compatible storage.
func NewPhotoService(restaurants storage.RestaurantStore, region, bucket, accessKey, secretKey, endpoint string) (*PhotoService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &PhotoService{
		restaurants: restaurants,
		s3Client:    s3Client,
		bucket:      bucket,
		region:      region,
		endpoint:    endpoint,
	}, nil
}

// UploadResponse carries a pre-signed upload URL and the URL the photo will
// be reachable at once uploaded.
type UploadResponse struct {
	UploadURL string `json:"upload_url"`
	PhotoURL  string `json:"photo_url"`
	ExpiresIn int    `json:"expires_in"`
}

// GetUploadURL pre-signs a PUT for a photo of one of the user's restaurants.
func (s *PhotoService) GetUploadURL(ctx context.Context, userID, restaurantID, contentType string) (*UploadResponse, error) {
	r, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, storage.ErrNotFound
	}

	key := fmt.Sprintf("restaurants/%s/%s.jpg", restaurantID, uuid.New().String())

	presignClient := s3.NewPresignClient(s.s3Client)
	request, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLTTL
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate pre-signed URL: %w", err)
	}

	return &UploadResponse{
		UploadURL: request.URL,
		PhotoURL:  s.objectURL(key),
		ExpiresIn: int(uploadURLTTL.Seconds()),
	}, nil
}

// ConfirmUpload records the uploaded photo's URL on the restaurant. Only
// URLs under this service's bucket are accepted.
func (s *PhotoService) ConfirmUpload(ctx context.Context, userID, restaurantID, photoURL string) (*models.Restaurant, error) {
	r, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, storage.ErrNotFound
	}

	prefix := s.objectURL("restaurants/" + restaurantID + "/")
	if !strings.HasPrefix(photoURL, prefix) {
		return nil, ErrInvalidPhotoURL
	}

	return s.restaurants.UpdateRestaurant(ctx, restaurantID, &models.RestaurantUpdate{PhotoURL: &photoURL})
}

func (s *PhotoService) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.endpoint, "/"), s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
