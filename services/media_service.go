package services

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	fig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"

	"github.com/techagentng/hazardx/config"
)

const maxImageSize = 10 << 20 // 10MB

// MediaService uploads report and store-item images to S3 and produces a
// thumbnail alongside the full-size image.
type MediaService interface {
	ProcessImage(fileHeader *multipart.FileHeader, userID uint) (imageURL string, thumbnailURL string, err error)
}

type mediaService struct {
	Config *config.Config
}

func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{Config: conf}
}

func CheckFileSize(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > maxImageSize {
		return fmt.Errorf("file too large: %d bytes", fileHeader.Size)
	}
	return nil
}

func CheckSupportedFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

func (m *mediaService) ProcessImage(fileHeader *multipart.FileHeader, userID uint) (string, string, error) {
	if err := CheckFileSize(fileHeader); err != nil {
		return "", "", err
	}
	if !CheckSupportedFile(fileHeader.Filename) {
		return "", "", fmt.Errorf("unsupported file type: %s", fileHeader.Filename)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", "", fmt.Errorf("could not open upload: %v", err)
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", "", fmt.Errorf("could not decode image: %v", err)
	}

	fullImg := imaging.Fit(img, 1080, 1080, imaging.Lanczos)
	thumbnailImg := resize.Resize(200, 0, img, resize.Lanczos3)

	var fullBuf, thumbBuf bytes.Buffer
	if err := jpeg.Encode(&fullBuf, fullImg, &jpeg.Options{Quality: 85}); err != nil {
		return "", "", fmt.Errorf("could not encode image: %v", err)
	}
	if err := jpeg.Encode(&thumbBuf, thumbnailImg, &jpeg.Options{Quality: 75}); err != nil {
		return "", "", fmt.Errorf("could not encode thumbnail: %v", err)
	}

	base := fmt.Sprintf("%d_%s", userID, uuid.New().String())
	imageURL, err := m.uploadToS3(&fullBuf, fmt.Sprintf("reports/%s.jpg", base))
	if err != nil {
		return "", "", err
	}
	thumbnailURL, err := m.uploadToS3(&thumbBuf, fmt.Sprintf("thumbnails/%s.jpg", base))
	if err != nil {
		return "", "", err
	}
	return imageURL, thumbnailURL, nil
}

func (m *mediaService) uploadToS3(body *bytes.Buffer, fileKey string) (string, error) {
	bucketName := m.Config.S3Bucket
	if bucketName == "" {
		return "", fmt.Errorf("S3 bucket name is not configured")
	}

	cfg, err := fig.LoadDefaultConfig(context.TODO(),
		fig.WithRegion(m.Config.AwsRegion),
		fig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(m.Config.AwsAccessKeyID, m.Config.AwsSecretAccessKey, ""),
		),
	)
	if err != nil {
		return "", fmt.Errorf("unable to load AWS config: %v", err)
	}

	svc := s3.NewFromConfig(cfg)
	_, err = svc.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(bucketName),
		Key:         aws.String(fileKey),
		Body:        bytes.NewReader(body.Bytes()),
		ACL:         "public-read",
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucketName, m.Config.AwsRegion, fileKey), nil
}
