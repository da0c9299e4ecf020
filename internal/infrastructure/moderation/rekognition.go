// Package moderation screens uploaded images using AWS Rekognition.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/ventasapp/ventas-api/internal/application/service"
	"github.com/ventasapp/ventas-api/internal/config"
	"go.uber.org/zap"
)

// Ensure RekognitionModerator implements ImageModerator
var _ service.ImageModerator = (*RekognitionModerator)(nil)

// RekognitionModerator detects unsafe content in images with the
// DetectModerationLabels API. Calls are bounded by a timeout so a slow
// moderation backend cannot hang an upload request.
type RekognitionModerator struct {
	client  *rekognition.Client
	timeout time.Duration
	logger  *zap.Logger
}

// RekognitionModeratorOption is a functional option for configuring RekognitionModerator
type RekognitionModeratorOption func(*RekognitionModerator)

// WithLogger sets a custom logger for RekognitionModerator
func WithLogger(logger *zap.Logger) RekognitionModeratorOption {
	return func(m *RekognitionModerator) {
		m.logger = logger
	}
}

// NewRekognitionModerator creates a new Rekognition-backed moderator
func NewRekognitionModerator(cfg *config.ModerationConfig, storageCfg *config.StorageConfig, opts ...RekognitionModeratorOption) (*RekognitionModerator, error) {
	if cfg == nil {
		return nil, errors.New("moderation configuration is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			storageCfg.AccessKey,
			storageCfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	moderator := &RekognitionModerator{
		client:  rekognition.NewFromConfig(awsCfg),
		timeout: cfg.Timeout,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(moderator)
	}

	if moderator.timeout == 0 {
		moderator.timeout = 10 * time.Second
	}

	return moderator, nil
}

// DetectLabels returns the moderation labels found in the image
func (m *RekognitionModerator) DetectLabels(ctx context.Context, image []byte) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	output, err := m.client.DetectModerationLabels(ctx, &rekognition.DetectModerationLabelsInput{
		Image: &rektypes.Image{Bytes: image},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect moderation labels: %w", err)
	}

	labels := make([]string, 0, len(output.ModerationLabels))
	for _, label := range output.ModerationLabels {
		if label.Name != nil {
			labels = append(labels, *label.Name)
		}
	}

	if len(labels) > 0 {
		m.logger.Warn("Image flagged by moderation", zap.Strings("labels", labels))
	}

	return labels, nil
}
