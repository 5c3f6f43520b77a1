package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/pantrychef/backend/config"
	"github.com/pageza/pantrychef/backend/internal/common"
	"github.com/pageza/pantrychef/backend/internal/models"
	"github.com/pageza/pantrychef/backend/internal/types"
)

// exportURLExpiry is how long a presigned export link stays valid.
const exportURLExpiry = 15 * time.Minute

// S3RecipeExporter uploads saved recipes as JSON documents.
type S3RecipeExporter struct {
	s3  *config.S3Config
	now func() time.Time
}

func NewS3RecipeExporter(s3Config *config.S3Config) *S3RecipeExporter {
	return &S3RecipeExporter{s3: s3Config, now: time.Now}
}

// Export uploads the recipe under exports/<user>/<recipe>.json and returns a
// presigned download link.
func (e *S3RecipeExporter) Export(ctx context.Context, recipe *models.SavedRecipe) (*types.ExportResponse, error) {
	key := fmt.Sprintf("exports/%s/%s.json", recipe.UserID, recipe.ID)

	body, err := recipe.RecipeData.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipe: %w", err)
	}
	if err := e.s3.Upload(ctx, key, "application/json", body); err != nil {
		return nil, err
	}

	url, err := e.s3.GeneratePresignedURL(ctx, key, exportURLExpiry)
	if err != nil {
		return nil, err
	}

	common.LogInfo("Exported recipe", zap.String("key", key))
	return &types.ExportResponse{
		Key:       key,
		URL:       url,
		ExpiresAt: e.now().Add(exportURLExpiry).UTC(),
	}, nil
}
