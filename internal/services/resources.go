// Curated grief resource hub against the resources router
package services

import (
	"context"

	"github.com/solace-cli/solace/internal/client"
	"github.com/solace-cli/solace/internal/models"
)

// ResourceService reads the curated resource catalogs. None of the catalogs
// require a credential, so they stay available before login and the hotline
// list in particular can be shown when everything else fails.
type ResourceService struct {
	api *client.Client
}

// Books lists recommended grief support books.
func (s *ResourceService) Books(ctx context.Context) ([]models.Book, error) {
	var books []models.Book

	if err := s.api.Get(ctx, "/resources/books", nil, &books); err != nil {
		return nil, err
	}

	return books, nil
}

// Articles lists recommended articles.
func (s *ResourceService) Articles(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article

	if err := s.api.Get(ctx, "/resources/articles", nil, &articles); err != nil {
		return nil, err
	}

	return articles, nil
}

// Videos lists recommended videos.
func (s *ResourceService) Videos(ctx context.Context) ([]models.Video, error) {
	var videos []models.Video

	if err := s.api.Get(ctx, "/resources/videos", nil, &videos); err != nil {
		return nil, err
	}

	return videos, nil
}

// Hotlines lists crisis support phone lines.
func (s *ResourceService) Hotlines(ctx context.Context) ([]models.Hotline, error) {
	var hotlines []models.Hotline

	if err := s.api.Get(ctx, "/resources/hotlines", nil, &hotlines); err != nil {
		return nil, err
	}

	return hotlines, nil
}
