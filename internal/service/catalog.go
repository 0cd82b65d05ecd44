package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/utafrali/audiophile/internal/domain"
)

// ContentReader is the read side of the content repository. content.Client
// satisfies it.
type ContentReader interface {
	Categories(ctx context.Context) ([]domain.CategorySummary, error)
	CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	ProductBySlug(ctx context.Context, slug string) (*domain.Product, error)
	ProductsByIDs(ctx context.Context, ids []string) ([]domain.PricedProduct, error)
}

// CategoryPage is a category with the navigation list.
type CategoryPage struct {
	Category   *domain.Category
	Categories []domain.CategorySummary
}

// ProductPage is a product with the navigation list.
type ProductPage struct {
	Product    *domain.Product
	Categories []domain.CategorySummary
}

// CatalogService serves catalog pages from the content repository.
type CatalogService struct {
	content ContentReader
	logger  *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(content ContentReader, logger *slog.Logger) *CatalogService {
	return &CatalogService{content: content, logger: logger}
}

// Categories returns the category list in catalog order.
func (s *CatalogService) Categories(ctx context.Context) ([]domain.CategorySummary, error) {
	return s.content.Categories(ctx)
}

// CategoryPage fetches a category and the category list concurrently. Either
// failure fails the page.
func (s *CatalogService) CategoryPage(ctx context.Context, slug string) (*CategoryPage, error) {
	var page CategoryPage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cat, err := s.content.CategoryBySlug(gctx, slug)
		page.Category = cat
		return err
	})
	g.Go(func() error {
		cats, err := s.content.Categories(gctx)
		page.Categories = cats
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

// ProductPage fetches a product and the category list concurrently.
func (s *CatalogService) ProductPage(ctx context.Context, slug string) (*ProductPage, error) {
	var page ProductPage
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.content.ProductBySlug(gctx, slug)
		page.Product = p
		return err
	})
	g.Go(func() error {
		cats, err := s.content.Categories(gctx)
		page.Categories = cats
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}
