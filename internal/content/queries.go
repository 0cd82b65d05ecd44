package content

import (
	"context"
	"errors"

	"github.com/utafrali/audiophile/internal/domain"
	apperrors "github.com/utafrali/audiophile/pkg/errors"
)

// Queries are written against the repository's document types: product,
// productCategory and currency (referenced from a product's price).
const (
	categoriesQuery = `*[_type == "productCategory"] | order(order asc)[]{title, "slug": slug.current, thumbnail}`

	categoryBySlugQuery = `*[_type == "productCategory" && slug.current == $slug]{
  title,
  "products": *[_type == "product" && references(^._id)] | order(order asc)[]{
    title, description, isNew, "slug": slug.current, previewImage
  }
}[0]`

	productBySlugQuery = `*[_type == "product" && slug.current == $slug]{
  _id, title, description,
  'price': {'amount': price.amount, 'currencyCode': price.currency->isoCode},
  features, boxIncludes
}[0]`

	productsByIDsQuery = `*[_type == "product" && _id in $productIds]{
  _id, title, shortTitle, shortestTitle, thumbnailImageNew,
  'price': {'amount': price.amount, 'currencyCode': price.currency->isoCode}
}`

	pingQuery = `count(*[_type == "productCategory"][0...1])`
)

// Categories returns the category navigation list in catalog order.
func (c *Client) Categories(ctx context.Context) ([]domain.CategorySummary, error) {
	return fetch[[]domain.CategorySummary](ctx, c, "categories", categoriesQuery, nil, false)
}

// CategoryBySlug returns a category with its products in catalog order.
func (c *Client) CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	cat, err := fetch[domain.Category](ctx, c, "category_by_slug", categoryBySlugQuery, Params{"slug": slug}, true)
	if err != nil {
		return nil, notFound(err, "category", slug)
	}
	return &cat, nil
}

// ProductBySlug returns a product's detail.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	p, err := fetch[domain.Product](ctx, c, "product_by_slug", productBySlugQuery, Params{"slug": slug}, true)
	if err != nil {
		return nil, notFound(err, "product", slug)
	}
	return &p, nil
}

// ProductsByIDs returns the priced products among ids. Unknown ids are
// absent from the result.
func (c *Client) ProductsByIDs(ctx context.Context, ids []string) ([]domain.PricedProduct, error) {
	if len(ids) == 0 {
		return []domain.PricedProduct{}, nil
	}
	return fetch[[]domain.PricedProduct](ctx, c, "products_by_ids", productsByIDsQuery, Params{"productIds": ids}, false)
}

// Ping runs a trivial query. It backs the readiness check.
func (c *Client) Ping(ctx context.Context) error {
	_, err := fetch[int](ctx, c, "ping", pingQuery, nil, false)
	return err
}

func notFound(err error, resource, slug string) error {
	if errors.Is(err, errNoResult) {
		return apperrors.NotFound(resource, slug)
	}
	return err
}
