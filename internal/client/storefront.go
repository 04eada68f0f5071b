package client

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"

	"storefront/assembly/internal/config"
	"storefront/assembly/internal/domain"
)

// StorefrontClient talks to the upstream commerce platform: product data
// through the JSON catalog API, product discovery through rendered category
// listing pages.
type StorefrontClient interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	GetListingPage(ctx context.Context, category string, pageNumber int) (*domain.ListingPage, error)
}

type storefrontClient struct {
	rl         ratelimit.Limiter
	config     config.StorefrontConfig
	baseURL    string
	httpClient *resty.Client
	parser     *listingParser
}

func NewStorefrontClient(cfg config.StorefrontConfig) StorefrontClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("Accept", "application/json, text/html;q=0.9")

	if cfg.AppKey != "" {
		client.SetHeader("X-App-Key", cfg.AppKey).
			SetHeader("X-App-Token", cfg.AppToken)
	}

	return &storefrontClient{
		rl:         ratelimit.New(cfg.MaxRequestsPerSecond),
		config:     cfg,
		baseURL:    cfg.BaseURL,
		httpClient: client,
		parser:     newListingParser(cfg.BaseURL),
	}
}

func (c *storefrontClient) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	c.rl.Take()

	url := fmt.Sprintf("%s/api/catalog/products/%s", c.baseURL, productID)

	product := &domain.Product{}
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(product).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error fetching product %s: %d %s", productID, resp.StatusCode(), resp.Status())
	}

	log.Debugf("Fetched product %s with %d items and %d metadata entries",
		productID, len(product.Items), len(product.ItemMetadata.Items))
	return product, nil
}

func (c *storefrontClient) GetListingPage(ctx context.Context, category string, pageNumber int) (*domain.ListingPage, error) {
	c.rl.Take()

	url := fmt.Sprintf("%s/%s?page=%d", c.baseURL, category, pageNumber)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("failed to fetch listing page %d for %s: %w", pageNumber, category, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("HTTP error fetching %s page %d: %d %s", category, pageNumber, resp.StatusCode(), resp.Status())
	}

	page, err := c.parser.ParseListingPage(resp.String(), category)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}
	page.PageNumber = pageNumber

	return page, nil
}
