// Package catalog consumes the headless CMS product API. The CMS is treated
// as opaque: responses are `{data: ...}` envelopes, every request carries a
// fixed Basic-Auth header, and non-OK statuses decay to empty results rather
// than errors.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront-service/models"
)

type Client struct {
	baseURL    string // e.g. http://localhost:1337/api
	origin     string // scheme://host, used to absolutize media URLs
	username   string
	password   string
	httpClient *http.Client
}

func NewClient(baseURL, username, password string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("CATALOG_BASE_URL not set")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base URL: %w", err)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		origin:     u.Scheme + "://" + u.Host,
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type productsEnvelope struct {
	Data []models.Product `json:"data"`
}

type categoriesEnvelope struct {
	Data []models.Category `json:"data"`
}

type productEnvelope struct {
	Data *models.Product `json:"data"`
}

// get performs an authenticated GET and decodes the envelope into out. A
// non-OK status leaves out untouched and returns nil.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("Catalog returned non-OK status, treating as empty result",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}

// Products lists products, optionally narrowed by a search term.
func (c *Client) Products(ctx context.Context, page, pageSize int, search string) ([]models.Product, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))
	if strings.TrimSpace(search) != "" {
		params.Set("search", strings.TrimSpace(search))
	}

	var env productsEnvelope
	if err := c.get(ctx, "/products", params, &env); err != nil {
		return nil, err
	}
	c.absolutizeProducts(env.Data)
	return env.Data, nil
}

// ProductsByCategoryTags lists products filtered by category and/or tag
// document ids.
func (c *Client) ProductsByCategoryTags(ctx context.Context, category, tag string) ([]models.Product, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	if tag != "" {
		params.Set("tags", tag)
	}

	var env productsEnvelope
	if err := c.get(ctx, "/product-by-category-tags", params, &env); err != nil {
		return nil, err
	}
	c.absolutizeProducts(env.Data)
	return env.Data, nil
}

// Categories lists all categories with their tags.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var env categoriesEnvelope
	if err := c.get(ctx, "/categories", nil, &env); err != nil {
		return nil, err
	}
	for i := range env.Data {
		if env.Data[i].Image != nil {
			env.Data[i].Image.URL = c.absolutize(env.Data[i].Image.URL)
		}
	}
	return env.Data, nil
}

// ProductBySlug fetches one product with all relations populated. Returns
// nil when the CMS has no such product.
func (c *Client) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	params := url.Values{}
	params.Set("populate", "*")

	var env productEnvelope
	if err := c.get(ctx, "/product-detail-slug/"+url.PathEscape(slug), params, &env); err != nil {
		return nil, err
	}
	if env.Data != nil {
		for i := range env.Data.Images {
			env.Data.Images[i].URL = c.absolutize(env.Data.Images[i].URL)
		}
	}
	return env.Data, nil
}

func (c *Client) absolutizeProducts(products []models.Product) {
	for i := range products {
		for j := range products[i].Images {
			products[i].Images[j].URL = c.absolutize(products[i].Images[j].URL)
		}
	}
}

// absolutize resolves CMS-relative media paths against the CMS origin so
// cart snapshots always hold absolute URLs.
func (c *Client) absolutize(mediaURL string) string {
	if mediaURL == "" || strings.Contains(mediaURL, "://") {
		return mediaURL
	}
	if !strings.HasPrefix(mediaURL, "/") {
		mediaURL = "/" + mediaURL
	}
	return c.origin + mediaURL
}
