package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fitgear/ymmgo/internal/config"
	"github.com/fitgear/ymmgo/internal/utils"
)

// DefaultBatchSize is the platform limit on ids per catalog request
const DefaultBatchSize = 50

// Client talks to the e-commerce platform's catalog API to enrich product
// ids into display data. All connection settings come from the constructor;
// the client holds no mutable global state.
type Client struct {
	baseURL     string
	accessToken string
	batchSize   int
	httpClient  *http.Client
}

// Product is one enriched catalog record. Price and images may be absent
// upstream; they decode to zero values rather than failing.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	URL         string  `json:"url,omitempty"`
	Available   bool    `json:"available"`
}

type productsResponse struct {
	Products []Product `json:"products"`
}

// NewClient creates a catalog client from gateway configuration
func NewClient(cfg config.GatewayConfig) *Client {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		accessToken: cfg.AccessToken,
		batchSize:   batchSize,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// BatchSize returns the configured per-request id limit
func (c *Client) BatchSize() int { return c.batchSize }

// FetchProducts resolves product ids into display records. Ids are split
// into fixed-size batches issued sequentially; results are concatenated in
// batch order. Any failing batch fails the whole call; there is no
// partial-result contract.
func (c *Client) FetchProducts(ctx context.Context, ids []string) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	products := make([]Product, 0, len(ids))
	for i, batch := range chunkIDs(ids, c.batchSize) {
		fetched, err := c.fetchBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("catalog batch %d/%d failed: %w", i+1, (len(ids)+c.batchSize-1)/c.batchSize, err)
		}
		products = append(products, fetched...)
	}

	for i := range products {
		products[i].Description = utils.StripTags(products[i].Description)
	}

	return products, nil
}

// fetchBatch issues one GET for up to batchSize ids
func (c *Client) fetchBatch(ctx context.Context, ids []string) ([]Product, error) {
	endpoint := fmt.Sprintf("%s/catalog/products.json?ids=%s", c.baseURL, url.QueryEscape(strings.Join(ids, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	if c.accessToken != "" {
		req.Header.Set("X-Access-Token", c.accessToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	return parsed.Products, nil
}

// chunkIDs partitions ids into slices of at most size elements
func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
