package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fitgear/ymmgo/internal/config"
)

func newTestClient(serverURL string, batchSize int) *Client {
	return NewClient(config.GatewayConfig{
		BaseURL:     serverURL,
		AccessToken: "test-token",
		BatchSize:   batchSize,
	})
}

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("prod-%d", i+1)
	}
	return ids
}

func TestFetchProductsBatching(t *testing.T) {
	var batchSizes []int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		batchSizes = append(batchSizes, len(ids))

		products := make([]Product, len(ids))
		for i, id := range ids {
			products[i] = Product{ID: id, Title: "Part " + id, Price: 9.99, Available: true}
		}
		json.NewEncoder(w).Encode(productsResponse{Products: products})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 50)

	// 120 ids with a limit of 50 must produce batches of 50, 50, 20
	products, err := client.FetchProducts(context.Background(), makeIDs(120))
	if err != nil {
		t.Fatalf("FetchProducts failed: %v", err)
	}

	if len(batchSizes) != 3 {
		t.Fatalf("Expected 3 batches, got %d", len(batchSizes))
	}
	want := []int{50, 50, 20}
	for i, size := range batchSizes {
		if size != want[i] {
			t.Errorf("Batch %d size: got %d, want %d", i+1, size, want[i])
		}
	}

	if len(products) != 120 {
		t.Errorf("Expected 120 products, got %d", len(products))
	}
	if products[0].ID != "prod-1" || products[119].ID != "prod-120" {
		t.Errorf("Batch results not concatenated in order: first=%s last=%s", products[0].ID, products[119].ID)
	}
}

func TestFetchProductsFailingBatchFailsWholeCall(t *testing.T) {
	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
			return
		}
		ids := strings.Split(r.URL.Query().Get("ids"), ",")
		products := make([]Product, len(ids))
		for i, id := range ids {
			products[i] = Product{ID: id}
		}
		json.NewEncoder(w).Encode(productsResponse{Products: products})
	}))
	defer server.Close()

	client := newTestClient(server.URL, 50)

	products, err := client.FetchProducts(context.Background(), makeIDs(120))
	if err == nil {
		t.Fatal("Expected error when a batch fails")
	}
	if products != nil {
		t.Errorf("No partial results allowed on failure, got %d products", len(products))
	}
	if !strings.Contains(err.Error(), "batch 2") {
		t.Errorf("Error should identify the failing batch: %v", err)
	}
	if calls != 2 {
		t.Errorf("Fetching should stop at the failing batch, made %d calls", calls)
	}
}

func TestFetchProductsToleratesSparseRecords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Missing price and image, HTML in the description
		fmt.Fprint(w, `{"products":[{"id":"prod-1","title":"Bare part","description":"<p>Fits <b>everything</b></p>"}]}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 50)

	products, err := client.FetchProducts(context.Background(), []string{"prod-1"})
	if err != nil {
		t.Fatalf("FetchProducts failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("Expected 1 product, got %d", len(products))
	}

	p := products[0]
	if p.Price != 0 {
		t.Errorf("Missing price should decode to zero, got %v", p.Price)
	}
	if p.ImageURL != "" {
		t.Errorf("Missing image should decode to empty, got %q", p.ImageURL)
	}
	if p.Description != "Fits everything" {
		t.Errorf("Description should be tag-stripped, got %q", p.Description)
	}
}

func TestFetchProductsEmptyInput(t *testing.T) {
	client := newTestClient("http://unused.invalid", 50)

	products, err := client.FetchProducts(context.Background(), nil)
	if err != nil {
		t.Fatalf("FetchProducts on empty input failed: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("Expected no products, got %d", len(products))
	}
}

func TestChunkIDs(t *testing.T) {
	chunks := chunkIDs(makeIDs(7), 3)
	if len(chunks) != 3 {
		t.Fatalf("Expected 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 3 || len(chunks[1]) != 3 || len(chunks[2]) != 1 {
		t.Errorf("Chunk sizes wrong: %d/%d/%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}

	if chunks := chunkIDs(nil, 3); len(chunks) != 0 {
		t.Errorf("Empty input should produce no chunks, got %d", len(chunks))
	}
}
