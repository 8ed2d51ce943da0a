package bigcommerce

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/storeops/bigcommerce-exporter/models"
)

var testCreds = Credentials{
	StoreHash:   "abc123",
	ClientID:    "client",
	AccessToken: "token",
}

// catalogServer fakes the paginated products endpoint over a fixed catalog
// of `total` products with ids 1..total.
type catalogServer struct {
	total    int
	calls    int
	includes []string
	failPage int // 0 = never fail
	failCode int
}

func (s *catalogServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Helper()
		if !strings.HasSuffix(r.URL.Path, "/catalog/products") {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("X-Auth-Token"); got != testCreds.AccessToken {
			t.Errorf("X-Auth-Token = %q, want %q", got, testCreds.AccessToken)
		}
		if got := r.Header.Get("X-Auth-Client"); got != testCreds.ClientID {
			t.Errorf("X-Auth-Client = %q, want %q", got, testCreds.ClientID)
		}

		s.calls++
		s.includes = append(s.includes, r.URL.Query().Get("include"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if s.failPage != 0 && page == s.failPage {
			http.Error(w, "upstream exploded", s.failCode)
			return
		}

		start := (page-1)*limit + 1
		var data []models.Product
		for id := start; id <= s.total && len(data) < limit; id++ {
			data = append(data, models.Product{ID: int64(id), Name: "Product " + strconv.Itoa(id)})
		}
		json.NewEncoder(w).Encode(models.ProductsResponse{Data: data})
	}
}

func newTestClient(t *testing.T, s *catalogServer) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(s.handler(t))
	t.Cleanup(srv.Close)
	return NewClient(testCreds, srv.URL, srv.Client()), srv
}

func TestFetchProductsCapWithPartialLastPage(t *testing.T) {
	// Cap 5, page size 2, catalog of exactly 5: expect pages of 2, 2, 1.
	srv := &catalogServer{total: 5}
	client, _ := newTestClient(t, srv)

	products, err := client.FetchProducts(context.Background(), FetchOptions{MaxProducts: 5, PageSize: 2})
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(products) != 5 {
		t.Errorf("got %d products, want 5", len(products))
	}
	if srv.calls != 3 {
		t.Errorf("got %d fetch calls, want 3", srv.calls)
	}
	for i, p := range products {
		if p.ID != int64(i+1) {
			t.Errorf("product %d has id %d, want %d (API order must be preserved)", i, p.ID, i+1)
		}
	}
}

func TestFetchProductsTruncatesToCap(t *testing.T) {
	// Catalog of 6 with cap 5: the last full page overshoots and the result
	// is truncated to exactly the cap.
	srv := &catalogServer{total: 6}
	client, _ := newTestClient(t, srv)

	products, err := client.FetchProducts(context.Background(), FetchOptions{MaxProducts: 5, PageSize: 2})
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(products) != 5 {
		t.Errorf("got %d products, want 5", len(products))
	}
	if products[4].ID != 5 {
		t.Errorf("last product id = %d, want 5", products[4].ID)
	}
}

func TestFetchProductsShortPageStopsEarly(t *testing.T) {
	srv := &catalogServer{total: 3}
	client, _ := newTestClient(t, srv)

	products, err := client.FetchProducts(context.Background(), FetchOptions{MaxProducts: 2000, PageSize: 250})
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(products) != 3 {
		t.Errorf("got %d products, want 3", len(products))
	}
	if srv.calls != 1 {
		t.Errorf("got %d fetch calls, want 1 (short page ends the catalog)", srv.calls)
	}
}

func TestFetchProductsEmptyCatalog(t *testing.T) {
	srv := &catalogServer{total: 0}
	client, _ := newTestClient(t, srv)

	products, err := client.FetchProducts(context.Background(), FetchOptions{MaxProducts: 10, PageSize: 2})
	if err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("got %d products, want 0", len(products))
	}
	if srv.calls != 1 {
		t.Errorf("got %d fetch calls, want 1", srv.calls)
	}
}

func TestFetchProductsSecondPageFailureAbortsAll(t *testing.T) {
	srv := &catalogServer{total: 10, failPage: 2, failCode: http.StatusInternalServerError}
	client, _ := newTestClient(t, srv)

	products, err := client.FetchProducts(context.Background(), FetchOptions{MaxProducts: 10, PageSize: 2})
	if err == nil {
		t.Fatal("expected an error, got nil")
	}
	if products != nil {
		t.Errorf("expected no partial results, got %d products", len(products))
	}

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error is %T, want *FetchError", err)
	}
	if fetchErr.Page != 2 {
		t.Errorf("FetchError.Page = %d, want 2", fetchErr.Page)
	}
	if fetchErr.Status != http.StatusInternalServerError {
		t.Errorf("FetchError.Status = %d, want 500", fetchErr.Status)
	}
}

func TestFetchProductsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	client := NewClient(testCreds, srv.URL, srv.Client())
	_, err := client.FetchProducts(context.Background(), FetchOptions{MaxProducts: 10, PageSize: 2})

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("error is %T, want *FetchError", err)
	}
	if fetchErr.Page != 1 {
		t.Errorf("FetchError.Page = %d, want 1", fetchErr.Page)
	}
}

func TestFetchProductsIncludeParam(t *testing.T) {
	srv := &catalogServer{total: 1}
	client, _ := newTestClient(t, srv)

	if _, err := client.FetchProducts(context.Background(), FetchOptions{MaxProducts: 10, PageSize: 250}); err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if strings.Contains(srv.includes[0], "variants") {
		t.Errorf("include %q should not request variants", srv.includes[0])
	}

	srv.includes = nil
	if _, err := client.FetchProducts(context.Background(), FetchOptions{IncludeVariants: true, MaxProducts: 10, PageSize: 250}); err != nil {
		t.Fatalf("FetchProducts: %v", err)
	}
	if !strings.Contains(srv.includes[0], "variants") {
		t.Errorf("include %q should request variants", srv.includes[0])
	}
	if !strings.Contains(srv.includes[0], "images") {
		t.Errorf("include %q should always request images", srv.includes[0])
	}
}

func TestFetchProductsMissingCredentials(t *testing.T) {
	client := NewClient(Credentials{}, "", nil)
	_, err := client.FetchProducts(context.Background(), FetchOptions{})
	if err == nil {
		t.Fatal("expected a configuration error")
	}
	for _, key := range []string{"BIGCOMMERCE_STORE_HASH", "BIGCOMMERCE_CLIENT_ID", "BIGCOMMERCE_ACCESS_TOKEN"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q should name missing key %s", err, key)
		}
	}
}

func TestFetchBrandNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/catalog/brands") {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(models.BrandsResponse{Data: []models.Brand{
			{ID: 1, Name: "Acme"},
			{ID: 7, Name: "Globex"},
		}})
	}))
	defer srv.Close()

	client := NewClient(testCreds, srv.URL, srv.Client())
	brands, err := client.FetchBrandNames(context.Background())
	if err != nil {
		t.Fatalf("FetchBrandNames: %v", err)
	}
	if brands[1] != "Acme" || brands[7] != "Globex" {
		t.Errorf("unexpected brand map: %v", brands)
	}
}
