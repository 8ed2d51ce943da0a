package bigcommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/storeops/bigcommerce-exporter/models"
)

const DefaultAPIBase = "https://api.bigcommerce.com"

// Credentials identify one store against the BigCommerce v3 API. They are
// built once per request (env defaults, optionally overridden by the form)
// and passed in explicitly.
type Credentials struct {
	StoreHash   string
	ClientID    string
	AccessToken string
}

// Validate reports every missing credential at once so the user can fix the
// configuration in one go.
func (c Credentials) Validate() error {
	var missing []string
	if c.StoreHash == "" {
		missing = append(missing, "BIGCOMMERCE_STORE_HASH")
	}
	if c.ClientID == "" {
		missing = append(missing, "BIGCOMMERCE_CLIENT_ID")
	}
	if c.AccessToken == "" {
		missing = append(missing, "BIGCOMMERCE_ACCESS_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing BigCommerce configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// FetchOptions control one paginated product fetch.
type FetchOptions struct {
	IncludeVariants bool
	MaxProducts     int
	PageSize        int
}

type Client struct {
	creds      Credentials
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a catalog client. A nil httpClient gets a default with a
// 30 second timeout. baseURL is only overridden in tests and self-hosted
// proxies; pass "" for the public API.
func NewClient(creds Credentials, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBase
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		creds:      creds,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchProducts retrieves catalog products page by page, in API order, until
// the catalog is exhausted or opts.MaxProducts is reached. Any transport
// failure, non-2xx status or undecodable body aborts the whole fetch; partial
// results are discarded.
func (c *Client) FetchProducts(ctx context.Context, opts FetchOptions) ([]models.Product, error) {
	if err := c.creds.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxProducts <= 0 {
		opts.MaxProducts = 2000
	}
	if opts.PageSize <= 0 || opts.PageSize > 250 {
		opts.PageSize = 250
	}

	// Categories come back on the base product payload; requesting them as a
	// sub-resource triggers 422 on some stores, so they stay out of include.
	includes := []string{"images", "primary_image", "custom_fields"}
	if opts.IncludeVariants {
		includes = append(includes, "variants", "options", "modifiers")
	}

	var all []models.Product
	for page := 1; len(all) < opts.MaxProducts; page++ {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(opts.PageSize))
		params.Set("page", strconv.Itoa(page))
		params.Set("include", strings.Join(includes, ","))

		var resp models.ProductsResponse
		if err := c.getJSON(ctx, "/catalog/products", params, page, &resp); err != nil {
			return nil, err
		}
		if len(resp.Data) == 0 {
			break
		}
		all = append(all, resp.Data...)
		if len(resp.Data) < opts.PageSize {
			break
		}
	}

	if len(all) > opts.MaxProducts {
		all = all[:opts.MaxProducts]
	}
	return all, nil
}

// FetchBrandNames retrieves every brand and returns an id to name map, used
// to resolve the brand_name export field.
func (c *Client) FetchBrandNames(ctx context.Context) (map[int]string, error) {
	if err := c.creds.Validate(); err != nil {
		return nil, err
	}

	const pageSize = 250
	brands := make(map[int]string)
	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(pageSize))
		params.Set("page", strconv.Itoa(page))

		var resp models.BrandsResponse
		if err := c.getJSON(ctx, "/catalog/brands", params, page, &resp); err != nil {
			return nil, err
		}
		if len(resp.Data) == 0 {
			break
		}
		for _, b := range resp.Data {
			brands[b.ID] = b.Name
		}
		if len(resp.Data) < pageSize {
			break
		}
	}
	return brands, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, page int, out any) error {
	endpoint := fmt.Sprintf("%s/stores/%s/v3%s?%s", c.baseURL, c.creds.StoreHash, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &FetchError{Page: page, Err: err}
	}
	req.Header.Set("X-Auth-Client", c.creds.ClientID)
	req.Header.Set("X-Auth-Token", c.creds.AccessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Page: page, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &FetchError{
			Page:   page,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("BigCommerce API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Page: page, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}
