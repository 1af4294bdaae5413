package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"
)

// ProductInfo is the descriptor returned for a scanned barcode.
type ProductInfo struct {
	Barcode         string  `json:"barcode"`
	Name            string  `json:"name"`
	Brand           string  `json:"brand"`
	IngredientsText string  `json:"ingredientsText"`
	ImageURL        string  `json:"imageUrl"`
	Calories        float64 `json:"calories"`
	Fat             float64 `json:"fat"`
}

// ProductClient resolves barcodes against an open product database.
type ProductClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewProductClient(baseURL string) *ProductClient {
	return &ProductClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 12 * time.Second},
	}
}

type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName     string `json:"product_name"`
		Brands          string `json:"brands"`
		IngredientsText string `json:"ingredients_text"`
		ImageURL        string `json:"image_url"`
		Nutriments      struct {
			EnergyKcal float64 `json:"energy-kcal_100g"`
			Fat        float64 `json:"fat_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

// LookupBarcode resolves one barcode to a product descriptor.
func (c *ProductClient) LookupBarcode(ctx context.Context, barcode string) (*ProductInfo, error) {
	u := fmt.Sprintf("%s/api/v2/product/%s.json", strings.TrimRight(c.BaseURL, "/"), barcode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create product request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: product lookup: %v", utils.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read product response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: product %s", utils.ErrNotFound, barcode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: product lookup status %d", utils.ErrRemoteUnavailable, resp.StatusCode)
	}

	var parsed productResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: product response: %v", utils.ErrMalformedResponse, err)
	}
	if parsed.Status != 1 || parsed.Product.ProductName == "" {
		return nil, fmt.Errorf("%w: product %s", utils.ErrNotFound, barcode)
	}

	return &ProductInfo{
		Barcode:         barcode,
		Name:            strings.TrimSpace(parsed.Product.ProductName),
		Brand:           strings.TrimSpace(parsed.Product.Brands),
		IngredientsText: parsed.Product.IngredientsText,
		ImageURL:        parsed.Product.ImageURL,
		Calories:        parsed.Product.Nutriments.EnergyKcal,
		Fat:             parsed.Product.Nutriments.Fat,
	}, nil
}
