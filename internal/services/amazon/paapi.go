package amazon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/smarterpicks/backend/internal/config"
)

// Product Advertising API endpoint
const (
	endpoint  = "webservices.amazon.com"
	region    = "us-east-1"
	service   = "ProductAdvertisingAPI"
	apiPath   = "/paapi5/getitems"
	apiTarget = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.GetItems"
)

// GetItems accepts at most this many ASINs per call
const MaxItemsPerRequest = 10

// Item is the slice of PA-API item data the catalog cares about
type Item struct {
	ASIN      string
	Title     string
	Price     float64
	ImageURL  string
	SalesRank int
}

// Client calls the Amazon Product Advertising API 5.0
type Client struct {
	cfg        config.AmazonConfig
	httpClient *http.Client
}

// NewClient creates a new PA-API client
func NewClient(cfg config.AmazonConfig) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether PA-API credentials are configured
func (c *Client) Enabled() bool {
	return c.cfg.AccessKey != "" && c.cfg.SecretKey != "" && c.cfg.AssociateTag != ""
}

type getItemsRequest struct {
	ItemIds     []string `json:"ItemIds"`
	Resources   []string `json:"Resources"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	Marketplace string   `json:"Marketplace"`
}

type getItemsResponse struct {
	ItemsResult struct {
		Items []struct {
			ASIN     string `json:"ASIN"`
			ItemInfo struct {
				Title struct {
					DisplayValue string `json:"DisplayValue"`
				} `json:"Title"`
			} `json:"ItemInfo"`
			Offers struct {
				Listings []struct {
					Price struct {
						Amount float64 `json:"Amount"`
					} `json:"Price"`
				} `json:"Listings"`
			} `json:"Offers"`
			Images struct {
				Primary struct {
					Large struct {
						URL string `json:"URL"`
					} `json:"Large"`
				} `json:"Primary"`
			} `json:"Images"`
			BrowseNodeInfo struct {
				WebsiteSalesRank struct {
					SalesRank int `json:"SalesRank"`
				} `json:"WebsiteSalesRank"`
			} `json:"BrowseNodeInfo"`
		} `json:"Items"`
	} `json:"ItemsResult"`
	Errors []struct {
		Code    string `json:"Code"`
		Message string `json:"Message"`
	} `json:"Errors"`
}

// GetItems fetches item data for up to MaxItemsPerRequest ASINs
func (c *Client) GetItems(ctx context.Context, asins []string) ([]Item, error) {
	if len(asins) == 0 {
		return nil, nil
	}
	if len(asins) > MaxItemsPerRequest {
		return nil, fmt.Errorf("at most %d ASINs per request, got %d", MaxItemsPerRequest, len(asins))
	}

	payload, err := json.Marshal(getItemsRequest{
		ItemIds: asins,
		Resources: []string{
			"ItemInfo.Title",
			"Offers.Listings.Price",
			"Images.Primary.Large",
			"BrowseNodeInfo.WebsiteSalesRank",
		},
		PartnerTag:  c.cfg.AssociateTag,
		PartnerType: "Associates",
		Marketplace: c.cfg.Marketplace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	sig := signRequest(string(payload), c.cfg.AccessKey, c.cfg.SecretKey, time.Now().UTC())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "https://"+endpoint+apiPath, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Amz-Date", sig.Timestamp)
	req.Header.Set("X-Amz-Target", apiTarget)
	req.Header.Set("Authorization", sig.AuthorizationHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from PA-API", resp.StatusCode)
	}

	var parsed getItemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("PA-API error %s: %s", parsed.Errors[0].Code, parsed.Errors[0].Message)
	}

	items := make([]Item, 0, len(parsed.ItemsResult.Items))
	for _, raw := range parsed.ItemsResult.Items {
		item := Item{
			ASIN:      raw.ASIN,
			Title:     raw.ItemInfo.Title.DisplayValue,
			ImageURL:  raw.Images.Primary.Large.URL,
			SalesRank: raw.BrowseNodeInfo.WebsiteSalesRank.SalesRank,
		}
		if len(raw.Offers.Listings) > 0 {
			item.Price = raw.Offers.Listings[0].Price.Amount
		}
		items = append(items, item)
	}
	return items, nil
}
