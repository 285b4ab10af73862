package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/smarterpicks/backend/internal/services/amazon"
	"github.com/smarterpicks/backend/internal/services/catalog"
)

// CatalogRefreshJob re-fetches price, title, image and rank data from the
// Product Advertising API for every ASIN-bearing product. Failures are
// logged and never abort the run.
type CatalogRefreshJob struct {
	catalog *catalog.Service
	amazon  *amazon.Client
}

// NewCatalogRefreshJob creates a new catalog refresh job
func NewCatalogRefreshJob(catalogService *catalog.Service, amazonClient *amazon.Client) *CatalogRefreshJob {
	return &CatalogRefreshJob{
		catalog: catalogService,
		amazon:  amazonClient,
	}
}

// Run refreshes all ASIN-bearing products in PA-API sized batches
func (j *CatalogRefreshJob) Run() {
	if !j.amazon.Enabled() {
		log.Printf("Catalog refresh skipped: PA-API credentials not configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	products, err := j.catalog.ListWithASIN(ctx)
	if err != nil {
		log.Printf("Catalog refresh: %v", err)
		return
	}
	if len(products) == 0 {
		return
	}

	// Products keyed by ASIN so fetched items can be matched back
	byASIN := make(map[string]uint, len(products))
	asins := make([]string, 0, len(products))
	for _, p := range products {
		byASIN[*p.ASIN] = p.ID
		asins = append(asins, *p.ASIN)
	}

	refreshed := 0
	for start := 0; start < len(asins); start += amazon.MaxItemsPerRequest {
		end := start + amazon.MaxItemsPerRequest
		if end > len(asins) {
			end = len(asins)
		}

		items, err := j.amazon.GetItems(ctx, asins[start:end])
		if err != nil {
			log.Printf("Catalog refresh batch failed: %v", err)
			continue
		}

		for _, item := range items {
			id, ok := byASIN[item.ASIN]
			if !ok {
				continue
			}
			if err := j.catalog.RefreshFromAmazon(ctx, id, item.Title, item.Price, item.ImageURL, item.SalesRank); err != nil {
				log.Printf("Catalog refresh: %v", err)
				continue
			}
			refreshed++
		}
	}

	log.Printf("Catalog refresh complete: %d/%d products updated", refreshed, len(products))
}

// Schedule registers the job on the scheduler at the given interval
func (j *CatalogRefreshJob) Schedule(scheduler *gocron.Scheduler, everyHours int) error {
	if everyHours <= 0 {
		everyHours = 24
	}
	_, err := scheduler.Every(everyHours).Hours().Do(j.Run)
	return err
}
