package kamis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"agriflow/config"
	"agriflow/logger"
	"agriflow/models"

	"golang.org/x/time/rate"
)

// Request parameter names of the upstream quote endpoint.
const (
	paramCertKey  = "cert_key"
	paramCertID   = "cert_id"
	paramReturn   = "p_returntype"
	paramPage     = "p_startpage_num"
	paramRows     = "p_rows"
	paramItemName = "p_item_name"
	paramRegday   = "p_regday"
)

// Client issues paginated quote requests against the configured upstream.
// One Client is safe for concurrent use; each call allocates its own
// working state.
type Client struct {
	config  *config.Config
	http    *http.Client
	log     *logger.Log
	limiter *rate.Limiter
}

// NewClient builds a provider client from configuration. The politeness
// limiter protects the rate-limited public API; retry policy beyond the
// page loop belongs to the caller.
func NewClient(cfg *config.Config) *Client {
	src := cfg.Source.Kamis
	rps := src.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := src.BurstSize
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		config:  cfg,
		http:    &http.Client{Timeout: src.RequestTimeout()},
		log:     logger.GetLogger(),
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// FetchPages requests pages sequentially until a page comes back short
// (end of data), MaxPages is reached, or a request fails. A transport
// or timeout error on the first page is returned to the caller; an
// error on a later page stops pagination and keeps what was collected.
func (c *Client) FetchPages(ctx context.Context, query models.Query, regday string) ([]models.RawRecord, error) {
	src := c.config.Source.Kamis
	log := c.log.WithComponent("kamis_client").WithFields(logger.Fields{
		"item":      query.ProductName,
		"operation": "fetch_pages",
	})

	if query.ProductName == "" {
		return nil, ErrMissingProduct
	}

	var collected []models.RawRecord
	for page := 1; page <= src.MaxPages; page++ {
		items, err := c.fetchPage(ctx, query, regday, page)
		if err != nil {
			if page == 1 {
				log.WithError(err).Warn("first page fetch failed")
				return nil, fmt.Errorf("fetch page 1: %w", err)
			}
			log.WithError(err).WithFields(logger.Fields{"page": page}).Warn("page fetch failed, keeping collected pages")
			break
		}
		collected = append(collected, items...)
		logger.IncrementPages(len(items))
		logger.LogDataFlowEntry(log, "kamis_api", "raw_records", len(items), "quote_items")
		if len(items) < src.RowsPerPage {
			break
		}
	}
	return collected, nil
}

// fetchPage performs one GET under its own request timeout derived from
// the caller's context.
func (c *Client) fetchPage(ctx context.Context, query models.Query, regday string, page int) ([]models.RawRecord, error) {
	src := c.config.Source.Kamis

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, src.RequestTimeout())
	defer cancel()

	params := url.Values{}
	params.Set(paramCertKey, src.CertKey)
	if src.CertID != "" {
		params.Set(paramCertID, src.CertID)
	}
	params.Set(paramReturn, "json")
	params.Set(paramPage, strconv.Itoa(page))
	params.Set(paramRows, strconv.Itoa(src.RowsPerPage))
	params.Set(paramItemName, query.ProductName)
	if regday != "" {
		params.Set(paramRegday, regday)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, src.URL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	log := c.log.WithComponent("kamis_client").WithFields(logger.Fields{
		"page":   page,
		"status": res.StatusCode,
	})
	logger.LogPerformanceEntry(log, "kamis_client", "fetch_page", time.Since(start), logger.Fields{
		"page":  page,
		"bytes": len(body),
	})

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", res.StatusCode)
	}

	// The provider occasionally answers with XML error pages; Decode
	// maps anything unparseable to an empty page.
	items, code, msg := Decode(body)
	if len(items) == 0 {
		if code != "" {
			log.WithFields(logger.Fields{"provider_code": code, "provider_msg": msg}).Debug("provider returned no data")
		} else if len(body) > 0 {
			logger.RecordAbsorbedError("decoding")
			log.WithFields(logger.Fields{"body_prefix": bodyPrefix(body)}).Warn("payload matched no known envelope shape")
		}
	}
	return items, nil
}

// bodyPrefix bounds a raw payload for logging so a new dialect can be
// diagnosed without dumping whole pages.
func bodyPrefix(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}

// ErrMissingProduct is returned when a query has no product name; the
// upstream treats a blank item name as "everything" which is never what
// a caller wants.
var ErrMissingProduct = errors.New("query product name is required")
