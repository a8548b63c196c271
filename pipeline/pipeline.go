package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"agriflow/config"
	"agriflow/logger"
	"agriflow/models"
	"agriflow/processor"
	"agriflow/reader/kamis"
)

// Pipeline stage names used in structured stage-transition events.
const (
	stageFetching    = "fetching"
	stageDecoding    = "decoding"
	stageNormalizing = "normalizing"
	stageAggregating = "aggregating"
	stageDone        = "done"
)

// Fetcher is what the orchestrator needs from the provider client.
type Fetcher interface {
	FetchPages(ctx context.Context, query models.Query, regday string) ([]models.RawRecord, error)
}

// Engine wires the normalization stages behind a single contract: Run
// never fails. Whatever goes wrong upstream, the caller gets a result,
// possibly the empty one. An Engine is safe for concurrent queries;
// every invocation allocates and discards its own working state.
type Engine struct {
	config   *config.Config
	fetcher  Fetcher
	resolver *processor.Resolver
	loc      *time.Location
	log      *logger.Log
}

// New builds the engine. A missing provider credential in a
// production-like environment is the one failure surfaced here instead
// of per call.
func New(cfg *config.Config) (*Engine, error) {
	if cfg.Source.Kamis.CertKey == "" && config.IsProductionLike(config.AppEnvironment()) {
		return nil, ErrConfiguration
	}
	return &Engine{
		config:   cfg,
		fetcher:  kamis.NewClient(cfg),
		resolver: processor.NewResolver(cfg.Engine.FieldCandidates),
		loc:      cfg.Location(),
		log:      logger.GetLogger(),
	}, nil
}

// NewWithFetcher builds an engine around a caller-supplied provider
// client.
func NewWithFetcher(cfg *config.Config, fetcher Fetcher) *Engine {
	return &Engine{
		config:   cfg,
		fetcher:  fetcher,
		resolver: processor.NewResolver(cfg.Engine.FieldCandidates),
		loc:      cfg.Location(),
		log:      logger.GetLogger(),
	}
}

// Run executes one full query. On any unrecoverable failure the result
// is empty with a zero average; half-finished work is discarded rather
// than returned as a partial success.
func (e *Engine) Run(ctx context.Context, query models.Query) models.AggregateResult {
	queryID := uuid.NewString()
	log := e.log.WithComponent("pipeline").WithFields(logger.Fields{
		"query_id": queryID,
		"item":     query.ProductName,
		"region":   query.Region,
	})
	start := time.Now()
	defer logger.IncrementQueries()

	logger.LogStageEntry(log, queryID, stageFetching, nil)
	raw, err := e.fetcher.FetchPages(ctx, query, "")
	if err != nil {
		stage := absorbedStage(err)
		logger.RecordAbsorbedError(stage)
		logger.IncrementEmptyResults()
		log.WithError(err).WithFields(logger.Fields{"absorbed_as": stage}).Warn("fetch failed, returning empty result")
		return models.Empty()
	}

	logger.LogStageEntry(log, queryID, stageDecoding, logger.Fields{"raw_records": len(raw)})
	if len(raw) == 0 {
		logger.IncrementEmptyResults()
		log.Info("no raw records for query")
		return models.Empty()
	}

	logger.LogStageEntry(log, queryID, stageNormalizing, nil)
	records := e.normalize(raw, query, log)

	// All-or-nothing: a cancellation mid-normalization discards what
	// was already normalized instead of returning a partial success.
	if ctx.Err() != nil {
		logger.RecordAbsorbedError("timeout")
		logger.IncrementEmptyResults()
		log.WithError(ctx.Err()).Warn("query cancelled, discarding normalized records")
		return models.Empty()
	}

	logger.LogStageEntry(log, queryID, stageAggregating, logger.Fields{"normalized_records": len(records)})
	records = processor.Deduplicate(records, e.config.Engine.GradeAware)
	processor.SortRecords(records)

	result := models.AggregateResult{
		Records:      records,
		AveragePrice: processor.AveragePrice(records),
		Count:        len(records),
	}
	if result.Records == nil {
		result.Records = []models.CanonicalPriceRecord{}
	}
	if result.Count == 0 {
		logger.IncrementEmptyResults()
	}

	logger.LogStageEntry(log, queryID, stageDone, logger.Fields{
		"records":       result.Count,
		"average_price": result.AveragePrice,
		"duration_ms":   time.Since(start).Milliseconds(),
	})
	return result
}

// normalize turns raw records into canonical ones, dropping whatever
// fails price resolution or the region filter. Per-record failures are
// logged and absorbed; the loop always continues.
func (e *Engine) normalize(raw []models.RawRecord, query models.Query, log *logger.Entry) []models.CanonicalPriceRecord {
	eng := e.config.Engine
	records := make([]models.CanonicalPriceRecord, 0, len(raw))

	for _, rec := range raw {
		fields, err := e.resolver.Resolve(rec)
		if err != nil {
			logger.RecordAbsorbedError("resolving")
			continue
		}

		marketName := processor.CleanMarketName(fields.MarketName)
		if marketName == "" {
			marketName = models.MarketNameAggregate
		}

		if !processor.MatchesRegion(marketName, query.Region, eng.RegionKeywords) {
			continue
		}

		productName := fields.ProductName
		if productName == "" {
			productName = query.ProductName
		}

		price, unit, err := processor.NormalizeUnitPrice(fields.RawPrice, fields.Unit, productName, eng.HighPriceThreshold, eng.CountSoldKeywords)
		if err != nil {
			logger.IncrementRejected()
			logger.RecordAbsorbedError("normalizing")
			log.WithError(err).WithFields(logger.Fields{
				"market": marketName,
				"raw":    fields.RawPrice,
			}).Warn("record rejected during price normalization")
			continue
		}

		records = append(records, models.CanonicalPriceRecord{
			MarketName:  marketName,
			ProductName: productName,
			Grade:       processor.ClassifyGrade(fields.Grade, fields.AuxText, fields.ProductName),
			Price:       price,
			Unit:        unit,
			Date:        processor.NormalizeDate(fields.Date, e.loc),
		})
	}
	return records
}
