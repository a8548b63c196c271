package processor

import (
	"fmt"
	"sort"
	"strings"

	"agriflow/config"
	"agriflow/logger"
	"agriflow/models"
)

// auxTextKeys carry variety or classification text the upstream
// sometimes hides a quality grade in. They are tried after the direct
// grade candidates.
var auxTextKeys = []string{"kindname", "kindNm", "spciesNm", "gds_sclsf_nm", "lclassNm"}

// ResolvedFields is the raw-string view of one record after candidate
// resolution, before any normalization.
type ResolvedFields struct {
	MarketName  string
	ProductName string
	RawPrice    string
	Unit        string
	Date        string
	Grade       string
	AuxText     string
}

// Resolver maps raw upstream records to canonical fields through the
// per-field ordered candidate tables.
type Resolver struct {
	candidates map[string][]string
	log        *logger.Log
}

func NewResolver(candidates map[string][]string) *Resolver {
	return &Resolver{
		candidates: candidates,
		log:        logger.GetLogger(),
	}
}

// Resolve scans the candidate list of every canonical field and takes
// the first usable value. Price is the only field whose absence rejects
// the whole record; everything else degrades to a default downstream.
func (r *Resolver) Resolve(rec models.RawRecord) (ResolvedFields, error) {
	fields := ResolvedFields{}
	fields.MarketName, _ = rec.FirstNonEmpty(r.candidates[config.FieldMarketName]...)
	fields.ProductName, _ = rec.FirstNonEmpty(r.candidates[config.FieldProductName]...)
	fields.Unit, _ = rec.FirstNonEmpty(r.candidates[config.FieldUnit]...)
	fields.Date, _ = rec.FirstNonEmpty(r.candidates[config.FieldDate]...)
	fields.Grade, _ = rec.FirstNonEmpty(r.candidates[config.FieldGrade]...)
	fields.AuxText, _ = rec.FirstNonEmpty(auxTextKeys...)

	rawPrice, ok := rec.FirstNonEmpty(r.candidates[config.FieldPrice]...)
	if !ok {
		logger.IncrementRejected()
		r.log.WithComponent("resolver").WithFields(logger.Fields{
			"raw_keys": rawKeys(rec),
		}).Warn("record rejected: no price candidate resolved")
		return fields, fmt.Errorf("no price under candidates %v", r.candidates[config.FieldPrice])
	}
	fields.RawPrice = rawPrice
	return fields, nil
}

// rawKeys lists the keys of a rejected record so a new upstream dialect
// can be diagnosed from logs alone.
func rawKeys(rec models.RawRecord) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CleanMarketName trims whitespace and collapses inner runs so market
// names from different dialects compare equal.
func CleanMarketName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
