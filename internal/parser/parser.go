package parser

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/warnodata/extractor/internal/lookup"
	"github.com/warnodata/extractor/internal/ndf"
	"github.com/warnodata/extractor/internal/util"
	"github.com/warnodata/extractor/pkg/core"
)

// Parser turns descriptor nodes into core records.
// Everything it holds is read-only after construction, so one Parser may be
// shared by concurrent extractions.
type Parser struct {
	logger         *slog.Logger
	catalog        *ndf.Catalog
	cards          lookup.Service
	speedModifiers []core.SpeedModifier
}

// NewParser creates a parser over the given descriptor catalog.
// A nil catalog or lookup service is treated as empty.
func NewParser(logger *slog.Logger, catalog *ndf.Catalog, cards lookup.Service, speedModifiers []core.SpeedModifier) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	if catalog == nil {
		catalog = ndf.NewCatalog()
	}
	if cards == nil {
		cards = lookup.Empty{}
	}
	return &Parser{
		logger:         logger,
		catalog:        catalog,
		cards:          cards,
		speedModifiers: speedModifiers,
	}
}

// Catalog returns the descriptors the parser resolves references against.
func (p *Parser) Catalog() *ndf.Catalog {
	return p.catalog
}

// parseNumber parses a plain numeric scalar, tolerating surrounding quotes.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(util.TrimQuotes(s)), 64)
}

// parseDistance accepts either a plain number or a metre quantity.
func parseDistance(s string) (float64, error) {
	if v, err := parseNumber(s); err == nil {
		return v, nil
	}
	return MetresToNumber(s)
}

// parseBool reads descriptor booleans, written True/False.
func parseBool(s string) bool {
	v := strings.TrimSpace(util.TrimQuotes(s))
	return strings.EqualFold(v, "true") || v == "1"
}

// number reads a numeric field of n. An absent field reads as zero.
func number(n *ndf.Node, field string) (float64, error) {
	v, _, err := optionalNumber(n, field, parseNumber)
	return v, err
}

// distance reads a field that may be written in metres. An absent field reads as zero.
func distance(n *ndf.Node, field string) (float64, error) {
	v, _, err := optionalNumber(n, field, parseDistance)
	return v, err
}

// optionalNumber tells an absent field from one that is present but invalid.
func optionalNumber(n *ndf.Node, field string, parse func(string) (float64, error)) (float64, bool, error) {
	raw, ok := ndf.Scalar(n, field)
	if !ok {
		return 0, false, nil
	}
	v, err := parse(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%s %q: %w", field, raw, ErrMalformedQuantity)
	}
	return v, true, nil
}

// flag reads a boolean field, falling back to def when it is absent.
func flag(n *ndf.Node, field string, def bool) bool {
	raw, ok := ndf.Scalar(n, field)
	if !ok {
		return def
	}
	return parseBool(raw)
}

// referenceID extracts the descriptor id a reference node points at.
func referenceID(n *ndf.Node) string {
	raw, ok := ndf.ValueOf(n)
	if !ok {
		return ""
	}
	id := util.LastToken(util.TrimQuotes(raw))
	if id == "nil" {
		return ""
	}
	return id
}

// round2 rounds to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
