package domain

import (
	"fmt"
	"strings"
)

// Product identifiers that unlock question packs.
const (
	ProductAllSeasons = "all-seasons"
	productSeasonPfx  = "season-"
)

// SeasonProduct returns the product id unlocking a single season.
func SeasonProduct(season int) string {
	return fmt.Sprintf("%s%d", productSeasonPfx, season)
}

// Entitlements is the set of products a caller owns.
type Entitlements map[string]struct{}

// NewEntitlements builds a set from product ids, ignoring blanks.
func NewEntitlements(products ...string) Entitlements {
	e := make(Entitlements, len(products))
	for _, p := range products {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		e[p] = struct{}{}
	}
	return e
}

// Has reports whether the product is owned.
func (e Entitlements) Has(product string) bool {
	_, ok := e[product]
	return ok
}

// Unlocks reports whether a question from the given season is covered by a
// purchased pack. Free-tier access is decided by the question source.
func (e Entitlements) Unlocks(season int) bool {
	if e.Has(ProductAllSeasons) {
		return true
	}
	return season > 0 && e.Has(SeasonProduct(season))
}
