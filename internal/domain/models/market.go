package models

import (
	"strings"
	"time"
)

// PriceNotAvailable is the sentinel for upstream values that carry no data.
const PriceNotAvailable = "N/A"

// AllDistricts is the district label for a state-wide price batch.
const AllDistricts = "All Districts"

// CommodityRow is one normalized market price row as scraped from Agmarknet.
// Price fields are display-ready strings and may hold the "N/A" sentinel.
type CommodityRow struct {
	State          string `json:"state"`
	District       string `json:"district"`
	Commodity      string `json:"commodity"`
	CommodityGroup string `json:"commodity_group"`
	MSP            string `json:"msp"`
	PriceLatest    string `json:"price_latest"`
	PriceMid       string `json:"price_mid"`
	PriceOld       string `json:"price_old"`
}

// MarketSnapshot is the cached price batch for one (state, district) scope.
type MarketSnapshot struct {
	State     string         `json:"state"`
	District  string         `json:"district"`
	Rows      []CommodityRow `json:"rows"`
	ScrapedAt time.Time      `json:"scrapedAt"`
}

// NormalizePrice maps the raw scraper sentinels ("-", "NR", empty) to "N/A".
func NormalizePrice(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" || v == "-" || v == "NR" {
		return PriceNotAvailable
	}
	return v
}
