package csvfeed

import "time"

const (
	// ProviderName labels logs and metrics for this upstream.
	ProviderName = "csv"

	defaultHTTPTimeout = 15 * time.Second
	maxErrorBody       = 512
	userAgent          = "player-records-service"
)

// naTokens are the cell values read as missing, matching the defaults of common
// dataframe CSV readers so the feed decodes the same way it always has.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}
