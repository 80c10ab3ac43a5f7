package market

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// Fallback figures from the last observed WECAR report
const (
	FallbackNewListings          = 1337
	FallbackPropertiesSold       = 504
	FallbackAveragePrice         = 592092
	FallbackNewListingsChange    = "+1.83%"
	FallbackPropertiesSoldChange = "+3.49%"
	FallbackAveragePriceChange   = "-1.63%"
	FallbackReportPeriod         = "July 2025"
	SourceName                   = "WECAR"
)

// Snapshot statuses
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusFailed  = "error"
)

// ErrNoStatistics means the page had none of the expected figures
var ErrNoStatistics = errors.New("no market statistics found on page")

var (
	listingsRegex = regexp.MustCompile(`(?is)new\s+listings\D*?(\d[\d,]*)`)
	soldRegex     = regexp.MustCompile(`(?is)(?:properties\s+)?sold\D*?(\d[\d,]*)`)
	priceRegex    = regexp.MustCompile(`(?is)average\s+price\D*?\$?\s*(\d[\d,]*)`)
	percentRegex  = regexp.MustCompile(`[+-]?\d+(?:\.\d+)?%`)
	periodRegex   = regexp.MustCompile(`(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{4})`)
)

// Snapshot is one reading of the monthly market statistics
type Snapshot struct {
	Source               string    `json:"source"`
	URL                  string    `json:"url,omitempty"`
	Status               string    `json:"status"`
	Error                string    `json:"error,omitempty"`
	LastUpdated          time.Time `json:"last_updated"`
	NewListings          int       `json:"new_listings"`
	PropertiesSold       int       `json:"properties_sold"`
	AveragePrice         int       `json:"average_price"`
	NewListingsChange    string    `json:"new_listings_change,omitempty"`
	PropertiesSoldChange string    `json:"properties_sold_change,omitempty"`
	AveragePriceChange   string    `json:"average_price_change,omitempty"`
	ReportPeriod         string    `json:"report_period,omitempty"`
	Insights             Insights  `json:"market_insights"`
}

// Parse extracts statistics from the stats page. Figures that cannot be
// found are filled from the fallback constants and the snapshot is marked
// partial. A page with no figures at all is an error.
func Parse(body []byte, url string, now time.Time) (*Snapshot, error) {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	text := visibleText(doc)

	s := &Snapshot{
		Source:      SourceName,
		URL:         url,
		Status:      StatusSuccess,
		LastUpdated: now,
	}

	found := 0
	missing := 0
	for _, f := range []struct {
		re       *regexp.Regexp
		dst      *int
		fallback int
	}{
		{listingsRegex, &s.NewListings, FallbackNewListings},
		{soldRegex, &s.PropertiesSold, FallbackPropertiesSold},
		{priceRegex, &s.AveragePrice, FallbackAveragePrice},
	} {
		if v, ok := firstInt(f.re, text); ok {
			*f.dst = v
			found++
		} else {
			*f.dst = f.fallback
			missing++
		}
	}

	percents := percentRegex.FindAllString(text, 3)
	changes := []*string{&s.NewListingsChange, &s.PropertiesSoldChange, &s.AveragePriceChange}
	for i, p := range percents {
		*changes[i] = p
	}

	if m := periodRegex.FindStringSubmatch(text); m != nil {
		s.ReportPeriod = m[1] + " " + m[2]
	}

	if found == 0 && len(percents) == 0 {
		return nil, ErrNoStatistics
	}
	if missing > 0 {
		s.Status = StatusPartial
		s.Error = fmt.Sprintf("%d of 3 figures not found, using fallback values", missing)
	}

	s.Insights = BuildInsights(s)
	return s, nil
}

// Defaults returns the fallback snapshot used when nothing has been fetched
func Defaults(reason string, now time.Time) *Snapshot {
	return &Snapshot{
		Source:               SourceName,
		Status:               StatusFailed,
		Error:                reason,
		LastUpdated:          now,
		NewListings:          FallbackNewListings,
		PropertiesSold:       FallbackPropertiesSold,
		AveragePrice:         FallbackAveragePrice,
		NewListingsChange:    FallbackNewListingsChange,
		PropertiesSoldChange: FallbackPropertiesSoldChange,
		AveragePriceChange:   FallbackAveragePriceChange,
		ReportPeriod:         FallbackReportPeriod,
		Insights: Insights{
			MarketTrend: TrendStable,
			KeyPoints: []string{
				"Using cached market data",
				"Current average home price: " + FormatPrice(FallbackAveragePrice),
				fmt.Sprintf("%d properties sold in the current period", FallbackPropertiesSold),
			},
		},
	}
}

func firstInt(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return 0, false
	}
	return v, true
}

// visibleText joins the page's text nodes, skipping scripts and styles
func visibleText(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				b.WriteString(text)
				b.WriteString(" ")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return b.String()
}
