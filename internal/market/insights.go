package market

import (
	"fmt"
	"strconv"
	"strings"
)

// Market trends
const (
	TrendRising    = "rising"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

const (
	trendThreshold  = 5.0
	buyerRatio      = 2.5
	sellerRatio     = 1.5
	defaultChange   = "0%"
	directionUp     = "up"
	directionStable = "stable"
)

// Insights is the qualitative read of a snapshot
type Insights struct {
	MarketTrend  string   `json:"market_trend"`
	BuyerMarket  bool     `json:"buyer_market"`
	SellerMarket bool     `json:"seller_market"`
	KeyPoints    []string `json:"key_points"`
}

// BuildInsights classifies the market from the price change and the
// listings to sales ratio
func BuildInsights(s *Snapshot) Insights {
	in := Insights{MarketTrend: TrendStable, KeyPoints: []string{}}

	if change, ok := ParsePercent(s.AveragePriceChange); ok {
		switch {
		case change > trendThreshold:
			in.MarketTrend = TrendRising
			in.SellerMarket = true
			in.KeyPoints = append(in.KeyPoints, fmt.Sprintf("Home prices increased by %s year-over-year", s.AveragePriceChange))
		case change < -trendThreshold:
			in.MarketTrend = TrendDeclining
			in.BuyerMarket = true
			in.KeyPoints = append(in.KeyPoints, fmt.Sprintf("Home prices decreased by %s year-over-year", s.AveragePriceChange))
		default:
			in.KeyPoints = append(in.KeyPoints, fmt.Sprintf("Home prices remained relatively stable with %s change", s.AveragePriceChange))
		}
	}

	if s.PropertiesSold > 0 {
		ratio := float64(s.NewListings) / float64(s.PropertiesSold)
		switch {
		case ratio > buyerRatio:
			in.BuyerMarket = true
			in.KeyPoints = append(in.KeyPoints, "High inventory levels favor buyers")
		case ratio < sellerRatio:
			in.SellerMarket = true
			in.KeyPoints = append(in.KeyPoints, "Low inventory levels favor sellers")
		}
	}

	if s.AveragePrice > 0 {
		in.KeyPoints = append(in.KeyPoints, "Current average home price: "+FormatPrice(s.AveragePrice))
	}
	in.KeyPoints = append(in.KeyPoints, fmt.Sprintf("%d properties sold in the current period", s.PropertiesSold))
	return in
}

// Trend describes the direction of one series
type Trend struct {
	Direction        string `json:"direction"`
	ChangePercentage string `json:"change_percentage"`
	Description      string `json:"description"`
}

// Trends groups the price, sales and inventory trends
type Trends struct {
	PriceTrend     Trend `json:"price_trend"`
	SalesTrend     Trend `json:"sales_trend"`
	InventoryTrend Trend `json:"inventory_trend"`
}

// BuildTrends derives year-over-year trends from the change percentages
func BuildTrends(s *Snapshot) Trends {
	return Trends{
		PriceTrend: Trend{
			Direction:        directionStable,
			ChangePercentage: orDefault(s.AveragePriceChange),
			Description:      "Prices have remained relatively stable over the past year",
		},
		SalesTrend: Trend{
			Direction:        direction(s.PropertiesSoldChange),
			ChangePercentage: orDefault(s.PropertiesSoldChange),
			Description:      "Sales activity has shown positive momentum",
		},
		InventoryTrend: Trend{
			Direction:        direction(s.NewListingsChange),
			ChangePercentage: orDefault(s.NewListingsChange),
			Description:      "New listings continue to enter the market",
		},
	}
}

// Summary is the headline figures of a snapshot
type Summary struct {
	AveragePrice   int    `json:"average_price"`
	PriceChange    string `json:"price_change"`
	PropertiesSold int    `json:"properties_sold"`
	SalesChange    string `json:"sales_change"`
	NewListings    int    `json:"new_listings"`
	ListingsChange string `json:"listings_change"`
}

// Advice holds recommendations for each side of a transaction
type Advice struct {
	ForBuyers  []string `json:"for_buyers"`
	ForSellers []string `json:"for_sellers"`
}

// Outlook combines the summary, conditions and advice
type Outlook struct {
	MarketSummary    Summary  `json:"market_summary"`
	MarketConditions Insights `json:"market_conditions"`
	Recommendations  Advice   `json:"recommendations"`
}

var (
	buyerMarketAdvice = Advice{
		ForBuyers: []string{
			"Good time to buy with more inventory available",
			"Take advantage of increased negotiating power",
			"Consider multiple properties before making a decision",
		},
		ForSellers: []string{
			"Price competitively to stand out",
			"Consider staging and professional photography",
			"Be prepared for longer time on market",
		},
	}
	sellerMarketAdvice = Advice{
		ForBuyers: []string{
			"Act quickly on properties of interest",
			"Be prepared to make competitive offers",
			"Consider pre-approval for faster transactions",
		},
		ForSellers: []string{
			"Great time to list with strong demand",
			"Price strategically to maximize return",
			"Expect faster sales and multiple offers",
		},
	}
	balancedAdvice = Advice{
		ForBuyers: []string{
			"Balanced market provides good opportunities",
			"Take time to find the right property",
			"Negotiate fairly based on property condition",
		},
		ForSellers: []string{
			"Price accurately based on recent comparables",
			"Ensure property is in good condition",
			"Market effectively to reach qualified buyers",
		},
	}
)

// BuildOutlook produces buyer and seller advice. A buyer's market takes
// precedence when both flags are set.
func BuildOutlook(s *Snapshot) Outlook {
	advice := balancedAdvice
	switch {
	case s.Insights.BuyerMarket:
		advice = buyerMarketAdvice
	case s.Insights.SellerMarket:
		advice = sellerMarketAdvice
	}
	return Outlook{
		MarketSummary: Summary{
			AveragePrice:   s.AveragePrice,
			PriceChange:    orDefault(s.AveragePriceChange),
			PropertiesSold: s.PropertiesSold,
			SalesChange:    orDefault(s.PropertiesSoldChange),
			NewListings:    s.NewListings,
			ListingsChange: orDefault(s.NewListingsChange),
		},
		MarketConditions: s.Insights,
		Recommendations:  advice,
	}
}

// ParsePercent reads values such as "+1.83%" or "-5%"
func ParsePercent(p string) (float64, bool) {
	p = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p), "%"))
	if p == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(p, "+"), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatPrice renders 592092 as $592,092
func FormatPrice(v int) string {
	digits := strconv.Itoa(v)
	neg := strings.HasPrefix(digits, "-")
	digits = strings.TrimPrefix(digits, "-")

	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

func direction(change string) string {
	if strings.Contains(change, "+") {
		return directionUp
	}
	return directionStable
}

func orDefault(change string) string {
	if change == "" {
		return defaultChange
	}
	return change
}
