package domain

import "context"

// TrendDirection описывает направление изменения метрики.
type TrendDirection string

const (
	TrendUp   TrendDirection = "up"
	TrendDown TrendDirection = "down"
	TrendFlat TrendDirection = "flat"
)

// InsightImpact описывает важность вывода отчёта.
type InsightImpact string

const (
	ImpactRisk        InsightImpact = "risk"
	ImpactOpportunity InsightImpact = "opportunity"
	ImpactWatch       InsightImpact = "watch"
)

type OverviewMetric struct {
	ID     string         `json:"id"`
	Label  string         `json:"label"`
	Value  string         `json:"value"`
	Change string         `json:"change,omitempty"`
	Trend  TrendDirection `json:"trend,omitempty"`
}

type DatasetSummary struct {
	Name               string  `json:"name"`
	Description        string  `json:"description"`
	Rows               int     `json:"rows"`
	Columns            int     `json:"columns"`
	NumericColumns     int     `json:"numericColumns"`
	CategoricalColumns int     `json:"categoricalColumns"`
	DateColumns        int     `json:"dateColumns"`
	MissingCellsPct    float64 `json:"missingCellsPct"`
	LastUpdated        string  `json:"lastUpdated"`
	PrimaryKey         string  `json:"primaryKey"`
}

type EDAFilters struct {
	Segments      []string `json:"segments"`
	TimeRanges    []string `json:"timeRanges"`
	FocusFeatures []string `json:"focusFeatures"`
}

type MissingColumnStat struct {
	Column  string  `json:"column"`
	Percent float64 `json:"percent"`
}

type DataQualitySummary struct {
	MissingColumns  []MissingColumnStat `json:"missingColumns"`
	DuplicateRows   int                 `json:"duplicateRows"`
	OutliersFlagged int                 `json:"outliersFlagged"`
}

type NumericalSummary struct {
	Feature string  `json:"feature"`
	Mean    float64 `json:"mean"`
	Median  float64 `json:"median"`
	Std     float64 `json:"std"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

type CategoricalSummary struct {
	Feature     string  `json:"feature"`
	TopCategory string  `json:"topCategory"`
	TopPercent  float64 `json:"topPercent"`
	UniqueCount int     `json:"uniqueCount"`
}

type SummaryStatistics struct {
	Numerical   []NumericalSummary   `json:"numerical"`
	Categorical []CategoricalSummary `json:"categorical"`
}

type CorrelationStat struct {
	Feature    string  `json:"feature"`
	Value      float64 `json:"value"`
	PairedWith string  `json:"pairedWith"`
}

type Insight struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Impact      InsightImpact `json:"impact"`
}

type FeatureHighlight struct {
	Feature string  `json:"feature"`
	Trend   float64 `json:"trend"`
	Note    string  `json:"note"`
}

type HistogramBin struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type FeatureHistogram struct {
	Feature string         `json:"feature"`
	Bins    []HistogramBin `json:"bins"`
}

// EDAReport описывает отчёт разведочного анализа данных для дашборда.
type EDAReport struct {
	Dataset           DatasetSummary     `json:"dataset"`
	OverviewMetrics   []OverviewMetric   `json:"overviewMetrics"`
	Filters           EDAFilters         `json:"filters"`
	Quality           DataQualitySummary `json:"quality"`
	SummaryStats      SummaryStatistics  `json:"summaryStats"`
	Histograms        []FeatureHistogram `json:"histograms"`
	Correlations      []CorrelationStat  `json:"correlations"`
	Insights          []Insight          `json:"insights"`
	FeatureHighlights []FeatureHighlight `json:"featureHighlights"`
}

// ReportLoader читает EDA-отчёт.
type ReportLoader interface {
	Load(ctx context.Context) (EDAReport, error)
}
