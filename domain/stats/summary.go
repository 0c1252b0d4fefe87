package stats

import (
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"reportgen/domain/dataset"
)

// numericThreshold is the share of non-null values that must parse as
// numbers before a column is treated as numeric. The comparison is strict:
// exactly 80% parseable stays categorical.
const numericThreshold = 0.8

// NumericSummary holds aggregates over the parseable numeric subset of a
// column. StdDev and Median are profile extras; the composed report only
// consumes average/min/max.
type NumericSummary struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Sum     float64 `json:"sum"`
	StdDev  float64 `json:"std_dev"`
	Median  float64 `json:"median"`
}

// CategoricalSummary holds cardinality counts for non-numeric columns
type CategoricalSummary struct {
	UniqueCount int `json:"unique_count"`
	TotalCount  int `json:"total_count"`
}

// Summary is the per-column statistical profile of a dataset. Columns keeps
// the source ordering so report sections render deterministically.
type Summary struct {
	TotalRecords       int                           `json:"total_records"`
	Columns            []string                      `json:"columns"`
	NumericColumns     map[string]NumericSummary     `json:"numeric_columns"`
	CategoricalColumns map[string]CategoricalSummary `json:"categorical_columns"`
}

// MissingColumn reports how many cells of one column are missing
type MissingColumn struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// MissingValueReport maps column name to missing-cell counts. Columns with
// zero missing cells are omitted entirely.
type MissingValueReport map[string]MissingColumn

// Summarize computes per-column statistics and the missing-value report.
// Input records are never mutated; both outputs are pure functions of the
// dataset.
func Summarize(ds *dataset.Dataset) (Summary, MissingValueReport) {
	summary := Summary{
		TotalRecords:       ds.RecordCount(),
		Columns:            ds.Columns,
		NumericColumns:     make(map[string]NumericSummary),
		CategoricalColumns: make(map[string]CategoricalSummary),
	}
	missing := make(MissingValueReport)

	if ds.RecordCount() == 0 {
		return summary, missing
	}

	for _, col := range ds.Columns {
		var values []dataset.Value
		missingCount := 0
		for _, row := range ds.Rows {
			v := row[col]
			if v.IsNull() || (v.Kind == dataset.KindText && v.Text == "") {
				missingCount++
				continue
			}
			values = append(values, v)
		}

		if missingCount > 0 {
			missing[col] = MissingColumn{
				Count:      missingCount,
				Percentage: float64(missingCount) / float64(ds.RecordCount()) * 100,
			}
		}

		if len(values) == 0 {
			summary.CategoricalColumns[col] = CategoricalSummary{}
			continue
		}

		// Failed conversions are silently excluded from the numeric
		// aggregate; they are not counted as missing.
		var numeric []float64
		for _, v := range values {
			if f, ok := v.AsFloat(); ok {
				numeric = append(numeric, f)
			}
		}

		if len(numeric) > 0 && float64(len(numeric)) > float64(len(values))*numericThreshold {
			summary.NumericColumns[col] = summarizeNumeric(numeric)
		} else {
			summary.CategoricalColumns[col] = summarizeCategorical(values)
		}
	}

	return summary, missing
}

func summarizeNumeric(numeric []float64) NumericSummary {
	sum, _ := stats.Sum(numeric)
	mean, _ := stats.Mean(numeric)
	min, _ := stats.Min(numeric)
	max, _ := stats.Max(numeric)
	median, _ := stats.Median(numeric)

	stdDev := 0.0
	if len(numeric) > 1 {
		stdDev = stat.StdDev(numeric, nil)
	}

	return NumericSummary{
		Average: mean,
		Min:     min,
		Max:     max,
		Sum:     sum,
		StdDev:  stdDev,
		Median:  median,
	}
}

func summarizeCategorical(values []dataset.Value) CategoricalSummary {
	// Uniqueness is exact value equality on the loaded variant, before any
	// numeric coercion.
	unique := make(map[dataset.Value]struct{}, len(values))
	for _, v := range values {
		unique[v] = struct{}{}
	}
	return CategoricalSummary{
		UniqueCount: len(unique),
		TotalCount:  len(values),
	}
}
