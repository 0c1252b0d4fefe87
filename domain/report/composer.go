package report

import (
	"fmt"
	"strings"
	"time"

	"reportgen/domain/dataset"
	"reportgen/domain/stats"
)

const (
	bannerWidth = 80
	maxKPIs     = 5
	maxDetailed = 3
)

// Compose renders the full fixed-format report using the current time as
// the generation timestamp.
func Compose(title, reportType, templateName string, summary stats.Summary, missing stats.MissingValueReport, sample []dataset.Record) string {
	return ComposeAt(time.Now(), title, reportType, templateName, summary, missing, sample)
}

// ComposeAt renders the report with an explicit generation time. Output is
// deterministic for fixed inputs: two reports composed from the same data
// differ only in the embedded timestamp.
//
// The missing-value report is accepted but the data quality section emits a
// fixed 100%-complete narrative regardless of its contents; downstream
// consumers rely on that exact text.
func ComposeAt(now time.Time, title, reportType, templateName string, summary stats.Summary, missing stats.MissingValueReport, sample []dataset.Record) string {
	_ = missing

	dateStr := now.Format("January 02, 2006")
	timeStr := now.Format("15:04")

	var b strings.Builder

	rule := strings.Repeat("=", bannerWidth)
	sep := strings.Repeat("-", bannerWidth)

	// Banner
	b.WriteString(rule + "\n")
	b.WriteString(strings.Repeat(" ", 20) + "REPORT-GEN PROFESSIONAL REPORT\n")
	b.WriteString(strings.Repeat(" ", 15) + fmt.Sprintf("Generated on %s at %s\n", dateStr, timeStr))
	b.WriteString(rule + "\n\n")

	// Metadata
	b.WriteString("REPORT METADATA\n")
	b.WriteString(sep + "\n")
	b.WriteString(fmt.Sprintf("%-24s%s\n", "Report Title:", title))
	b.WriteString(fmt.Sprintf("%-24s%s\n", "Report Type:", reportType))
	b.WriteString(fmt.Sprintf("%-24s%s\n", "Template Used:", templateName))
	b.WriteString(fmt.Sprintf("%-24s%s %s\n", "Generated Date:", dateStr, timeStr))
	b.WriteString(fmt.Sprintf("%-24s%d\n", "Total Records:", summary.TotalRecords))
	b.WriteString(fmt.Sprintf("%-24s%s\n\n", "Prepared By:", "REPORT-GEN Automated System"))

	// Executive Summary
	b.WriteString("EXECUTIVE SUMMARY\n")
	b.WriteString(sep + "\n")
	b.WriteString(executiveSummary(title, summary) + "\n\n")

	// Key Performance Indicators
	b.WriteString("KEY PERFORMANCE INDICATORS & METRICS\n")
	b.WriteString(sep + "\n")
	b.WriteString(kpiSection(summary) + "\n\n")

	// Detailed Analysis
	b.WriteString("DETAILED ANALYSIS & FINDINGS\n")
	b.WriteString(sep + "\n")
	b.WriteString(detailedAnalysis(summary.Columns, sample) + "\n\n")

	// Data Quality
	b.WriteString("DATA QUALITY & INTEGRITY ASSESSMENT\n")
	b.WriteString(sep + "\n")
	b.WriteString(dataQuality(summary) + "\n\n")

	// Recommendations
	b.WriteString("RECOMMENDATIONS & ACTION ITEMS\n")
	b.WriteString(sep + "\n")
	b.WriteString(recommendations() + "\n\n")

	// Conclusion
	b.WriteString("CONCLUSION\n")
	b.WriteString(sep + "\n")
	b.WriteString(conclusion(title) + "\n\n")

	// Footer
	b.WriteString(rule + "\n")
	b.WriteString("Report Generated by REPORT-GEN Automated System\n")
	b.WriteString(fmt.Sprintf("Generated: %s | Report Version: 1.0\n", dateStr))
	b.WriteString(rule + "\n")

	return b.String()
}

func executiveSummary(title string, summary stats.Summary) string {
	return fmt.Sprintf(`This report provides a comprehensive analysis of %s. The analysis encompasses
%d records with detailed metrics and performance indicators.

The data represents a complete dataset with all necessary information for thorough analysis.
Key findings reveal significant patterns and trends that provide valuable business insights.
Performance metrics indicate areas of strength and opportunities for improvement.

This comprehensive analysis will guide strategic decision-making and operational improvements.`,
		title, summary.TotalRecords)
}

// kpiSection lists up to five numeric columns, in dataset column order, plus
// two fixed summary lines. The completeness figure is static filler.
func kpiSection(summary stats.Summary) string {
	var b strings.Builder
	count := 0
	for _, col := range summary.Columns {
		ns, ok := summary.NumericColumns[col]
		if !ok {
			continue
		}
		if count >= maxKPIs {
			break
		}
		b.WriteString(fmt.Sprintf("• %s: Avg: %.2f | Max: %.2f | Min: %.2f\n", col, ns.Average, ns.Max, ns.Min))
		count++
	}
	b.WriteString(fmt.Sprintf("• Total Records Analyzed: %d\n", summary.TotalRecords))
	b.WriteString("• Data Completeness: 95%\n")
	return b.String()
}

// detailedAnalysis renders the first three records as key/value bullet
// lists, skipping empty cells.
func detailedAnalysis(columns []string, sample []dataset.Record) string {
	var b strings.Builder
	b.WriteString("TOP PERFORMERS:\n\n")
	for i, record := range sample {
		if i >= maxDetailed {
			break
		}
		b.WriteString(fmt.Sprintf("Record %d:\n", i+1))
		for _, col := range columns {
			v := record[col]
			if v.IsNull() {
				continue
			}
			b.WriteString(fmt.Sprintf("  • %s: %s\n", col, v.String()))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func dataQuality(summary stats.Summary) string {
	return fmt.Sprintf(`Total Records Analyzed: %d
Complete Records: %d (100%%)
Records with Missing Values: 0 (0%%)

Data Quality Assessment:
✓ Excellent - Data completeness is 95%%+
✓ All records contain relevant information`,
		summary.TotalRecords, summary.TotalRecords)
}

func recommendations() string {
	return `1. REGULAR MONITORING (Priority: High)
   Rationale: Continuous monitoring of key metrics ensures consistent performance
   Expected Impact: Early identification of issues and trends
   Timeline: Ongoing, Weekly Reviews

2. DATA OPTIMIZATION (Priority: Medium)
   Rationale: Enhance data collection and validation processes
   Expected Impact: Improved data quality and reliability
   Timeline: 30 days implementation

3. STRATEGIC INITIATIVES (Priority: Medium)
   Rationale: Implement improvements based on identified trends
   Expected Impact: Enhanced overall performance and efficiency
   Timeline: 60 days implementation`
}

func conclusion(title string) string {
	return fmt.Sprintf(`This comprehensive analysis of %s reveals important insights from the submitted data.
The analysis demonstrates that current performance metrics are well-documented and tracked.
Strategic implementation of the recommended actions is expected to enhance overall effectiveness.

The data quality is excellent, providing a solid foundation for decision-making. Continued focus
on monitoring and optimization will drive sustained improvements. This report serves as a baseline
for tracking progress and evaluating the impact of implemented initiatives.`, title)
}
