package summary

import (
	"autoviz/domain/table"
)

// MaxMetricColumns caps how many metric columns get headline statistics.
const MaxMetricColumns = 3

// Metric map keys that are not derived from a column name.
const (
	KeyTotalRecords     = "totalRecords"
	KeyUniqueCategories = "uniqueCategories"
	KeyCategoryColumn   = "categoryColumn"
	KeyTargetColumn     = "targetColumn"
	KeyTargetClasses    = "targetClasses"
)

// Metrics derives the headline statistics map from classifier output: sum,
// avg, and max for up to MaxMetricColumns metric columns (keyed
// "<column>_sum" etc.), the cardinality of the first non-target dimension,
// and the class count of a categorical target. It reads the classifier's
// numbers as-is; there is no independent computation here.
func Metrics(columns []string, analyses map[string]table.ColumnAnalysis, target string, totalRecords int) map[string]any {
	metrics := map[string]any{
		KeyTotalRecords: totalRecords,
	}

	emitted := 0
	for _, col := range columns {
		if emitted == MaxMetricColumns {
			break
		}
		analysis, ok := analyses[col]
		if !ok || analysis.Role != table.RoleMetric || analysis.Numeric == nil {
			continue
		}
		metrics[col+"_sum"] = analysis.Numeric.Sum
		metrics[col+"_avg"] = analysis.Numeric.Avg
		metrics[col+"_max"] = analysis.Numeric.Max
		emitted++
	}

	for _, col := range columns {
		analysis, ok := analyses[col]
		if !ok || analysis.Role != table.RoleDimension || col == target {
			continue
		}
		metrics[KeyUniqueCategories] = analysis.UniqueCount
		metrics[KeyCategoryColumn] = col
		break
	}

	if target != "" {
		metrics[KeyTargetColumn] = target
		if analysis, ok := analyses[target]; ok && analysis.Type == table.TypeCategorical {
			metrics[KeyTargetClasses] = analysis.UniqueCount
		}
	}

	return metrics
}
