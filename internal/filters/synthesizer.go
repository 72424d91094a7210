package filters

import (
	"autoviz/domain/table"
)

// MaxFilterSpecs caps how many filter widgets are surfaced at once.
const MaxFilterSpecs = 5

// Synthesize derives filter-widget specs from classifier output. Column
// order is preserved and the result is truncated to MaxFilterSpecs; there is
// no heuristic here beyond reading the classifier's flags.
func Synthesize(columns []string, analyses map[string]table.ColumnAnalysis) []table.FilterSpec {
	specs := []table.FilterSpec{}
	for _, col := range columns {
		analysis, ok := analyses[col]
		if !ok || !analysis.SuggestFilter {
			continue
		}
		spec := table.FilterSpec{
			Column: col,
			Type:   analysis.FilterType,
		}
		if cfg := analysis.FilterConfig; cfg != nil {
			spec.Options = cfg.Options
			spec.Min = cfg.Min
			spec.Max = cfg.Max
			spec.MinEpoch = cfg.MinEpoch
			spec.MaxEpoch = cfg.MaxEpoch
		}
		specs = append(specs, spec)
		if len(specs) == MaxFilterSpecs {
			break
		}
	}
	return specs
}
