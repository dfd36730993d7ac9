package catalog

import (
	"sort"

	"github.com/pvn-digital/initiative-catalog/models"
)

// Count is one labelled bar or slice of a chart.
type Count struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Charts groups the dashboard breakdowns.
type Charts struct {
	ByStage          []Count `json:"byStage"`
	ByClassification []Count `json:"byClassification"`
	ByDepartment     []Count `json:"byDepartment"`
}

func BuildCharts(list []models.Initiative) Charts {
	return Charts{
		ByStage:          CountByStage(list),
		ByClassification: CountByClassification(list),
		ByDepartment:     CountByDepartment(list),
	}
}

// CountByStage buckets in first-seen order; a missing stage counts as unclassified.
func CountByStage(list []models.Initiative) []Count {
	return countBy(list, func(i models.Initiative) string {
		if i.Stage == "" {
			return models.StageUnclassified
		}
		return i.Stage
	})
}

// CountByClassification buckets in first-seen order; a missing
// classification counts as unclassified.
func CountByClassification(list []models.Initiative) []Count {
	return countBy(list, func(i models.Initiative) string {
		if i.Classification == "" {
			return models.StageUnclassified
		}
		return i.Classification
	})
}

// CountByDepartment skips initiatives without a department and orders by
// ascending count.
func CountByDepartment(list []models.Initiative) []Count {
	counts := countBy(list, func(i models.Initiative) string { return i.Department })
	out := make([]Count, 0, len(counts))
	for _, c := range counts {
		if c.Label != "" {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Value < out[b].Value })
	return out
}

func countBy(list []models.Initiative, label func(models.Initiative) string) []Count {
	index := make(map[string]int)
	out := []Count{}
	for _, i := range list {
		l := label(i)
		if pos, ok := index[l]; ok {
			out[pos].Value++
			continue
		}
		index[l] = len(out)
		out = append(out, Count{Label: l, Value: 1})
	}
	return out
}
