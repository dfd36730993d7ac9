package catalog

import (
	"github.com/pvn-digital/initiative-catalog/models"
)

// View is everything the dashboard shows for one query. Stats follow the
// filter; options and charts always describe the whole catalog.
type View struct {
	Items   []models.Initiative `json:"items"`
	Stats   Stats               `json:"stats"`
	Options Options             `json:"options"`
	Charts  Charts              `json:"charts"`
}

func BuildView(all []models.Initiative, f Filter, key SortKey, dir Direction) View {
	filtered := Sort(f.Apply(all), key, dir)
	return View{
		Items:   filtered,
		Stats:   ComputeStats(filtered),
		Options: FilterOptions(all),
		Charts:  BuildCharts(all),
	}
}
