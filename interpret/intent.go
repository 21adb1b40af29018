package interpret

import "github.com/poiesic/hanap/core"

// classifyIntent picks the intent from the strongest signal present:
// plot number, then family, then place, then name.
func classifyIntent(sc *core.SearchContext) core.Intent {
	switch {
	case sc.PlotNumber != "":
		return core.IntentFindPlot
	case sc.Relationship != "" || sc.PlotType == core.PlotTypeFamily:
		return core.IntentFindFamily
	case sc.CemeteryName != "" || sc.Location != "":
		return core.IntentFindLocation
	case sc.FirstName != "" || sc.LastName != "" || sc.FullName != "":
		return core.IntentFindPerson
	default:
		return core.IntentGeneral
	}
}
