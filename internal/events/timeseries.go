package events

import (
	"time"

	"github.com/sfmta/transitreport/internal/model"
)

const defaultBinMinutes = 10

// BuildTimeSeries bins bunch/gap events into fixed-width intervals
// across day D, producing the canonical 00:00-23:50 time axis even
// when no events fall in a given bin (§4.9).
func BuildTimeSeries(problems []model.Problem, day time.Time, binMinutes int) model.LineChart {
	if binMinutes <= 0 {
		binMinutes = defaultBinMinutes
	}
	bin := time.Duration(binMinutes) * time.Minute
	binsPerDay := int(24 * time.Hour / bin)

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	chart := model.LineChart{
		Times:   make([]string, binsPerDay),
		Bunches: make([]int, binsPerDay),
		Gaps:    make([]int, binsPerDay),
	}
	for i := 0; i < binsPerDay; i++ {
		chart.Times[i] = midnight.Add(time.Duration(i) * bin).Format("15:04")
	}

	for _, p := range problems {
		idx := int(p.Time.Sub(midnight) / bin)
		if idx < 0 || idx >= binsPerDay {
			continue
		}
		switch p.Kind {
		case model.ProblemBunch:
			chart.Bunches[idx]++
		case model.ProblemGap:
			chart.Gaps[idx]++
		}
	}

	return chart
}
