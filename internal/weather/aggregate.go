package weather

import (
	"github.com/i474232898/weather-lookup/internal/common"
)

// DaySummary condenses a DailyForecast into a handful of display values.
type DaySummary struct {
	Date            string     `json:"date"`
	Symbol          SymbolInfo `json:"symbol"`
	MinTemperature  float64    `json:"minTemperature"`
	MaxTemperature  float64    `json:"maxTemperature"`
	MeanTemperature float64    `json:"meanTemperature"`
	MeanCloudCover  int        `json:"meanCloudCover"`
	Condition       Condition  `json:"condition"`
	Hours           int        `json:"hours"`
}

// SummarizeDay combines the hourly entries of a day into a DaySummary.
// Temperatures are min/max/averaged; the condition is picked by majority,
// with ties going to the condition seen first.
func SummarizeDay(day DailyForecast) DaySummary {
	summary := DaySummary{
		Date:      day.Date,
		Symbol:    DescribeSymbol(day.WeatherSymbol),
		Condition: ConditionUnknown,
		Hours:     len(day.HourlyForecasts),
	}
	if len(day.HourlyForecasts) == 0 {
		return summary
	}

	var (
		sumTemp  float64
		sumCloud int
		order    []Condition
	)
	conditionCounts := make(map[Condition]int)

	summary.MinTemperature = day.HourlyForecasts[0].Temperature
	summary.MaxTemperature = day.HourlyForecasts[0].Temperature

	for _, h := range day.HourlyForecasts {
		sumTemp += h.Temperature
		sumCloud += h.CloudCover

		if h.Temperature < summary.MinTemperature {
			summary.MinTemperature = h.Temperature
		}
		if h.Temperature > summary.MaxTemperature {
			summary.MaxTemperature = h.Temperature
		}

		cond := symbolCondition(h.WeatherSymbol)
		if _, ok := conditionCounts[cond]; !ok {
			order = append(order, cond)
		}
		conditionCounts[cond]++
	}

	n := len(day.HourlyForecasts)
	summary.MeanTemperature = common.Round(sumTemp/float64(n), 1)
	summary.MeanCloudCover = sumCloud / n

	// Pick majority condition.
	bestCount := 0
	for _, cond := range order {
		if conditionCounts[cond] > bestCount {
			bestCount = conditionCounts[cond]
			summary.Condition = cond
		}
	}

	return summary
}

// SummarizeDays applies SummarizeDay to each day.
func SummarizeDays(days []DailyForecast) []DaySummary {
	out := make([]DaySummary, 0, len(days))
	for _, d := range days {
		out = append(out, SummarizeDay(d))
	}
	return out
}
