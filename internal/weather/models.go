package weather

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionFog     Condition = "fog"
	ConditionRain    Condition = "rain"
	ConditionStorm   Condition = "storm"
	ConditionSnow    Condition = "snow"
	ConditionSleet   Condition = "sleet"
)

// Location is a named place with coordinates.
// Identity is by Name; two places with the same name are the same location.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Key returns the identity key used for favorites and de-duplication.
func (l Location) Key() string {
	return l.Name
}

// FavoriteLocation is a location the user has pinned.
type FavoriteLocation Location

// Location converts the favorite back to a plain Location.
func (f FavoriteLocation) Location() Location {
	return Location(f)
}

// HourlyForecast is one time step of a forecast.
type HourlyForecast struct {
	Time          string  `json:"time"`        // ISO-8601, as delivered upstream
	Temperature   float64 `json:"temperature"` // °C
	WeatherSymbol int     `json:"weatherSymbol"`
	CloudCover    int     `json:"cloudCover"` // percent 0..100
}

// DailyForecast groups the hourly entries of a single date.
// It is derived from a WeatherForecast and never persisted on its own.
type DailyForecast struct {
	Date            string           `json:"date"` // YYYY-MM-DD
	WeatherSymbol   int              `json:"weatherSymbol"`
	HourlyForecasts []HourlyForecast `json:"hourlyForecasts"`
}

// WeatherForecast is the unit of caching: a location and its ordered time steps.
type WeatherForecast struct {
	Location  Location         `json:"location"`
	Forecasts []HourlyForecast `json:"forecasts"`
}
