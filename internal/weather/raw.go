package weather

// SMHIResponse is the point forecast payload of the SMHI pmp3g API.
type SMHIResponse struct {
	ApprovedTime  string       `json:"approvedTime"`
	ReferenceTime string       `json:"referenceTime"`
	Geometry      Geometry     `json:"geometry"`
	TimeSeries    []TimeSeries `json:"timeSeries"`
}

// Geometry holds [lon, lat] coordinate pairs.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// TimeSeries is a single forecast time step.
type TimeSeries struct {
	ValidTime  string      `json:"validTime"`
	Parameters []Parameter `json:"parameters"`
}

// Parameter is one named measurement of a time step.
type Parameter struct {
	Name      string    `json:"name"`
	LevelType string    `json:"levelType,omitempty"`
	Level     *int      `json:"level,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	Values    []float64 `json:"values"`
}

// SMHIPlace is a row of the SMHI autocomplete place search.
type SMHIPlace struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lon      float64 `json:"lon"`
	Lat      float64 `json:"lat"`
}

// GeocodingResponse is the Open-Meteo geocoding search payload.
// Results is nil when the API answers with "results": null or omits it.
type GeocodingResponse struct {
	Results []GeocodingResult `json:"results"`
}

// GeocodingResult is one Open-Meteo geocoding hit.
type GeocodingResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   *string `json:"country,omitempty"`
	Admin1    *string `json:"admin1,omitempty"`
}
