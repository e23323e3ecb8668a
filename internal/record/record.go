package record

import (
	"fmt"

	"weatherlake/weather-extract/internal/locations"
	"weatherlake/weather-extract/internal/openweather"
)

// Record is the normalized observation written to the data lake. It is
// built once per location and only ever serialized afterwards.
type Record struct {
	City        string  `json:"city"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Temp        float64 `json:"temp"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description"`
	Timestamp   int64   `json:"timestamp"`
}

// Shape extracts the fixed field subset from a raw observation. Any absent
// field is an error; there is no defaulting and no partial record.
func Shape(obs *openweather.Observation, loc locations.Location) (Record, error) {
	if obs == nil {
		return Record{}, fmt.Errorf("response missing body")
	}
	if obs.Main == nil || obs.Main.Temp == nil {
		return Record{}, fmt.Errorf("response missing main.temp")
	}
	if obs.Main.Humidity == nil {
		return Record{}, fmt.Errorf("response missing main.humidity")
	}
	if obs.Wind == nil || obs.Wind.Speed == nil {
		return Record{}, fmt.Errorf("response missing wind.speed")
	}
	if len(obs.Weather) == 0 || obs.Weather[0].Description == nil {
		return Record{}, fmt.Errorf("response missing weather[0].description")
	}
	if obs.Dt == nil {
		return Record{}, fmt.Errorf("response missing dt")
	}

	return Record{
		City:        loc.Name,
		Lat:         loc.Lat,
		Lon:         loc.Lon,
		Temp:        *obs.Main.Temp,
		Humidity:    *obs.Main.Humidity,
		WindSpeed:   *obs.Wind.Speed,
		Description: *obs.Weather[0].Description,
		Timestamp:   *obs.Dt,
	}, nil
}
