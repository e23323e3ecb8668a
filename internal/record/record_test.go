package record_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
	"weatherlake/weather-extract/internal/locations"
	"weatherlake/weather-extract/internal/openweather"
	"weatherlake/weather-extract/internal/record"
)

type ShapeTestSuite struct {
	suite.Suite
	loc locations.Location
}

func (s *ShapeTestSuite) SetupTest() {
	s.loc = locations.Location{Name: "ottawa", Lat: 45.4215, Lon: -75.6972}
}

func (s *ShapeTestSuite) observation(body string) *openweather.Observation {
	var obs openweather.Observation
	s.Require().NoError(json.Unmarshal([]byte(body), &obs))
	return &obs
}

func (s *ShapeTestSuite) TestShapeFullResponse() {
	obs := s.observation(`{
		"main": {"temp": 21.5, "humidity": 60},
		"wind": {"speed": 3.2},
		"weather": [{"description": "clear sky"}],
		"dt": 1700000000
	}`)

	rec, err := record.Shape(obs, s.loc)

	s.NoError(err)
	s.Equal(record.Record{
		City:        "ottawa",
		Lat:         45.4215,
		Lon:         -75.6972,
		Temp:        21.5,
		Humidity:    60,
		WindSpeed:   3.2,
		Description: "clear sky",
		Timestamp:   1700000000,
	}, rec)
}

func (s *ShapeTestSuite) TestShapeKeepsZeroValues() {
	obs := s.observation(`{
		"main": {"temp": 0, "humidity": 0},
		"wind": {"speed": 0},
		"weather": [{"description": ""}],
		"dt": 0
	}`)

	rec, err := record.Shape(obs, s.loc)

	s.NoError(err)
	s.Equal(0.0, rec.Temp)
	s.Equal(int64(0), rec.Timestamp)
}

func (s *ShapeTestSuite) TestShapeMissingFields() {
	cases := map[string]string{
		`{"wind": {"speed": 3.2}, "weather": [{"description": "x"}], "dt": 1}`:                            "main.temp",
		`{"main": {"humidity": 60}, "wind": {"speed": 3.2}, "weather": [{"description": "x"}], "dt": 1}`:  "main.temp",
		`{"main": {"temp": 21.5}, "wind": {"speed": 3.2}, "weather": [{"description": "x"}], "dt": 1}`:    "main.humidity",
		`{"main": {"temp": 21.5, "humidity": 60}, "weather": [{"description": "x"}], "dt": 1}`:            "wind.speed",
		`{"main": {"temp": 21.5, "humidity": 60}, "wind": {}, "weather": [{"description": "x"}], "dt": 1}`: "wind.speed",
		`{"main": {"temp": 21.5, "humidity": 60}, "wind": {"speed": 3.2}, "dt": 1}`:                       "weather[0].description",
		`{"main": {"temp": 21.5, "humidity": 60}, "wind": {"speed": 3.2}, "weather": [], "dt": 1}`:        "weather[0].description",
		`{"main": {"temp": 21.5, "humidity": 60}, "wind": {"speed": 3.2}, "weather": [{}], "dt": 1}`:      "weather[0].description",
		`{"main": {"temp": 21.5, "humidity": 60}, "wind": {"speed": 3.2}, "weather": [{"description": "x"}]}`: "dt",
	}

	for body, missing := range cases {
		_, err := record.Shape(s.observation(body), s.loc)

		s.Error(err, "expected error for body %s", body)
		s.Contains(err.Error(), missing)
	}
}

func (s *ShapeTestSuite) TestShapeNilObservation() {
	_, err := record.Shape(nil, s.loc)

	s.Error(err)
}

func (s *ShapeTestSuite) TestRecordJSONPreservesNonASCII() {
	rec := record.Record{City: "são paulo", Description: "céu limpo"}

	body, err := json.Marshal(rec)

	s.NoError(err)
	s.Contains(string(body), "céu limpo")
	s.Contains(string(body), "são paulo")
}

func TestShapeTestSuite(t *testing.T) {
	suite.Run(t, new(ShapeTestSuite))
}
