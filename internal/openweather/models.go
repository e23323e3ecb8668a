package openweather

// Observation is the raw Current Weather API body. Fields are pointers so
// the shaper can tell an absent field apart from a zero value.
type Observation struct {
	Dt      *int64      `json:"dt"`
	Main    *Main       `json:"main"`
	Wind    *Wind       `json:"wind"`
	Weather []Condition `json:"weather"`
}

type Main struct {
	Temp     *float64 `json:"temp"`
	Humidity *float64 `json:"humidity"`
}

type Wind struct {
	Speed *float64 `json:"speed"`
}

type Condition struct {
	Description *string `json:"description"`
}
