package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"weatherlake/weather-extract/internal/openweather"
)

// MockAPI is a testify mock for openweather.API.
type MockAPI struct {
	mock.Mock
}

func NewMockAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAPI {
	m := &MockAPI{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAPI) CurrentWeather(ctx context.Context, lat, lon float64) (*openweather.Observation, error) {
	args := m.Called(ctx, lat, lon)

	var obs *openweather.Observation
	if args.Get(0) != nil {
		obs = args.Get(0).(*openweather.Observation)
	}
	return obs, args.Error(1)
}
