package runner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"weatherlake/weather-extract/internal/locations"
	"weatherlake/weather-extract/internal/openweather"
	"weatherlake/weather-extract/internal/record"
	"weatherlake/weather-extract/internal/storage"
)

// Summary counts per-location outcomes of one run. Failures never change
// the process exit code; callers that need stricter semantics can inspect
// the counts.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

type Options struct {
	Bucket string
	Prefix string
	DryRun bool

	// Now supplies the upload timestamp used in key construction.
	// Defaults to time.Now.
	Now func() time.Time
}

type Runner struct {
	weather  openweather.API
	uploader storage.Uploader
	opts     Options
}

func New(weather openweather.API, uploader storage.Uploader, opts Options) *Runner {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Runner{
		weather:  weather,
		uploader: uploader,
		opts:     opts,
	}
}

// Run processes the locations sequentially in resolver order. A failing
// location is logged and skipped; nothing aborts the run.
func (r *Runner) Run(ctx context.Context, locs []locations.Location) Summary {
	summary := Summary{Total: len(locs)}

	for _, loc := range locs {
		if err := r.process(ctx, loc); err != nil {
			log.Error().
				Err(err).
				Str("location", loc.Name).
				Float64("lat", loc.Lat).
				Float64("lon", loc.Lon).
				Msg("Failed to process location")
			summary.Failed++
			continue
		}
		summary.Succeeded++
	}

	return summary
}

func (r *Runner) process(ctx context.Context, loc locations.Location) error {
	log.Info().
		Str("location", loc.Name).
		Float64("lat", loc.Lat).
		Float64("lon", loc.Lon).
		Msg("Fetching current weather")

	obs, err := r.weather.CurrentWeather(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return err
	}

	rec, err := record.Shape(obs, loc)
	if err != nil {
		return err
	}

	body, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	if r.opts.DryRun {
		log.Info().
			Str("location", loc.Name).
			Int("payload_bytes", len(body)).
			Msg("Dry run enabled, skipping upload")
		return nil
	}

	key := storage.BuildKey(r.opts.Prefix, loc.Name, r.opts.Now())
	return r.uploader.Upload(ctx, r.opts.Bucket, key, body)
}
