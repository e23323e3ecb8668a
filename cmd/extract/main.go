package main

import (
	"fmt"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"weatherlake/weather-extract/config"
	"weatherlake/weather-extract/internal/db/ingestionrun"
	"weatherlake/weather-extract/internal/locations"
	"weatherlake/weather-extract/internal/openweather"
	"weatherlake/weather-extract/internal/runner"
	"weatherlake/weather-extract/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("extraction aborted")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		locationsArg string
		configPath   string
		locationName string
		lat          float64
		lon          float64
		bucket       string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:           "extract",
		Short:         "Fetch Current Weather data for a set of locations and upload JSON records to S3",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, options{
				locationsArg: locationsArg,
				configPath:   configPath,
				locationName: locationName,
				lat:          lat,
				lon:          lon,
				bucket:       bucket,
				dryRun:       dryRun,
			})
		},
	}

	cmd.Flags().StringVar(&locationsArg, "locations", "", "Comma-separated name=lat,lon pairs")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to JSON config file with locations")
	cmd.Flags().StringVar(&locationName, "location", "", "Single location name (requires --lat and --lon)")
	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude for single location")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude for single location")
	cmd.Flags().StringVar(&bucket, "s3-bucket", "", "S3 bucket to write to (overrides S3_BUCKET)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Don't upload to S3; just report payload sizes")

	cmd.MarkFlagsOneRequired("locations", "config", "location")
	cmd.MarkFlagsMutuallyExclusive("locations", "config", "location")
	cmd.MarkFlagsRequiredTogether("location", "lat", "lon")

	return cmd
}

type options struct {
	locationsArg string
	configPath   string
	locationName string
	lat          float64
	lon          float64
	bucket       string
	dryRun       bool
}

func run(cmd *cobra.Command, opts options) error {
	conf, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()

	if conf.OpenWeatherAPIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY environment variable not set")
	}

	var locs []locations.Location
	switch {
	case cmd.Flags().Changed("locations"):
		locs, err = locations.ParseInline(opts.locationsArg)
	case cmd.Flags().Changed("config"):
		locs, err = locations.LoadFile(opts.configPath)
	default:
		locs, err = locations.Single(opts.locationName, opts.lat, opts.lon)
	}
	if err != nil {
		return err
	}

	names := make([]string, 0, len(locs))
	for _, loc := range locs {
		names = append(names, loc.Name)
	}
	log.Info().Int("count", len(locs)).Strs("locations", names).Msg("Resolved locations to fetch")

	bucket := conf.S3Bucket
	if cmd.Flags().Changed("s3-bucket") {
		bucket = opts.bucket
	}

	ctx := cmd.Context()

	weatherClient := openweather.NewClient(
		conf.WeatherBaseURL,
		conf.OpenWeatherAPIKey,
		conf.RequestTimeout,
		conf.MaxRetries,
		conf.RetryBackoff,
	)

	var uploader storage.Uploader
	if !opts.dryRun {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load AWS config: %w", err)
		}
		uploader = storage.NewS3Uploader(s3.NewFromConfig(awsCfg))
	}

	var runRepo ingestionrun.Repository
	if conf.RunLogEnabled() {
		db, dbErr := initializeDatabase(conf)
		if dbErr != nil {
			log.Error().Err(dbErr).Msg("Run log database unavailable, continuing without it")
		} else {
			runRepo = ingestionrun.NewRepository(db)
		}
	}

	startedAt := time.Now()
	summary := runner.New(weatherClient, uploader, runner.Options{
		Bucket: bucket,
		Prefix: conf.S3RawPrefix,
		DryRun: opts.dryRun,
	}).Run(ctx, locs)

	if runRepo != nil {
		if logErr := runRepo.LogRun(startedAt, time.Now(), summary.Total, summary.Succeeded, summary.Failed, opts.dryRun); logErr != nil {
			log.Error().Err(logErr).Msg("Failed to record ingestion run")
		}
	}

	log.Info().
		Int("locations", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Msg("Extraction job complete")

	return nil
}

func initializeDatabase(conf *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		conf.DBHost, conf.DBPort, conf.DBUser, conf.DBPassword, conf.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&ingestionrun.IngestionRun{}); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(2)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}
