package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/commute-emissions/internal/config"
	"github.com/commute-emissions/internal/domain"
	"github.com/commute-emissions/internal/infrastructure/googlemaps"
	"github.com/commute-emissions/internal/pkg/logger"
	"github.com/commute-emissions/internal/report"
	"github.com/commute-emissions/internal/repository/cache"
	"github.com/commute-emissions/internal/usecase"
	"github.com/commute-emissions/internal/usecase/dto"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("commute-emissions", pflag.ContinueOnError)
	flags.String("origin", "Flutstraße 23, 12439 Berlin", "start address")
	flags.String("destination", "Am Friedrichshain 20D, 10407 Berlin", "target address")
	flags.String("propulsion", string(domain.PropulsionDiesel), "car propulsion: diesel, electric, gas")
	flags.String("size", string(domain.CarSizeMedium), "car size: small, medium, big")
	flags.String("stopover", "Alexanderplatz, Berlin", "carpool pickup address")
	flags.String("model", domain.ModelVersionRefined, "emission model: v1 (flat) or v2 (refined)")
	flags.Bool("concurrent", true, "query the routing provider for all transports at once")
	flags.String("log-level", "info", "log level, logs go to stderr")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	v := viper.New()
	for key, flag := range map[string]string{
		"EMISSION_MODEL": "model",
		"LOG_LEVEL":      "log-level",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.RequireMapsKey(); err != nil {
		return err
	}

	log, err := logger.NewStderr(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	model, err := domain.ModelByName(cfg.Emission.Model)
	if err != nil {
		return err
	}
	classifier := domain.DefaultClassifier()
	if cfg.Emission.CommuterAsTrain {
		classifier = domain.CommuterAsTrainClassifier()
	}

	var redisClient *cache.Redis
	if cfg.Cache.Backend == config.CacheBackendRedis {
		redisClient, err = cache.NewRedis(cfg, log)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	routeRepo, err := cache.WrapRouteRepository(googlemaps.NewClient(&cfg.Maps, log), &cfg.Cache, redisClient, log)
	if err != nil {
		return err
	}

	var opts []usecase.EstimationOption
	if !v.GetBool("concurrent") {
		opts = append(opts, usecase.WithCompareLimit(1))
	}
	estimationUC := usecase.NewEstimationUseCase(routeRepo, model, classifier, log, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	resp, err := estimationUC.Compare(ctx, dto.CompareRequest{
		Origin:      v.GetString("origin"),
		Destination: v.GetString("destination"),
		Propulsion:  v.GetString("propulsion"),
		Size:        v.GetString("size"),
		Stopover:    v.GetString("stopover"),
	})
	if err != nil {
		return err
	}

	log.Info("Comparison finished",
		zap.String("model", resp.Model),
		zap.Int("results", len(resp.Results)))

	return report.Write(os.Stdout, resp)
}
