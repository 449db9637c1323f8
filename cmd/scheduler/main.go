package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/homebond/bond-engine/internal/config"
	"github.com/homebond/bond-engine/internal/rates"
)

// The scheduler keeps the cached prime rate warm so API requests never
// have to wait on the upstream source.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Rates.SourceURL == "" {
		log.Fatal("PRIME_RATE_SOURCE_URL must be set for the rate refresh scheduler")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	fallback := rates.NewStaticSource(cfg.GetFallbackPrimeRate(), time.Time{})
	upstream := rates.NewHTTPSource(cfg.Rates.SourceURL, cfg.GetRateFetchTimeout())
	cached := rates.NewCachedSource(redisClient, upstream, fallback, cfg.GetRateCacheTTL())

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.GetRateFetchTimeout())
		defer cancel()

		rate, err := cached.Refresh(ctx)
		if err != nil {
			log.Printf("Prime rate refresh failed: %v", err)
			return
		}
		log.Printf("Prime rate refreshed: %s%% (effective %s)", rate.Rate, rate.EffectiveDate.Format("2006-01-02"))
	}

	// Warm the cache immediately so the API has a rate before the first tick
	refresh()

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(cfg.Rates.RefreshSchedule, refresh); err != nil {
		log.Fatalf("Invalid refresh schedule %q: %v", cfg.Rates.RefreshSchedule, err)
	}

	log.Printf("Rate scheduler starting with schedule %q", cfg.Rates.RefreshSchedule)
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down scheduler...")

	stopCtx := c.Stop()
	<-stopCtx.Done()

	log.Println("Scheduler exited")
}
