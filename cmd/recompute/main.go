package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"livelens/internal/ratings"
	"livelens/internal/shared/config"
	"livelens/internal/shared/database"
	"livelens/pkg/logger"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// recompute rebuilds seat aggregates from the reviews table, either for one
// seat (-seat) or for every seat.
func main() {
	seatFlag := flag.String("seat", "", "recompute a single seat id")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	appLogger := logger.New(cfg.LogLevel)
	logger.SetDefault(appLogger)

	fmt.Println("🔁 Starting seat aggregate recompute...")

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aggregator := ratings.NewAggregator(db.GetPostgreSQL(), appLogger)
	start := time.Now()

	if *seatFlag != "" {
		seatID, err := uuid.Parse(*seatFlag)
		if err != nil {
			log.Fatalf("Invalid seat id %q: %v", *seatFlag, err)
		}
		agg, err := aggregator.RecomputeSeat(ctx, seatID, ratings.TriggerBatch)
		if err != nil {
			log.Fatalf("Failed to recompute seat %s: %v", seatID, err)
		}
		if agg == nil {
			fmt.Printf("✅ Seat %s has no reviews, aggregate cleared\n", seatID)
		} else {
			fmt.Printf("✅ Seat %s: %d reviews, avg overall %.2f\n", seatID, agg.ReviewCount, agg.AvgOverall)
		}
		return
	}

	processed, err := aggregator.RecomputeAll(ctx)
	if err != nil {
		log.Fatalf("Recompute stopped after %d seats: %v", processed, err)
	}
	fmt.Printf("✅ Recomputed %d seat aggregates in %s\n", processed, time.Since(start).Round(time.Millisecond))
}
