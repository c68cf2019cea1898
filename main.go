package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"coinlens/airtable"
	"coinlens/api"
	"coinlens/intake"
	"coinlens/mentionskafka"
	"coinlens/refresher"
	"coinlens/store"
	"coinlens/thumbcache"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	addr := ":" + DefaultPort
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	st := store.NewMemoryWithSeed()
	if ms, err := strconv.Atoi(os.Getenv("STORE_LATENCY_MS")); err == nil && ms > 0 {
		st.SetLatency(time.Duration(ms) * time.Millisecond)
	}

	webhook := ResolveWebhookURL(os.Getenv("INTAKE_WEBHOOK_URL"))
	seen := intake.NewSeenGuardFromEnv()
	defer seen.Close()
	intakeClient := intake.NewClient(webhook, seen)

	var videos api.VideoSource
	if os.Getenv("AIRTABLE_BASE_ID") != "" {
		videos = airtable.NewClientFromEnv()
	} else {
		log.Println("Airtable not configured; bubbles endpoint disabled")
	}

	ref := refresher.NewFromEnv(ctx, st)
	go ref.RunInterval(ctx)

	thumbs := thumbcache.NewFromEnv()
	defer thumbs.Close()

	startMentionsConsumer(ctx, st)

	r := api.NewRouter(api.Deps{
		Store:     st,
		Intake:    intakeClient,
		Videos:    videos,
		Refresher: ref,
		Thumbs:    thumbs,
	})

	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/review/queue")
	log.Println("  GET  /api/review/content/:id")
	log.Println("  POST /api/review/content/:id/mentions/:mid")
	log.Println("  POST /api/review/content/:id/publish")
	log.Println("  POST /api/intake/submit")
	log.Println("  GET  /api/bubbles")
	log.Println("  GET  /api/thumb")
	log.Println("  POST /api/refresh")

	server := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// startMentionsConsumer begins draining the extraction topic in the
// background. Missing broker config just disables ingestion.
func startMentionsConsumer(ctx context.Context, st store.Store) {
	if os.Getenv("KAFKA_BROKERS") == "" {
		log.Println("KAFKA_BROKERS not set; mention ingestion disabled")
		return
	}

	cfg := mentionskafka.ConfigFromEnv(&mentionskafka.StoreHandler{Store: st})
	consumer, err := mentionskafka.NewConsumer(cfg)
	if err != nil {
		log.Printf("Kafka consumer init failed: %v (mention ingestion disabled)", err)
		return
	}

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Printf("Kafka consumer stopped: %v", err)
		}
		_ = consumer.Close()
	}()
}
