package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/cryvora/cryvora/internal/application/analysis"
	"github.com/cryvora/cryvora/internal/config"
	openaiClient "github.com/cryvora/cryvora/internal/infra/ai/openai"
	"github.com/cryvora/cryvora/internal/infra/httpclient"
	"github.com/cryvora/cryvora/internal/infra/httpserver"
	"github.com/cryvora/cryvora/internal/infra/providers/ipinfo"
	"github.com/cryvora/cryvora/internal/infra/providers/ocrspace"
	"github.com/cryvora/cryvora/internal/infra/providers/rdap"
	"github.com/cryvora/cryvora/internal/infra/providers/safebrowsing"
	"github.com/cryvora/cryvora/internal/infra/providers/virustotal"
	"github.com/cryvora/cryvora/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	// init providers
	fetcher := httpclient.New(cfg.ReachabilityTimeout())
	geo := ipinfo.New(cfg.Providers.Geolocation.Endpoint, cfg.Providers.Geolocation.Token)
	registry := rdap.New(cfg.Providers.Registration.Endpoint)
	blocklist := safebrowsing.New(
		cfg.Providers.SafeBrowsing.Endpoint,
		cfg.Providers.SafeBrowsing.APIKey,
		cfg.Providers.SafeBrowsing.ClientID,
		cfg.Providers.SafeBrowsing.ClientVersion,
	)
	deepscan := virustotal.New(cfg.Providers.VirusTotal.Endpoint, cfg.Providers.VirusTotal.APIKey)
	ocr := ocrspace.New(cfg.Providers.OCR.Endpoint, cfg.Providers.OCR.APIKey)
	classifier := openaiClient.NewClient(cfg.Providers.OpenAI.APIKey, cfg.Providers.OpenAI.Model)

	// init service
	svc := &appanalysis.Service{
		Fetcher:       fetcher,
		Geo:           geo,
		Registry:      registry,
		Blocklist:     blocklist,
		DeepScan:      deepscan,
		OCR:           ocr,
		AI:            classifier,
		Clock:         appanalysis.SystemClock{},
		DeepScanDelay: cfg.DeepScanDelay(),
	}

	// readiness probes the geolocation provider, the cheapest upstream
	checkers := map[string]middleware.HealthChecker{
		"geolocation": middleware.HealthCheckerFunc(func(ctx context.Context) error {
			_, err := fetcher.Fetch(ctx, cfg.Providers.Geolocation.Endpoint)
			return err
		}),
	}

	// init router
	mux := chi.NewRouter()
	mux.Use(middleware.RateLimitMiddleware(20, 5))
	mux.Mount("/", httpserver.NewRouter(svc, checkers))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("cryvora server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
