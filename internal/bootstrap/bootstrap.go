package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/kirillkom/docchat/internal/config"
	"github.com/kirillkom/docchat/internal/core/ports"
	"github.com/kirillkom/docchat/internal/core/transcript"
	"github.com/kirillkom/docchat/internal/core/usecase"
	"github.com/kirillkom/docchat/internal/infrastructure/docservice"
	"github.com/kirillkom/docchat/internal/infrastructure/resilience"
	"github.com/kirillkom/docchat/internal/observability/metrics"
)

const serviceName = "docchat"

type App struct {
	Config config.Config

	Client  *docservice.Client
	Metrics *metrics.ClientMetrics

	closeFn     func()
	metricsAddr string
}

// UI is everything a front end provides to a session.
type UI interface {
	ports.TranscriptView
	ports.IntakeSurface
	ports.InputSurface
	Scheduler() ports.Scheduler
}

type Session struct {
	Transcript *transcript.Renderer
	Upload     *usecase.UploadController
	Chat       *usecase.ConversationController
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	clientMetrics := metrics.NewClientMetrics(serviceName)

	executor := resilience.NewExecutor(resilience.Config{
		BreakerEnabled:     cfg.BreakerEnabled,
		BreakerMinRequests: uint32(max(cfg.BreakerMinRequests, 0)),
		BreakerOpenTimeout: cfg.BreakerOpenTimeout(),
		BreakerInterval:    cfg.BreakerInterval(),
	})

	client := docservice.New(cfg.BaseURL, docservice.Options{
		Timeout:        cfg.HTTPTimeout(),
		RateLimitRPS:   cfg.ClientRateLimitRPS,
		RateLimitBurst: cfg.ClientRateLimitBurst,
		Transport:      clientMetrics.Transport(http.DefaultTransport),
		Executor:       executor,
	})

	app := &App{
		Config:  cfg,
		Client:  client,
		Metrics: clientMetrics,
	}

	if cfg.MetricsAddr != "" {
		listener, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			return nil, fmt.Errorf("listen metrics on %s: %w", cfg.MetricsAddr, err)
		}
		server := &http.Server{
			Handler:           metricsMux(clientMetrics),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			slog.Info("metrics_listening", "addr", listener.Addr().String())
			if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics_server_error", "error", err)
			}
		}()

		var once sync.Once
		shutdown := func() {
			once.Do(func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("metrics_shutdown_error", "error", err)
				}
			})
		}
		stopOnDone := context.AfterFunc(ctx, shutdown)
		app.closeFn = func() {
			stopOnDone()
			shutdown()
		}
		app.metricsAddr = listener.Addr().String()
	}

	return app, nil
}

// MetricsAddr is the bound metrics listener address, empty when disabled.
func (a *App) MetricsAddr() string {
	return a.metricsAddr
}

// NewSession wires the controllers for one front end.
func (a *App) NewSession(ui UI) *Session {
	renderer := transcript.NewRenderer(transcript.NewStore(), ui)
	return &Session{
		Transcript: renderer,
		Upload:     usecase.NewUploadController(a.Client, ui.Scheduler(), renderer, ui, a.Metrics),
		Chat:       usecase.NewConversationController(a.Client, ui.Scheduler(), renderer, ui, a.Metrics),
	}
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func metricsMux(m *metrics.ClientMetrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}
