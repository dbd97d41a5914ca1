// The agent binary serves the conversational trip planner over HTTP,
// with a WebSocket feed of turn events for observer UIs.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tripwise-project/tripwise-agent/agent"
	"github.com/tripwise-project/tripwise-agent/catalog"
	"github.com/tripwise-project/tripwise-agent/config"
	"github.com/tripwise-project/tripwise-agent/dataset"
	"github.com/tripwise-project/tripwise-agent/intent"
	"github.com/tripwise-project/tripwise-agent/llm"
	"github.com/tripwise-project/tripwise-agent/logger"
	"github.com/tripwise-project/tripwise-agent/services/flights"
	"github.com/tripwise-project/tripwise-agent/services/hotels"
	"github.com/tripwise-project/tripwise-agent/services/places"
	"github.com/tripwise-project/tripwise-agent/services/weather"
	"github.com/tripwise-project/tripwise-agent/websocket"
)

func main() {
	var (
		configPath = flag.String("config", "", "Path to agent YAML config (default from AGENT_CONFIG_PATH)")
		port       = flag.Int("port", 0, "HTTP port (default from AGENT_PORT)")
		wsPort     = flag.Int("ws-port", 0, "WebSocket port (default from WS_PORT)")
		noLLM      = flag.Bool("no-llm", false, "Disable the LLM extraction fallback")
	)
	flag.Parse()

	env, err := config.LoadEnv()
	if err != nil {
		logger.Fatal("Failed to load environment", err)
	}

	if level, err := logger.ParseLevel(env.LogLevel); err == nil {
		logger.SetGlobalLevel(level)
	}
	logger.GetLogger().SetJSONFormat(env.LogFormat == "json")
	logger.SetGlobalComponent("tripwise-agent")

	if *configPath == "" {
		*configPath = env.AgentConfigPath
	}
	if *port == 0 {
		*port = env.AgentPort
	}
	if *wsPort == 0 {
		*wsPort = env.WSPort
	}

	cfg, err := config.LoadAgentConfig(*configPath)
	if err != nil {
		logger.Fatal("Failed to load agent config", err)
	}

	flightRecords, err := dataset.LoadFlights(cfg.Datasets.Flights)
	if err != nil {
		logger.Fatal("Failed to load flight dataset", err)
	}
	hotelRecords, err := dataset.LoadHotels(cfg.Datasets.Hotels)
	if err != nil {
		logger.Fatal("Failed to load hotel dataset", err)
	}
	placeRecords, err := dataset.LoadPlaces(cfg.Datasets.Places)
	if err != nil {
		logger.Fatal("Failed to load places dataset", err)
	}
	logger.Infof("Datasets loaded: %d flights, %d hotels, %d places",
		len(flightRecords), len(hotelRecords), len(placeRecords))

	var fallback *intent.FallbackExtractor
	if !*noLLM {
		if client := buildLLMClient(env); client != nil {
			fallback, err = intent.NewFallbackExtractor(client)
			if err != nil {
				logger.Fatal("Failed to build extraction fallback", err)
			}
			logger.Infof("LLM fallback enabled, provider=%s", env.LLMProvider)
		} else {
			logger.Warn("LLM fallback disabled: no usable provider configuration")
		}
	}

	a := agent.New(
		catalog.New(flightRecords),
		intent.NewPipeline(fallback),
		flights.New(flightRecords),
		hotels.New(hotelRecords),
		places.New(placeRecords),
		weather.New(cfg.Weather),
	)

	events := websocket.NewEventServer(*wsPort)
	if err := events.Start(); err != nil {
		logger.Fatal("Failed to start event server", err)
	}
	logger.Infof("Turn events on ws://localhost:%d/ws", *wsPort)

	server := agent.NewServer(a, agent.NewSessionStore(), events, *port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Shutdown error", err)
		}
		events.Stop()
	}()

	if err := server.Start(); err != nil {
		logger.Fatal("HTTP server failed", err)
	}
}

// buildLLMClient picks a chat provider from environment configuration.
// Returns nil when nothing is configured.
func buildLLMClient(env *config.EnvConfig) llm.Client {
	switch env.LLMProvider {
	case "googleai":
		client, err := llm.NewGoogleAIClient(context.Background(), env.GoogleAPIKey, env.LLMModel)
		if err != nil {
			logger.Warnf("googleai provider unavailable: %v", err)
			return nil
		}
		return client

	case "gemini":
		key := env.GoogleAPIKey
		if key == "" {
			key = env.LLMAPIKey
		}
		if key == "" {
			return nil
		}
		return llm.NewGeminiClient(key, env.LLMModel, 0)

	default:
		client, err := llm.NewFromEnv()
		if err != nil {
			if err != llm.ErrLLMDisabled {
				logger.Warnf("LLM client unavailable: %v", err)
			}
			return nil
		}
		return client
	}
}
