package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/events"
	"github.com/cruxstack/cognito-auth-go/internal/config"
	"github.com/cruxstack/cognito-auth-go/internal/handlers"
	"github.com/cruxstack/cognito-auth-go/internal/log"
	"github.com/joho/godotenv"
)

var (
	dataPath    string
	handlerName string
)

func init() {
	flag.StringVar(&dataPath, "data", "", "path to JSON file with test event data")
	flag.StringVar(&handlerName, "handler", "login", "handler to run: login or register")
	flag.Parse()
}

func NewDebugConfig() (*config.Config, error) {
	envpath := filepath.Join(".env")
	if _, err := os.Stat(envpath); err == nil {
		_ = godotenv.Load(envpath)
	}

	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	if cfg.DebugDataPath == "" {
		cfg.DebugDataPath = filepath.Join("fixtures", "debug-data.json")
	}
	if dataPath != "" {
		cfg.DebugDataPath = dataPath
	}

	return cfg, nil
}

func newHandler(ctx context.Context, cfg *config.Config, name string) (handlers.Handler, error) {
	switch name {
	case "login":
		return handlers.NewLoginHandler(ctx, cfg)
	case "register":
		return handlers.NewRegisterHandler(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown handler %q", name)
	}
}

func main() {
	ctx := context.Background()

	cfg, err := NewDebugConfig()
	if err != nil {
		log.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log.SetLevel(cfg.AppLogLevel)

	h, err := newHandler(ctx, cfg, handlerName)
	if err != nil {
		log.Error("failed to init handler", "handler", handlerName, "error", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(cfg.DebugDataPath)
	if err != nil {
		log.Error("failed to read data file", "path", cfg.DebugDataPath, "error", err)
		os.Exit(1)
	}

	evts := []events.APIGatewayProxyRequest{}
	if err := json.Unmarshal(data, &evts); err != nil {
		log.Error("failed to parse event file", "error", err)
		os.Exit(1)
	}

	for i, e := range evts {
		r, err := h.Handle(ctx, e)
		if err != nil {
			log.Error("event failed", "index", i, "error", err)
			continue
		}
		log.Info("event handled", "index", i, "status", r.StatusCode, "response", r.Body)
	}

	log.Info("replay completed", "handler", handlerName, "events", len(evts))
}
