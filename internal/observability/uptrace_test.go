package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/league-scheduler/internal/config"
	"github.com/riskibarqy/league-scheduler/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "league-scheduler",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}
