package camunda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/logger"
)

func TestClientConfigFrom(t *testing.T) {
	cfg := ClientConfigFrom(config.CamundaConfig{
		Enabled:        true,
		BrokerAddress:  "zeebe:26500",
		RequestTimeout: 15000,
	})

	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.True(t, cfg.UsePlaintextConnection)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.ConnectionTimeout)
}

func TestStartWorker_Disabled(t *testing.T) {
	w := StartWorker(nil, "assistant-chat", config.WorkerConfig{Enabled: false}, nil, logger.NewTestLogger(t))
	assert.Nil(t, w)
	assert.NotPanics(t, func() { w.Stop() })
}
