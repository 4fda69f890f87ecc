package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, 12, cfg.Catalog.PageSize)
	assert.Equal(t, 12, cfg.Catalog.VendorRailLimit)
	assert.Equal(t, 10, cfg.Catalog.DashboardPageSize)
	assert.Equal(t, 14*24*time.Hour, cfg.JWT.SessionTTL)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("CATALOG_PAGE_SIZE", "24")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("DASHBOARD_PAGE_SIZE", "not-a-number")

	cfg := LoadEnv()

	assert.Equal(t, 24, cfg.Catalog.PageSize)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 2*time.Hour, cfg.JWT.SessionTTL)
	assert.Equal(t, 10, cfg.Catalog.DashboardPageSize)
}

func TestServerConfig_Location(t *testing.T) {
	assert.Equal(t, "America/Port-au-Prince", ServerConfig{TimeZone: "America/Port-au-Prince"}.Location().String())
	assert.Equal(t, time.UTC, ServerConfig{TimeZone: "Nowhere/Special"}.Location())
}
