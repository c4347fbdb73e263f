package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("STORAGE_DRIVER", "")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.True(t, cfg.RedisEnabled)
}

func TestConfig_PostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5432", DBName: "restaurant", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/restaurant?sslmode=disable", cfg.PostgresDSN())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Empty(t, splitList(""))
}

func TestConfig_PostgresDSNEscapesPassword(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p@ss:w/rd", DBHost: "db", DBPort: "5432", DBName: "restaurant", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%3Aw%2Frd@db:5432/restaurant?sslmode=disable", cfg.PostgresDSN())
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{Env: "development", StorageDriver: "memory", JWTAccessSecret: devJWTSecret, AccessTTL: time.Hour}
	}
	assert.NoError(t, valid().Validate())

	c := valid()
	c.StorageDriver = "sqlite"
	assert.ErrorContains(t, c.Validate(), "STORAGE_DRIVER")

	c = valid()
	c.Env = "production"
	assert.ErrorContains(t, c.Validate(), "must be set in production")

	c = valid()
	c.JWTAccessSecret = ""
	c.AccessTTL = 0
	err := c.Validate()
	assert.ErrorContains(t, err, "JWT_ACCESS_SECRET is required")
	assert.ErrorContains(t, err, "JWT_ACCESS_TTL must be positive")

	c = valid()
	c.RabbitMQEnabled = true
	assert.ErrorContains(t, c.Validate(), "RABBITMQ_ORDERS_QUEUE")
}
