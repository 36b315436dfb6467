package config

import (
	"os"
	"testing"

	"bigtwo-server/internal/util"
	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("BIGTWO_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("BIGTWO_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()
	clear3 := util.SetEnv("BIGTWO_GAME_BALANCE_MAX", "950")
	defer clear3()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("postgres://bigtwo@db:5432/bigtwo?sslmode=disable", cfg.PGDSN)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal("debug", cfg.Log.Level)
	a.Equal("memory", cfg.Rating.Storage)

	// values missing from the file keep their defaults
	a.True(cfg.Game.Balance)
	a.Equal(3, cfg.Game.MaxTwos)
	a.Equal(600, cfg.Game.BalanceMin)
	a.Equal(950, cfg.Game.BalanceMax)
	a.Equal(1000, cfg.Game.MaxShuffleAttempts)
	a.False(cfg.Game.AllowSeed)
	a.Equal(10000, cfg.Rating.Initial)

	// ensure that it's only loaded once
	_ = os.Setenv("BIGTWO_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestDefaults(t *testing.T) {
	clear1 := util.SetEnv("BIGTWO_CONFIG_FILE", "testdata/missing.yaml")
	defer clear1()

	assert.NoError(t, Load())
	cfg := Instance()
	assert.Equal(t, DefaultConfig().PGDSN, cfg.PGDSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 3, cfg.StartGameDelay)
}

func TestLoad_badFile(t *testing.T) {
	clear1 := util.SetEnv("BIGTWO_CONFIG_FILE", "testdata")
	defer clear1()

	assert.Error(t, Load())
}
