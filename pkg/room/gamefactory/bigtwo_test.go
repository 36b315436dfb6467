package gamefactory

import (
	"testing"

	"bigtwo-server/internal/config"
	"bigtwo-server/pkg/playable"
	"bigtwo-server/pkg/playable/bigtwo"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	factory, err := Get("big-two")
	assert.NoError(t, err)
	assert.Equal(t, bigTwoFactory{}, factory)

	factory, err = Get("guts")
	assert.EqualError(t, err, "no factory with name: guts")
	assert.Nil(t, factory)
}

func Test_bigTwoFactory_Details(t *testing.T) {
	name, err := factories["big-two"].Details(playable.AdditionalData{})
	assert.NoError(t, err)
	assert.Equal(t, "Big Two", name)

	name, err = factories["big-two"].Details(playable.AdditionalData{"balance": false})
	assert.NoError(t, err)
	assert.Equal(t, "Big Two (unbalanced)", name)
}

// allowSeeds lets startGame data pick the deal for the rest of the test
func allowSeeds(t *testing.T) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Game.AllowSeed = true
	Configure(cfg)
	t.Cleanup(func() {
		Configure(config.DefaultConfig())
	})
}

func Test_bigTwoFactory_CreateGame(t *testing.T) {
	allowSeeds(t)
	factory := factories["big-two"]

	game, err := factory.CreateGame(logrus.StandardLogger(), []int64{1, 2, 3, 4}, playable.AdditionalData{
		"seed": float64(9),
	})
	assert.NoError(t, err)
	assert.Equal(t, "big-two", game.Name())

	g := game.(*bigtwo.Game)
	hand, err := g.Round().HandOf(g.Round().CurrentActor())
	assert.NoError(t, err)
	assert.True(t, hand.HasCard(bigtwo.Opener))

	// the same seed deals the same cards
	again, _ := factory.CreateGame(logrus.StandardLogger(), []int64{1, 2, 3, 4}, playable.AdditionalData{
		"seed": float64(9),
	})
	for _, id := range []int64{1, 2, 3, 4} {
		h1, _ := g.Round().HandOf(id)
		h2, _ := again.(*bigtwo.Game).Round().HandOf(id)
		assert.Equal(t, h1, h2)
	}
}

func Test_bigTwoFactory_CreateGame_InvalidPlayerCount(t *testing.T) {
	game, err := factories["big-two"].CreateGame(logrus.StandardLogger(), []int64{1, 2, 3}, playable.AdditionalData{})
	assert.Equal(t, bigtwo.PlayerCountError{Got: 3}, err)
	assert.Nil(t, game)
}

func Test_bigTwoFactory_CreateGame_seedIgnored(t *testing.T) {
	factory := factories["big-two"]
	data := playable.AdditionalData{"seed": float64(1234)}

	// with a random deal, two games dealing identical hands is out of the question
	g1, err := factory.CreateGame(logrus.StandardLogger(), []int64{11, 12, 13, 14}, data)
	assert.NoError(t, err)
	g2, err := factory.CreateGame(logrus.StandardLogger(), []int64{11, 12, 13, 14}, data)
	assert.NoError(t, err)

	h1, _ := g1.(*bigtwo.Game).Round().HandOf(11)
	h2, _ := g2.(*bigtwo.Game).Round().HandOf(11)
	assert.NotEqual(t, h1, h2)
}

func Test_getBigTwoOptions(t *testing.T) {
	opts := getBigTwoOptions(playable.AdditionalData{})
	assert.True(t, opts.Balance)
	assert.Equal(t, int64(0), opts.Seed)
	assert.Equal(t, 1000, opts.MaxShuffleAttempts)

	opts = getBigTwoOptions(playable.AdditionalData{"balance": false, "seed": float64(12)})
	assert.False(t, opts.Balance)
	assert.Equal(t, int64(0), opts.Seed)

	allowSeeds(t)
	opts = getBigTwoOptions(playable.AdditionalData{"balance": false, "seed": float64(12)})
	assert.False(t, opts.Balance)
	assert.Equal(t, int64(12), opts.Seed)

	// a non-positive seed keeps the deal random
	opts = getBigTwoOptions(playable.AdditionalData{"seed": float64(-1)})
	assert.Equal(t, int64(0), opts.Seed)
}

func TestConfigure(t *testing.T) {
	defer Configure(config.DefaultConfig())

	cfg := config.DefaultConfig()
	cfg.Game.Balance = false
	cfg.Game.MaxShuffleAttempts = 20
	Configure(cfg)

	opts := getBigTwoOptions(playable.AdditionalData{})
	assert.False(t, opts.Balance)
	assert.Equal(t, 20, opts.MaxShuffleAttempts)

	opts = getBigTwoOptions(playable.AdditionalData{"balance": true})
	assert.True(t, opts.Balance)
	assert.NotNil(t, opts.BalancePolicy)
}
