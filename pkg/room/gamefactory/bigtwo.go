package gamefactory

import (
	"sync"

	"bigtwo-server/internal/config"
	"bigtwo-server/pkg/playable"
	"bigtwo-server/pkg/playable/bigtwo"
	"github.com/sirupsen/logrus"
)

var (
	defaultsMu     sync.RWMutex
	bigTwoDefaults = bigtwo.DefaultOptions()
	allowSeed      bool
)

// Configure sets the Big Two deal options that apply when a startGame message does not override them
// A seed in the startGame message is ignored unless cfg.Game.AllowSeed is set
func Configure(cfg config.Config) {
	opts := bigtwo.DefaultOptions()
	opts.Balance = cfg.Game.Balance
	opts.BalancePolicy = bigtwo.BalanceRule{
		MaxTwos:     cfg.Game.MaxTwos,
		MinStrength: cfg.Game.BalanceMin,
		MaxStrength: cfg.Game.BalanceMax,
	}.Accepts

	if cfg.Game.MaxShuffleAttempts > 0 {
		opts.MaxShuffleAttempts = cfg.Game.MaxShuffleAttempts
	}

	defaultsMu.Lock()
	bigTwoDefaults = opts
	allowSeed = cfg.Game.AllowSeed
	defaultsMu.Unlock()
}

type bigTwoFactory struct{}

func (b bigTwoFactory) Details(additionalData playable.AdditionalData) (string, error) {
	if opts := getBigTwoOptions(additionalData); !opts.Balance {
		return "Big Two (unbalanced)", nil
	}

	return "Big Two", nil
}

func (b bigTwoFactory) CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error) {
	game, err := bigtwo.NewGame(logger, playerIDs, getBigTwoOptions(additionalData))
	if err != nil {
		return nil, err
	}

	return game, nil
}

func getBigTwoOptions(additionalData playable.AdditionalData) bigtwo.Options {
	defaultsMu.RLock()
	opts := bigTwoDefaults
	seedable := allowSeed
	defaultsMu.RUnlock()

	if balance, ok := additionalData.GetBool("balance"); ok {
		opts.Balance = balance
	}

	if seed, ok := additionalData.GetInt("seed"); seedable && ok && seed > 0 {
		opts.Seed = int64(seed)
	}

	return opts
}
