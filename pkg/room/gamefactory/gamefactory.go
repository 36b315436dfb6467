package gamefactory

import (
	"fmt"

	"bigtwo-server/pkg/playable"
	"bigtwo-server/pkg/playable/bigtwo"
	"github.com/sirupsen/logrus"
)

var factories = map[string]GameFactory{
	bigtwo.Name: bigTwoFactory{},
}

// GameFactory is a factory for creating games that implement the Playable interface
type GameFactory interface {
	CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error)
	Details(additionalData playable.AdditionalData) (name string, err error)
}

// Get returns a factory by the given name
func Get(name string) (GameFactory, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("no factory with name: %s", name)
	}

	return factory, nil
}
