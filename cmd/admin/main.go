package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bigtwo-server/internal/config"
	"bigtwo-server/internal/jwt"
	"bigtwo-server/pkg/db"
	"bigtwo-server/pkg/rating"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var command = flag.String("c", "token", "specifies the command (token, rating)")
var playerFlag = flag.Int64("player", 0, "the player ID")

func main() {
	flag.Parse()

	switch *command {
	case "token":
		playerID := getPlayerID()
		if err := jwt.LoadKeys(); err != nil {
			logrus.WithError(err).Fatal("could not load the signing keys")
		}

		token, err := jwt.Sign(playerID)
		if err != nil {
			logrus.WithError(err).Fatal("could not sign token")
		}

		if isTerminal() {
			fmt.Printf("Token for player %d (valid for %s):\n", playerID, jwt.Lifetime)
		}

		fmt.Println(token)
	case "rating":
		playerID := getPlayerID()
		cfg := config.Instance()

		var store rating.Store = rating.NewMemoryStore()
		if cfg.Rating.Storage == "postgres" {
			store = rating.NewPostgresStore(db.Instance())
		}

		entry, err := rating.NewLedger(logrus.StandardLogger(), store, cfg.Rating.Initial).Rating(context.Background(), playerID)
		if err != nil {
			logrus.WithError(err).Fatal("could not get rating")
		}

		fmt.Println(entry.Describe(fmt.Sprintf("Player %d", playerID)))
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// getPlayerID returns the -player flag, prompting for it when missing and running interactively
func getPlayerID() int64 {
	if *playerFlag > 0 {
		return *playerFlag
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		logrus.Fatal("-player is required")
	}

	for {
		str, err := getInput("Player ID")
		if err != nil {
			logrus.WithError(err).Fatal("could not get answer")
		}

		if str == "" {
			os.Exit(1)
		}

		id, err := strconv.ParseInt(str, 10, 64)
		if err != nil || id <= 0 {
			_, _ = fmt.Fprintln(os.Stderr, "player ID must be a positive number")
			continue
		}

		return id
	}
}

func getInput(question string) (string, error) {
	fmt.Printf("%s: ", question)
	reader := bufio.NewReader(os.Stdin)
	str, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	str = strings.TrimRight(str, "\r\n")

	return str, nil
}
