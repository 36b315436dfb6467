package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"bigtwo-server/pkg/deck"
	"bigtwo-server/pkg/playable/bigtwo"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var seed = flag.Int64("seed", 0, "deals the same cards for the same seed; 0 is random")
var balance = flag.Bool("balance", true, "reshuffle until no seat is dealt a lopsided hand")

var seatNames = [bigtwo.SeatCount]string{"North", "East", "South", "West"}

type command int

const (
	commandPlay command = iota
	commandPass
	commandLast
	commandHelp
	commandQuit
)

var errEmptyCommand = errors.New("enter cards like D3 C3, or pass")

// parseCommand turns a line of input into a command. Anything that is not a keyword is read as cards
func parseCommand(line string) (command, deck.Hand, error) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return commandHelp, nil, errEmptyCommand
	case "pass", "p":
		return commandPass, nil, nil
	case "last", "l":
		return commandLast, nil, nil
	case "help", "h", "?":
		return commandHelp, nil, nil
	case "quit", "q", "exit":
		return commandQuit, nil, nil
	}

	cards, err := deck.ParseCards(line)
	if err != nil {
		return commandHelp, nil, err
	}

	return commandPlay, cards, nil
}

type prompter interface {
	prompt(label string) (string, error)
}

type interactivePrompter struct{}

func (interactivePrompter) prompt(label string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultText(label).Show()
}

type linePrompter struct {
	reader *bufio.Reader
}

func (l linePrompter) prompt(label string) (string, error) {
	fmt.Printf("%s: ", label)
	line, err := l.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func main() {
	flag.Parse()
	logrus.SetLevel(logrus.WarnLevel)

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	var in prompter = linePrompter{reader: bufio.NewReader(os.Stdin)}
	if interactive {
		in = interactivePrompter{}
	}

	opts := bigtwo.DefaultOptions()
	opts.Balance = *balance
	opts.Seed = *seed

	r, err := bigtwo.NewRound(logrus.StandardLogger(), []int64{1, 2, 3, 4}, opts)
	if err != nil {
		pterm.Fatal.Println(err)
	}

	pterm.DefaultHeader.WithFullWidth().Println("Big Two")
	pterm.Info.Printfln("%s holds the %s and opens", seatNames[r.CurrentSeat()], bigtwo.Opener.Pretty())

	for {
		if isOver, winner := r.IsFinished(); isOver {
			pterm.Success.Printfln("%s played their last card and won the round", seatNames[winner-1])
			return
		}

		if interactive {
			handOff(in, r)
		}

		renderTable(r)
		if !takeTurn(in, r) {
			return
		}
	}
}

// handOff hides the table while the device is passed to the next seat
func handOff(in prompter, r *bigtwo.Round) {
	pterm.Print("\033[H\033[2J")
	_, _ = in.prompt(fmt.Sprintf("Pass the device to %s and press enter", seatNames[r.CurrentSeat()]))
}

// takeTurn reads commands until the acting seat plays or passes. It returns false to stop the game
func takeTurn(in prompter, r *bigtwo.Round) bool {
	actor := r.CurrentActor()
	name := seatNames[r.CurrentSeat()]

	for {
		line, err := in.prompt(fmt.Sprintf("%s, play cards or pass", name))
		if err != nil {
			pterm.Error.Println(err)
			return false
		}

		cmd, cards, err := parseCommand(line)
		if err != nil {
			pterm.Warning.Println(err)
			continue
		}

		switch cmd {
		case commandQuit:
			return false
		case commandHelp:
			pterm.Info.Println("play with cards like D3 or \"5s 5h\"; type pass, last, or quit")
			continue
		case commandLast:
			renderLastPlays(r)
			continue
		case commandPass:
			if result := bigtwo.SubmitPass(r, actor); !result.Accepted {
				pterm.Warning.Println(result.Message)
				continue
			}

			pterm.Info.Printfln("%s passed", name)
		case commandPlay:
			result := bigtwo.SubmitPlay(r, actor, cards)
			if !result.Accepted {
				pterm.Warning.Println(result.Message)
				continue
			}

			pterm.Info.Printfln("%s played a %s: %s", name, result.Category, cards.Sorted().Pretty())
		}

		return true
	}
}

func renderTable(r *bigtwo.Round) {
	var seats []pterm.Panel
	for _, p := range r.Participants() {
		title := seatNames[p.Seat]
		if p.Seat == r.CurrentSeat() {
			title = pterm.LightGreen(title)
		}

		box := pterm.DefaultBox.WithTitle(title).WithTitleTopLeft().WithLeftPadding(2).WithRightPadding(2)
		seats = append(seats, pterm.Panel{Data: box.Sprintf("%d cards", p.CardsLeft())})
	}

	trick := "nothing played yet, open with anything"
	if plays := r.CurrentTrick(); len(plays) > 0 {
		last := plays[len(plays)-1]
		trick = fmt.Sprintf("%s leads with a %s: %s", seatNames[last.Seat], last.Category, last.Cards.Sorted().Pretty())
	}

	board := pterm.DefaultBox.WithTitle(fmt.Sprintf("Trick %d", r.TrickNumber())).WithTitleTopCenter().Sprint(trick)

	hand, _ := r.HandOf(r.CurrentActor())
	mine := pterm.DefaultBox.WithTitle("Your hand").WithTitleTopLeft().Sprint(pterm.BgGreen.Sprint(" " + hand.Pretty() + " "))

	_ = pterm.DefaultPanel.WithPanels([][]pterm.Panel{
		seats,
		{{Data: board}},
		{{Data: mine}},
	}).Render()
}

func renderLastPlays(r *bigtwo.Round) {
	plays := r.LastPlays(5)
	if len(plays) == 0 {
		pterm.Info.Println("nothing has been played yet")
		return
	}

	data := pterm.TableData{{"Trick", "Seat", "Hand", "Cards"}}
	for _, p := range plays {
		data = append(data, []string{fmt.Sprint(p.Trick), seatNames[p.Seat], p.Category.String(), p.Cards.Sorted().Pretty()})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
