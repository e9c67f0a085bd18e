package players

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minaorangina/palace/deck"
	"github.com/minaorangina/palace/engine"
	"github.com/minaorangina/palace/game"
	"github.com/minaorangina/palace/protocol"
)

const (
	upperCaseA = 'A'
	retries    = 3
)

const (
	seenInviteText      = "Would you like to choose your face-up cards? [y/n] "
	retryYesNoText      = "Invalid choice. Please enter \"y\" for \"yes\" or \"n\" for \"no\"\n"
	lowestSeenText      = "Ok, I will place your three lowest cards face up.\n"
	seenPromptText      = "\nEnter the three cards you want face up: "
	playPromptText      = "\nEnter the cards to play, or press enter to pick up the pile: "
	blindPromptText     = "\nChoose a face-down card to turn over: "
	retryThreeCardsText = "You need to choose 3 cards\n"
	retryOneCardText    = "You can only turn over one card\n"
	retrySameRankText   = "Cards played together must share a rank\n"
	maxRetriesText      = "\nMax retries exceeded: %s\n"
)

var (
	errNotUnique = errors.New("Please select unique cards")
	errNoCards   = errors.New("Please select at least one card")
)

// ConsolePlayer asks a person at a terminal for each of their choices.
// Entries are letter codes: A is the first card shown, B the second and so on.
type ConsolePlayer struct {
	info protocol.Player
	in   *bufio.Reader
	out  io.Writer
	err  error
}

func NewConsolePlayer(info protocol.Player, in io.Reader, out io.Writer) *ConsolePlayer {
	return &ConsolePlayer{info: info, in: bufio.NewReader(in), out: out}
}

// say writes to the terminal. After a failed write the player is treated
// as gone and readEntry reports no more input.
func (cp *ConsolePlayer) say(text string, a ...interface{}) {
	if cp.err != nil {
		return
	}
	cp.err = engine.SendText(cp.out, text, a...)
}

// ChooseSeen lets the player pick their face-up cards,
// or leaves the choice to game.LowestSeen.
func (cp *ConsolePlayer) ChooseSeen(player protocol.Player, hand []deck.Card) []int {
	cp.say(buildDealDisplayText(cp.info.Name, hand))

	if !cp.offerSeenChoice() {
		cp.say(lowestSeenText)
		return game.LowestSeen.ChooseSeen(player, hand)
	}

	for tries := 0; tries < retries; tries++ {
		cp.say(seenPromptText)
		entry, ok := cp.readEntry()
		if !ok {
			break
		}

		choices, err := parseChoices(entry, len(hand))
		if err != nil {
			cp.say("%s\n", err)
			continue
		}
		if len(choices) != 3 {
			cp.say(retryThreeCardsText)
			continue
		}

		return choices
	}

	cp.say(maxRetriesText, "I will place your three lowest cards face up.")
	return game.LowestSeen.ChooseSeen(player, hand)
}

// SelectMove shows the player their cards and reads a move.
// An empty entry picks up the pile.
func (cp *ConsolePlayer) SelectMove(view game.TurnView) []int {
	cp.say(buildTurnDisplayText(view))

	blind := view.Zone == game.Unseen
	prompt := playPromptText
	if blind {
		prompt = blindPromptText
	}

	for tries := 0; tries < retries; tries++ {
		cp.say(prompt)
		entry, ok := cp.readEntry()
		if !ok {
			break
		}
		if entry == "" && !blind {
			return nil
		}

		choices, err := parseChoices(entry, len(view.Cards))
		if err != nil {
			cp.say("%s\n", err)
			continue
		}

		if blind {
			if len(choices) != 1 {
				cp.say(retryOneCardText)
				continue
			}
			return choices
		}

		if msg := checkChoices(view, choices); msg != "" {
			cp.say(msg)
			continue
		}

		return choices
	}

	if blind {
		cp.say(maxRetriesText, "turning over your first face-down card.")
		return []int{0}
	}

	cp.say(maxRetriesText, "you pick up the pile.")
	return nil
}

func (cp *ConsolePlayer) offerSeenChoice() bool {
	for tries := 0; tries < retries; tries++ {
		cp.say(seenInviteText)

		entry, ok := cp.readEntry()
		if !ok {
			return false
		}

		switch strings.ToLower(entry) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			cp.say(retryYesNoText)
		}
	}

	return false
}

// readEntry reads one line. ok is false once the input is exhausted.
func (cp *ConsolePlayer) readEntry() (string, bool) {
	if cp.err != nil {
		return "", false
	}
	line, err := cp.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", false
	}
	return strings.TrimSpace(line), true
}

func checkChoices(view game.TurnView, choices []int) string {
	first := view.Cards[choices[0]]
	for _, idx := range choices {
		c := view.Cards[idx]
		if !c.Equal(first) {
			return retrySameRankText
		}
		if !game.IsLegal(c, view.Pile, view.Mode) {
			return fmt.Sprintf("%s can't be played on %s\n", c, pileTopText(view.Pile))
		}
	}
	return ""
}

// parseChoices turns an entry such as "ac" into sorted card indices
func parseChoices(entry string, numCards int) ([]int, error) {
	entry = strings.ToUpper(strings.Replace(entry, " ", "", -1))
	if entry == "" {
		return nil, errNoCards
	}
	if !charsUnique(entry) {
		return nil, errNotUnique
	}

	upper := upperCaseA + rune(numCards) - 1
	if !charsInRange(entry, upperCaseA, upper) {
		return nil, fmt.Errorf("Invalid entry. Please use the letter codes (A-%c) to select your cards", upper)
	}

	return charsToSortedCardIndex(entry), nil
}

func charsToSortedCardIndex(chars string) []int {
	indices := []int{}
	for _, char := range chars {
		indices = append(indices, int(char-upperCaseA))
	}
	sort.Ints(indices)
	return indices
}

func charsUnique(s string) bool {
	seen := map[rune]bool{}
	for _, c := range s {
		if seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}

func charsInRange(chars string, lower, upper rune) bool {
	for _, char := range chars {
		if char < lower || char > upper {
			return false
		}
	}
	return true
}
