package players

import (
	"fmt"

	"github.com/minaorangina/palace/deck"
	"github.com/minaorangina/palace/game"
)

func buildDealDisplayText(name string, hand []deck.Card) string {
	displayText := fmt.Sprintf("\n%s, you have been dealt six cards 🤲\n", name)
	displayText += "Three of them will lie face up on the table, on top of three cards you can't see 🙈\n\n"

	return displayText + buildCardList(hand, false)
}

func buildTurnDisplayText(view game.TurnView) string {
	displayText := fmt.Sprintf("\nPile top: %s (%d cards)\n", pileTopText(view.Pile), len(view.Pile))
	if view.Defending {
		displayText += "⚔️ Under attack! Defend with 2, 10, 3 or Ace, or pick up the pile\n"
	}

	switch view.Zone {
	case game.Seen:
		displayText += "Your face-up cards:\n"
	case game.Unseen:
		displayText += "Your face-down cards:\n"
	default:
		displayText += "Your hand:\n"
	}

	return displayText + buildCardList(view.Cards, view.Zone == game.Unseen)
}

func buildCardList(cards []deck.Card, hidden bool) string {
	text := ""
	for i, card := range cards {
		label := card.String()
		if hidden {
			label = "?"
		}
		text += fmt.Sprintf("%c - %s\n", upperCaseA+rune(i), label)
	}
	return text
}

func pileTopText(pile []deck.Card) string {
	if len(pile) == 0 {
		return "Empty"
	}
	return pile[len(pile)-1].String()
}
