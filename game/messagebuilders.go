package game

import (
	"fmt"

	"github.com/minaorangina/palace/deck"
	"github.com/minaorangina/palace/protocol"
)

func (p *Palace) buildBaseEvent(eventType protocol.EventType) protocol.Event {
	e := protocol.Event{
		Type:      eventType,
		TurnNum:   p.TurnCount,
		PlayerID:  p.CurrentPlayer.PlayerID,
		Name:      p.CurrentPlayer.Name,
		PileSize:  len(p.Pile),
		DeckCount: len(p.Deck),
	}
	if top, ok := pileTop(p.Pile); ok {
		e.PileTop = &top
	}

	return e
}

func (p *Palace) buildSetupEvents() []protocol.Event {
	msgs := []protocol.Event{}
	for _, info := range p.PlayerInfo {
		seen := copyCards(p.PlayerCards[info.PlayerID].Seen)
		e := p.buildBaseEvent(protocol.Setup)
		e.PlayerID = info.PlayerID
		e.Name = info.Name
		e.Cards = seen
		e.Message = fmt.Sprintf("%s's face-up cards: %v", info.Name, seen)
		msgs = append(msgs, e)
	}

	return msgs
}

func (p *Palace) buildTurnEvent(zone Zone, defending bool) protocol.Event {
	e := p.buildBaseEvent(protocol.Turn)
	e.Zone = zone.String()

	top := "Empty"
	if e.PileTop != nil {
		top = e.PileTop.String()
	}
	e.Message = fmt.Sprintf("%s's turn. Pile top: %s, pile size: %d", p.CurrentPlayer.Name, top, len(p.Pile))

	switch {
	case zone == Unseen:
		e.Message += ". Playing blind from face-down cards!"
	case defending:
		e.Message += ". Under attack! Must defend with 2, 10, 3, or Ace!"
	}

	return e
}

func (p *Palace) buildSkipTurnEvent() protocol.Event {
	e := p.buildBaseEvent(protocol.SkipTurn)
	e.Count = p.PendingSkips
	e.Message = fmt.Sprintf("%s's turn is skipped (8 was played)", p.CurrentPlayer.Name)

	return e
}

func (p *Palace) buildPlayEvent(zone Zone, played []deck.Card) protocol.Event {
	e := p.buildBaseEvent(protocol.Play)
	e.Zone = zone.String()
	e.Cards = copyCards(played)
	e.Count = len(played)
	e.Message = fmt.Sprintf("%s plays: %v", p.CurrentPlayer.Name, played)

	return e
}

func (p *Palace) buildAttackEvent(eventType protocol.EventType, target protocol.Player) protocol.Event {
	e := p.buildBaseEvent(eventType)
	e.Target = &protocol.Player{PlayerID: target.PlayerID, Name: target.Name}

	switch eventType {
	case protocol.CounterAttack:
		e.Message = fmt.Sprintf("%s counters with Ace! Now attacking %s!", p.CurrentPlayer.Name, target.Name)
	case protocol.Mirror:
		e.Message = fmt.Sprintf("%s mirrors with 3! Attack now targets %s!", p.CurrentPlayer.Name, target.Name)
	default:
		e.Message = fmt.Sprintf("%s attacks %s with Ace!", p.CurrentPlayer.Name, target.Name)
	}

	return e
}

func (p *Palace) buildBlockEvent() protocol.Event {
	e := p.buildBaseEvent(protocol.Block)
	e.Message = fmt.Sprintf("%s defends with 2! Attack blocked!", p.CurrentPlayer.Name)

	return e
}

func (p *Palace) buildBurnEvent() protocol.Event {
	e := p.buildBaseEvent(protocol.Burn)
	e.Message = fmt.Sprintf("Burn! %s burns the pile and plays again!", p.CurrentPlayer.Name)

	return e
}

func (p *Palace) buildSkipsQueuedEvent(n int) protocol.Event {
	e := p.buildBaseEvent(protocol.SkipsQueued)
	e.Count = n
	e.Message = fmt.Sprintf("Next %d turn(s) will be skipped!", n)

	return e
}

func (p *Palace) buildBlindFailureEvent(card deck.Card) protocol.Event {
	e := p.buildBaseEvent(protocol.BlindFailure)
	e.Zone = Unseen.String()
	e.Cards = []deck.Card{card}
	e.Message = fmt.Sprintf("Blind card %s can't be played!", card)

	return e
}

func (p *Palace) buildPickUpEvent(n int) protocol.Event {
	e := p.buildBaseEvent(protocol.PickUp)
	e.Count = n
	e.Message = fmt.Sprintf("%s picks up the pile (%d cards)", p.CurrentPlayer.Name, n)

	return e
}

func (p *Palace) buildReplenishEvent(n int) protocol.Event {
	e := p.buildBaseEvent(protocol.Replenish)
	e.Count = n
	e.Message = fmt.Sprintf("%s draws %d card(s)", p.CurrentPlayer.Name, n)

	return e
}

func (p *Palace) buildPlayerFinishedEvent(info protocol.Player) protocol.Event {
	e := p.buildBaseEvent(protocol.PlayerFinished)
	e.PlayerID = info.PlayerID
	e.Name = info.Name
	e.Count = len(p.FinishedPlayers)
	e.Message = fmt.Sprintf("%s has finished!", info.Name)

	return e
}

func (p *Palace) buildGameOverEvent() protocol.Event {
	e := p.buildBaseEvent(protocol.GameOver)
	e.PlayerID, e.Name = "", ""
	e.FinishedPlayers = append([]protocol.Player{}, p.FinishedPlayers...)

	if n := len(p.FinishedPlayers); n > 0 {
		winner, loser := p.FinishedPlayers[0], p.FinishedPlayers[n-1]
		e.Message = fmt.Sprintf("Game over! %s won, %s lost", winner.Name, loser.Name)
	} else {
		e.Message = "Game over!"
	}

	return e
}
