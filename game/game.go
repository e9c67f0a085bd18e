package game

import (
	"errors"
	"fmt"

	"github.com/minaorangina/palace/deck"
	"github.com/minaorangina/palace/protocol"
	"go.uber.org/zap"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrTooFewPlayers        = fmt.Errorf("%w: minimum of %d players required", ErrInvalidConfiguration, minPlayers)
	ErrTooManyPlayers       = fmt.Errorf("%w: maximum of %d players allowed", ErrInvalidConfiguration, maxPlayers)
	ErrDuplicatePlayer      = fmt.Errorf("%w: duplicate player ID", ErrInvalidConfiguration)
	ErrInvalidPlayerCards   = fmt.Errorf("%w: invalid player cards", ErrInvalidConfiguration)
	ErrDeckTooSmall         = fmt.Errorf("%w: not enough cards to deal", ErrInvalidConfiguration)
	ErrGameOver             = errors.New("game is already over")
	ErrInvalidMove          = errors.New("invalid move")
)

// AttackState is either no attack, or an Ace attack pending against one player.
// The target is always the player about to act.
type AttackState struct {
	target  string
	pending bool
}

func NoAttack() AttackState {
	return AttackState{}
}

func AttackPending(targetID string) AttackState {
	return AttackState{target: targetID, pending: true}
}

// Target returns the attacked player's ID, if an attack is pending
func (a AttackState) Target() (string, bool) {
	return a.target, a.pending
}

func (a AttackState) String() string {
	if !a.pending {
		return "no attack"
	}
	return fmt.Sprintf("attack pending on %s", a.target)
}

// Palace is a game in progress.
// Players are tracked by ID: ActivePlayers shrinks as players finish,
// and CurrentTurnIdx is always re-derived from CurrentPlayer.
type Palace struct {
	ID              string
	Deck            deck.Deck
	Pile            []deck.Card
	Burnt           []deck.Card
	PlayerCards     map[string]*PlayerCards
	PlayerInfo      []protocol.Player
	ActivePlayers   []protocol.Player
	FinishedPlayers []protocol.Player
	CurrentTurnIdx  int
	CurrentPlayer   protocol.Player
	PendingSkips    int
	Attack          AttackState
	TurnCount       int

	selector    MoveSelector
	logger      *zap.Logger
	gameOver    bool
	setupEvents []protocol.Event
}

// PalaceOpts configures a new game. With nil PlayerCards a fresh game is
// shuffled and dealt; otherwise the options describe an existing game.
type PalaceOpts struct {
	ID              string
	Players         []protocol.Player
	Deck            deck.Deck
	Pile            []deck.Card
	PlayerCards     map[string]*PlayerCards
	FinishedPlayers []protocol.Player
	CurrentPlayer   protocol.Player
	PendingSkips    int
	Attack          AttackState
	Random          deck.Randomiser
	Selector        MoveSelector
	SeenChooser     SeenChooser
	Logger          *zap.Logger
}

// NewPalace constructs a game of Palace
func NewPalace(opts PalaceOpts) (*Palace, error) {
	if len(opts.Players) < minPlayers {
		return nil, ErrTooFewPlayers
	}
	if len(opts.Players) > maxPlayers {
		return nil, ErrTooManyPlayers
	}

	ids := map[string]struct{}{}
	for _, info := range opts.Players {
		if _, ok := ids[info.PlayerID]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, info.PlayerID)
		}
		ids[info.PlayerID] = struct{}{}
	}

	if opts.Random == nil {
		opts.Random = deck.NewRandomiser(0)
	}
	if opts.Selector == nil {
		opts.Selector = NewAutoPlayer(opts.Random)
	}
	if opts.SeenChooser == nil {
		opts.SeenChooser = LowestSeen
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ID == "" {
		opts.ID = NewID()
	}

	p := &Palace{
		ID:              opts.ID,
		Deck:            opts.Deck,
		Pile:            opts.Pile,
		PlayerCards:     opts.PlayerCards,
		PlayerInfo:      opts.Players,
		FinishedPlayers: opts.FinishedPlayers,
		PendingSkips:    opts.PendingSkips,
		Attack:          opts.Attack,
		selector:        opts.Selector,
		logger:          opts.Logger.With(zap.String("game_id", opts.ID)),
	}

	if p.Pile == nil {
		p.Pile = []deck.Card{}
	}
	p.Burnt = []deck.Card{}
	if p.FinishedPlayers == nil {
		p.FinishedPlayers = []protocol.Player{}
	}

	if p.PlayerCards == nil {
		// new game
		if p.Deck == nil {
			p.Deck = deck.New()
		}
		p.Deck.Shuffle(opts.Random)

		playerCards, err := Deal(&p.Deck, p.PlayerInfo, opts.SeenChooser)
		if err != nil {
			return nil, err
		}
		p.PlayerCards = playerCards
		p.setupEvents = p.buildSetupEvents()
	} else {
		for _, info := range p.PlayerInfo {
			if !playerCardsValid(p.PlayerCards[info.PlayerID]) {
				return nil, fmt.Errorf("%w: player %q", ErrInvalidPlayerCards, info.PlayerID)
			}
		}
		if p.Deck == nil {
			p.Deck = deck.Deck{}
		}
	}

	// work out who is still playing the game
	finished := map[string]struct{}{}
	for _, fp := range p.FinishedPlayers {
		finished[fp.PlayerID] = struct{}{}
	}
	p.ActivePlayers = []protocol.Player{}
	for _, info := range p.PlayerInfo {
		if _, ok := finished[info.PlayerID]; !ok {
			p.ActivePlayers = append(p.ActivePlayers, info)
		}
	}
	if len(p.ActivePlayers) < minPlayers {
		return nil, fmt.Errorf("%w: fewer than %d players still playing", ErrInvalidConfiguration, minPlayers)
	}

	p.CurrentPlayer = p.ActivePlayers[0]
	if opts.CurrentPlayer.PlayerID != "" {
		idx, ok := p.activeIndex(opts.CurrentPlayer.PlayerID)
		if !ok {
			return nil, fmt.Errorf("%w: current player %q is not playing", ErrInvalidConfiguration, opts.CurrentPlayer.PlayerID)
		}
		p.CurrentTurnIdx = idx
		p.CurrentPlayer = p.ActivePlayers[idx]
	}

	if target, ok := p.Attack.Target(); ok && target != p.CurrentPlayer.PlayerID {
		return nil, fmt.Errorf("%w: attack target %q is not the current player", ErrInvalidConfiguration, target)
	}

	return p, nil
}

// SetupEvents describes the deal of a fresh game
func (p *Palace) SetupEvents() []protocol.Event {
	return p.setupEvents
}

func (p *Palace) GameOver() bool {
	return p.gameOver
}

// PileTop returns the most recently played card
func (p *Palace) PileTop() (deck.Card, bool) {
	return pileTop(p.Pile)
}

// Turn plays one turn and returns what happened.
// Picking up the pile and running out of deck are ordinary outcomes, not errors.
func (p *Palace) Turn() ([]protocol.Event, error) {
	if p.gameOver {
		return nil, ErrGameOver
	}
	p.assertCurrentPlayer()
	p.TurnCount++

	playerID := p.CurrentPlayer.PlayerID
	cards := p.PlayerCards[playerID]

	if cards.Empty() {
		return p.removeFinishedPlayers(), nil
	}

	target, defending := p.Attack.Target()
	if p.PendingSkips > 0 && !defending {
		p.PendingSkips--
		msgs := []protocol.Event{p.buildSkipTurnEvent()}
		p.turn()
		return msgs, nil
	}
	if defending && target != playerID {
		panic(fmt.Sprintf("attack target %s is not the current player %s", target, playerID))
	}

	zone := cards.ActiveZone()
	mode := Normal
	if zone == Unseen {
		mode = Blind
	} else if defending {
		mode = AceDefence
	}

	msgs := []protocol.Event{p.buildTurnEvent(zone, defending)}

	decision := p.selector.SelectMove(p.turnView(zone, mode, defending))
	if len(decision) == 0 {
		msgs = append(msgs, p.pickUpPile())
		p.turn()
		return append(msgs, p.removeFinishedPlayers()...), nil
	}

	if err := p.checkMove(cards.zone(zone), mode, decision); err != nil {
		p.TurnCount--
		return nil, err
	}

	if zone == Unseen {
		// The card is revealed before it is judged. A failed card stays where it was.
		card := cards.Unseen[decision[0]]
		if !IsLegal(card, p.Pile, Blind) {
			msgs = append(msgs, p.buildBlindFailureEvent(card))
			msgs = append(msgs, p.pickUpPile())
			p.turn()
			return append(msgs, p.removeFinishedPlayers()...), nil
		}
	}

	played := cards.take(zone, decision)
	p.Pile = append(p.Pile, played...)
	msgs = append(msgs, p.buildPlayEvent(zone, played))

	msgs = append(msgs, p.resolve(played, defending)...)

	return append(msgs, p.removeFinishedPlayers()...), nil
}

// resolve applies the effect of the cards just played and moves the turn on.
func (p *Palace) resolve(played []deck.Card, defending bool) []protocol.Event {
	msgs := []protocol.Event{}
	rank := played[0].Rank

	switch {
	case rank == deck.Ace && defending:
		return p.attackNextPlayer(protocol.CounterAttack)

	case rank == deck.Ace:
		return p.attackNextPlayer(protocol.Attack)

	case rank == deck.Three && defending:
		// the Three mirrors the Ace beneath it
		return p.attackNextPlayer(protocol.Mirror)

	case rank == deck.Two && defending:
		p.Attack = NoAttack()
		msgs = append(msgs, p.buildBlockEvent())

	case rank == deck.Ten:
		p.Attack = NoAttack()
	}

	if ShouldBurn(p.Pile) {
		msgs = append(msgs, p.buildBurnEvent())
		p.logger.Debug("pile burnt",
			zap.String("player_id", p.CurrentPlayer.PlayerID),
			zap.Int("pile_size", len(p.Pile)),
		)
		// burnt cards leave the game
		p.Burnt = append(p.Burnt, p.Pile...)
		p.Pile = []deck.Card{}
		p.Attack = NoAttack()
		// same player goes again
		return msgs
	}

	if rank == deck.Eight {
		p.PendingSkips = len(played)
		msgs = append(msgs, p.buildSkipsQueuedEvent(len(played)))
	}

	if defending {
		p.Attack = NoAttack()
	}

	if e, ok := p.replenish(); ok {
		msgs = append(msgs, e)
	}
	p.turn()

	return msgs
}

func (p *Palace) attackNextPlayer(eventType protocol.EventType) []protocol.Event {
	target := p.nextPlayer()
	p.Attack = AttackPending(target.PlayerID)

	msgs := []protocol.Event{p.buildAttackEvent(eventType, target)}
	p.logger.Debug("ace attack",
		zap.String("event", eventType.String()),
		zap.String("player_id", p.CurrentPlayer.PlayerID),
		zap.String("target_id", target.PlayerID),
	)

	if e, ok := p.replenish(); ok {
		msgs = append(msgs, e)
	}
	p.turn()

	return msgs
}

// replenish tops the current player's hand up to three cards while the deck lasts
func (p *Palace) replenish() (protocol.Event, bool) {
	cards := p.PlayerCards[p.CurrentPlayer.PlayerID]

	drawn := 0
	for len(cards.Hand) < numCardsInGroup {
		c, ok := p.Deck.Draw()
		if !ok {
			break
		}
		cards.Hand = append(cards.Hand, c)
		drawn++
	}

	if drawn == 0 {
		return protocol.Event{}, false
	}
	return p.buildReplenishEvent(drawn), true
}

func (p *Palace) pickUpPile() protocol.Event {
	e := p.buildPickUpEvent(len(p.Pile))

	cards := p.PlayerCards[p.CurrentPlayer.PlayerID]
	cards.Hand = append(cards.Hand, p.Pile...)
	p.Pile = []deck.Card{}
	p.Attack = NoAttack()

	return e
}

// checkMove rejects moves the rules do not allow.
// A blind move is a single card; its legality is judged after it is revealed.
func (p *Palace) checkMove(zoneCards []deck.Card, mode Mode, decision []int) error {
	seen := map[int]struct{}{}
	for _, idx := range decision {
		if idx < 0 || idx >= len(zoneCards) {
			return fmt.Errorf("%w: card index %d out of range", ErrInvalidMove, idx)
		}
		if _, ok := seen[idx]; ok {
			return fmt.Errorf("%w: card index %d chosen twice", ErrInvalidMove, idx)
		}
		seen[idx] = struct{}{}
	}

	if mode == Blind {
		if len(decision) != 1 {
			return fmt.Errorf("%w: must play one unseen card only", ErrInvalidMove)
		}
		return nil
	}

	reference := zoneCards[decision[0]]
	for _, idx := range decision {
		c := zoneCards[idx]
		if !c.Equal(reference) {
			return fmt.Errorf("%w: cards must share a rank", ErrInvalidMove)
		}
		if !IsLegal(c, p.Pile, mode) {
			return fmt.Errorf("%w: %s cannot be played in %s mode", ErrInvalidMove, c, mode)
		}
	}

	return nil
}

func (p *Palace) turnView(zone Zone, mode Mode, defending bool) TurnView {
	cards := p.PlayerCards[p.CurrentPlayer.PlayerID].zone(zone)

	visible := copyCards(cards)
	if zone == Unseen {
		visible = make([]deck.Card, len(cards))
	}

	return TurnView{
		PlayerID:  p.CurrentPlayer.PlayerID,
		Zone:      zone,
		Cards:     visible,
		Pile:      copyCards(p.Pile),
		Mode:      mode,
		Defending: defending,
	}
}

// nextPlayer returns the player who is next in line behind the current player.
func (p *Palace) nextPlayer() protocol.Player {
	idx := (p.CurrentTurnIdx + 1) % len(p.ActivePlayers)
	return p.ActivePlayers[idx]
}

// NextPlayer returns the player due to act after the current player
func (p *Palace) NextPlayer() protocol.Player {
	if len(p.ActivePlayers) == 0 {
		return protocol.Player{}
	}
	return p.nextPlayer()
}

// turn changes the CurrentPlayer to the next Player in the queue.
func (p *Palace) turn() {
	p.CurrentTurnIdx = (p.CurrentTurnIdx + 1) % len(p.ActivePlayers)
	p.CurrentPlayer = p.ActivePlayers[p.CurrentTurnIdx]
}

// removeFinishedPlayers moves every player without cards to FinishedPlayers.
// If the current player is removed, the player who slides into its seat goes next.
func (p *Palace) removeFinishedPlayers() []protocol.Event {
	msgs := []protocol.Event{}
	currentID := p.CurrentPlayer.PlayerID
	stillPlaying := []protocol.Player{}
	survivorsBeforeCurrent := 0
	currentRemoved := false

	for i, info := range p.ActivePlayers {
		if p.PlayerCards[info.PlayerID].Empty() {
			p.FinishedPlayers = append(p.FinishedPlayers, info)
			msgs = append(msgs, p.buildPlayerFinishedEvent(info))
			p.logger.Debug("player finished",
				zap.String("player_id", info.PlayerID),
				zap.Int("position", len(p.FinishedPlayers)),
			)
			if info.PlayerID == currentID {
				currentRemoved = true
			}
			continue
		}
		if i < p.CurrentTurnIdx {
			survivorsBeforeCurrent++
		}
		stillPlaying = append(stillPlaying, info)
	}

	if len(msgs) == 0 {
		return nil
	}

	p.ActivePlayers = stillPlaying

	if len(stillPlaying) <= 1 {
		// the last player standing finishes last
		p.FinishedPlayers = append(p.FinishedPlayers, stillPlaying...)
		p.ActivePlayers = []protocol.Player{}
		p.Attack = NoAttack()
		p.PendingSkips = 0
		p.gameOver = true
		return append(msgs, p.buildGameOverEvent())
	}

	if currentRemoved {
		p.CurrentTurnIdx = survivorsBeforeCurrent % len(stillPlaying)
	} else {
		idx, _ := p.activeIndex(currentID)
		p.CurrentTurnIdx = idx
	}
	p.CurrentPlayer = p.ActivePlayers[p.CurrentTurnIdx]

	if target, ok := p.Attack.Target(); ok && target != p.CurrentPlayer.PlayerID {
		p.Attack = NoAttack()
	}

	return msgs
}

func (p *Palace) activeIndex(playerID string) (int, bool) {
	for i, info := range p.ActivePlayers {
		if info.PlayerID == playerID {
			return i, true
		}
	}
	return 0, false
}

func (p *Palace) assertCurrentPlayer() {
	if p.CurrentTurnIdx < 0 || p.CurrentTurnIdx >= len(p.ActivePlayers) ||
		p.ActivePlayers[p.CurrentTurnIdx].PlayerID != p.CurrentPlayer.PlayerID {
		panic(fmt.Sprintf("turn pointer %d does not name current player %s", p.CurrentTurnIdx, p.CurrentPlayer.PlayerID))
	}
}
