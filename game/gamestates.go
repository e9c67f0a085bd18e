package game

// Zone is one of a player's three groups of cards
type Zone int

const (
	Hand Zone = iota
	Seen
	Unseen
	NoZone // the player has no cards left
)

var zoneNames = []string{"hand", "seen", "unseen", "none"}

func (z Zone) String() string {
	if z < Hand || z > NoZone {
		return "unknown"
	}
	return zoneNames[z]
}

// Mode is the rule set used to judge a card
type Mode int

const (
	Normal Mode = iota
	Blind
	AceDefence
)

var modeNames = []string{"normal", "blind", "ace defence"}

func (m Mode) String() string {
	if m < Normal || m > AceDefence {
		return "unknown"
	}
	return modeNames[m]
}
