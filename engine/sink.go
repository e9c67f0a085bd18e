package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/minaorangina/palace/protocol"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Sink consumes the events a game emits
type Sink interface {
	Send(e protocol.Event) error
}

type SinkFunc func(e protocol.Event) error

func (f SinkFunc) Send(e protocol.Event) error {
	return f(e)
}

// Discard drops every event
var Discard Sink = SinkFunc(func(protocol.Event) error { return nil })

// MultiSink sends each event to every sink, even if one of them fails
type MultiSink []Sink

func (ms MultiSink) Send(e protocol.Event) error {
	var err error
	for _, s := range ms {
		err = multierr.Append(err, s.Send(e))
	}
	return err
}

var separator = strings.Repeat("=", 50)

// SendText writes formatted text to w
func SendText(w io.Writer, text string, a ...interface{}) error {
	_, err := fmt.Fprintf(w, text, a...)
	return err
}

// TextSink writes events as console text
type TextSink struct {
	w io.Writer
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) Send(e protocol.Event) error {
	switch e.Type {
	case protocol.Turn, protocol.SkipTurn:
		return SendText(s.w, "\n%s\n%s\n", separator, e.Message)

	case protocol.GameOver:
		text := fmt.Sprintf("\n%s\nGAME OVER!\n%s\n", separator, separator)
		for i, p := range e.FinishedPlayers {
			text += fmt.Sprintf("%d. %s\n", i+1, p.Name)
		}
		return SendText(s.w, "%s%s\n", text, e.Message)
	}

	return SendText(s.w, "%s\n", e.Message)
}

// JSONSink writes one JSON object per event
type JSONSink struct {
	enc *json.Encoder
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

func (s *JSONSink) Send(e protocol.Event) error {
	return s.enc.Encode(e)
}

// LogSink writes one log entry per event
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(e protocol.Event) error {
	fields := []zap.Field{
		zap.Stringer("event", e.Type),
		zap.Int("turn", e.TurnNum),
		zap.String("player_id", e.PlayerID),
		zap.Int("pile_size", e.PileSize),
		zap.Int("deck_count", e.DeckCount),
	}
	if len(e.Cards) > 0 {
		fields = append(fields, zap.Stringers("cards", e.Cards))
	}
	if e.Target != nil {
		fields = append(fields, zap.String("target_id", e.Target.PlayerID))
	}
	if e.Count > 0 {
		fields = append(fields, zap.Int("count", e.Count))
	}

	s.logger.Info(e.Message, fields...)
	return nil
}

// RecordingSink keeps every event it is sent
type RecordingSink struct {
	mu     sync.Mutex
	events []protocol.Event
}

func NewRecordingSink() *RecordingSink {
	return &RecordingSink{events: []protocol.Event{}}
}

func (s *RecordingSink) Send(e protocol.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *RecordingSink) Events() []protocol.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]protocol.Event{}, s.events...)
}

// Count returns how many events of type t were recorded
func (s *RecordingSink) Count(t protocol.EventType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.events {
		if e.Type == t {
			n++
		}
	}
	return n
}
