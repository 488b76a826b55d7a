package widgets

import (
	"context"
	"encoding/json"
	"math/rand"

	"splitflap/internal/board"
)

var jokes = []string{
	`what did the janitor say when he jumped out of the closet? "supplies!"`,
	`why don't scientists trust atoms? they make up everything.`,
	`i used to hate facial hair, but then it grew on me.`,
	`what do you call a fish with no eyes? a fsh.`,
}

// JokeWidget shows a random one-liner.
type JokeWidget struct{}

func (JokeWidget) Name() string { return "joke" }

func (JokeWidget) Generate(context.Context, json.RawMessage) ([]string, error) {
	return board.FormatMessage(jokes[rand.Intn(len(jokes))]), nil
}
