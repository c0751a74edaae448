package rules

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Palette is the sequence of colors snake segments cycle through, by index.
var Palette = []string{
	"green",
	"lightgreen",
	"yellow",
	"orange",
	"red",
	"purple",
	"blue",
	"cyan",
}

const (
	backgroundColor = "#333"
	foodColor       = "red"
	bonusStartColor = "gold"
	labelColor      = "white"
	outlineColor    = "black"
)

func segmentColor(i int) string {
	return Palette[i%len(Palette)]
}

func randomColor(rng *rand.Rand) string {
	return fmt.Sprintf("#%06X", rng.Intn(1<<24))
}
