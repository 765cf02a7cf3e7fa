package holdem

import "fmt"

// Round is a betting round of a hand
type Round string

// Round constants
const (
	RoundPreflop Round = "preflop"
	RoundFlop    Round = "flop"
	RoundTurn    Round = "turn"
	RoundRiver   Round = "river"
)

// Rounds are the rounds in the order they are played
var Rounds = []Round{RoundPreflop, RoundFlop, RoundTurn, RoundRiver}

// CommunityCards returns how many community cards are dealt by the start of the round
func (r Round) CommunityCards() int {
	switch r {
	case RoundPreflop:
		return 0
	case RoundFlop:
		return 3
	case RoundTurn:
		return 4
	case RoundRiver:
		return 5
	}

	panic(fmt.Sprintf("unknown round: %s", string(r)))
}
