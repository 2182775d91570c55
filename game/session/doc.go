// Package session runs games and keeps track of them.
//
// The session package implements:
//   - The turn loop that drives a game until every player has won or a
//     player quits
//   - Dice sources (seeded random and scripted)
//   - A registry of running sessions for observers
//
// Core Types:
//
// Session owns an engine.Game for its lifetime. Run asks the decision source
// whether to roll, rolls the dice, resolves the turn through the scheduler,
// renders the board and notifies listeners with a snapshot.
//
// Manager stores sessions by their 4-character hex ID so the spectator
// surface can look them up.
//
// Concurrency:
//
// A Session is single-threaded: only the goroutine calling Run touches the
// game. Listeners receive snapshots that share nothing with the game and may
// be handed to other goroutines. The Manager is safe for concurrent use.
//
// Usage:
//
//	game, err := engine.NewGame(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	dice, _ := session.NewRandomDice(0)
//	sess := session.New(game, dice, decisions, renderer)
//
//	outcome, err := sess.Run(ctx)
package session
