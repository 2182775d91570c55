// Package engine provides the core rules of the Ludo race game.
//
// The engine package implements:
//   - Pawn lifecycle: restricted, on the shared ring, in the final stretch, won
//   - Board topology: 13-cell segments per color with entry, arrow and star cells
//   - Stepwise movement, including the turn from the ring into the final stretch
//   - Turn rotation: bonus turns on a 6, forced unrestriction, wasted rolls
//
// Core Types:
//
// Game owns the Board, the Players and the TurnQueue of one round. Scheduler
// resolves one roll at a time against a Game, asking a DecisionSource
// whenever the player has a choice. Advance is the movement algorithm.
//
// Usage:
//
//	game, err := engine.NewGame(engine.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sched := engine.NewScheduler(game, decisions)
//	current, _ := sched.Begin()
//	result, err := sched.Resolve(ctx, current, dice.Roll())
//
//	frame := engine.RenderOccupancy(game.Board(), game.OccupiedPositions())
//
// Game Rules:
//
// Pawns start restricted and are released onto their color's entry cell by a
// 6. They travel the shared ring until the cell two steps before their entry,
// then spend six more steps in a private final stretch. Steps rolled beyond
// the finish are absorbed. A player who rolls a 6 plays again.
package engine
