// Package terminal plays a game at a text terminal.
//
// A Console is at once the decision source for every seat, the board
// renderer and a turn listener:
//
//	console := terminal.NewConsole(os.Stdin, os.Stdout)
//	sess := session.New(game, dice, console, console, session.WithListener(console))
//	outcome, err := sess.Run(ctx)
//
// Before each roll it prints whose turn it is and where their pawns are, then
// asks "r" to roll or "q" to quit. Unknown keys and out-of-range pawn indices
// are asked again. After each roll it prints what happened and the ring
// between two rulers of '#'.
//
// Input is read on a separate goroutine so a cancelled context interrupts a
// pending prompt.
package terminal
