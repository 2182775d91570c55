package engine

import (
	"fmt"
	"time"
)

// Advance moves a pawn roll single steps along its track. Each step is
// evaluated on its own so the ring-to-final-stretch turn happens exactly when
// the pawn stands on its EndPos:
//
//   - on the ring at EndPos: enter the final stretch (consumes the step)
//   - in the final stretch: count down; reaching 0 wins
//   - elsewhere on the ring: move forward, wrapping at ringLength
//   - won or restricted: the step is absorbed
//
// Advance never fails. Steps left over after a win are silently absorbed.
func Advance(p *Pawn, roll, ringLength int) Movement {
	m := Movement{From: p.CurPos()}

	for i := 0; i < roll; i++ {
		switch p.phase {
		case OnRing:
			if p.ringPos == p.EndPos {
				p.phase = InFinalStretch
				p.remaining--
				m.EnteredFinal = true
				if p.remaining == 0 {
					p.phase = Won
				}
			} else {
				p.ringPos = (p.ringPos + 1) % ringLength
			}
			m.Steps++
		case InFinalStretch:
			p.remaining--
			if p.remaining == 0 {
				p.phase = Won
			}
			m.Steps++
		default:
			m.Absorbed++
		}
	}

	m.To = p.CurPos()
	m.Won = p.HasWon()
	m.FinalRemaining = p.remaining
	return m
}

// movementEvents describes a movement the way the turn log reports it.
func movementEvents(player *Player, index int, m Movement) []GameEvent {
	now := time.Now()
	events := []GameEvent{{
		Type:      "move",
		Message:   fmt.Sprintf("%s moved pawn %d from %d to %d", player.Name, index, m.From, m.To),
		Timestamp: now,
	}}

	if m.EnteredFinal {
		events = append(events, GameEvent{
			Type:      "final_stretch",
			Message:   "Pawn has entered the final phase.",
			Timestamp: now,
		})
	}
	if !m.Won && m.FinalRemaining < FinalStretchLength {
		events = append(events, GameEvent{
			Type:      "final_stretch",
			Message:   fmt.Sprintf("pawn is in final phase %d", m.FinalRemaining),
			Timestamp: now,
		})
	}
	if m.Won && m.Steps > 0 {
		events = append(events, GameEvent{
			Type:      "pawn_won",
			Message:   "Pawn has won the competition",
			Timestamp: now,
		})
	}

	return events
}
