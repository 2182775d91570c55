package engine

// TurnQueue is the rotation of players. The front player is the one whose
// turn is current. Only the scheduler mutates it.
type TurnQueue struct {
	players []*Player
}

// NewTurnQueue creates a queue in seating order.
func NewTurnQueue(players []*Player) *TurnQueue {
	q := &TurnQueue{players: make([]*Player, 0, len(players))}
	q.players = append(q.players, players...)
	return q
}

// Len returns the number of queued players.
func (q *TurnQueue) Len() int {
	return len(q.players)
}

// Front returns the player at the front without removing it, or nil.
func (q *TurnQueue) Front() *Player {
	if len(q.players) == 0 {
		return nil
	}
	return q.players[0]
}

// PopFront removes and returns the front player, or nil when empty.
func (q *TurnQueue) PopFront() *Player {
	if len(q.players) == 0 {
		return nil
	}
	p := q.players[0]
	q.players[0] = nil
	q.players = q.players[1:]
	return p
}

// PushFront puts a player back at the front (bonus turn).
func (q *TurnQueue) PushFront(p *Player) {
	q.players = append([]*Player{p}, q.players...)
}

// PushBack puts a player at the end of the rotation.
func (q *TurnQueue) PushBack(p *Player) {
	q.players = append(q.players, p)
}

// Players returns the queue order, front first.
func (q *TurnQueue) Players() []*Player {
	out := make([]*Player, len(q.players))
	copy(out, q.players)
	return out
}
