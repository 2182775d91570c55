package session

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
	"sync"

	"github.com/wricardo/ludo/game/engine"
)

// RandomDice rolls a fair six-sided die.
type RandomDice struct {
	mu  sync.Mutex
	rng *mathrand.Rand
}

// NewRandomDice creates dice from seed. A zero seed draws one from crypto/rand.
func NewRandomDice(seed int64) (*RandomDice, error) {
	if seed == 0 {
		var err error
		seed, err = cryptoSeed()
		if err != nil {
			return nil, err
		}
	}
	return &RandomDice{rng: mathrand.New(mathrand.NewSource(seed))}, nil
}

// Roll returns a value in [engine.DiceMin, engine.DiceMax].
func (d *RandomDice) Roll() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rng.Intn(engine.DiceMax-engine.DiceMin+1) + engine.DiceMin
}

func cryptoSeed() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ScriptedDice replays fixed rolls in order, then repeats the last one.
type ScriptedDice struct {
	rolls []int
	next  int
}

// NewScriptedDice creates dice that return rolls in order.
func NewScriptedDice(rolls ...int) *ScriptedDice {
	return &ScriptedDice{rolls: rolls}
}

func (d *ScriptedDice) Roll() int {
	if len(d.rolls) == 0 {
		return engine.DiceMin
	}
	if d.next >= len(d.rolls) {
		return d.rolls[len(d.rolls)-1]
	}
	roll := d.rolls[d.next]
	d.next++
	return roll
}
