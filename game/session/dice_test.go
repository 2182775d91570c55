package session

import (
	"testing"

	"github.com/wricardo/ludo/game/engine"
)

func TestRandomDice_Range(t *testing.T) {
	dice, err := NewRandomDice(0)
	if err != nil {
		t.Fatalf("Failed to create dice: %v", err)
	}

	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		roll := dice.Roll()
		if roll < engine.DiceMin || roll > engine.DiceMax {
			t.Fatalf("Roll %d out of range", roll)
		}
		seen[roll] = true
	}
	if len(seen) != 6 {
		t.Errorf("Expected every face in 1000 rolls, saw %v", seen)
	}
}

func TestRandomDice_SeedIsDeterministic(t *testing.T) {
	a, _ := NewRandomDice(42)
	b, _ := NewRandomDice(42)

	for i := 0; i < 20; i++ {
		if x, y := a.Roll(), b.Roll(); x != y {
			t.Fatalf("Roll %d differs for the same seed: %d vs %d", i, x, y)
		}
	}
}

func TestScriptedDice(t *testing.T) {
	dice := NewScriptedDice(6, 2)

	expected := []int{6, 2, 2, 2}
	for i, want := range expected {
		if got := dice.Roll(); got != want {
			t.Errorf("Roll %d = %d, expected %d", i, got, want)
		}
	}

	if NewScriptedDice().Roll() != engine.DiceMin {
		t.Error("Expected empty script to roll the minimum")
	}
}
