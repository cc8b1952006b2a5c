package item

import (
	"fmt"

	"github.com/jwebster45206/rpg-engine/pkg/dice"
)

// Stack is a grouped count of identical items held in an inventory.
type Stack struct {
	Item
	Quantity int `json:"quantity"`
}

// NewStack returns a stack holding one unit of it.
func NewStack(it Item) Stack {
	return Stack{Item: it, Quantity: 1}
}

// Use applies the stack's effect to t and consumes one unit.
// The unit is consumed whatever the effect did. consumed is false only when
// the stack was already empty, in which case nothing is applied.
func (s *Stack) Use(t Target, r dice.Roller) (msg string, consumed bool) {
	if s.Quantity <= 0 {
		return fmt.Sprintf("No %s left.", s.Name), false
	}
	msg = Apply(s.Kind, t, r)
	s.Quantity--
	return msg, true
}

// Empty reports whether the stack should be removed from its inventory.
func (s Stack) Empty() bool {
	return s.Quantity <= 0
}

// String renders the stack the way inventory listings show it.
func (s Stack) String() string {
	return fmt.Sprintf("%s (x%d)", s.Name, s.Quantity)
}
