package keypad

import (
	"errors"

	"github.com/karupanerura/keypad-calculator/internal/types"
)

// Results of key presses that are not token additions.
const (
	Evaluated        = "Evaluated"
	EvaluationFailed = "EvaluationFailed"
	UnknownKey       = "UnknownKey"
)

type KeyResult struct {
	Key     string `json:"key"`
	Result  string `json:"result"`
	Display string `json:"display"`
	Value   string `json:"value,omitempty"`
	Error   any    `json:"error,omitempty"`
}

func exceptionOf(err error) any {
	var e types.Exception
	if errors.As(err, &e) {
		return e.Exception()
	}
	return map[string]any{"message": err.Error()}
}
