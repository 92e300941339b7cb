package checkout

import (
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/afos-pos/internal/models"
)

var (
	ErrIllegalTransition = errors.New("illegal transition of checkout state")
	ErrAttemptClosed     = errors.New("checkout attempt is closed")
)

type TransitionError struct {
	From models.CheckoutState
	To   models.CheckoutState
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move checkout from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}
