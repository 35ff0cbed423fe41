package submission

import (
	"errors"
	"fmt"

	"campcrew-funnel/internal/funnel"
)

// ErrInFlight is returned when a submit is attempted while another one is
// pending. It matches funnel.ErrSubmitPending.
var ErrInFlight = fmt.Errorf("submission: %w", funnel.ErrSubmitPending)

// Error is a transport or server failure with a message safe to show to the user.
type Error struct {
	Status  int
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("submission failed (%d): %s", e.Status, e.Message)
	}
	return "submission failed: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) DisplayMessage() string {
	return e.Message
}

const (
	msgTransport = "네트워크 오류로 신청하지 못했습니다. 다시 시도해주세요."
	msgServer    = "신청 접수 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
)

// asError normalises any recorder failure into *Error.
func asError(err error) *Error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}
	return &Error{Message: msgTransport, Err: err}
}
