package game

import (
	"errors"
	"fmt"
)

// Error taxonomy. None is fatal: each leaves the session usable and maps to a
// user-facing message via Message.
var (
	// ErrResourceLoad: the dictionary or hint table could not be fetched.
	ErrResourceLoad = errors.New("resource load failed")
	// ErrInvalidLength: unsupported length or no words of that length.
	ErrInvalidLength = errors.New("invalid word length")
	// ErrAlreadyCompletedToday: the player finished this length today.
	ErrAlreadyCompletedToday = errors.New("already completed today")
	// ErrUnknownWord: the guess is not in the dictionary; it is kept for editing.
	ErrUnknownWord = errors.New("unknown word")
	// ErrInvalidState: the operation is not valid in the session's state.
	ErrInvalidState = errors.New("invalid state")
)

// Messages shown to the player.
const (
	msgLoadFailed       = "የቃላት ዝርዝርን በመጫን ላይ ስህተት ተፈጥሯል።"
	msgHintLoadFailed   = "ፍንጭ መረጃን በመጫን ላይ ስህተት ተፈጥሯል።"
	msgNoWordsOfLength  = "%d ፊደል ያላቸው ቃላት የሉም።"
	msgChooseLength     = "እባክዎ የቃል ርዝመት ይምረጡ"
	msgAlreadyCompleted = "የ %d ፊደል ቃላት ጨዋታ ዛሬ ተጫውተው ጨርሰዋል።"
	msgUnknownWord      = "ያልታወቀ ቃል!"
	msgWon              = "እንኳን ደስ አለዎት! በትክክለኛው ቃል ገምተዋል!"
	msgLost             = "ጨዋታው አልቋል። ትክክለኛው ቃል %s ነበር።"
	msgNoHint           = "ለዚህ ቃል ፍንጭ የለም።"
	msgStartFailed      = "ጨዋታውን በመጀመር ላይ ስህተት ተፈጥሯል።"
	msgInvalidState     = "ይህ እርምጃ አሁን አይፈቀድም።"
)

// lengthError carries the length for messages that name it.
type lengthError struct {
	kind   error
	length int
}

func (e *lengthError) Error() string { return fmt.Sprintf("%v: %d", e.kind, e.length) }
func (e *lengthError) Unwrap() error { return e.kind }

// Message returns the player-facing text for err.
func Message(err error) string {
	var le *lengthError
	hasLen := errors.As(err, &le)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlreadyCompletedToday) && hasLen:
		return fmt.Sprintf(msgAlreadyCompleted, le.length)
	case errors.Is(err, ErrInvalidLength) && hasLen:
		return fmt.Sprintf(msgNoWordsOfLength, le.length)
	case errors.Is(err, ErrInvalidLength):
		return msgChooseLength
	case errors.Is(err, ErrUnknownWord):
		return msgUnknownWord
	case errors.Is(err, ErrResourceLoad):
		return msgLoadFailed
	case errors.Is(err, ErrInvalidState):
		return msgInvalidState
	default:
		return msgStartFailed
	}
}

// HintLoadFailedMessage is shown when the hint table cannot be fetched.
func HintLoadFailedMessage() string { return msgHintLoadFailed }

// NoHintMessage is shown when the target has no hint.
func NoHintMessage() string { return msgNoHint }
