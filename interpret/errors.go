package interpret

import "errors"

var (
	// ErrNicknameTableRequired is returned when WithNicknames is given nil.
	ErrNicknameTableRequired = errors.New("nickname table is required")
)
