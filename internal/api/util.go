package api

import (
	"regexp"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/service"
)

var roomCodeRegex = regexp.MustCompile("^[A-Z0-9]{6}$")

// validRoomCode normalizes a client-supplied code and reports whether it
// has the shape of a room code. Existence is checked by the registry.
func validRoomCode(raw string) (string, bool) {
	code := service.NormalizeCode(raw)
	return code, roomCodeRegex.MatchString(code)
}
