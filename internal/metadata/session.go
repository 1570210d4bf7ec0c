package metadata

import "sync/atomic"

// Session guards against stale lookup resolutions. Every panel open (or any
// other display refresh) advances the generation; a resolution that started
// under an older generation is discarded instead of mutating a display that
// no longer exists.
type Session struct {
	generation atomic.Int64
}

// Begin advances to a new generation and returns its token.
func (s *Session) Begin() int64 {
	return s.generation.Add(1)
}

// Current reports whether token is still the live generation.
func (s *Session) Current(token int64) bool {
	return s.generation.Load() == token
}
