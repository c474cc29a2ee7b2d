package fulfillment

// Normalize runs before every dispatch. Any turn that is not a fallback
// clears the fallback streak; a zero count is reset to zero as well, which is
// a no-op kept so a missing count and a cleared one look the same.
func Normalize(sess *Session, current Intent) {
	if sess.FallbackCount <= 0 || current != IntentFallback {
		sess.FallbackCount = 0
	}
}
