package interfaces

import "time"

// Scheduler is the timer facility: fn runs once after d elapses unless the
// returned cancel function is called first. Cancel is safe to call at any
// time, including after fn has fired.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}
