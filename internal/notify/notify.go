// Package notify delivers the formatted payment plan to the user. The
// engine treats delivery as fire-and-forget; escalation on failure belongs
// to whoever runs the job.
package notify

import "context"

// Notifier sends one message to a destination address.
type Notifier interface {
	Send(ctx context.Context, to, body string) error
}
