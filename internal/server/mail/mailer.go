// Package mail is the outbound messaging collaborator: an interface the
// services depend on, an SMTP implementation, and the rendered messages the
// reset flow sends.
package mail

import "context"

// Mailer sends a rendered message to a destination address. Implementations
// report only success or failure; the transport is their concern.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
