package mailbox

import (
	"context"
	"time"
)

// Criteria narrows which messages qualify as verification-code carriers.
// Empty fields match anything.
type Criteria struct {
	// Sender matches the From address.
	Sender string
	// Subject matches a substring of the subject line.
	Subject string
	// Pattern is the regular expression used to pull the code out of the
	// message body. Empty selects the default six-digit pattern.
	Pattern string
}

// Mailbox fetches the newest verification code from an external mail
// account. Implementations search messages received at or after since that
// match criteria and return the extracted code.
//
// FetchLatestCode returns ok=false when no matching message exists yet;
// the caller polls again after its configured interval. An error means the
// mailbox itself failed and the poll loop should stop.
type Mailbox interface {
	FetchLatestCode(ctx context.Context, criteria Criteria, since time.Time) (code string, ok bool, err error)
}
