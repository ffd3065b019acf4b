package providerchain

import (
	"fmt"
	"time"
)

// Purpose tags distinguish which flow minted a defaulted session name when
// the caller did not supply one.
const (
	purposeAssumeRole  = "assume-role-from-profile"
	purposeWebIdentity = "web-identity-token-profile"
)

// SessionNamer produces a role session name for a purpose tag.
type SessionNamer func(purpose string) string

var timeNow = time.Now

// DefaultSessionName derives a session name from the purpose tag plus a
// millisecond timestamp for uniqueness across invocations.
func DefaultSessionName(purpose string) string {
	return fmt.Sprintf("%s-%d", purpose, timeNow().UnixMilli())
}
