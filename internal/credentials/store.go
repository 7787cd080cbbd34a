// Package credentials persists the session token, the active persona and the
// persona scoped tokens across process restarts.
package credentials

import "context"

// Key names a stored credential value.
type Key string

const (
	KeyToken               Key = "token"
	KeyUserRole            Key = "userRole"
	KeyAccessTokenMember   Key = "accessTokenMember"
	KeyAccessTokenCampaign Key = "accessTokenCampaign"
	KeyIsCreatorCreated    Key = "isCreatorCreated"
	KeyAssociateCampaignID Key = "associateCampaignId"
)

// SessionKeys lists every key that belongs to a login session and is dropped on logout.
var SessionKeys = []Key{
	KeyToken,
	KeyUserRole,
	KeyAccessTokenMember,
	KeyAccessTokenCampaign,
	KeyIsCreatorCreated,
	KeyAssociateCampaignID,
}

// Store is a durable key/value port.
//
// Get reports a missing key as ok=false with a nil error. Writes are durable once
// the call returns without error. SetMany, Remove and Clear apply all of their keys
// in one step so concurrent readers never observe a partial update.
type Store interface {
	Get(ctx context.Context, key Key) (string, bool, error)
	Set(ctx context.Context, key Key, value string) error
	SetMany(ctx context.Context, values map[Key]string) error
	Remove(ctx context.Context, keys ...Key) error
	Clear(ctx context.Context) error
}

func keyStrings(keys []Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
