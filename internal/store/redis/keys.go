package redis

const (
	// KeyPrefix namespaces every key the site writes.
	KeyPrefix = "folio:"
	// KeySettings is the hash holding site settings (field -> JSON value).
	KeySettings = KeyPrefix + "settings"
	// KeyPrefixUser is the prefix for admin account hashes.
	KeyPrefixUser = KeyPrefix + "user:"
	// KeyPrefixSession is the prefix for session keys.
	KeyPrefixSession = KeyPrefix + "session:"
	// ChannelAuthEvents carries session-change notifications.
	ChannelAuthEvents = KeyPrefix + "auth:events"
)

// RecordKey returns the key holding one record of table. Records live
// under their own ":rec:" segment so no id can collide with TableKey.
func RecordKey(table, id string) string {
	return KeyPrefix + table + ":rec:" + id
}

// TableKey returns the key of the set of all ids in table.
func TableKey(table string) string {
	return KeyPrefix + table + ":ids"
}

// UserKey returns the key of an admin account.
func UserKey(email string) string {
	return KeyPrefixUser + email
}

// SessionKey returns the key of a session token.
func SessionKey(token string) string {
	return KeyPrefixSession + token
}
