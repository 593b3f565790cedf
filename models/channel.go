package models

// Channel is a configured backend target: the repository a batch is committed
// into, the credential used for it, and its visibility.
//
// Channels are owned by configuration and are read-only to the rest of the
// application.
type Channel struct {
	// Name is the unique channel identifier referenced by
	// [BatchRequest.ChannelName].
	Name string `json:"name"`

	// Token is the backend credential used for staging and commit calls.
	// Never serialized into responses.
	Token string `json:"token"`

	// Repo is the backend repository/location identifier
	// (e.g. "owner/assets").
	Repo string `json:"repo"`

	// Private marks channels whose content is not publicly addressable.
	// Moderation enrichment for private channels goes through the
	// internally-routed URL instead of the public one.
	Private bool `json:"private"`

	// LoadBalanced marks the channel as eligible for automatic selection
	// when the caller does not name a channel explicitly.
	LoadBalanced bool `json:"load_balanced"`
}

// Usable reports whether the channel carries everything required to perform
// backend calls. A configured channel missing credential or location is
// treated the same as an unknown channel.
func (c Channel) Usable() bool {
	return c.Name != "" && c.Token != "" && c.Repo != ""
}
