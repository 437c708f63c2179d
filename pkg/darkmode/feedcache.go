package darkmode

import "sync"

// FeedSet holds the two system color-scheme feeds for one document.
// Either feed may be nil when the document cannot provide it.
type FeedSet struct {
	PrefersDark  PreferenceFeed
	PrefersLight PreferenceFeed
}

// FeedCache caches the system color-scheme feeds per owning document, so
// controllers bound to the same document share one pair of underlying
// subscriptions. Entries are created on first access and never evicted; a
// document that cannot provide feeds gets a permanent empty entry.
type FeedCache struct {
	mu      sync.Mutex
	entries map[Document]FeedSet
}

// DefaultFeedCache is the process-wide cache used by controllers that do
// not inject their own.
var DefaultFeedCache = NewFeedCache()

// NewFeedCache creates an empty feed cache.
func NewFeedCache() *FeedCache {
	return &FeedCache{entries: make(map[Document]FeedSet)}
}

// Get returns the cached feed set for doc, creating it on first access.
// It never fails: an unsupported document or a failing media query yields
// an empty set.
func (c *FeedCache) Get(doc Document) FeedSet {
	if doc == nil {
		return FeedSet{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if set, ok := c.entries[doc]; ok {
		return set
	}
	set := queryFeeds(doc)
	c.entries[doc] = set
	return set
}

// queryFeeds obtains the two feeds from a document's media query
// mechanism, tolerating partial or total failure.
func queryFeeds(doc Document) FeedSet {
	mq, ok := doc.(MediaQuerier)
	if !ok {
		return FeedSet{}
	}

	var set FeedSet
	if feed, err := mq.MatchMedia(QueryPrefersDark); err == nil {
		set.PrefersDark = feed
	}
	if feed, err := mq.MatchMedia(QueryPrefersLight); err == nil {
		set.PrefersLight = feed
	}
	return set
}
