package darkmode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedCache_SharedByReference(t *testing.T) {
	cache := NewFeedCache()
	doc := &fakeDocument{dark: &fakeFeed{}, light: &fakeFeed{}}

	first := cache.Get(doc)
	second := cache.Get(doc)

	require.NotNil(t, first.PrefersDark)
	require.NotNil(t, first.PrefersLight)
	assert.Same(t, first.PrefersDark, second.PrefersDark)
	assert.Same(t, first.PrefersLight, second.PrefersLight)

	// The document was queried exactly once per feed.
	assert.Equal(t, 2, doc.matchCalls)
}

func TestFeedCache_PerDocumentEntries(t *testing.T) {
	cache := NewFeedCache()
	a := &fakeDocument{dark: &fakeFeed{}, light: &fakeFeed{}}
	b := &fakeDocument{dark: &fakeFeed{}, light: &fakeFeed{}}

	setA := cache.Get(a)
	setB := cache.Get(b)

	assert.NotSame(t, setA.PrefersDark, setB.PrefersDark)
}

func TestFeedCache_UnsupportedDocument(t *testing.T) {
	cache := NewFeedCache()
	doc := &bareDocument{}

	set := cache.Get(doc)
	assert.Nil(t, set.PrefersDark)
	assert.Nil(t, set.PrefersLight)
}

func TestFeedCache_FailureNeverRetried(t *testing.T) {
	cache := NewFeedCache()
	doc := &fakeDocument{matchErr: errors.New("query unsupported")}

	set := cache.Get(doc)
	assert.Nil(t, set.PrefersDark)
	assert.Nil(t, set.PrefersLight)
	require.Equal(t, 2, doc.matchCalls)

	// The empty entry is permanent, even if the document would now
	// answer.
	doc.matchErr = nil
	doc.dark = &fakeFeed{}
	set = cache.Get(doc)
	assert.Nil(t, set.PrefersDark)
	assert.Equal(t, 2, doc.matchCalls)
}

func TestFeedCache_PartialSupport(t *testing.T) {
	cache := NewFeedCache()
	doc := &fakeDocument{dark: &fakeFeed{matches: true}}

	set := cache.Get(doc)
	require.NotNil(t, set.PrefersDark)
	assert.Nil(t, set.PrefersLight)
	assert.True(t, set.PrefersDark.Matches())
}

func TestFeedCache_NilDocument(t *testing.T) {
	cache := NewFeedCache()
	set := cache.Get(nil)
	assert.Nil(t, set.PrefersDark)
	assert.Nil(t, set.PrefersLight)
}
