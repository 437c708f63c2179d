package darkmode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGestureController builds a controller over a bare document so the
// gesture tests are not influenced by preference feeds. The initial
// resolution defaults to dark.
func newGestureController(t *testing.T) (*Controller, *fakeSurface, *bareDocument) {
	t.Helper()
	doc := &bareDocument{}
	surface := &fakeSurface{doc: doc, location: "/"}
	c, err := New(surface, Options{FeedCache: NewFeedCache()})
	require.NoError(t, err)
	return c, surface, doc
}

func TestGesture_TapTogglesOnSameTarget(t *testing.T) {
	c, surface, doc := newGestureController(t)
	require.True(t, surface.dark)

	target := &fakeElement{doc: doc}
	surface.press(target)
	assert.Equal(t, ActionCapture, c.Action())
	require.Len(t, doc.releases, 1)

	doc.release(target)
	assert.Equal(t, ActionToggle, c.Action())
	assert.Equal(t, ModeDisabled, c.Mode())
	assert.False(t, surface.dark)
}

func TestGesture_ReleaseOnDifferentTarget(t *testing.T) {
	c, surface, doc := newGestureController(t)
	before := c.Mode()

	surface.press(&fakeElement{doc: doc})
	doc.release(&fakeElement{doc: doc})

	assert.Equal(t, ActionRelease, c.Action())
	assert.Equal(t, before, c.Mode())
	assert.True(t, surface.dark)
}

func TestGesture_StrayReleaseIsNoise(t *testing.T) {
	c, _, doc := newGestureController(t)

	// Force a listener onto the document without a pending capture.
	surface := c.Container().(*fakeSurface)
	target := &fakeElement{doc: doc}
	surface.press(target)
	doc.release(target) // completes the gesture, back to idle

	doc.release(target)
	assert.Equal(t, ActionIgnore, c.Action())
}

func TestGesture_LongPressRevertsToAuto(t *testing.T) {
	c, surface, doc := newGestureController(t)
	require.NoError(t, c.Disable())
	require.False(t, surface.dark)

	target := &fakeElement{doc: doc}
	surface.press(target)

	// Fire the long-press timer synthetically.
	c.onLongPress()

	assert.Equal(t, ActionAuto, c.Action())
	assert.Equal(t, ModeAuto, c.Mode())
	assert.True(t, surface.dark) // auto resolves dark without feeds

	// The matching release after a commit must not toggle again.
	doc.release(target)
	assert.Equal(t, ActionRelease, c.Action())
	assert.Equal(t, ModeAuto, c.Mode())
	assert.True(t, surface.dark)
}

func TestGesture_PressWhileCapturedReleases(t *testing.T) {
	c, surface, doc := newGestureController(t)
	before := c.Mode()

	target := &fakeElement{doc: doc}
	surface.press(target)
	require.Equal(t, ActionCapture, c.Action())

	// A second press while a capture is in flight clears it.
	surface.press(&fakeElement{doc: doc})
	assert.Equal(t, ActionRelease, c.Action())
	assert.Equal(t, before, c.Mode())

	// The original target's release now finds nothing captured.
	doc.release(target)
	assert.Equal(t, ActionIgnore, c.Action())
}

func TestGesture_PressWithoutOwnerReleases(t *testing.T) {
	c, surface, doc := newGestureController(t)

	target := &fakeElement{doc: doc}
	surface.press(target)
	require.Equal(t, ActionCapture, c.Action())

	surface.press(&fakeElement{})
	assert.Equal(t, ActionRelease, c.Action())

	doc.release(target)
	assert.Equal(t, ActionIgnore, c.Action())
}

func TestGesture_CrossContextRelease(t *testing.T) {
	c, surface, _ := newGestureController(t)

	// The press lands on an element owned by a nested document.
	nested := &bareDocument{}
	target := &fakeElement{doc: nested}
	surface.press(target)
	require.Len(t, nested.releases, 1)

	// Releasing inside the nested context completes the tap.
	nested.release(target)
	assert.Equal(t, ActionToggle, c.Action())
	assert.Equal(t, ModeDisabled, c.Mode())
}

func TestGesture_ContextRegisteredOnce(t *testing.T) {
	c, surface, doc := newGestureController(t)

	target := &fakeElement{doc: doc}
	surface.press(target)
	doc.release(target)
	surface.press(target)
	doc.release(target)

	assert.Len(t, doc.releases, 1)
	assert.Equal(t, ModeEnabled, c.Mode()) // two taps, inverted twice
}

func TestGesture_SchemeChangeInterruptsCapture(t *testing.T) {
	dark := &fakeFeed{matches: false}
	light := &fakeFeed{matches: true}
	surface, doc := newTestSurface(dark, light)

	c, err := New(surface, Options{FeedCache: NewFeedCache()})
	require.NoError(t, err)
	require.False(t, surface.dark)

	target := &fakeElement{doc: doc}
	surface.press(target)
	require.Equal(t, ActionCapture, c.Action())

	dark.set(true)

	assert.True(t, surface.dark)
	assert.Equal(t, ModeAuto, c.Mode())

	// The capture was cleared; the release that follows is noise.
	doc.release(target)
	assert.Equal(t, ActionIgnore, c.Action())
	assert.Equal(t, ModeAuto, c.Mode())
}

func TestGesture_UnrecognizedEventIgnored(t *testing.T) {
	c, surface, _ := newGestureController(t)
	before := c.Mode()

	require.NoError(t, c.HandleEvent(Event{Kind: EventUnknown}))
	assert.Equal(t, ActionIgnore, c.Action())
	assert.Equal(t, before, c.Mode())
	assert.True(t, surface.dark)
}

func TestGesture_TimerClearedOnTap(t *testing.T) {
	c, surface, doc := newGestureController(t)

	target := &fakeElement{doc: doc}
	surface.press(target)
	doc.release(target)
	require.Equal(t, ActionToggle, c.Action())
	mode := c.Mode()

	// A late timer callback must find nothing pending.
	c.onLongPress()
	assert.Equal(t, mode, c.Mode())
	assert.Equal(t, ActionToggle, c.Action())
}

func TestGesture_LongPressTimerFires(t *testing.T) {
	doc := &bareDocument{}
	surface := &fakeSurface{doc: doc, location: "/"}
	c, err := New(surface, Options{
		FeedCache:        NewFeedCache(),
		LongPressTimeout: MinLongPressTimeout,
	})
	require.NoError(t, err)
	require.NoError(t, c.Disable())

	surface.press(&fakeElement{doc: doc})

	require.Eventually(t, func() bool {
		return c.Mode() == ModeAuto
	}, MinLongPressTimeout+time.Second, 20*time.Millisecond)
	assert.Equal(t, ActionAuto, c.Action())
}
