package darkmode

import "time"

// captureState tracks where a gesture sits between press and release.
type captureState int

const (
	// captureIdle means no press is pending.
	captureIdle captureState = iota
	// capturePending means a press target is held and the long-press
	// timer is running.
	capturePending
	// captureCommitted means the long-press timer fired; the target is
	// held until release but no further toggle may occur.
	captureCommitted
)

// gestureState is the per-controller gesture handler state. It is owned
// exclusively by the controller and guarded by the controller mutex.
//
// Invariant: timer is non-nil if and only if capture == capturePending.
type gestureState struct {
	// contexts maps every document with an installed release listener to
	// the function that removes that listener. The registry only grows;
	// it is emptied on detach.
	contexts map[Document]func()

	// target is the element from the most recent press, nil when idle.
	target Element

	capture captureState

	// action is the classification of the last event. Diagnostic only.
	action Action

	// timer is the pending long-press timer.
	timer *time.Timer
}

// HandleEvent feeds one event through the gesture classifier. Host
// adapters call it from their press, release and preference-change
// callbacks. It returns ErrUnbound when the controller has been detached;
// that signals an integration bug, since detach removes every listener
// the controller installed. Unrecognized events are logged and ignored.
func (c *Controller) HandleEvent(ev Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inert {
		return nil
	}
	if c.detached {
		return ErrUnbound
	}

	switch ev.Kind {
	case EventPress:
		c.handlePress(ev.Target)
	case EventRelease:
		c.handleRelease(ev.Target)
	case EventSchemeChange:
		c.handleSchemeChange(ev.Dark)
	default:
		c.log.Warn().Stringer("kind", ev.Kind).Msg("unrecognized gesture event")
		c.gesture.action = ActionIgnore
	}
	return nil
}

// Action returns the classification of the most recent gesture event.
func (c *Controller) Action() Action {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gesture.action
}

// handlePress processes a pointer-down. A resolvable target establishes a
// capture from idle; a press while a capture is in flight, or one whose
// target has no owning context, releases the capture without toggling.
func (c *Controller) handlePress(target Element) {
	if target == nil || target.Owner() == nil || c.gesture.capture != captureIdle {
		c.clearCapture()
		c.gesture.action = ActionRelease
		return
	}

	c.gesture.target = target
	c.gesture.capture = capturePending
	c.gesture.action = ActionCapture
	c.ensureRegistered(target.Owner())
	c.gesture.timer = time.AfterFunc(c.longPress, c.onLongPress)
	c.log.Debug().Str("action", string(ActionCapture)).Msg("press captured")
}

// handleRelease processes a context-wide pointer-up.
func (c *Controller) handleRelease(target Element) {
	if c.gesture.target == nil {
		// Nothing captured; a stray release is noise.
		c.gesture.action = ActionIgnore
		return
	}

	if target == c.gesture.target && c.gesture.capture == capturePending {
		c.clearCapture()
		c.gesture.action = ActionToggle
		c.toggleLocked(toggleInvert, false)
		c.log.Debug().Str("action", string(ActionToggle)).Msg("tap toggled scheme")
		return
	}

	// Different target, or the long press already committed.
	c.clearCapture()
	c.gesture.action = ActionRelease
}

// onLongPress fires when a press has been held past the timeout. It
// commits the gesture and reverts the controller to automatic mode.
func (c *Controller) onLongPress() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.detached || c.gesture.capture != capturePending || c.gesture.target == nil {
		return
	}

	c.gesture.timer = nil
	c.gesture.capture = captureCommitted
	c.gesture.action = ActionAuto
	c.toggleLocked(toggleAuto, false)
	c.log.Debug().Str("action", string(ActionAuto)).Msg("long press reverted to auto")
}

// handleSchemeChange processes a positive match from one of the system
// preference feeds. It interrupts any in-flight gesture and re-applies
// visuals, leaving the persisted mode untouched unless it is auto.
func (c *Controller) handleSchemeChange(dark bool) {
	if c.gesture.capture != captureIdle {
		c.clearCapture()
		c.gesture.action = ActionRelease
	}

	req := toggleOff
	if dark {
		req = toggleOn
	}
	c.toggleLocked(req, true)
}

// ensureRegistered installs a release listener on doc if one is not
// already present. Idempotent; the registry is torn down only on detach.
func (c *Controller) ensureRegistered(doc Document) {
	if doc == nil {
		return
	}
	if c.gesture.contexts == nil {
		c.gesture.contexts = make(map[Document]func())
	}
	if _, ok := c.gesture.contexts[doc]; ok {
		return
	}

	c.gesture.contexts[doc] = doc.OnRelease(func(target Element) {
		_ = c.HandleEvent(Event{Kind: EventRelease, Target: target})
	})
	c.log.Debug().Int("contexts", len(c.gesture.contexts)).Msg("release listener installed")
}

// clearCapture resets the gesture to idle, cancelling any pending
// long-press timer. Registered contexts are left alone.
func (c *Controller) clearCapture() {
	if c.gesture.timer != nil {
		c.gesture.timer.Stop()
		c.gesture.timer = nil
	}
	c.gesture.target = nil
	c.gesture.capture = captureIdle
}
