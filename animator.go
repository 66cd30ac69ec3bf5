package eventgraph

import (
	"weak"

	"github.com/tanema/gween/ease"
)

// EasingFunc maps linear progress in [0,1] to eased progress, typically also
// in [0,1] though overshoot curves may leave that range briefly.
type EasingFunc func(progress float64) float64

// Linear performs no easing.
func Linear(progress float64) float64 { return progress }

// FromGween adapts a github.com/tanema/gween/ease.TweenFunc — the curve
// library the retrieval pack already uses for node/camera tweening — to
// EasingFunc's simpler progress-in, progress-out shape. gween's TweenFunc
// signature is func(t, b, c, d float32) float32 for "time, begin, change,
// duration"; begin=0, change=1, duration=1 turns it into a pure [0,1]->[0,1]
// curve.
func FromGween(fn ease.TweenFunc) EasingFunc {
	return func(progress float64) float64 {
		return float64(fn(float32(progress), 0, 1, 1))
	}
}

// A handful of named curves wrapping gween's, for callers that want a
// built-in without importing the ease package directly.
var (
	EaseInQuad     = FromGween(ease.InQuad)
	EaseOutQuad    = FromGween(ease.OutQuad)
	EaseInOutQuad  = FromGween(ease.InOutQuad)
	EaseOutCubic   = FromGween(ease.OutCubic)
	EaseOutElastic = FromGween(ease.OutElastic)
)

// Lerp interpolates between a and b at t in [0,1]; t may exceed that range
// transiently under overshoot easings. Implementations for the numeric
// builtins are provided (Float64Lerp, Float32Lerp); composite value types
// supply their own.
type Lerp[T any] func(a, b T, t float64) T

// Float64Lerp linearly interpolates float64s.
func Float64Lerp(a, b float64, t float64) float64 { return a + (b-a)*t }

// Float32Lerp linearly interpolates float32s.
func Float32Lerp(a, b float32, t float64) float32 { return a + (b-a)*float32(t) }

// Animation is the interface the Animator drives, mirroring
// HistPrimAnimation's update/id contract: Tick advances by dt and reports
// whether the animation is still live, TargetID identifies the target so a
// new animation on the same target replaces rather than stacks. Custom,
// non-easing animations (a shake, a physics-driven approach, an animation
// that never finishes) can implement this directly.
type Animation interface {
	Tick(ctx *ProcessingContext, dtSeconds float64) bool
	TargetID() any
}

// easeAnimation eases a single Cell from its value at start time toward end
// over duration seconds. It holds only a weak reference to the target cell:
// an animation whose target has otherwise been dropped quietly stops
// (mirrors the original's WeakHistPrim upgrade-or-stop check) rather than
// keeping the cell alive on the Animator's behalf.
type easeAnimation[T comparable] struct {
	target   weak.Pointer[Cell[T]]
	lerp     Lerp[T]
	start    T
	end      T
	duration float64
	elapsed  float64
	easing   EasingFunc
	id       any
}

func (a *easeAnimation[T]) Tick(ctx *ProcessingContext, dtSeconds float64) bool {
	target := a.target.Value()
	if target == nil {
		return false
	}
	a.elapsed += dtSeconds
	if a.elapsed >= a.duration {
		target.Set(ctx, a.end)
		return false
	}
	t := a.easing(a.elapsed / a.duration)
	target.Set(ctx, a.lerp(a.start, a.end, t))
	return true
}

func (a *easeAnimation[T]) TargetID() any { return a.id }

// Ease builds an animation easing target from its current value to end over
// duration seconds, using lerp to interpolate and easing to shape progress.
// Starting it (via Animator.Start) replaces any animation already running
// for the same target.
func Ease[T comparable](target *Cell[T], lerp Lerp[T], end T, duration float64, easing EasingFunc) Animation {
	return &easeAnimation[T]{
		target:   weak.Make(target),
		lerp:     lerp,
		start:    target.Get(),
		end:      end,
		duration: duration,
		easing:   easing,
		id:       target.c.ID(),
	}
}

// targetKey maps a Cell or SeqCell passed as an animation target to its
// identity, so the Animator's bookkeeping holds no strong reference to it.
func targetKey(target any) any {
	if d, ok := target.(Dependency); ok {
		return d.internalHandle().ID()
	}
	return target
}

// Animator manages time-based cell interpolation as a secondary component
// layered on top of EventGraph (spec.md's Animator module), grounded on the
// original interp/interp_backbuf swap-buffer scheduler: Update takes
// ownership of the live set into a local buffer, drains it, and reinserts
// only the animations that report they are still running, so an animation
// that starts another animation mid-update is deferred to the next Update
// rather than iterated in the same pass.
type Animator struct {
	active  map[any]Animation
	backbuf map[any]Animation
	startCB func()
}

// NewAnimator creates an empty Animator.
func NewAnimator() *Animator {
	return &Animator{
		active:  make(map[any]Animation),
		backbuf: make(map[any]Animation),
	}
}

// SetStartCB installs a callback invoked every time Start adds a new
// animation — typically used to kick off a real-time update loop (e.g.
// requestAnimationFrame in a browser, or a ticker in a server process) the
// first time there is anything to animate.
func (a *Animator) SetStartCB(cb func()) {
	a.startCB = cb
}

// Start begins anim, replacing any animation already running against the
// same target.
func (a *Animator) Start(anim Animation) {
	a.active[targetKey(anim.TargetID())] = anim
	if a.startCB != nil {
		a.startCB()
	}
}

// Cancel stops any animation running against target, leaving its current
// value untouched. A no-op if nothing is animating target.
func (a *Animator) Cancel(target any) {
	delete(a.active, targetKey(target))
}

// Clear stops every running animation.
func (a *Animator) Clear() {
	a.active = make(map[any]Animation)
}

// Update advances every running animation by dtSeconds inside a single
// event scope on eg, and reports whether any animation is still running
// afterward. Call it once per tick (a fixed-step loop, or a real
// requestAnimationFrame-style callback); each call opens exactly one event
// scope, so every cell write any animation makes this tick propagates
// together.
func (a *Animator) Update(eg *EventGraph, dtSeconds float64) bool {
	result, _ := Event(eg, func(ctx *ProcessingContext) bool {
		live := a.active
		a.active = a.backbuf
		for id, anim := range live {
			delete(live, id)
			if anim.Tick(ctx, dtSeconds) {
				a.active[id] = anim
			}
		}
		a.backbuf = live
		return len(a.active) > 0
	})
	return result
}
