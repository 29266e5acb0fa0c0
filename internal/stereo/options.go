package stereo

import (
	"sync"

	"github.com/bnema/pageflip/internal/domain/entity"
)

// Option names as shown to the user.
const (
	OptionQuadBuffer = "Quad Buffer type"
	OptionShowExtra  = "Show Extra Options"
)

// Choice is one value of an enumerated option.
type Choice[T comparable] struct {
	Value T
	Label string
}

// EnumOption is a named enumerated setting with change observers.
type EnumOption[T comparable] struct {
	mu        sync.Mutex
	name      string
	choices   []Choice[T]
	value     T
	observers []func(old, new T)
}

// NewEnumOption creates an option with the given initial value.
func NewEnumOption[T comparable](name string, value T, choices []Choice[T]) *EnumOption[T] {
	return &EnumOption[T]{name: name, value: value, choices: choices}
}

func (o *EnumOption[T]) Name() string { return o.name }

// Choices returns the advertised values in display order.
func (o *EnumOption[T]) Choices() []Choice[T] {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Choice[T], len(o.choices))
	copy(out, o.choices)
	return out
}

// SetChoices replaces the advertised values. The current value is kept.
func (o *EnumOption[T]) SetChoices(choices []Choice[T]) {
	o.mu.Lock()
	o.choices = choices
	o.mu.Unlock()
}

// Label returns the label of v, or "" when v is not advertised.
func (o *EnumOption[T]) Label(v T) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, c := range o.choices {
		if c.Value == v {
			return c.Label
		}
	}
	return ""
}

func (o *EnumOption[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set changes the value and notifies observers. Returns false when the
// value did not change.
func (o *EnumOption[T]) Set(v T) bool {
	o.mu.Lock()
	old := o.value
	if old == v {
		o.mu.Unlock()
		return false
	}
	o.value = v
	observers := append([]func(old, new T){}, o.observers...)
	o.mu.Unlock()

	for _, fn := range observers {
		fn(old, v)
	}
	return true
}

// OnChange registers fn to be called after every change.
func (o *EnumOption[T]) OnChange(fn func(old, new T)) {
	o.mu.Lock()
	o.observers = append(o.observers, fn)
	o.mu.Unlock()
}

// BoolOption is a named on/off setting with change observers.
type BoolOption struct {
	mu        sync.Mutex
	name      string
	value     bool
	observers []func(bool)
}

func NewBoolOption(name string, value bool) *BoolOption {
	return &BoolOption{name: name, value: value}
}

func (o *BoolOption) Name() string { return o.name }

func (o *BoolOption) Value() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set changes the value and notifies observers. Returns false when the
// value did not change.
func (o *BoolOption) Set(v bool) bool {
	o.mu.Lock()
	if o.value == v {
		o.mu.Unlock()
		return false
	}
	o.value = v
	observers := append([]func(bool){}, o.observers...)
	o.mu.Unlock()

	for _, fn := range observers {
		fn(v)
	}
	return true
}

func (o *BoolOption) OnChange(fn func(bool)) {
	o.mu.Lock()
	o.observers = append(o.observers, fn)
	o.mu.Unlock()
}

// Options is the user-configurable parameter set of the output.
type Options struct {
	QuadBuffer *EnumOption[entity.QuadBufferMode]
	ShowExtra  *BoolOption

	mu   sync.Mutex
	info *entity.SecondaryAPIInfo
	// probed is set once secondary API results are known.
	probed bool
}

func newOptions(mode entity.QuadBufferMode, showExtra bool) *Options {
	o := &Options{
		QuadBuffer: NewEnumOption(OptionQuadBuffer, mode, nil),
		ShowExtra:  NewBoolOption(OptionShowExtra, showExtra),
	}
	o.refreshChoices()

	o.ShowExtra.OnChange(func(on bool) {
		o.refreshChoices()
		if !on && o.QuadBuffer.Value() == entity.QuadBufferEmulated {
			o.QuadBuffer.Set(entity.QuadBufferHardwareGL)
		}
	})
	return o
}

// NewOptions builds an option set detached from any output, labelled from
// the given probe results.
func NewOptions(mode entity.QuadBufferMode, showExtra bool, info *entity.SecondaryAPIInfo, probed bool) *Options {
	o := newOptions(mode, showExtra)
	o.updateSecondaryInfo(info, probed)
	return o
}

// updateSecondaryInfo relabels the secondary choice from probe results.
func (o *Options) updateSecondaryInfo(info *entity.SecondaryAPIInfo, probed bool) {
	o.mu.Lock()
	o.info = info
	o.probed = probed
	o.mu.Unlock()
	o.refreshChoices()
}

func (o *Options) refreshChoices() {
	o.mu.Lock()
	label := SecondaryModeLabel(o.info, o.probed)
	o.mu.Unlock()

	choices := []Choice[entity.QuadBufferMode]{
		{Value: entity.QuadBufferHardwareGL, Label: "OpenGL"},
		{Value: entity.QuadBufferHardwareSecondary, Label: label},
	}
	if o.ShowExtra.Value() {
		choices = append(choices, Choice[entity.QuadBufferMode]{Value: entity.QuadBufferEmulated, Label: "OpenGL Emulated"})
	}
	o.QuadBuffer.SetChoices(choices)
}

// SecondaryModeLabel names the secondary-API choice after what the probe
// found. Before the probe completes the path is assumed usable.
func SecondaryModeLabel(info *entity.SecondaryAPIInfo, probed bool) string {
	switch {
	case !probed:
		return "Vulkan (Fullscreen)"
	case info == nil:
		return "Vulkan (Unavailable)"
	case info.HasNvStereoSupport:
		return "Vulkan NVIDIA (Fullscreen)"
	case info.HasAqbsSupport:
		return "Vulkan AMD (Fullscreen)"
	case info.HasAmdAdapter:
		return "Vulkan AMD (Unavailable)"
	case info.HasNvAdapter:
		return "Vulkan NVIDIA (Disabled)"
	default:
		return "Vulkan (Unavailable)"
	}
}
