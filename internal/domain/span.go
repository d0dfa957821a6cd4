package domain

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type profileKey string

const ContextProfileKey profileKey = "performanceProfile"

type Span struct {
	Name     string  `json:"name"`
	SubSpans []*Span `json:"subSpans,omitempty"`
	Elapsed  *int64  `json:"elapsed"`

	startTs    time.Time
	subProfile *Profile
}

func (s *Span) End() {
	if s.Elapsed == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.Elapsed = &t
	}
	if s.subProfile != nil {
		s.SubSpans = s.subProfile.snapshot()
	}
}

// Profile is a list of spans. It is safe for concurrent use.
type Profile struct {
	mu      sync.Mutex
	spans   []*Span
	startTs time.Time
	TotalMs *int64
}

func NewProfile() (*Profile, func()) {
	p := &Profile{startTs: time.Now()}
	return p, p.End
}

func (p *Profile) End() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.spans) > 0 {
		p.spans[len(p.spans)-1].End()
	}
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

func (p *Profile) snapshot() []*Span {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]*Span, len(p.spans))
	copy(out, p.spans)
	return out
}

// StartNewSpan ends the previous span and begins a new one.
func (p *Profile) StartNewSpan(name string) (*Span, func()) {
	s := &Span{Name: name, startTs: time.Now()}
	p.mu.Lock()
	if len(p.spans) > 0 {
		p.spans[len(p.spans)-1].End()
	}
	p.spans = append(p.spans, s)
	p.mu.Unlock()
	return s, s.End
}

func (p *Profile) Spans() []*Span {
	return p.snapshot()
}

func (p *Profile) ToJsonBytes() ([]byte, error) {
	return json.Marshal(p.snapshot())
}

// GetProfile returns the profile on ctx, creating a detached one when ctx
// has none.
func GetProfile(ctx context.Context) (*Profile, func()) {
	if p, ok := ctx.Value(ContextProfileKey).(*Profile); ok && p != nil {
		return p, p.End
	}
	return NewProfile()
}

func NewCtxWithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, ContextProfileKey, p)
}

// NewCtxWithSubProfile nests a new profile under parent.
func NewCtxWithSubProfile(ctx context.Context, parent *Span) context.Context {
	sub, _ := NewProfile()
	parent.subProfile = sub
	return NewCtxWithProfile(ctx, sub)
}
