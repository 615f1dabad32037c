// Package recommend resolves advice text and reference reading links for
// diagnosis labels. The tables are immutable configuration loaded once at
// startup and passed by reference, never ambient global state.
package recommend

import "log/slog"

// FallbackAdvice is returned for labels without a specific recommendation.
const FallbackAdvice = "Consider discussing your responses with a licensed mental health professional, who can offer a thorough evaluation and tailored guidance."

// Directory looks up recommendations and article links by diagnosis label.
type Directory struct {
	advice   map[string]string
	links    map[string][]string
	fallback string
}

// Opts holds configuration for a Directory.
type Opts struct {
	Advice   map[string]string
	Links    map[string][]string
	Fallback string
}

// Option configures a Directory.
type Option func(*Opts)

// WithAdvice replaces the advice table.
func WithAdvice(advice map[string]string) Option {
	return func(o *Opts) { o.Advice = advice }
}

// WithLinks replaces the reference links table.
func WithLinks(links map[string][]string) Option {
	return func(o *Opts) { o.Links = links }
}

// WithFallback replaces the fallback advice for unknown labels.
func WithFallback(fallback string) Option {
	return func(o *Opts) { o.Fallback = fallback }
}

// NewDirectory creates a directory, defaulting to the built-in tables.
func NewDirectory(opts ...Option) *Directory {
	cfg := Opts{
		Advice:   defaultAdvice(),
		Links:    defaultLinks(),
		Fallback: FallbackAdvice,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Directory{advice: cfg.Advice, links: cfg.Links, fallback: cfg.Fallback}
}

// Recommend returns the advice for a label, or the generic fallback for
// unknown labels.
func (d *Directory) Recommend(label string) string {
	if advice, ok := d.advice[label]; ok {
		return advice
	}
	slog.Debug("Directory.Recommend: no specific advice for label, using fallback", "label", label)
	return d.fallback
}

// Links returns the ordered reference links for a label; unknown labels get
// an empty list.
func (d *Directory) Links(label string) []string {
	return d.links[label]
}

func defaultAdvice() map[string]string {
	return map[string]string{
		"Anxiety":    "Practice slow breathing and grounding exercises when worry builds, keep a regular sleep schedule, and consider speaking with a therapist about cognitive behavioral techniques for anxiety.",
		"OCD":        "Obsessive-compulsive patterns respond well to exposure and response prevention therapy. A mental health professional can help you gradually reduce rituals at a comfortable pace.",
		"Autism":     "Consider a formal assessment with a specialist experienced in autism spectrum conditions. Structured routines, sensory accommodations, and peer support groups can make daily life easier.",
		"Depression": "Try to keep small daily routines, stay connected with people you trust, and reach out to a professional. Persistent low mood is treatable, and support makes a difference.",
	}
}

func defaultLinks() map[string][]string {
	return map[string][]string{
		"Anxiety": {
			"https://www.nimh.nih.gov/health/topics/anxiety-disorders",
			"https://www.helpguide.org/articles/anxiety/anxiety-disorders-and-anxiety-attacks.htm",
		},
		"OCD": {
			"https://iocdf.org/about-ocd/",
			"https://www.nimh.nih.gov/health/topics/obsessive-compulsive-disorder-ocd",
		},
		"Autism": {
			"https://www.cdc.gov/ncbddd/autism/index.html",
			"https://www.autismspeaks.org/what-autism",
		},
		"Depression": {
			"https://www.nimh.nih.gov/health/topics/depression",
		},
	}
}
