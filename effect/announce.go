package effect

import (
	"math/rand"
	"strings"

	"github.com/lixenwraith/pie-merge/parameter"
	"github.com/lixenwraith/pie-merge/tween"
)

// Placeholder is replaced by the upper-cased tier name
const Placeholder = "{PIE_NAME}"

// DefaultTemplates are the announcement lines used when none are configured
var DefaultTemplates = []string{
	"{PIE_NAME} UNLOCKED!",
	"FRESH OUT OF THE OVEN: {PIE_NAME}!",
	"NOW SERVING {PIE_NAME}!",
	"A WILD {PIE_NAME} APPEARS!",
	"ORDER UP: {PIE_NAME}!",
	"SAY HELLO TO {PIE_NAME}!",
	"{PIE_NAME} JOINS THE BAKERY!",
	"YOU BAKED A {PIE_NAME}!",
	"HOT AND READY: {PIE_NAME}!",
	"{PIE_NAME} HAS ENTERED THE KITCHEN!",
}

const fallbackTemplate = "{PIE_NAME} UNLOCKED!"

// Announcement is the visible new-tier banner
type Announcement struct {
	Text  string
	Tier  int
	Y     float64
	Alpha float64
	Scale float64
}

// Announcer shows one banner at a time, drawing lines from a shuffled template pool
type Announcer struct {
	templates []string
	pool      []string
	rng       *rand.Rand
	anim      tween.Animator

	current *Announcement
	tweenID tween.ID
}

func NewAnnouncer(templates []string, rng *rand.Rand, anim tween.Animator) *Announcer {
	if len(templates) == 0 {
		templates = DefaultTemplates
	}
	return &Announcer{templates: templates, rng: rng, anim: anim}
}

// Busy reports whether a banner is on screen
func (a *Announcer) Busy() bool {
	return a.current != nil
}

// Announce shows a banner for tier, returns false when skipped because one is already showing
func (a *Announcer) Announce(tier int, name string) bool {
	if a.current != nil {
		return false
	}

	text := strings.Replace(a.nextTemplate(), Placeholder, strings.ToUpper(name), 1)
	ann := &Announcement{
		Text:  text,
		Tier:  tier,
		Y:     parameter.AnnounceBaseY + float64(tier)*parameter.AnnounceStepY,
		Scale: 0.5,
	}
	a.current = ann

	a.tweenID = a.anim.Add(tween.Spec{
		Duration: parameter.AnnounceFadeIn,
		Ease:     tween.QuadOut,
		Step: func(f float64) {
			ann.Alpha = f
			ann.Scale = tween.Lerp(0.5, 1, f)
		},
		OnComplete: func() {
			a.tweenID = a.anim.Add(tween.Spec{
				Delay:    parameter.AnnounceHold,
				Duration: parameter.AnnounceFadeOut,
				Ease:     tween.Linear,
				Step:     func(f float64) { ann.Alpha = 1 - f },
				OnComplete: func() {
					if a.current == ann {
						a.current = nil
					}
				},
			})
		},
	})
	return true
}

// Current returns the visible banner
func (a *Announcer) Current() (Announcement, bool) {
	if a.current == nil {
		return Announcement{}, false
	}
	return *a.current, true
}

// Reset hides any banner and refills the template pool
func (a *Announcer) Reset() {
	if a.current != nil {
		a.anim.Cancel(a.tweenID)
		a.current = nil
	}
	a.pool = a.pool[:0]
}

func (a *Announcer) nextTemplate() string {
	if len(a.pool) == 0 {
		a.pool = append(a.pool[:0], a.templates...)
		a.rng.Shuffle(len(a.pool), func(i, j int) {
			a.pool[i], a.pool[j] = a.pool[j], a.pool[i]
		})
	}
	t := a.pool[len(a.pool)-1]
	a.pool = a.pool[:len(a.pool)-1]
	if !strings.Contains(t, Placeholder) {
		return fallbackTemplate
	}
	return t
}
