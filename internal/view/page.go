package view

import (
	"fmt"
	"html/template"

	"github.com/ManthanKaria/fraud-job-detector/internal/gauge"
)

const (
	SubmitLabel = "Detect Fraud"
	BusyLabel   = "Analyzing..."

	FraudulentLabel = "🚨 Fraudulent"
	LegitLabel      = "✅ Legitimate"
)

// Page is the template model for the single page.
type Page struct {
	Text        string
	Busy        bool
	ButtonLabel string
	BusyLabel   string

	// ShowResult is true once the page has settled, for results and errors alike.
	ShowResult     bool
	ScrollToResult bool
	ErrorMessage   string

	Fraudulent  bool
	Verdict     string
	Percent     int
	Band        gauge.Band
	Gauge       template.HTML
	CleanedText string
}

// NewPage renders a state into a page model. It consumes the state's pending
// scroll, so rendering the same settlement twice scrolls only the first time.
func NewPage(s *State, text string) (*Page, error) {
	p := &Page{
		Text:        text,
		Busy:        s.Phase() == Loading,
		ButtonLabel: SubmitLabel,
		BusyLabel:   BusyLabel,
	}
	if p.Busy {
		p.ButtonLabel = BusyLabel
	}

	if s.Phase() != Settled {
		return p, nil
	}

	p.ShowResult = true
	p.ScrollToResult = s.TakeScroll()

	o := s.Outcome()
	if o.Failed() || o.Result == nil {
		if o.Error != nil {
			p.ErrorMessage = o.Error.Error
		}
		return p, nil
	}

	r := o.Result
	p.Fraudulent = r.Fraudulent
	p.Verdict = LegitLabel
	if r.Fraudulent {
		p.Verdict = FraudulentLabel
	}
	p.Percent = gauge.Percent(r.Confidence)
	p.Band = gauge.BandFor(p.Percent)
	p.CleanedText = r.CleanedText

	svg, err := gauge.New(p.Percent).SVG()
	if err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	p.Gauge = svg

	return p, nil
}
