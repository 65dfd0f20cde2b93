package report

import (
	"fmt"
	"strings"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
	"github.com/berelzbeheer/BerelzDashboard/internal/pipeline"
)

// FormatSignal renders one computed result as a multi-line log report.
func FormatSignal(res *pipeline.Result) string {
	var b strings.Builder

	sig := res.Signal
	b.WriteString(fmt.Sprintf("=== %s signal | %s ===\n", res.Symbol, sig.ComputedAt.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("bid: %.2f | ask: %.2f | source: %s\n", res.Bid, res.Ask, res.Source))
	b.WriteString(fmt.Sprintf("signal: %s (confidence %.1f, score %+.1f, ADX %.1f)\n",
		sig.Classification, sig.Confidence, sig.Score, sig.ADX))

	if len(sig.Votes) > 0 {
		b.WriteString("votes:\n")
		for _, v := range sig.Votes {
			b.WriteString(fmt.Sprintf("  %-20s %-8s %.2f  %s\n", v.Indicator, v.Direction, v.Strength, v.Comment))
		}
	}

	if len(sig.Patterns) > 0 {
		names := make([]string, 0, len(sig.Patterns))
		for _, p := range sig.Patterns {
			names = append(names, fmt.Sprintf("%s(%.2f)", p.Pattern, p.Confidence))
		}
		b.WriteString("patterns: " + strings.Join(names, ", ") + "\n")
	}

	b.WriteString(fmt.Sprintf("H1 momentum: %s (%d green / %d red, last %+.2f)\n",
		res.Momentum.Trend, res.Momentum.Greens, res.Momentum.Reds, res.Momentum.Change))

	switch {
	case res.Position != nil && sig.Classification != model.ClassifyHold:
		b.WriteString(fmt.Sprintf("position: %.2f units (risk %.2f, stop distance %.2f)\n",
			res.Position.Units, res.Position.RiskAmount, res.Position.StopDistance))
	case res.PositionErr != nil:
		b.WriteString(fmt.Sprintf("position: unavailable (%v)\n", res.PositionErr))
	}

	return b.String()
}
