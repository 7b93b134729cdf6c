package keypad

import (
	"context"
	"fmt"

	"github.com/karupanerura/keypad-calculator/internal/calculator"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

type Report struct {
	Name       string      `json:"name"`
	Keys       []KeyResult `json:"keys"`
	Display    string      `json:"display"`
	Expression string      `json:"expression"`
	Value      string      `json:"value,omitempty"`
	Error      any         `json:"error,omitempty"`
	Expect     *string     `json:"expect,omitempty"`
	Passed     bool        `json:"passed"`
}

// PressAll presses each label in order. Unknown labels are reported and
// skipped.
func PressAll(ctx context.Context, s *calculator.Session, keymap *Keymap, labels []string) ([]KeyResult, error) {
	results := make([]KeyResult, 0, len(labels))
	for _, label := range labels {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		key, ok := keymap.Lookup(label)
		if !ok {
			results = append(results, KeyResult{Key: label, Result: UnknownKey, Display: s.Display()})
			continue
		}
		results = append(results, key.Press(s))
	}
	return results, nil
}

// Replay runs every script in its own session. Reports are in script order.
func Replay(ctx context.Context, keymap *Keymap, scripts []Script) ([]Report, error) {
	reports := make([]Report, len(scripts))

	eg, ctx := errgroup.WithContext(ctx)
	for i, script := range scripts {
		i := i
		script := script
		eg.Go(func() error {
			km, err := keymap.WithAliases(script.Aliases)
			if err != nil {
				return fmt.Errorf("scripts[%d] %s: %w", i, script.Name, err)
			}

			report, err := replay(ctx, km, script)
			if err != nil {
				return fmt.Errorf("scripts[%d] %s: %w", i, script.Name, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func replay(ctx context.Context, keymap *Keymap, script Script) (Report, error) {
	s := calculator.NewSession()
	results, err := PressAll(ctx, s, keymap, script.Keys)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Name:       script.Name,
		Keys:       results,
		Display:    s.Display(),
		Expression: s.Expression().String(),
		Expect:     script.Expect,
	}

	// the outcome of the last "=" describes the script
	if last, ok := lo.Find(lo.Reverse(append([]KeyResult(nil), results...)), func(r KeyResult) bool {
		return r.Result == Evaluated || r.Result == EvaluationFailed
	}); ok {
		report.Value = last.Value
		report.Error = last.Error
	}

	unknown := lo.Filter(results, func(r KeyResult, _ int) bool { return r.Result == UnknownKey })
	report.Passed = len(unknown) == 0 && (script.Expect == nil || *script.Expect == report.Display)
	return report, nil
}

// Failed returns the names of the reports that did not pass.
func Failed(reports []Report) []string {
	failed := lo.Filter(reports, func(r Report, _ int) bool { return !r.Passed })
	return lo.Map(failed, func(r Report, _ int) string { return r.Name })
}
