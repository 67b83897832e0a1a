package cli

import (
	"fmt"
	"io"
	"sort"

	"study-quiz/internal/history"
)

// PrintHistory writes recent rounds followed by lifetime misses per category,
// most missed first.
func PrintHistory(out io.Writer, rounds []history.Round, misses map[string]int) {
	if len(rounds) == 0 {
		fmt.Fprintln(out, "Henüz kayıtlı tur yok.")
		return
	}

	fmt.Fprintln(out, "Son turlar:")
	for _, round := range rounds {
		weak := round.WeakCategory
		if weak == "" {
			weak = "-"
		}
		fmt.Fprintf(out, "  %s  puan %3d  %d/%d doğru  zayıf konu: %s\n",
			round.FinishedAt.Local().Format("2006-01-02 15:04"),
			round.Score, round.CorrectCount, round.QuestionCount, weak)
	}

	if len(misses) == 0 {
		return
	}

	categories := make([]string, 0, len(misses))
	for category := range misses {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if misses[categories[i]] != misses[categories[j]] {
			return misses[categories[i]] > misses[categories[j]]
		}
		return categories[i] < categories[j]
	})

	fmt.Fprintln(out, "\nYanlış cevaplar (konuya göre):")
	for _, category := range categories {
		fmt.Fprintf(out, "  %-30s %d\n", category, misses[category])
	}
}
