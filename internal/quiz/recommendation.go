package quiz

const (
	CategoryScience = "Science"
	CategoryHistory = "History"

	recommendationPrefix = "Daha fazla çalışmanız gereken konu: "
	scienceTip           = "Fizik, kimya, biyoloji gibi temel konularda çalışabilirsiniz."
	historyTip           = "Tarihin önemli dönemlerine çalışın, özellikle Orta Çağ ve Antik Yunan hakkında."
	genericTip           = "Bu konuda daha fazla pratik yapmanız önerilir."
	perfectRoundText     = "Tebrikler! Tüm soruları doğru cevapladınız."
)

type Recommendation struct {
	// Category is empty when the round had no wrong answers.
	Category string
	Misses   int
	Text     string
}

// WeakestCategory returns the category with the most wrong answers. Ties go
// to the category that was missed first.
func WeakestCategory(wrong []WrongAnswer) (string, int, bool) {
	if len(wrong) == 0 {
		return "", 0, false
	}

	counts := make(map[string]int, len(wrong))
	order := make([]string, 0, len(wrong))
	for _, answer := range wrong {
		if _, seen := counts[answer.Category]; !seen {
			order = append(order, answer.Category)
		}
		counts[answer.Category]++
	}

	best := order[0]
	for _, category := range order[1:] {
		if counts[category] > counts[best] {
			best = category
		}
	}
	return best, counts[best], true
}

func BuildRecommendation(wrong []WrongAnswer) Recommendation {
	category, misses, ok := WeakestCategory(wrong)
	if !ok {
		return Recommendation{Text: perfectRoundText}
	}

	return Recommendation{
		Category: category,
		Misses:   misses,
		Text:     recommendationPrefix + category + "\n" + tipFor(category),
	}
}

func tipFor(category string) string {
	switch category {
	case CategoryScience:
		return scienceTip
	case CategoryHistory:
		return historyTip
	default:
		return genericTip
	}
}
