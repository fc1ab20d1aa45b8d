package analyzer

import (
	"context"

	"github.com/Lual007/Intermediate-API---Squad-06/internal/utils"
)

// MockAnalyzer labels text deterministically from a hash of its content. Used
// when no analysis endpoint is configured.
type MockAnalyzer struct{}

var mockLabels = []string{"alegria", "raiva", "frustração", "confusão", "urgência", "neutro"}

func (MockAnalyzer) Analyze(_ context.Context, text string) (string, error) {
	h := utils.HashStringToUint64(text)
	return mockLabels[int(h)%len(mockLabels)], nil
}
