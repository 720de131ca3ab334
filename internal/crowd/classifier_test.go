package crowd

import (
	"testing"

	"github.com/shenikar/crowd_alert_system/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestClassify_ThresholdBoundary(t *testing.T) {
	trio := stadiumTrio()
	anchor := anchorOf(trio[0])

	below := NewLocalCountClassifier(ClassifierConfig{RadiusKm: 0.1, Threshold: 4})
	decision := below.Classify(anchor, trio, true)
	assert.Equal(t, 3, decision.NeighborCount)
	assert.False(t, decision.IsCrowded)

	exact := NewLocalCountClassifier(ClassifierConfig{RadiusKm: 0.1, Threshold: 3})
	decision = exact.Classify(anchor, trio, true)
	assert.Equal(t, 3, decision.NeighborCount)
	assert.True(t, decision.IsCrowded)
}

func TestClassify_CountSelfFlag(t *testing.T) {
	trio := stadiumTrio()
	classifier := NewLocalCountClassifier(ClassifierConfig{RadiusKm: 0.1, Threshold: 3})
	anchor := anchorOf(trio[1])

	withSelf := classifier.Classify(anchor, trio, true)
	withoutSelf := classifier.Classify(anchor, trio, false)

	assert.Equal(t, 3, withSelf.NeighborCount)
	assert.Equal(t, 2, withoutSelf.NeighborCount)
	assert.False(t, withoutSelf.IsCrowded)
	for _, n := range withoutSelf.Neighbors {
		assert.NotEqual(t, anchor.ParticipantID, n.ParticipantID)
	}
}

func TestClassify_RadiusIsInclusive(t *testing.T) {
	trio := stadiumTrio()
	anchor := anchorOf(trio[0])
	// расстояние до второго участника, взятое как радиус, должно его включать
	radius := distanceBetween(trio[0], trio[1])

	classifier := NewLocalCountClassifier(ClassifierConfig{RadiusKm: radius, Threshold: 2})
	decision := classifier.Classify(anchor, models.ActiveSnapshot{trio[0], trio[1]}, true)

	assert.Equal(t, 2, decision.NeighborCount)
	assert.True(t, decision.IsCrowded)
}

func TestClassify_EmptySnapshot(t *testing.T) {
	classifier := NewLocalCountClassifier(ClassifierConfig{RadiusKm: 0.1, Threshold: 1})
	decision := classifier.Classify(models.Anchor{Latitude: 1, Longitude: 1}, nil, true)

	assert.Equal(t, 0, decision.NeighborCount)
	assert.False(t, decision.IsCrowded)
	assert.Empty(t, decision.Neighbors)
}

// Локальный подсчет не транзитивен: A и B рядом, но в толпе только A
func TestClassify_NotTransitive(t *testing.T) {
	a := participantAt("A", "1", 0, 0, testNow)
	b := participantAt("B", "2", 0, 0.0008, testNow)  // ~89 м восточнее A
	c := participantAt("C", "3", 0, -0.0008, testNow) // ~89 м западнее A, ~178 м от B
	snapshot := models.ActiveSnapshot{a, b, c}
	classifier := NewLocalCountClassifier(ClassifierConfig{RadiusKm: 0.1, Threshold: 3})

	assert.True(t, classifier.Classify(anchorOf(a), snapshot, true).IsCrowded)
	assert.False(t, classifier.Classify(anchorOf(b), snapshot, true).IsCrowded)
	assert.False(t, classifier.Classify(anchorOf(c), snapshot, true).IsCrowded)
}
