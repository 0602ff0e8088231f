package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters(t *testing.T) {
	assert.InDelta(t, 0, DistanceMeters(-23.55, -46.63, -23.55, -46.63), 0.001)

	// Один градус по экватору примерно 111.2 км
	assert.InDelta(t, 111195, DistanceMeters(0, 0, 0, 1), 50)

	// Симметрия
	assert.InDelta(t, DistanceMeters(-23.55, -46.63, -22.90, -43.17), DistanceMeters(-22.90, -43.17, -23.55, -46.63), 0.001)
}
