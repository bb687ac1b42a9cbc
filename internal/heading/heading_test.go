package heading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"zero", 0, 0},
		{"in range", 123.4, 123.4},
		{"exactly 360", 360, 0},
		{"above 360", 725, 5},
		{"negative", -90, 270},
		{"large negative", -725, 355},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Normalize(tt.input), 1e-9)
		})
	}
}

func TestNormalize_AlwaysInRange(t *testing.T) {
	for _, v := range []float64{-1000, -360.5, -0.001, 0, 179.9, 360, 360.001, 9999} {
		got := Normalize(v)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 360.0)
	}
}

func TestShortestDelta(t *testing.T) {
	// Через границу 0/360 разница короткая, а не через 180
	assert.InDelta(t, 20.0, ShortestDelta(350, 10), 1e-9)
	assert.InDelta(t, -20.0, ShortestDelta(10, 350), 1e-9)
	assert.InDelta(t, 90.0, ShortestDelta(0, 90), 1e-9)
	assert.InDelta(t, -180.0, ShortestDelta(0, 180), 1e-9)
}

func TestSmooth_CrossesWrapBoundary(t *testing.T) {
	// С 350 на 10 фильтр должен идти через 0/360
	got := Smooth(350, 10)
	assert.InDelta(t, 354.0, got, 1e-9)

	// И обратно
	got = Smooth(10, 350)
	assert.InDelta(t, 6.0, got, 1e-9)
}

func TestSmooth_PlainCase(t *testing.T) {
	// prev=100, next=110: 100 + 0.2*10 = 102
	assert.InDelta(t, 102.0, Smooth(100, 110), 1e-9)
}
