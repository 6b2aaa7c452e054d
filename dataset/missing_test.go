package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMissing(t *testing.T) {
	missing := []string{"", " ", "   ", "\t", "_", "nan", "NaN", "None", "NULL", "N/A", " nan "}
	for _, v := range missing {
		assert.True(t, IsMissing(v), "IsMissing(%q)", v)
	}

	present := []string{"0", "Paris", "na", "_x", "none of the above", "-"}
	for _, v := range present {
		assert.False(t, IsMissing(v), "IsMissing(%q)", v)
	}
}

func TestIsMissingValue(t *testing.T) {
	var nilStr *string
	s := "Paris"

	assert.True(t, IsMissingValue(nil))
	assert.True(t, IsMissingValue(math.NaN()))
	assert.True(t, IsMissingValue(float32(math.NaN())))
	assert.True(t, IsMissingValue(nilStr))
	assert.True(t, IsMissingValue("nan"))
	assert.False(t, IsMissingValue(&s))
	assert.False(t, IsMissingValue(0.0))
	assert.False(t, IsMissingValue(42))
}
