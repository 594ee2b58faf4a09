package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorSampler(t *testing.T) {
	sampler := NewErrorSampler(10)

	count, ok := sampler.Sample("press-feed")
	assert.True(t, ok, "first failure is logged")
	assert.Equal(t, 1, count)

	for i := 2; i <= 9; i++ {
		_, ok := sampler.Sample("press-feed")
		assert.False(t, ok, "occurrence %d should be sampled out", i)
	}

	count, ok = sampler.Sample("press-feed")
	assert.True(t, ok, "10th failure is logged")
	assert.Equal(t, 10, count)
	assert.Equal(t, 10, sampler.Count("press-feed"))

	sampler.Reset("press-feed")
	assert.Equal(t, 0, sampler.Count("press-feed"))
	count, ok = sampler.Sample("press-feed")
	assert.True(t, ok, "a recovered source logs its next failure again")
	assert.Equal(t, 1, count)
}

func TestErrorSamplerMultipleKeys(t *testing.T) {
	sampler := NewErrorSampler(5)

	sampler.Sample("feed_a")
	sampler.Sample("feed_b")
	sampler.Sample("feed_b")

	assert.Equal(t, 1, sampler.Count("feed_a"))
	assert.Equal(t, 2, sampler.Count("feed_b"))

	sampler.Reset("feed_b")
	assert.Equal(t, 1, sampler.Count("feed_a"))
	assert.Zero(t, sampler.Count("feed_b"))
}

func TestNewErrorSampler_DefaultInterval(t *testing.T) {
	sampler := NewErrorSampler(0)
	for i := 1; i < 10; i++ {
		sampler.Sample("k")
	}
	_, ok := sampler.Sample("k")
	assert.True(t, ok)
}
