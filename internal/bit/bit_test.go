package bit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var samples = []uint64{0, 1, 0xAAAAAAAAAAAAAAAA, 0x5555555555555555, math.MaxUint64, 1 << 63, 42}

func TestSet(t *testing.T) {
	for _, v := range samples {
		for p := 0; p < 64; p++ {
			assert.Equal(t, uint64(1), Check(Set(v, p), p), "v=%x p=%d", v, p)
		}
	}
}

func TestClear(t *testing.T) {
	for _, v := range samples {
		for p := 0; p < 64; p++ {
			assert.Equal(t, uint64(0), Check(Clear(v, p), p), "v=%x p=%d", v, p)
		}
	}
}

func TestToggle_TwiceRestores(t *testing.T) {
	for _, v := range samples {
		for p := 0; p < 64; p++ {
			assert.Equal(t, v, Toggle(Toggle(v, p), p), "v=%x p=%d", v, p)
			assert.NotEqual(t, v, Toggle(v, p))
		}
	}
}

func TestSet_LeavesOtherBits(t *testing.T) {
	assert.Equal(t, uint64(0b1011), Set(0b0011, 3))
	assert.Equal(t, uint64(0b0011), Set(0b0011, 1))
	assert.Equal(t, uint64(0b0001), Clear(0b0011, 1))
	assert.Equal(t, uint64(0b0111), Toggle(0b0011, 2))
}

func TestCheck_HighBit(t *testing.T) {
	assert.Equal(t, uint64(1), Check(1<<63, 63))
	assert.Equal(t, uint64(0), Check(1<<63, 62))
}
