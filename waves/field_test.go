package waves

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// tagged marks each buffer with its own index so roles can be tracked.
func tagged(f *field) {
	for i := 0; i < f.count; i++ {
		for j := range f.bufs[i] {
			f.bufs[i][j] = float32(i)
		}
	}
}

func TestFieldRotateThreeRoles(t *testing.T) {
	f := newField(4, 3)
	tagged(f)

	f.rotate()
	assert.Equal(t, float32(1), f.prev()[0])
	assert.Equal(t, float32(2), f.curr()[0])
	assert.Equal(t, float32(0), f.next()[0])

	f.rotate()
	f.rotate()
	assert.Equal(t, [3]int{0, 1, 2}, f.roles)
}

func TestFieldRolesNeverAlias(t *testing.T) {
	f := newField(4, 3)
	for i := 0; i < 5; i++ {
		r := f.roles
		assert.NotEqual(t, r[rolePrev], r[roleCurr])
		assert.NotEqual(t, r[roleCurr], r[roleNext])
		assert.NotEqual(t, r[rolePrev], r[roleNext])
		f.rotate()
	}
}

func TestFieldRotateTwoRoles(t *testing.T) {
	f := newField(4, 2)
	tagged(f)
	assert.Nil(t, f.next())

	f.rotate()
	assert.Equal(t, float32(1), f.prev()[0])
	assert.Equal(t, float32(0), f.curr()[0])
}

func TestFieldLoad(t *testing.T) {
	f := newField(3, 3)
	tagged(f)
	f.rotate()

	f.load([]float32{7, 8, 9})
	assert.Equal(t, []float32{7, 8, 9}, f.curr())
	assert.Equal(t, []float32{0, 0, 0}, f.prev())
	assert.Equal(t, []float32{0, 0, 0}, f.next())
}
