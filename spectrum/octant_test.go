package spectrum

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/reverie-spectrum/vmath"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		v        vmath.Vec3
		wantKind Kind
		wantKey  string
		wantName string
	}{
		{"Origin", vmath.Vec3{0, 0, 0}, KindEquilibrium, "000", "Equilibrium"},
		{"Threshold is balanced", vmath.Vec3{0.1, -0.1, 0.1}, KindEquilibrium, "000", "Equilibrium"},
		{"Two balanced", vmath.Vec3{0, 0.05, -40}, KindUncertain, "00-", "Uncertain"},
		{"One balanced", vmath.Vec3{12, 0, -3}, KindConfused, "+0-", "Confused"},
		{"Just past threshold", vmath.Vec3{0.11, 0.11, 0.11}, KindOctant, "+++", "Adaptive"},
		{"Chaotic", vmath.Vec3{10, 10, -10}, KindOctant, "++-", "Chaotic"},
		{"Intended", vmath.Vec3{10, -10, 10}, KindOctant, "+-+", "Intended"},
		{"Prepared", vmath.Vec3{10, -10, -10}, KindOctant, "+--", "Prepared"},
		{"Contented", vmath.Vec3{-10, 10, 10}, KindOctant, "-++", "Contented"},
		{"Assertive", vmath.Vec3{-10, 10, -10}, KindOctant, "-+-", "Assertive"},
		{"Ordered", vmath.Vec3{-10, -10, 10}, KindOctant, "--+", "Ordered"},
		{"Guarded", vmath.Vec3{-10, -10, -10}, KindOctant, "---", "Guarded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.v)
			assert.Equal(t, tt.wantKind, c.Kind)
			assert.Equal(t, tt.wantKey, c.Key)
			assert.Equal(t, tt.wantName, c.Name)
		})
	}
}

func TestClassifyTotal(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 5000; i++ {
		v := vmath.Vec3{}
		for a := 0; a < 3; a++ {
			// Mix wide values with values straddling the threshold
			if rng.IntN(2) == 0 {
				v[a] = (rng.Float64() - 0.5) * 0.4
			} else {
				v[a] = (rng.Float64() - 0.5) * 400
			}
		}
		c := Classify(v)
		require.Len(t, c.Key, 3)
		require.NotEmpty(t, c.Name)

		balanced := 0
		for a := 0; a < 3; a++ {
			if math.Abs(v[a]) <= 0.1 {
				balanced++
			}
		}
		require.Equal(t, Kind(balanced), c.Kind, "vector %v", v)
	}
}

func TestClassColorDegenerate(t *testing.T) {
	assert.Equal(t, ColorEquilibrium, ClassColor(Classify(vmath.Vec3{}), vmath.Vec3{}))
	assert.Equal(t, ColorUncertain, ClassColor(Classify(vmath.Vec3{50, 0, 0}), vmath.Vec3{50, 0, 0}))
	assert.Equal(t, ColorConfused, ClassColor(Classify(vmath.Vec3{50, 50, 0}), vmath.Vec3{50, 50, 0}))
}

func TestClassColorFade(t *testing.T) {
	base, ok := OctantBaseColor("+-+")
	require.True(t, ok)

	class := Classification{Kind: KindOctant, Key: "+-+"}

	// Far from origin renders the saturated base colour
	far := vmath.Vec3{200, -200, 200}
	assert.Equal(t, base, ClassColor(class, far))

	// At the origin the fade floor applies
	near := ClassColor(class, vmath.Vec3{})
	want := RGB{
		R: uint8(math.Round(255 + (float64(base.R)-255)*0.4)),
		G: uint8(math.Round(255 + (float64(base.G)-255)*0.4)),
		B: uint8(math.Round(255 + (float64(base.B)-255)*0.4)),
	}
	assert.InDelta(t, want.R, near.R, 1)
	assert.InDelta(t, want.G, near.G, 1)
	assert.InDelta(t, want.B, near.B, 1)
}

func TestClassColorFadeMonotonic(t *testing.T) {
	dir := vmath.Vec3{1, -1, 1}.Normalize()
	saturation := func(c RGB) int {
		return (255 - int(c.R)) + (255 - int(c.G)) + (255 - int(c.B))
	}

	for key := range octants {
		class := Classification{Kind: KindOctant, Key: key}
		prev := -1
		for d := 0.0; d <= 250; d += 0.5 {
			s := saturation(ClassColor(class, dir.Mul(d)))
			assert.GreaterOrEqual(t, s, prev, "octant %s at distance %.1f", key, d)
			prev = s
		}
	}
}

func TestOctantFadeClamped(t *testing.T) {
	assert.InDelta(t, 0.4, OctantFade(0), 1e-12)
	assert.InDelta(t, 1.0, OctantFade(1), 1e-12)
	assert.InDelta(t, 1.0, OctantFade(OctantIntensity(vmath.Vec3{1e9, 1e9, 1e9})), 1e-12)
	assert.InDelta(t, 0.4, OctantFade(-5), 1e-12)
}
