package spectrum

import (
	"math"

	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/vmath"
)

// Kind is the classification family of a position
type Kind uint8

const (
	// KindOctant has no balanced axis, identity comes from the sign pattern
	KindOctant Kind = iota
	// KindConfused has exactly one balanced axis
	KindConfused
	// KindUncertain has exactly two balanced axes
	KindUncertain
	// KindEquilibrium has all three axes balanced
	KindEquilibrium
)

func (k Kind) String() string {
	switch k {
	case KindOctant:
		return "octant"
	case KindConfused:
		return "confused"
	case KindUncertain:
		return "uncertain"
	case KindEquilibrium:
		return "equilibrium"
	}
	return "unknown"
}

// Classification is the result of Classify
// Key is a sign pattern per axis: '+', '-' or '0' for balanced
type Classification struct {
	Kind Kind
	Key  string
	Name string
}

type octantDef struct {
	name  string
	color RGB
}

var octants = map[string]octantDef{
	"+++": {"Adaptive", RGB{100, 255, 200}},
	"++-": {"Chaotic", RGB{255, 100, 150}},
	"+-+": {"Intended", RGB{255, 150, 50}},
	"+--": {"Prepared", RGB{200, 100, 255}},
	"-++": {"Contented", RGB{100, 200, 255}},
	"-+-": {"Assertive", RGB{255, 80, 80}},
	"--+": {"Ordered", RGB{80, 140, 255}},
	"---": {"Guarded", RGB{150, 150, 100}},
}

// Degenerate classifications are drawn in fixed colours
var (
	ColorEquilibrium = RGB{160, 160, 160}
	ColorUncertain   = RGB{190, 180, 210}
	ColorConfused    = RGB{205, 190, 170}
)

// Classify buckets a position by how many axes are balanced
// An axis is balanced when |v| <= BalanceThreshold
func Classify(v vmath.Vec3) Classification {
	var key [3]byte
	balanced := 0
	for i := 0; i < 3; i++ {
		switch c := v[i]; {
		case math.Abs(c) <= parameter.BalanceThreshold:
			key[i] = '0'
			balanced++
		case c > 0:
			key[i] = '+'
		default:
			key[i] = '-'
		}
	}

	switch balanced {
	case 3:
		return Classification{Kind: KindEquilibrium, Key: string(key[:]), Name: "Equilibrium"}
	case 2:
		return Classification{Kind: KindUncertain, Key: string(key[:]), Name: "Uncertain"}
	case 1:
		return Classification{Kind: KindConfused, Key: string(key[:]), Name: "Confused"}
	}

	k := string(key[:])
	return Classification{Kind: KindOctant, Key: k, Name: octants[k].name}
}

// OctantBaseColor returns the saturated colour of an octant key, ok is false for degenerate keys
func OctantBaseColor(key string) (RGB, bool) {
	def, ok := octants[key]
	return def.color, ok
}

// OctantIntensity is the normalized distance from origin in [0, 1]
func OctantIntensity(v vmath.Vec3) float64 {
	return vmath.Clamp01(v.Len() / parameter.OctantReferenceDistance)
}

// OctantFade maps intensity to the white-to-base blend factor
func OctantFade(intensity float64) float64 {
	return parameter.OctantFadeFloor + (1-parameter.OctantFadeFloor)*vmath.Clamp01(intensity)
}

// ClassColor returns the display colour of a classified position
// Standard octants fade toward white near the origin, degenerate kinds use fixed colours
func ClassColor(c Classification, v vmath.Vec3) RGB {
	switch c.Kind {
	case KindEquilibrium:
		return ColorEquilibrium
	case KindUncertain:
		return ColorUncertain
	case KindConfused:
		return ColorConfused
	}

	base, ok := OctantBaseColor(c.Key)
	if !ok {
		return ColorEquilibrium
	}
	return RGBWhite.Blend(base, OctantFade(OctantIntensity(v)))
}
