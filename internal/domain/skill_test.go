package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeEffectEqual(t *testing.T) {
	tests := []struct {
		name string
		a    NodeEffect
		b    NodeEffect
		want bool
	}{
		{
			name: "identical stat boost",
			a:    NodeEffect{Type: NodeStatBoost, StatBoost: &StatBoostEffect{Stat: StatAttack, Value: 5}},
			b:    NodeEffect{Type: NodeStatBoost, StatBoost: &StatBoostEffect{Stat: StatAttack, Value: 5}},
			want: true,
		},
		{
			name: "different stat boost value",
			a:    NodeEffect{Type: NodeStatBoost, StatBoost: &StatBoostEffect{Stat: StatAttack, Value: 5}},
			b:    NodeEffect{Type: NodeStatBoost, StatBoost: &StatBoostEffect{Stat: StatAttack, Value: 6}},
			want: false,
		},
		{
			name: "technique multiplier differs past display precision",
			a:    NodeEffect{Type: NodeTechnique, Technique: &TechniqueEffect{Name: "Power Slash", DamageMultiplier: 1.004}},
			b:    NodeEffect{Type: NodeTechnique, Technique: &TechniqueEffect{Name: "Power Slash", DamageMultiplier: 1.0049}},
			want: false,
		},
		{
			name: "different variant",
			a:    NodeEffect{Type: NodeStatBoost, StatBoost: &StatBoostEffect{Stat: StatAttack, Value: 5}},
			b:    NodeEffect{Type: NodePassive, Passive: &PassiveEffect{Effect: "parry_chance", Value: 0.05}},
			want: false,
		},
		{
			name: "one payload missing",
			a:    NodeEffect{Type: NodePassive, Passive: &PassiveEffect{Effect: "parry_chance", Value: 0.05}},
			b:    NodeEffect{Type: NodePassive},
			want: false,
		},
		{
			name: "both payloads missing",
			a:    NodeEffect{Type: NodePassive},
			b:    NodeEffect{Type: NodePassive},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equal(tt.b))
			assert.Equal(t, tt.want, tt.b.Equal(tt.a))
		})
	}
}
