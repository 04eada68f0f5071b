package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/assembly/internal/domain"
)

func TestClassifyGroup(t *testing.T) {
	tests := []struct {
		name   string
		option domain.AssemblyOption
		want   domain.GroupType
	}{
		{
			name: "one of one is single",
			option: domain.AssemblyOption{
				Composition: &domain.Composition{MinQuantity: 1, MaxQuantity: 1, Items: []domain.CompositionItem{{ID: "a", MaxQuantity: 1}}},
			},
			want: domain.GroupTypeSingle,
		},
		{
			name: "capacity equals item count with unit caps is toggle",
			option: domain.AssemblyOption{
				Composition: &domain.Composition{
					MinQuantity: 0,
					MaxQuantity: 2,
					Items: []domain.CompositionItem{
						{ID: "a", MaxQuantity: 1},
						{ID: "b", MaxQuantity: 1},
					},
				},
			},
			want: domain.GroupTypeToggle,
		},
		{
			name: "free quantities is multiple",
			option: domain.AssemblyOption{
				Composition: &domain.Composition{
					MinQuantity: 0,
					MaxQuantity: 5,
					Items: []domain.CompositionItem{
						{ID: "a", MaxQuantity: 3},
						{ID: "b", MaxQuantity: 2},
					},
				},
			},
			want: domain.GroupTypeMultiple,
		},
		{
			name: "boolean input domain is toggle",
			option: domain.AssemblyOption{
				InputValues: &domain.InputValues{Domain: []string{"true", "false"}, Label: "Gift wrap"},
			},
			want: domain.GroupTypeToggle,
		},
		{
			name: "free input domain is single",
			option: domain.AssemblyOption{
				InputValues: &domain.InputValues{Domain: []string{"red", "green", "blue"}, Label: "Color"},
			},
			want: domain.GroupTypeSingle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyGroup(&tt.option))
		})
	}
}
