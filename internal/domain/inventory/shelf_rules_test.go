package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

func TestMinimumQuantity_RedondeaHaciaArriba(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 5: 1, 6: 2, 10: 2, 11: 3, 30: 6, 50: 10}
	for in, want := range cases {
		assert.Equal(t, want, MinimumQuantity(in), "cantidad %d", in)
	}
}

func TestShelfLoad_SoloDelEstante(t *testing.T) {
	ps := []*entity.Placement{
		{ItemID: "a", ShelfID: "s1", Quantity: 10},
		{ItemID: "b", ShelfID: "s1", Quantity: 5},
		{ItemID: "a", ShelfID: "s2", Quantity: 7},
	}
	assert.Equal(t, 15, ShelfLoad(ps, "s1"))
	assert.Equal(t, 7, ShelfLoad(ps, "s2"))
	assert.Equal(t, 0, ShelfLoad(ps, "s3"))
}

func TestFits_LimiteExacto(t *testing.T) {
	s := &entity.Shelf{MaxCapacity: 50}
	assert.True(t, Fits(s, 30, 20))
	assert.False(t, Fits(s, 30, 25))
}

func TestOccupancy(t *testing.T) {
	assert.InDelta(t, 62.5, Occupancy(50, 80), 1e-9)
	assert.InDelta(t, 33.333333, Occupancy(20, 60), 1e-5)
	assert.Equal(t, 0.0, Occupancy(10, 0))
}
