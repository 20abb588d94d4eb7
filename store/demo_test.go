package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mgarquitectura/api-gateway/models"
)

func TestDemo_ListPublished(t *testing.T) {
	d := NewDemo()

	projects, err := d.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 3)
	for _, p := range projects {
		assert.Equal(t, models.StatusPublished, p.Status)
		assert.NotEmpty(t, p.Images)
	}
}

func TestDemo_GetByID(t *testing.T) {
	d := NewDemo()

	p, err := d.GetByID(context.Background(), "demo-2")
	require.NoError(t, err)
	assert.Equal(t, "Oficinas Corporativas Minimalistas", p.Title)
	require.NotNil(t, p.CoverImage())
	assert.Equal(t, "img-3", p.CoverImage().ID)

	_, err = d.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDemo_ListSlides(t *testing.T) {
	d := NewDemo()

	slides, err := d.ListSlides(context.Background())
	require.NoError(t, err)
	require.Len(t, slides, 3)
	for i, s := range slides {
		assert.Equal(t, i+1, s.Order)
	}
	assert.Equal(t, "Diseño de Interiores", slides[0].Title)
}

func TestDemo_ListAllReturnsCopy(t *testing.T) {
	d := NewDemo()

	all, err := d.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)

	all[0].Title = "mutated"
	again, err := d.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Casa Moderna en el Bosque", again[0].Title)
}
