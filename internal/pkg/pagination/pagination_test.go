package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paramsFor(t *testing.T, query string) *Params {
	t.Helper()

	app := fiber.New()
	var got *Params
	app.Get("/", func(c *fiber.Ctx) error {
		got = GetParams(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/?"+query, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestGetParams(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		p := paramsFor(t, "")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("OffsetFollowsPage", func(t *testing.T) {
		p := paramsFor(t, "page=3&limit=10")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 10, p.Limit)
		assert.Equal(t, 20, p.Offset)
	})

	t.Run("ClampsOutOfRange", func(t *testing.T) {
		p := paramsFor(t, "page=-2&limit=9999")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, MaxLimit, p.Limit)
	})

	t.Run("GarbageFallsBack", func(t *testing.T) {
		p := paramsFor(t, "page=abc&limit=xyz")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, DefaultLimit, p.Limit)
	})
}

func TestGetMeta(t *testing.T) {
	t.Run("PartialLastPage", func(t *testing.T) {
		m := GetMeta(&Params{Page: 2, Limit: 10}, 25)
		assert.Equal(t, 3, m.TotalPages)
		assert.True(t, m.HasNext)
		assert.True(t, m.HasPrev)
	})

	t.Run("EmptyResult", func(t *testing.T) {
		m := GetMeta(&Params{Page: 1, Limit: 10}, 0)
		assert.Equal(t, 0, m.TotalPages)
		assert.False(t, m.HasNext)
		assert.False(t, m.HasPrev)
	})

	t.Run("ExactFit", func(t *testing.T) {
		m := GetMeta(&Params{Page: 2, Limit: 10}, 20)
		assert.Equal(t, 2, m.TotalPages)
		assert.False(t, m.HasNext)
	})
}
