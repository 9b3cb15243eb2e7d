package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateArticleRequest_Validate(t *testing.T) {
	price := decimal.RequireFromString("10.5")

	require.NoError(t, CreateArticleRequest{Name: "n", Description: "d", Price: &price}.Validate())

	err := CreateArticleRequest{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name: cannot be blank")
	assert.Contains(t, err.Error(), "price: is required")
}

func TestReplaceArticleRequest_RequiresVersionAndID(t *testing.T) {
	price := decimal.RequireFromString("1")

	err := ReplaceArticleRequest{Name: "n", Description: "d", Price: &price}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id: is required")
	assert.Contains(t, err.Error(), "version: is required")
}

func TestUpdateArticleRequest_ApplyToCopiesOnlyPresentFields(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &Article{
		ID: 3, Name: "old", Description: "keep", Price: decimal.RequireFromString("2"),
		Version: 4, CreatedAt: created, CreatedByID: 1, UpdatedByID: 1,
	}
	name := "new"

	UpdateArticleRequest{Name: &name}.ApplyTo(a)

	assert.Equal(t, "new", a.Name)
	assert.Equal(t, "keep", a.Description)
	assert.True(t, a.Price.Equal(decimal.RequireFromString("2")))
	assert.Equal(t, 4, a.Version)
	assert.Equal(t, int64(1), a.CreatedByID)
	assert.Equal(t, created, a.CreatedAt)
}

func TestUpdateArticleRequest_IgnoresProtectedJSONFields(t *testing.T) {
	var req UpdateArticleRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","createdById":99,"version":50,"createdAt":"2000-01-01T00:00:00Z"}`), &req))

	a := &Article{ID: 1, Version: 2, CreatedByID: 7}
	req.ApplyTo(a)

	assert.Equal(t, "x", a.Name)
	assert.Equal(t, 2, a.Version)
	assert.Equal(t, int64(7), a.CreatedByID)
}

func TestUpdateArticleRequest_RejectsBlankName(t *testing.T) {
	empty := ""
	assert.Error(t, UpdateArticleRequest{Name: &empty}.Validate())
	assert.NoError(t, UpdateArticleRequest{}.Validate())
}

func TestArticleView_PriceIsJSONNumber(t *testing.T) {
	a := &Article{ID: 1, Price: decimal.RequireFromString("10.5")}

	raw, err := json.Marshal(a.ToView())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"price":10.5`)
}

func TestPriceRule_BoundsMatchColumn(t *testing.T) {
	cases := []struct {
		price string
		ok    bool
	}{
		{"0", true},
		{"10.50", true},
		{"-3.25", true},
		{"99999999.99", true},
		{"100000000", false},
		{"-100000000", false},
		{"1000000000000", false},
		{"1.005", false},
	}
	for _, tc := range cases {
		t.Run(tc.price, func(t *testing.T) {
			p := decimal.RequireFromString(tc.price)

			create := CreateArticleRequest{Name: "n", Description: "d", Price: &p}.Validate()
			update := UpdateArticleRequest{Price: &p}.Validate()
			id, version := int64(1), 1
			replace := ReplaceArticleRequest{ID: &id, Name: "n", Description: "d", Price: &p, Version: &version}.Validate()

			if tc.ok {
				assert.NoError(t, create)
				assert.NoError(t, update)
				assert.NoError(t, replace)
				return
			}
			assert.ErrorContains(t, create, "price: ")
			assert.ErrorContains(t, update, "price: ")
			assert.ErrorContains(t, replace, "price: ")
		})
	}
}

func TestArticleRequests_RejectQuotedPrice(t *testing.T) {
	var create CreateArticleRequest
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"name":"n","description":"d","price":"12"}`), &create), errPriceNotNumber)

	var replace ReplaceArticleRequest
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"id":1,"name":"n","description":"d","price":"12","version":1}`), &replace), errPriceNotNumber)

	var update UpdateArticleRequest
	assert.ErrorIs(t, json.Unmarshal([]byte(`{"price":"12"}`), &update), errPriceNotNumber)

	require.NoError(t, json.Unmarshal([]byte(`{"name":"n","description":"d","price":12.5}`), &create))
	assert.Equal(t, "n", create.Name)
	assert.True(t, decimal.RequireFromString("12.5").Equal(*create.Price))

	update = UpdateArticleRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","price":null}`), &update))
	assert.Nil(t, update.Price)
}
