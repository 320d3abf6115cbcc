package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sellerFixture struct {
	e         *echo.Echo
	sellers   *fakeSellerRepo
	followups *fakeFollowupRepo
	photos    *fakePhotoStore
}

func newSellerFixture() *sellerFixture {
	f := &sellerFixture{
		e:         newTestEcho(),
		sellers:   newFakeSellerRepo(),
		followups: newFakeFollowupRepo(),
		photos:    &fakePhotoStore{},
	}
	NewSellerHandler(f.sellers, f.followups, f.photos).RegisterSellerRoutes(f.e.Group(""))
	return f
}

func TestCreateSeller(t *testing.T) {
	f := newSellerFixture()

	rec := doForm(f.e, http.MethodPost, "/sellers/new", url.Values{
		"name":           {"張先生"},
		"address":        {"台北市信義區松仁路1號"},
		"expected_price": {"3200"},
		"stage":          {"listed"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/sellers", rec.Header().Get("Location"))
	require.Len(t, f.sellers.docs, 1)
	for _, fields := range f.sellers.docs {
		assert.Equal(t, "張先生", fields["name"])
		assert.Equal(t, "台北市信義區松仁路1號", fields["address"])
		assert.Equal(t, "3200", fields["expected_price"])
		assert.NotEmpty(t, fields["created_at"])
	}
}

func TestCreateSellerBlankNameWritesNothing(t *testing.T) {
	f := newSellerFixture()

	rec := doForm(f.e, http.MethodPost, "/sellers/new", url.Values{"address": {"某地址"}})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Empty(t, f.sellers.docs)
}

func TestCreateSellerRejectsUnknownStage(t *testing.T) {
	f := newSellerFixture()

	rec := doForm(f.e, http.MethodPost, "/sellers/new", url.Values{
		"name":  {"張先生"},
		"stage": {"sold"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Empty(t, f.sellers.docs)
}

func TestSellerDetailNotFoundRedirects(t *testing.T) {
	f := newSellerFixture()

	rec := doForm(f.e, http.MethodGet, "/sellers/missing", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/sellers", rec.Header().Get("Location"))
}

func TestDeleteSellerCascadesFollowups(t *testing.T) {
	f := newSellerFixture()
	f.sellers.docs["s1"] = map[string]interface{}{"name": "張先生"}
	f.followups.add("s1", map[string]interface{}{"content": "約看屋"})
	keep := f.followups.add("s2", map[string]interface{}{"content": "別人的"})

	rec := doForm(f.e, http.MethodPost, "/sellers/s1/delete", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Empty(t, f.sellers.docs)
	require.Len(t, f.followups.docs, 1)
	assert.Contains(t, f.followups.docs, keep)
}

func TestDownloadSellersCSV(t *testing.T) {
	f := newSellerFixture()
	f.sellers.docs["s1"] = map[string]interface{}{"name": "張先生", "address": "台北市信義區"}

	rec := doForm(f.e, http.MethodGet, "/sellers/download", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "sellers.csv")
	body := rec.Body.String()
	assert.Contains(t, body, "物件地址")
	assert.Contains(t, body, "張先生")
}
