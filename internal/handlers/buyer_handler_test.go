package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type buyerFixture struct {
	e         *echo.Echo
	buyers    *fakeBuyerRepo
	followups *fakeFollowupRepo
	photos    *fakePhotoStore
}

func newBuyerFixture() *buyerFixture {
	f := &buyerFixture{
		e:         newTestEcho(),
		buyers:    newFakeBuyerRepo(),
		followups: newFakeFollowupRepo(),
		photos:    &fakePhotoStore{},
	}
	NewBuyerHandler(f.buyers, f.followups, f.photos).RegisterBuyerRoutes(f.e.Group(""))
	return f
}

func TestCreateBuyer(t *testing.T) {
	f := newBuyerFixture()

	rec := doForm(f.e, http.MethodPost, "/buyers/new", url.Values{
		"name":  {"王小明"},
		"phone": {"0912345678"},
		"stage": {"contact"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/buyers", rec.Header().Get("Location"))
	require.Len(t, f.buyers.docs, 1)
	for _, fields := range f.buyers.docs {
		assert.Equal(t, "王小明", fields["name"])
		assert.Equal(t, "contact", fields["stage"])
		assert.NotEmpty(t, fields["created_at"])
	}
}

func TestCreateBuyerBlankNameWritesNothing(t *testing.T) {
	f := newBuyerFixture()

	rec := doForm(f.e, http.MethodPost, "/buyers/new", url.Values{
		"name":  {"   "},
		"phone": {"0912345678"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/buyers", rec.Header().Get("Location"))
	assert.Empty(t, f.buyers.docs)
}

func TestCreateBuyerRejectsUnknownEnumValue(t *testing.T) {
	f := newBuyerFixture()

	rec := doForm(f.e, http.MethodPost, "/buyers/new", url.Values{
		"name":  {"王小明"},
		"level": {"Z"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Empty(t, f.buyers.docs)
}

func TestListBuyersFiltersByStage(t *testing.T) {
	f := newBuyerFixture()
	f.buyers.docs["b1"] = map[string]interface{}{"name": "王小明", "stage": "contact", "created_at": "2025-01-01T10:00:00"}
	f.buyers.docs["b2"] = map[string]interface{}{"name": "陳大文", "stage": "closed", "created_at": "2025-01-02T10:00:00"}

	rec := doForm(f.e, http.MethodGet, "/buyers?stage=contact", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "王小明")
	assert.NotContains(t, body, "陳大文")
}

func TestBuyerDetailNotFoundRedirects(t *testing.T) {
	f := newBuyerFixture()

	rec := doForm(f.e, http.MethodGet, "/buyers/missing", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/buyers", rec.Header().Get("Location"))
}

func TestBuyerDetailShowsFollowups(t *testing.T) {
	f := newBuyerFixture()
	f.buyers.docs["b1"] = map[string]interface{}{"name": "王小明", "created_at": "2025-01-01T10:00:00"}
	f.followups.add("b1", map[string]interface{}{"contact_time": "2025-01-02 10:00", "content": "電話確認預算"})

	rec := doForm(f.e, http.MethodGet, "/buyers/b1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "電話確認預算")
}

func TestEditBuyerBlankNameReRendersForm(t *testing.T) {
	f := newBuyerFixture()
	f.buyers.docs["b1"] = map[string]interface{}{"name": "王小明", "phone": "0912345678"}

	rec := doForm(f.e, http.MethodPost, "/buyers/b1/edit", url.Values{
		"name":  {""},
		"phone": {"0987654321"},
	})

	// Re-rendered form, not a redirect; submitted values preserved.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "0987654321")
	// The stored document is untouched.
	assert.Equal(t, "王小明", f.buyers.docs["b1"]["name"])
	assert.Equal(t, "0912345678", f.buyers.docs["b1"]["phone"])
}

func TestEditBuyerMergesFieldsAndStampsAudit(t *testing.T) {
	f := newBuyerFixture()
	f.buyers.docs["b1"] = map[string]interface{}{"name": "王小明", "created_at": "2025-01-01T10:00:00"}

	rec := doForm(f.e, http.MethodPost, "/buyers/b1/edit", url.Values{
		"name":  {"王小明"},
		"phone": {"0987654321"},
		"stage": {"viewing"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/buyers/b1", rec.Header().Get("Location"))
	doc := f.buyers.docs["b1"]
	assert.Equal(t, "0987654321", doc["phone"])
	assert.Equal(t, "viewing", doc["stage"])
	assert.NotEmpty(t, doc["updated_at"])
	// Merge semantics keep fields the form never writes.
	assert.Equal(t, "2025-01-01T10:00:00", doc["created_at"])
}

func TestEditBuyerRemovesCheckedPhotos(t *testing.T) {
	f := newBuyerFixture()
	f.buyers.docs["b1"] = map[string]interface{}{
		"name":       "王小明",
		"photo_urls": []string{"https://storage.googleapis.com/test-bucket/buyer_photos/u0.jpg", "https://storage.googleapis.com/test-bucket/buyer_photos/u1.jpg"},
	}

	rec := doForm(f.e, http.MethodPost, "/buyers/b1/edit", url.Values{
		"name":          {"王小明"},
		"delete_photos": {"1"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	doc := f.buyers.docs["b1"]
	assert.Equal(t, []string{"https://storage.googleapis.com/test-bucket/buyer_photos/u0.jpg"}, doc["photo_urls"])
	assert.Equal(t, "https://storage.googleapis.com/test-bucket/buyer_photos/u0.jpg", doc["photo_url"])
	assert.Equal(t, []string{"https://storage.googleapis.com/test-bucket/buyer_photos/u1.jpg"}, f.photos.deleted)
}

func TestEditBuyerPromotesLegacyPhotoField(t *testing.T) {
	f := newBuyerFixture()
	f.buyers.docs["b1"] = map[string]interface{}{
		"name":      "王小明",
		"photo_url": "https://storage.googleapis.com/test-bucket/buyer_photos/old.jpg",
	}

	doForm(f.e, http.MethodPost, "/buyers/b1/edit", url.Values{"name": {"王小明"}})

	doc := f.buyers.docs["b1"]
	assert.Equal(t, []string{"https://storage.googleapis.com/test-bucket/buyer_photos/old.jpg"}, doc["photo_urls"])
	assert.Equal(t, "https://storage.googleapis.com/test-bucket/buyer_photos/old.jpg", doc["photo_url"])
}

func TestDeleteBuyerCascadesFollowups(t *testing.T) {
	f := newBuyerFixture()
	f.buyers.docs["b1"] = map[string]interface{}{
		"name":       "王小明",
		"photo_urls": []string{"https://storage.googleapis.com/test-bucket/buyer_photos/u0.jpg"},
	}
	f.buyers.docs["b2"] = map[string]interface{}{"name": "陳大文"}
	f.followups.add("b1", map[string]interface{}{"content": "first"})
	f.followups.add("b1", map[string]interface{}{"content": "second"})
	other := f.followups.add("b2", map[string]interface{}{"content": "keep"})

	rec := doForm(f.e, http.MethodPost, "/buyers/b1/delete", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/buyers", rec.Header().Get("Location"))
	assert.NotContains(t, f.buyers.docs, "b1")
	assert.Contains(t, f.buyers.docs, "b2")
	require.Len(t, f.followups.docs, 1)
	assert.Contains(t, f.followups.docs, other)
	assert.Equal(t, []string{"https://storage.googleapis.com/test-bucket/buyer_photos/u0.jpg"}, f.photos.deleted)
}

func TestAddFollowupDefaultsContactTime(t *testing.T) {
	f := newBuyerFixture()
	f.buyers.docs["b1"] = map[string]interface{}{"name": "王小明"}

	rec := doForm(f.e, http.MethodPost, "/buyers/b1/followup", url.Values{
		"content": {"帶看信義區物件"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/buyers/b1", rec.Header().Get("Location"))
	require.Len(t, f.followups.docs, 1)
	for _, doc := range f.followups.docs {
		assert.Equal(t, "b1", doc.parentID)
		assert.Equal(t, "帶看信義區物件", doc.fields["content"])
		assert.NotEmpty(t, doc.fields["contact_time"])
	}
}

func TestEditFollowup(t *testing.T) {
	f := newBuyerFixture()
	f.buyers.docs["b1"] = map[string]interface{}{"name": "王小明"}
	fid := f.followups.add("b1", map[string]interface{}{"contact_time": "2025-01-02 10:00", "content": "舊內容"})

	rec := doForm(f.e, http.MethodPost, "/buyers/b1/followup/"+fid+"/edit", url.Values{
		"contact_time": {"2025-01-03 11:00"},
		"content":      {"新內容"},
	})

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "新內容", f.followups.docs[fid].fields["content"])
	assert.Equal(t, "2025-01-03 11:00", f.followups.docs[fid].fields["contact_time"])
}

func TestDeleteFollowup(t *testing.T) {
	f := newBuyerFixture()
	fid := f.followups.add("b1", map[string]interface{}{"content": "x"})

	rec := doForm(f.e, http.MethodPost, "/buyers/b1/followup/"+fid+"/delete", nil)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Empty(t, f.followups.docs)
}

func TestDownloadBuyersCSV(t *testing.T) {
	f := newBuyerFixture()
	f.buyers.docs["b1"] = map[string]interface{}{"name": "王小明", "phone": "0912345678"}

	rec := doForm(f.e, http.MethodGet, "/buyers/download", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "buyers.csv")
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "\uFEFF"))
	assert.Contains(t, body, "姓名")
	assert.Contains(t, body, "王小明")
}
