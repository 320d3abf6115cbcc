package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryListPrefersListOverLegacy(t *testing.T) {
	p := &BlogPost{Category: "舊分類", Categories: []string{"開箱", "教學"}}

	assert.Equal(t, []string{"開箱", "教學"}, p.CategoryList())
	// Read-time coercion only: the stored legacy value stays as written.
	assert.Equal(t, "舊分類", p.Category)
}

func TestCategoryListPromotesLegacyScalar(t *testing.T) {
	p := &BlogPost{Category: "教學"}

	assert.Equal(t, []string{"教學"}, p.CategoryList())
}

func TestCategoryListEmpty(t *testing.T) {
	p := &BlogPost{}

	assert.Nil(t, p.CategoryList())
}

func TestHasCategory(t *testing.T) {
	p := &BlogPost{Categories: []string{"開箱", "教學"}}

	assert.True(t, p.HasCategory("教學"))
	assert.False(t, p.HasCategory("信義區"))
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>今天帶看&nbsp;<b>三房</b></p>\n<p>屋況不錯</p>")

	assert.Equal(t, "今天帶看 三房 屋況不錯", got)
}

func TestStripHTMLDecodesEntities(t *testing.T) {
	assert.Equal(t, "A & B", StripHTML("A &amp; B"))
}

func TestMergeCategories(t *testing.T) {
	got := MergeCategories([]string{"開箱", "教學"}, " 教學 , 信義區 ,, 開箱")

	assert.Equal(t, []string{"開箱", "教學", "信義區"}, got)
}

func TestMergeCategoriesEmptyInputs(t *testing.T) {
	assert.Nil(t, MergeCategories(nil, ""))
}

func TestBuyerPhotosPrefersListOverLegacy(t *testing.T) {
	b := &Buyer{PhotoURL: "https://example.com/old.jpg", PhotoURLs: []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}}

	assert.Equal(t, []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}, b.Photos())
	assert.Equal(t, "https://example.com/old.jpg", b.PhotoURL)
}

func TestBuyerPhotosPromotesLegacyScalar(t *testing.T) {
	b := &Buyer{PhotoURL: "https://example.com/old.jpg"}

	assert.Equal(t, []string{"https://example.com/old.jpg"}, b.Photos())
}

func TestBuyerPhotosEmpty(t *testing.T) {
	assert.Nil(t, (&Buyer{}).Photos())
}
