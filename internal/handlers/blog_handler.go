package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yaoyun631/team-me-crm-firebase/internal/csvexport"
	"github.com/yaoyun631/team-me-crm-firebase/internal/models"
	"github.com/yaoyun631/team-me-crm-firebase/internal/repositories"
	"github.com/yaoyun631/team-me-crm-firebase/internal/session"
	"github.com/yaoyun631/team-me-crm-firebase/internal/storage"
)

// BlogHandler handles the CMS pages and the inline editor image upload.
type BlogHandler struct {
	postRepository repositories.BlogPostRepository
	photoStore     storage.PhotoStore
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(postRepo repositories.BlogPostRepository, photoStore storage.PhotoStore) *BlogHandler {
	return &BlogHandler{postRepository: postRepo, photoStore: photoStore}
}

// RegisterBlogRoutes registers blog routes on the login-gated group.
func (h *BlogHandler) RegisterBlogRoutes(g *echo.Group) {
	g.GET("/blog", h.List)
	g.GET("/blog/", h.List)
	g.GET("/blog/new", h.NewForm)
	g.POST("/blog/new", h.Create)
	g.GET("/blog/download", h.DownloadCSV)
	g.POST("/blog/upload_image", h.UploadImage)
	g.GET("/blog/:id", h.Detail)
	g.GET("/blog/:id/edit", h.EditForm)
	g.POST("/blog/:id/edit", h.Edit)
	g.POST("/blog/:id/delete", h.Delete)
}

// List renders the article list with keyword search over title, plain
// text, tags and categories.
func (h *BlogHandler) List(c echo.Context) error {
	filter := models.PostFilter{
		Q:        formValue(c, "q"),
		Category: formValue(c, "category"),
		Status:   formValue(c, "status"),
	}
	sortBy := c.QueryParam("sort_by")
	if sortBy == "" {
		sortBy = models.SortCreatedAtDesc
	}

	posts, err := h.postRepository.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	allCategories := models.AllCategories(posts)

	posts = models.FilterPosts(posts, filter)
	models.SortPosts(posts, sortBy)

	return render(c, "blog_list.html", map[string]interface{}{
		"Posts":         posts,
		"Q":             filter.Q,
		"Category":      filter.Category,
		"Status":        filter.Status,
		"SortBy":        sortBy,
		"AllCategories": allCategories,
		"AllStatuses":   models.AllStatuses(posts),
	})
}

// NewForm renders an empty article form.
func (h *BlogHandler) NewForm(c echo.Context) error {
	allCategories, err := h.allCategories(c)
	if err != nil {
		return err
	}
	return render(c, "blog_form.html", map[string]interface{}{
		"Post":          &models.BlogPost{},
		"Mode":          "new",
		"Action":        "/blog/new",
		"AllCategories": allCategories,
	})
}

// Create adds an article. A blank title re-renders the form with the
// submitted values preserved and writes nothing.
func (h *BlogHandler) Create(c echo.Context) error {
	post, fields := h.postFromForm(c)

	if post.Title == "" {
		allCategories, err := h.allCategories(c)
		if err != nil {
			return err
		}
		session.AddFlash(c, "標題為必填", "danger")
		return render(c, "blog_form.html", map[string]interface{}{
			"Post":          post,
			"Mode":          "new",
			"Action":        "/blog/new",
			"AllCategories": allCategories,
		})
	}

	identity := session.CurrentIdentity(c)
	now := models.NowISO()
	fields["created_at"] = now
	fields["created_by_id"] = identity.UserID
	fields["created_by_name"] = identity.UserName
	fields["updated_at"] = now
	fields["updated_by_id"] = identity.UserID
	fields["updated_by_name"] = identity.UserName

	if _, err := h.postRepository.CreatePost(c.Request().Context(), fields); err != nil {
		return err
	}

	session.AddFlash(c, "已新增文章", "success")
	return c.Redirect(http.StatusFound, "/blog/")
}

// Detail renders one article with its stored HTML.
func (h *BlogHandler) Detail(c echo.Context) error {
	post, err := h.postRepository.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這篇文章", "danger")
			return c.Redirect(http.StatusFound, "/blog/")
		}
		return err
	}
	return render(c, "blog_detail.html", map[string]interface{}{"Post": post})
}

// EditForm renders the edit page.
func (h *BlogHandler) EditForm(c echo.Context) error {
	post, err := h.postRepository.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這篇文章", "danger")
			return c.Redirect(http.StatusFound, "/blog/")
		}
		return err
	}
	allCategories, err := h.allCategories(c)
	if err != nil {
		return err
	}
	return render(c, "blog_form.html", map[string]interface{}{
		"Post":          post,
		"Mode":          "edit",
		"Action":        "/blog/" + post.ID + "/edit",
		"AllCategories": allCategories,
	})
}

// Edit applies an edit submission.
func (h *BlogHandler) Edit(c echo.Context) error {
	stored, err := h.postRepository.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這篇文章", "danger")
			return c.Redirect(http.StatusFound, "/blog/")
		}
		return err
	}

	post, fields := h.postFromForm(c)
	post.ID = stored.ID

	if post.Title == "" {
		allCategories, err := h.allCategories(c)
		if err != nil {
			return err
		}
		session.AddFlash(c, "標題為必填", "danger")
		return render(c, "blog_form.html", map[string]interface{}{
			"Post":          post,
			"Mode":          "edit",
			"Action":        "/blog/" + stored.ID + "/edit",
			"AllCategories": allCategories,
		})
	}

	identity := session.CurrentIdentity(c)
	fields["updated_at"] = models.NowISO()
	fields["updated_by_id"] = identity.UserID
	fields["updated_by_name"] = identity.UserName

	if err := h.postRepository.UpdatePost(c.Request().Context(), stored.ID, fields); err != nil {
		return err
	}

	session.AddFlash(c, "已更新文章", "success")
	return c.Redirect(http.StatusFound, "/blog/"+stored.ID)
}

// Delete removes the article.
func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.postRepository.DeletePost(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	session.AddFlash(c, "已刪除文章", "info")
	return c.Redirect(http.StatusFound, "/blog/")
}

// UploadImage receives an inline editor image and returns the public URL
// as JSON. Unlike the record pages this is an XHR endpoint, so failures
// are JSON error objects instead of flash banners.
func (h *BlogHandler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "沒有收到圖片"})
	}
	if !storage.AllowedExt(fh.Filename) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "不支援的圖片格式"})
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "圖片讀取失敗"})
	}
	defer f.Close()

	url, err := h.photoStore.Upload(c.Request().Context(), storage.EditorObjectPath(), f)
	if err != nil {
		c.Logger().Errorf("editor image upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "圖片上傳失敗"})
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

// DownloadCSV streams the article metadata as a spreadsheet.
func (h *BlogHandler) DownloadCSV(c echo.Context) error {
	posts, err := h.postRepository.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := csvexport.WritePosts(&buf, posts); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", "blog_posts.csv"))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// postFromForm reads the article form: trimmed scalar fields, the merged
// category list, and the derived plain text.
func (h *BlogHandler) postFromForm(c echo.Context) (*models.BlogPost, map[string]interface{}) {
	var selected []string
	if params, err := c.FormParams(); err == nil {
		selected = params["categories"]
	}
	categories := models.MergeCategories(selected, formValue(c, "new_categories"))

	post := &models.BlogPost{
		Title:      formValue(c, "title"),
		Content:    formValue(c, "content"),
		Categories: categories,
		Status:     formValue(c, "status"),
		Tags:       formValue(c, "tags"),
		Project:    formValue(c, "project"),
	}
	post.ContentText = models.StripHTML(post.Content)

	fields := map[string]interface{}{
		"title":        post.Title,
		"content":      post.Content,
		"content_text": post.ContentText,
		"categories":   post.Categories,
		"status":       post.Status,
		"tags":         post.Tags,
		"project":      post.Project,
	}
	return post, fields
}

// allCategories fetches the category union used by the form checkboxes.
func (h *BlogHandler) allCategories(c echo.Context) ([]string, error) {
	posts, err := h.postRepository.ListPosts(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return models.AllCategories(posts), nil
}
