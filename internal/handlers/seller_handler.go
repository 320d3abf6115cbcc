package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/yaoyun631/team-me-crm-firebase/internal/csvexport"
	"github.com/yaoyun631/team-me-crm-firebase/internal/models"
	"github.com/yaoyun631/team-me-crm-firebase/internal/repositories"
	"github.com/yaoyun631/team-me-crm-firebase/internal/session"
	"github.com/yaoyun631/team-me-crm-firebase/internal/storage"
)

// SellerHandler mirrors BuyerHandler for sell-side leads.
type SellerHandler struct {
	sellerRepository   repositories.SellerRepository
	followupRepository repositories.FollowupRepository
	photoStore         storage.PhotoStore
}

// NewSellerHandler creates a new SellerHandler.
func NewSellerHandler(sellerRepo repositories.SellerRepository, followupRepo repositories.FollowupRepository, photoStore storage.PhotoStore) *SellerHandler {
	return &SellerHandler{
		sellerRepository:   sellerRepo,
		followupRepository: followupRepo,
		photoStore:         photoStore,
	}
}

// RegisterSellerRoutes registers seller routes on the login-gated group.
func (h *SellerHandler) RegisterSellerRoutes(g *echo.Group) {
	g.GET("/sellers", h.List)
	g.POST("/sellers/new", h.Create)
	g.GET("/sellers/download", h.DownloadCSV)
	g.GET("/sellers/:id", h.Detail)
	g.GET("/sellers/:id/edit", h.EditForm)
	g.POST("/sellers/:id/edit", h.Edit)
	g.POST("/sellers/:id/delete", h.Delete)
	g.POST("/sellers/:id/followup", h.AddFollowup)
	g.GET("/sellers/:id/followup/:fid/edit", h.EditFollowupForm)
	g.POST("/sellers/:id/followup/:fid/edit", h.EditFollowup)
	g.POST("/sellers/:id/followup/:fid/delete", h.DeleteFollowup)
}

// List renders the seller list.
func (h *SellerHandler) List(c echo.Context) error {
	filter := models.SellerFilter{
		Q:     formValue(c, "q"),
		Level: formValue(c, "level"),
		Stage: formValue(c, "stage"),
	}
	sortBy := c.QueryParam("sort_by")
	if sortBy == "" {
		sortBy = models.SortCreatedAtDesc
	}

	sellers, err := h.sellerRepository.ListSellers(c.Request().Context())
	if err != nil {
		return err
	}
	sellers = models.FilterSellers(sellers, filter)
	models.SortSellers(sellers, sortBy)

	return render(c, "sellers.html", map[string]interface{}{
		"Sellers": sellers,
		"Q":       filter.Q,
		"Level":   filter.Level,
		"Stage":   filter.Stage,
		"SortBy":  sortBy,
	})
}

// Create adds a seller from the quick-create form.
func (h *SellerHandler) Create(c echo.Context) error {
	form := sellerFormFromRequest(c)

	if form.Name == "" {
		session.AddFlash(c, "賣方姓名必填", "danger")
		return c.Redirect(http.StatusFound, "/sellers")
	}
	if err := validator.New().Struct(form); err != nil {
		session.AddFlash(c, "欄位值不正確", "danger")
		return c.Redirect(http.StatusFound, "/sellers")
	}

	identity := session.CurrentIdentity(c)
	fields := form.Fields()
	fields["created_at"] = models.NowISO()
	fields["created_by_id"] = identity.UserID
	fields["created_by_name"] = identity.UserName

	if _, err := h.sellerRepository.CreateSeller(c.Request().Context(), fields); err != nil {
		return err
	}

	session.AddFlash(c, "已新增賣方", "success")
	return c.Redirect(http.StatusFound, "/sellers")
}

// Detail renders one seller with its contact log.
func (h *SellerHandler) Detail(c echo.Context) error {
	seller, err := h.sellerRepository.GetSeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這位賣方", "danger")
			return c.Redirect(http.StatusFound, "/sellers")
		}
		return err
	}

	followups, err := h.followupRepository.ListByParent(c.Request().Context(), seller.ID)
	if err != nil {
		return err
	}
	models.SortFollowups(followups)

	return render(c, "seller_detail.html", map[string]interface{}{
		"Seller":    seller,
		"Followups": followups,
	})
}

// EditForm renders the edit page.
func (h *SellerHandler) EditForm(c echo.Context) error {
	seller, err := h.sellerRepository.GetSeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這位賣方", "danger")
			return c.Redirect(http.StatusFound, "/sellers")
		}
		return err
	}
	return render(c, "seller_edit.html", map[string]interface{}{"Seller": seller})
}

// Edit applies an edit submission with photo reconciliation.
func (h *SellerHandler) Edit(c echo.Context) error {
	seller, err := h.sellerRepository.GetSeller(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這位賣方", "danger")
			return c.Redirect(http.StatusFound, "/sellers")
		}
		return err
	}

	form := sellerFormFromRequest(c)
	if form.Name == "" {
		session.AddFlash(c, "姓名為必填", "danger")
		form.Apply(seller)
		return render(c, "seller_edit.html", map[string]interface{}{"Seller": seller})
	}
	if err := validator.New().Struct(form); err != nil {
		session.AddFlash(c, "欄位值不正確", "danger")
		form.Apply(seller)
		return render(c, "seller_edit.html", map[string]interface{}{"Seller": seller})
	}

	existing := seller.Photos()
	removeIdx := deleteIndexes(c)
	added := uploadPhotos(c, h.photoStore, "seller_photos", seller.ID)
	merged := storage.ReconcilePhotos(existing, removeIdx, added)
	for _, url := range storage.RemovedPhotos(existing, removeIdx) {
		h.photoStore.DeleteByURL(c.Request().Context(), url)
	}

	identity := session.CurrentIdentity(c)
	fields := form.Fields()
	fields["photo_urls"] = merged
	fields["photo_url"] = firstOrEmpty(merged)
	fields["updated_at"] = models.NowISO()
	fields["updated_by_id"] = identity.UserID
	fields["updated_by_name"] = identity.UserName

	if err := h.sellerRepository.UpdateSeller(c.Request().Context(), seller.ID, fields); err != nil {
		return err
	}

	session.AddFlash(c, "已更新賣方資料", "success")
	return c.Redirect(http.StatusFound, "/sellers/"+seller.ID)
}

// Delete removes the seller and its followups.
func (h *SellerHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	if seller, err := h.sellerRepository.GetSeller(ctx, id); err == nil {
		for _, url := range seller.Photos() {
			h.photoStore.DeleteByURL(ctx, url)
		}
	}

	if err := h.followupRepository.DeleteByParent(ctx, id); err != nil {
		return err
	}
	if err := h.sellerRepository.DeleteSeller(ctx, id); err != nil {
		return err
	}

	session.AddFlash(c, "已刪除賣方與相關追蹤紀錄", "info")
	return c.Redirect(http.StatusFound, "/sellers")
}

// AddFollowup appends a contact-log entry to the seller.
func (h *SellerHandler) AddFollowup(c echo.Context) error {
	id := c.Param("id")
	form := followupFormFromRequest(c)
	identity := session.CurrentIdentity(c)

	fields := form.Fields()
	fields["created_at"] = models.NowISO()
	fields["created_by_id"] = identity.UserID
	fields["created_by_name"] = identity.UserName

	if _, err := h.followupRepository.CreateFollowup(c.Request().Context(), id, fields); err != nil {
		return err
	}

	session.AddFlash(c, "已新增追蹤紀錄", "success")
	return c.Redirect(http.StatusFound, "/sellers/"+id)
}

// EditFollowupForm renders the followup edit page.
func (h *SellerHandler) EditFollowupForm(c echo.Context) error {
	id := c.Param("id")
	followup, err := h.followupRepository.GetFollowup(c.Request().Context(), c.Param("fid"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這筆追蹤紀錄", "danger")
			return c.Redirect(http.StatusFound, "/sellers/"+id)
		}
		return err
	}
	return render(c, "seller_followup_edit.html", map[string]interface{}{
		"ParentID": id,
		"Followup": followup,
	})
}

// EditFollowup applies a followup edit.
func (h *SellerHandler) EditFollowup(c echo.Context) error {
	id := c.Param("id")
	fid := c.Param("fid")

	if _, err := h.followupRepository.GetFollowup(c.Request().Context(), fid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這筆追蹤紀錄", "danger")
			return c.Redirect(http.StatusFound, "/sellers/"+id)
		}
		return err
	}

	form := followupFormFromRequest(c)
	if err := h.followupRepository.UpdateFollowup(c.Request().Context(), fid, form.Fields()); err != nil {
		return err
	}

	session.AddFlash(c, "已更新追蹤紀錄", "success")
	return c.Redirect(http.StatusFound, "/sellers/"+id)
}

// DeleteFollowup removes one followup.
func (h *SellerHandler) DeleteFollowup(c echo.Context) error {
	id := c.Param("id")
	if err := h.followupRepository.DeleteFollowup(c.Request().Context(), c.Param("fid")); err != nil {
		return err
	}
	session.AddFlash(c, "已刪除追蹤紀錄", "info")
	return c.Redirect(http.StatusFound, "/sellers/"+id)
}

// DownloadCSV streams the whole collection as a spreadsheet.
func (h *SellerHandler) DownloadCSV(c echo.Context) error {
	sellers, err := h.sellerRepository.ListSellers(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := csvexport.WriteSellers(&buf, sellers); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", "sellers.csv"))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// sellerFormFromRequest reads the trimmed seller fields out of the form.
func sellerFormFromRequest(c echo.Context) *models.SellerForm {
	return &models.SellerForm{
		Name:            formValue(c, "name"),
		Phone:           formValue(c, "phone"),
		Email:           formValue(c, "email"),
		LineID:          formValue(c, "line_id"),
		Address:         formValue(c, "address"),
		PropertyType:    formValue(c, "property_type"),
		Level:           formValue(c, "level"),
		Stage:           formValue(c, "stage"),
		Reason:          formValue(c, "reason"),
		ExpectedPrice:   formValue(c, "expected_price"),
		MinPrice:        formValue(c, "min_price"),
		Timeline:        formValue(c, "timeline"),
		OccupancyStatus: formValue(c, "occupancy_status"),
		ContractEndDate: formValue(c, "contract_end_date"),
		Note:            formValue(c, "note"),
	}
}
