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

// BuyerHandler handles the buy-side lead pages: list/filter, create, edit
// with photo reconciliation, delete with followup cascade, the contact
// log, and the CSV download.
type BuyerHandler struct {
	buyerRepository    repositories.BuyerRepository
	followupRepository repositories.FollowupRepository
	photoStore         storage.PhotoStore
}

// NewBuyerHandler creates a new BuyerHandler.
func NewBuyerHandler(buyerRepo repositories.BuyerRepository, followupRepo repositories.FollowupRepository, photoStore storage.PhotoStore) *BuyerHandler {
	return &BuyerHandler{
		buyerRepository:    buyerRepo,
		followupRepository: followupRepo,
		photoStore:         photoStore,
	}
}

// RegisterBuyerRoutes registers buyer routes on the login-gated group.
func (h *BuyerHandler) RegisterBuyerRoutes(g *echo.Group) {
	g.GET("/buyers", h.List)
	g.POST("/buyers/new", h.Create)
	g.GET("/buyers/download", h.DownloadCSV)
	g.GET("/buyers/:id", h.Detail)
	g.GET("/buyers/:id/edit", h.EditForm)
	g.POST("/buyers/:id/edit", h.Edit)
	g.POST("/buyers/:id/delete", h.Delete)
	g.POST("/buyers/:id/followup", h.AddFollowup)
	g.GET("/buyers/:id/followup/:fid/edit", h.EditFollowupForm)
	g.POST("/buyers/:id/followup/:fid/edit", h.EditFollowup)
	g.POST("/buyers/:id/followup/:fid/delete", h.DeleteFollowup)
}

// List renders the buyer list after fetching the whole collection and
// filtering/sorting it in memory.
func (h *BuyerHandler) List(c echo.Context) error {
	filter := models.BuyerFilter{
		Q:          formValue(c, "q"),
		Level:      formValue(c, "level"),
		IntentType: formValue(c, "intent_type"),
		Stage:      formValue(c, "stage"),
	}
	sortBy := c.QueryParam("sort_by")
	if sortBy == "" {
		sortBy = models.SortCreatedAtDesc
	}

	buyers, err := h.buyerRepository.ListBuyers(c.Request().Context())
	if err != nil {
		return err
	}
	buyers = models.FilterBuyers(buyers, filter)
	models.SortBuyers(buyers, sortBy)

	return render(c, "buyers.html", map[string]interface{}{
		"Buyers":     buyers,
		"Q":          filter.Q,
		"Level":      filter.Level,
		"IntentType": filter.IntentType,
		"Stage":      filter.Stage,
		"SortBy":     sortBy,
	})
}

// Create adds a buyer from the quick-create form on the list page. The
// only required field is the name; a blank one redirects back with a
// flash and writes nothing.
func (h *BuyerHandler) Create(c echo.Context) error {
	form := buyerFormFromRequest(c)

	if form.Name == "" {
		session.AddFlash(c, "買方姓名必填", "danger")
		return c.Redirect(http.StatusFound, "/buyers")
	}
	if err := validator.New().Struct(form); err != nil {
		session.AddFlash(c, "欄位值不正確", "danger")
		return c.Redirect(http.StatusFound, "/buyers")
	}

	identity := session.CurrentIdentity(c)
	fields := form.Fields()
	fields["created_at"] = models.NowISO()
	fields["created_by_id"] = identity.UserID
	fields["created_by_name"] = identity.UserName

	if _, err := h.buyerRepository.CreateBuyer(c.Request().Context(), fields); err != nil {
		return err
	}

	session.AddFlash(c, "已新增買方", "success")
	return c.Redirect(http.StatusFound, "/buyers")
}

// Detail renders one buyer with its contact log, newest contact first.
func (h *BuyerHandler) Detail(c echo.Context) error {
	buyer, err := h.buyerRepository.GetBuyer(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這位買方", "danger")
			return c.Redirect(http.StatusFound, "/buyers")
		}
		return err
	}

	followups, err := h.followupRepository.ListByParent(c.Request().Context(), buyer.ID)
	if err != nil {
		return err
	}
	models.SortFollowups(followups)

	return render(c, "buyer_detail.html", map[string]interface{}{
		"Buyer":     buyer,
		"Followups": followups,
	})
}

// EditForm renders the edit page.
func (h *BuyerHandler) EditForm(c echo.Context) error {
	buyer, err := h.buyerRepository.GetBuyer(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這位買方", "danger")
			return c.Redirect(http.StatusFound, "/buyers")
		}
		return err
	}
	return render(c, "buyer_edit.html", map[string]interface{}{"Buyer": buyer})
}

// Edit applies an edit submission. A blank name re-renders the form with
// the submitted values preserved; otherwise the submitted fields are
// merged onto the document (last-write-wins) together with the reconciled
// photo list and fresh audit stamps.
func (h *BuyerHandler) Edit(c echo.Context) error {
	buyer, err := h.buyerRepository.GetBuyer(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這位買方", "danger")
			return c.Redirect(http.StatusFound, "/buyers")
		}
		return err
	}

	form := buyerFormFromRequest(c)
	if form.Name == "" {
		session.AddFlash(c, "姓名為必填", "danger")
		form.Apply(buyer)
		return render(c, "buyer_edit.html", map[string]interface{}{"Buyer": buyer})
	}
	if err := validator.New().Struct(form); err != nil {
		session.AddFlash(c, "欄位值不正確", "danger")
		form.Apply(buyer)
		return render(c, "buyer_edit.html", map[string]interface{}{"Buyer": buyer})
	}

	existing := buyer.Photos()
	removeIdx := deleteIndexes(c)
	added := uploadPhotos(c, h.photoStore, "buyer_photos", buyer.ID)
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

	if err := h.buyerRepository.UpdateBuyer(c.Request().Context(), buyer.ID, fields); err != nil {
		return err
	}

	session.AddFlash(c, "已更新買方資料", "success")
	return c.Redirect(http.StatusFound, "/buyers/"+buyer.ID)
}

// Delete removes the buyer together with every followup referencing it.
// Stored photos are cleaned up best effort.
func (h *BuyerHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	ctx := c.Request().Context()

	if buyer, err := h.buyerRepository.GetBuyer(ctx, id); err == nil {
		for _, url := range buyer.Photos() {
			h.photoStore.DeleteByURL(ctx, url)
		}
	}

	if err := h.followupRepository.DeleteByParent(ctx, id); err != nil {
		return err
	}
	if err := h.buyerRepository.DeleteBuyer(ctx, id); err != nil {
		return err
	}

	session.AddFlash(c, "已刪除買方與相關追蹤紀錄", "info")
	return c.Redirect(http.StatusFound, "/buyers")
}

// AddFollowup appends a contact-log entry to the buyer.
func (h *BuyerHandler) AddFollowup(c echo.Context) error {
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
	return c.Redirect(http.StatusFound, "/buyers/"+id)
}

// EditFollowupForm renders the followup edit page.
func (h *BuyerHandler) EditFollowupForm(c echo.Context) error {
	id := c.Param("id")
	followup, err := h.followupRepository.GetFollowup(c.Request().Context(), c.Param("fid"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這筆追蹤紀錄", "danger")
			return c.Redirect(http.StatusFound, "/buyers/"+id)
		}
		return err
	}
	return render(c, "buyer_followup_edit.html", map[string]interface{}{
		"ParentID": id,
		"Followup": followup,
	})
}

// EditFollowup applies a followup edit.
func (h *BuyerHandler) EditFollowup(c echo.Context) error {
	id := c.Param("id")
	fid := c.Param("fid")

	if _, err := h.followupRepository.GetFollowup(c.Request().Context(), fid); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			session.AddFlash(c, "找不到這筆追蹤紀錄", "danger")
			return c.Redirect(http.StatusFound, "/buyers/"+id)
		}
		return err
	}

	form := followupFormFromRequest(c)
	if err := h.followupRepository.UpdateFollowup(c.Request().Context(), fid, form.Fields()); err != nil {
		return err
	}

	session.AddFlash(c, "已更新追蹤紀錄", "success")
	return c.Redirect(http.StatusFound, "/buyers/"+id)
}

// DeleteFollowup removes one followup.
func (h *BuyerHandler) DeleteFollowup(c echo.Context) error {
	id := c.Param("id")
	if err := h.followupRepository.DeleteFollowup(c.Request().Context(), c.Param("fid")); err != nil {
		return err
	}
	session.AddFlash(c, "已刪除追蹤紀錄", "info")
	return c.Redirect(http.StatusFound, "/buyers/"+id)
}

// DownloadCSV streams the whole collection as a spreadsheet. The file is
// assembled in memory before the response is written.
func (h *BuyerHandler) DownloadCSV(c echo.Context) error {
	buyers, err := h.buyerRepository.ListBuyers(c.Request().Context())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := csvexport.WriteBuyers(&buf, buyers); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", "buyers.csv"))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// buyerFormFromRequest reads the trimmed buyer fields out of the form.
func buyerFormFromRequest(c echo.Context) *models.BuyerForm {
	return &models.BuyerForm{
		Name:            formValue(c, "name"),
		Phone:           formValue(c, "phone"),
		Email:           formValue(c, "email"),
		LineID:          formValue(c, "line_id"),
		Source:          formValue(c, "source"),
		Level:           formValue(c, "level"),
		IntentType:      formValue(c, "intent_type"),
		Stage:           formValue(c, "stage"),
		RentMin:         formValue(c, "rent_min"),
		RentMax:         formValue(c, "rent_max"),
		BudgetMin:       formValue(c, "budget_min"),
		BudgetMax:       formValue(c, "budget_max"),
		PreferredAreas:  formValue(c, "preferred_areas"),
		PropertyType:    formValue(c, "property_type"),
		RoomRange:       formValue(c, "room_range"),
		CarNeed:         formValue(c, "car_need"),
		Job:             formValue(c, "job"),
		FamilyInfo:      formValue(c, "family_info"),
		RequirementMust: formValue(c, "requirement_must"),
		RequirementNice: formValue(c, "requirement_nice"),
		OtherBackground: formValue(c, "other_background"),
		Note:            formValue(c, "note"),
	}
}

// followupFormFromRequest reads the trimmed followup fields out of the
// form.
func followupFormFromRequest(c echo.Context) *models.FollowupForm {
	return &models.FollowupForm{
		ContactTime:     formValue(c, "contact_time"),
		Channel:         formValue(c, "channel"),
		Content:         formValue(c, "content"),
		NextAction:      formValue(c, "next_action"),
		NextContactDate: formValue(c, "next_contact_date"),
	}
}
