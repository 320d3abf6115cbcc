// Package csvexport renders full collections as downloadable spreadsheets:
// UTF-8 with a byte-order mark so Excel renders the zh-TW headers, one
// fixed header row per entity, missing fields as empty strings. Files are
// built in memory; nothing is streamed.
package csvexport

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/yaoyun631/team-me-crm-firebase/internal/models"
)

// utf8BOM makes spreadsheet apps pick UTF-8 instead of the locale default.
const utf8BOM = "\uFEFF"

var buyerHeader = []string{
	"id",
	"姓名",
	"電話",
	"Email",
	"LINE ID",
	"客源來源",
	"客戶等級",
	"進程",
	"需求類型",
	"預算最低(萬)",
	"預算最高(萬)",
	"租金最低",
	"租金最高",
	"偏好區域",
	"產品類型",
	"房數需求",
	"車位需求",
	"職業/收入",
	"家庭成員/生活型態",
	"必備條件(Must Have)",
	"加分條件(Nice to Have)",
	"背景補充",
	"內部備註",
	"建立時間",
	"建立者",
	"最後編輯時間",
	"最後編輯者",
}

// WriteBuyers serializes the buyer collection.
func WriteBuyers(w io.Writer, buyers []models.Buyer) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(buyerHeader); err != nil {
		return err
	}
	for _, b := range buyers {
		row := []string{
			b.ID,
			b.Name,
			b.Phone,
			b.Email,
			b.LineID,
			b.Source,
			b.Level,
			b.Stage,
			b.IntentType,
			b.BudgetMin,
			b.BudgetMax,
			b.RentMin,
			b.RentMax,
			b.PreferredAreas,
			b.PropertyType,
			b.RoomRange,
			b.CarNeed,
			b.Job,
			b.FamilyInfo,
			b.RequirementMust,
			b.RequirementNice,
			b.OtherBackground,
			b.Note,
			b.CreatedAt,
			b.CreatedByName,
			b.UpdatedAt,
			b.UpdatedByName,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var sellerHeader = []string{
	"id",
	"姓名",
	"電話",
	"Email",
	"LINE ID",
	"物件地址",
	"產品類型",
	"客戶等級",
	"進程",
	"出售原因",
	"期望售價(萬)",
	"可接受底價(萬)",
	"預計出售時程",
	"目前使用狀態",
	"委託到期日",
	"內部備註",
	"建立時間",
	"建立者",
	"最後編輯時間",
	"最後編輯者",
}

// WriteSellers serializes the seller collection.
func WriteSellers(w io.Writer, sellers []models.Seller) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(sellerHeader); err != nil {
		return err
	}
	for _, s := range sellers {
		row := []string{
			s.ID,
			s.Name,
			s.Phone,
			s.Email,
			s.LineID,
			s.Address,
			s.PropertyType,
			s.Level,
			s.Stage,
			s.Reason,
			s.ExpectedPrice,
			s.MinPrice,
			s.Timeline,
			s.OccupancyStatus,
			s.ContractEndDate,
			s.Note,
			s.CreatedAt,
			s.CreatedByName,
			s.UpdatedAt,
			s.UpdatedByName,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var postHeader = []string{
	"id",
	"標題",
	"分類",
	"狀態",
	"標籤",
	"專案",
	"建立時間",
	"建立者",
	"最後編輯時間",
	"最後編輯者",
}

// WritePosts serializes the blog post collection. Categories are joined
// with ", " in a single cell.
func WritePosts(w io.Writer, posts []models.BlogPost) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(postHeader); err != nil {
		return err
	}
	for _, p := range posts {
		row := []string{
			p.ID,
			p.Title,
			strings.Join(p.CategoryList(), ", "),
			p.Status,
			p.Tags,
			p.Project,
			p.CreatedAt,
			p.CreatedByName,
			p.UpdatedAt,
			p.UpdatedByName,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
