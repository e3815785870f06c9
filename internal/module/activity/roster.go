package activity

import (
	"coucou-server/internal/global/context"
	"coucou-server/internal/global/response"
	"coucou-server/internal/model"
	"coucou-server/tools"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// RosterRow 报名名单的一行
type RosterRow struct {
	Name        string    `excel:"姓名"`
	JoinedAt    time.Time `excel:"报名时间"`
	CreditScore int       `excel:"信誉分"`
	CreditLevel string    `excel:"信誉等级"`
	Organizer   string    `excel:"身份"`
}

func rosterOf(a *model.Activity) []RosterRow {
	rows := make([]RosterRow, 0, len(a.Participants))
	for _, p := range a.Participants {
		role := "参与者"
		if p.UserID == a.OrganizerID {
			role = "组织者"
		}
		rows = append(rows, RosterRow{
			Name:        p.User.Name,
			JoinedAt:    p.JoinedAt,
			CreditScore: p.User.CreditScore,
			CreditLevel: model.LevelOf(p.User.CreditScore).Name,
			Organizer:   role,
		})
	}
	return rows
}

// ExportRoster 组织者导出报名名单
func ExportRoster(c *gin.Context) {
	user, ok := context.GetUserPayload(c)
	if !ok {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	a, found, err := manager.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if !found {
		response.Fail(c, response.ErrNotFound)
		return
	}
	if a.OrganizerID != user.UserID {
		response.Fail(c, response.ErrForbidden.WithTips("只有组织者可以导出名单"))
		return
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("关闭 excel 文件失败", "error", err)
		}
	}()
	if err := tools.ExportToExcel(f, "名单", rosterOf(a)); err != nil {
		log.Error("导出 excel 错误", "error", err)
		response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		return
	}
	// 去掉默认的空工作表
	if idx, err := f.GetSheetIndex("名单"); err == nil && idx >= 0 {
		_ = f.DeleteSheet("Sheet1")
		if idx, err = f.GetSheetIndex("名单"); err == nil {
			f.SetActiveSheet(idx)
		}
	}

	tools.SetAttachmentHeaders(c, fmt.Sprintf("%s_名单.xlsx", a.Title), tools.ExcelContentType)
	if err := f.Write(c.Writer); err != nil {
		log.Error("写出 excel 错误", "error", err)
	}
}
