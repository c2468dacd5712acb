package router

import (
	"errors"
	"fmt"
	"net/http"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"github.com/labstack/echo/v4"

	"github.com/stadtwache/stadtwache/model"
	"github.com/stadtwache/stadtwache/repository"
	"github.com/stadtwache/stadtwache/router/extension/herror"
)

// PostReportRequest POST /api/reports リクエストボディ
type PostReportRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	ShiftDate string `json:"shift_date"`
}

func (r PostReportRequest) Validate() error {
	return vd.ValidateStruct(&r,
		vd.Field(&r.Title, vd.Required, vd.RuneLength(1, 255)),
		vd.Field(&r.Content, vd.Required),
		vd.Field(&r.ShiftDate, vd.Required, vd.Date("2006-01-02")),
	)
}

// CreateReport POST /api/reports
func (h *Handlers) CreateReport(c echo.Context) error {
	var req PostReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	me := getRequestUser(c)
	report, err := h.Repo.CreateReport(repository.CreateReportArgs{
		Title:      req.Title,
		Content:    req.Content,
		ShiftDate:  req.ShiftDate,
		AuthorID:   me.ID,
		AuthorName: me.Name,
	})
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, report)
}

// GetReports GET /api/reports
func (h *Handlers) GetReports(c echo.Context) error {
	reports, err := h.Repo.GetReports(reportScope(c))
	if err != nil {
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, reports)
}

// ReportFolderEntry 報告書フォルダの項目
type ReportFolderEntry struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name"`
	ShiftDate  string    `json:"shift_date"`
	CreatedAt  string    `json:"created_at"`
	Status     string    `json:"status"`
}

// GetReportFolders GET /api/reports/folders
//
// 報告書を「Berichte/年/月」のフォルダ構造にまとめて返します。
func (h *Handlers) GetReportFolders(c echo.Context) error {
	reports, err := h.Repo.GetReports(reportScope(c))
	if err != nil {
		return herror.InternalServerError(err)
	}

	folders := make(map[string][]ReportFolderEntry)
	for _, r := range reports {
		path := fmt.Sprintf("Berichte/%d/%s", r.CreatedAt.Year(), r.CreatedAt.Month().String())
		status := r.Status
		if len(status) == 0 {
			status = model.ReportStatusSubmitted
		}
		folders[path] = append(folders[path], ReportFolderEntry{
			ID:         r.ID,
			Title:      r.Title,
			Content:    r.Content,
			AuthorName: r.AuthorName,
			ShiftDate:  r.ShiftDate,
			CreatedAt:  r.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			Status:     status,
		})
	}
	return c.JSON(http.StatusOK, folders)
}

// UpdateReport PUT /api/reports/:reportID
func (h *Handlers) UpdateReport(c echo.Context) error {
	id, err := getParamAsUUID(c, "reportID")
	if err != nil {
		return err
	}

	var req PostReportRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	report, err := h.Repo.GetReport(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("Report not found")
		}
		return herror.InternalServerError(err)
	}

	me := getRequestUser(c)
	if report.AuthorID != me.ID && !me.IsAdmin() {
		return herror.Forbidden("Not authorized to edit this report")
	}

	updated, err := h.Repo.UpdateReport(id, repository.UpdateReportArgs{
		Title:      req.Title,
		Content:    req.Content,
		ShiftDate:  req.ShiftDate,
		EditorID:   me.ID,
		EditorName: me.Name,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return herror.NotFound("Report not found")
		}
		return herror.InternalServerError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// reportScope 管理者は全件、それ以外は自分の報告書のみ
func reportScope(c echo.Context) uuid.UUID {
	me := getRequestUser(c)
	if me.IsAdmin() {
		return uuid.Nil
	}
	return me.ID
}
