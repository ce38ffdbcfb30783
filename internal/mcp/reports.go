package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xuri/excelize/v2"

	"github.com/ycho/wrike-mcp-server/internal/wrike"
)

// Report output formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const (
	uncategorized = "(none)"
	topTaskLimit  = 20
)

// TimelogReport is the aggregated view of a set of timelogs
type TimelogReport struct {
	Filters      map[string]any   `json:"filters"`
	Summary      map[string]any   `json:"summary"`
	ByCategory   []map[string]any `json:"by_category"`
	ByUser       []map[string]any `json:"by_user"`
	ByTask       []map[string]any `json:"by_task"`
	ByDay        []map[string]any `json:"by_day"`
	MonthlyTrend []map[string]any `json:"monthly_trend"`
}

// ReportFile is a rendered report returned as file content
type ReportFile struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// ReportGenerator generates timelog reports
type ReportGenerator struct {
	client *wrike.Client
	logger *slog.Logger
}

// NewReportGenerator creates a new report generator
func NewReportGenerator(client *wrike.Client, logger *slog.Logger) *ReportGenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportGenerator{client: client, logger: logger}
}

// Generate fetches the timelogs selected by q and aggregates them.
func (rg *ReportGenerator) Generate(ctx context.Context, q wrike.TimelogQuery) (*TimelogReport, error) {
	timelogs, err := rg.client.FindTimelogs(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timelogs: %w", err)
	}

	report := &TimelogReport{Filters: reportFilters(q)}

	categories := rg.categoryNames(ctx)
	users := rg.userNames(ctx, timelogs)
	tasks := rg.taskTitles(ctx, timelogs)

	rg.calculateSummary(report, timelogs)
	rg.calculateByCategory(report, timelogs, categories)
	rg.calculateByUser(report, timelogs, users)
	rg.calculateByTask(report, timelogs, tasks)
	rg.calculateByDay(report, timelogs)
	rg.calculateMonthlyTrend(report, timelogs)

	return report, nil
}

func reportFilters(q wrike.TimelogQuery) map[string]any {
	filters := map[string]any{"mode": string(q.Mode())}
	for key, value := range map[string]string{
		"task_id":     q.TaskID,
		"contact_id":  q.ContactID,
		"folder_id":   q.FolderID,
		"category_id": q.CategoryID,
	} {
		if value != "" {
			filters[key] = value
		}
	}
	if len(q.TimelogIDs) > 0 {
		filters["timelog_ids"] = q.TimelogIDs
	}
	if tracked := wrike.BuildDateRangeParam(q.Filter.TrackedDate, false); tracked != "" {
		filters["tracked_date"] = tracked
	}
	return filters
}

// categoryNames maps category IDs to names. Lookup failures leave IDs in place.
func (rg *ReportGenerator) categoryNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	categories, err := rg.client.ListTimelogCategories(ctx)
	if err != nil {
		rg.logger.Warn("failed to load timelog categories", "error", err)
		return names
	}
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names
}

func (rg *ReportGenerator) userNames(ctx context.Context, timelogs []wrike.Timelog) map[string]string {
	names := make(map[string]string)
	ids := uniqueIDs(timelogs, func(t wrike.Timelog) string { return t.UserID })
	for _, chunk := range chunkIDs(ids, wrike.MaxBatchIDs) {
		contacts, err := rg.client.GetContacts(ctx, chunk, "")
		if err != nil {
			rg.logger.Warn("failed to load contacts for report", "error", err)
			continue
		}
		for _, c := range contacts {
			if name := c.Name(); name != "" {
				names[c.ID] = name
			}
		}
	}
	return names
}

func (rg *ReportGenerator) taskTitles(ctx context.Context, timelogs []wrike.Timelog) map[string]string {
	titles := make(map[string]string)
	ids := uniqueIDs(timelogs, func(t wrike.Timelog) string { return t.TaskID })
	for _, chunk := range chunkIDs(ids, wrike.MaxBatchIDs) {
		tasks, err := rg.client.GetTasks(ctx, chunk, "")
		if err != nil {
			rg.logger.Warn("failed to load tasks for report", "error", err)
			continue
		}
		for _, t := range tasks {
			titles[t.ID] = t.Title
		}
	}
	return titles
}

func uniqueIDs(timelogs []wrike.Timelog, key func(wrike.Timelog) string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, t := range timelogs {
		id := key(t)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	if len(ids) > 0 {
		chunks = append(chunks, ids)
	}
	return chunks
}

func nameOr(names map[string]string, id string) string {
	if id == "" {
		return uncategorized
	}
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}

// calculateSummary calculates the summary statistics
func (rg *ReportGenerator) calculateSummary(report *TimelogReport, timelogs []wrike.Timelog) {
	var totalHours float64
	contributors := make(map[string]bool)
	tasks := make(map[string]bool)
	days := make(map[string]bool)

	for _, t := range timelogs {
		totalHours += t.Hours
		contributors[t.UserID] = true
		tasks[t.TaskID] = true
		days[t.TrackedDate] = true
	}

	var avgHoursPerPerson float64
	if len(contributors) > 0 {
		avgHoursPerPerson = totalHours / float64(len(contributors))
	}

	report.Summary = map[string]any{
		"total_hours":          roundFloat(totalHours, 2),
		"timelog_count":        len(timelogs),
		"task_count":           len(tasks),
		"contributors":         len(contributors),
		"tracked_days":         len(days),
		"avg_hours_per_person": roundFloat(avgHoursPerPerson, 2),
		"person_days":          roundFloat(totalHours/8.0, 2),
	}
}

// calculateByCategory aggregates hours by timelog category
func (rg *ReportGenerator) calculateByCategory(report *TimelogReport, timelogs []wrike.Timelog, names map[string]string) {
	categoryHours := make(map[string]float64)
	var totalHours float64

	for _, t := range timelogs {
		categoryHours[t.CategoryID] += t.Hours
		totalHours += t.Hours
	}

	byCategory := make([]map[string]any, 0, len(categoryHours))
	for id, hours := range categoryHours {
		percentage := 0.0
		if totalHours > 0 {
			percentage = (hours / totalHours) * 100
		}
		byCategory = append(byCategory, map[string]any{
			"category_id": id,
			"category":    nameOr(names, id),
			"hours":       roundFloat(hours, 2),
			"percentage":  roundFloat(percentage, 2),
		})
	}

	sortByHours(byCategory, "category")
	report.ByCategory = byCategory
}

// calculateByUser aggregates hours by user
func (rg *ReportGenerator) calculateByUser(report *TimelogReport, timelogs []wrike.Timelog, names map[string]string) {
	userHours := make(map[string]float64)
	userTasks := make(map[string]map[string]bool)

	for _, t := range timelogs {
		userHours[t.UserID] += t.Hours
		if userTasks[t.UserID] == nil {
			userTasks[t.UserID] = make(map[string]bool)
		}
		userTasks[t.UserID][t.TaskID] = true
	}

	byUser := make([]map[string]any, 0, len(userHours))
	for id, hours := range userHours {
		byUser = append(byUser, map[string]any{
			"user_id":    id,
			"user":       nameOr(names, id),
			"hours":      roundFloat(hours, 2),
			"task_count": len(userTasks[id]),
		})
	}

	sortByHours(byUser, "user")
	report.ByUser = byUser
}

// calculateByTask finds the top tasks by hours spent
func (rg *ReportGenerator) calculateByTask(report *TimelogReport, timelogs []wrike.Timelog, titles map[string]string) {
	taskHours := make(map[string]float64)
	taskEntries := make(map[string]int)

	for _, t := range timelogs {
		taskHours[t.TaskID] += t.Hours
		taskEntries[t.TaskID]++
	}

	byTask := make([]map[string]any, 0, len(taskHours))
	for id, hours := range taskHours {
		byTask = append(byTask, map[string]any{
			"task_id":       id,
			"title":         nameOr(titles, id),
			"hours":         roundFloat(hours, 2),
			"timelog_count": taskEntries[id],
		})
	}

	sortByHours(byTask, "task_id")
	if len(byTask) > topTaskLimit {
		byTask = byTask[:topTaskLimit]
	}
	report.ByTask = byTask
}

// calculateByDay aggregates hours by tracked date
func (rg *ReportGenerator) calculateByDay(report *TimelogReport, timelogs []wrike.Timelog) {
	dayHours := make(map[string]float64)
	for _, t := range timelogs {
		if len(t.TrackedDate) < 10 {
			continue
		}
		dayHours[t.TrackedDate[:10]] += t.Hours
	}

	byDay := make([]map[string]any, 0, len(dayHours))
	for day, hours := range dayHours {
		byDay = append(byDay, map[string]any{
			"date":  day,
			"hours": roundFloat(hours, 2),
		})
	}

	sort.Slice(byDay, func(i, j int) bool {
		return byDay[i]["date"].(string) < byDay[j]["date"].(string)
	})
	report.ByDay = byDay
}

// calculateMonthlyTrend aggregates hours by month
func (rg *ReportGenerator) calculateMonthlyTrend(report *TimelogReport, timelogs []wrike.Timelog) {
	monthHours := make(map[string]float64)
	monthTasks := make(map[string]map[string]bool)

	for _, t := range timelogs {
		if len(t.TrackedDate) < 10 {
			continue
		}
		d, err := time.Parse("2006-01-02", t.TrackedDate[:10])
		if err != nil {
			continue
		}
		month := d.Format("2006-01")
		monthHours[month] += t.Hours
		if monthTasks[month] == nil {
			monthTasks[month] = make(map[string]bool)
		}
		monthTasks[month][t.TaskID] = true
	}

	monthlyTrend := make([]map[string]any, 0, len(monthHours))
	for month, hours := range monthHours {
		monthlyTrend = append(monthlyTrend, map[string]any{
			"month":      month,
			"hours":      roundFloat(hours, 2),
			"task_count": len(monthTasks[month]),
		})
	}

	sort.Slice(monthlyTrend, func(i, j int) bool {
		return monthlyTrend[i]["month"].(string) < monthlyTrend[j]["month"].(string)
	})
	report.MonthlyTrend = monthlyTrend
}

// sortByHours orders rows by hours descending, then by key for stable output.
func sortByHours(rows []map[string]any, key string) {
	sort.Slice(rows, func(i, j int) bool {
		hi, hj := rows[i]["hours"].(float64), rows[j]["hours"].(float64)
		if hi != hj {
			return hi > hj
		}
		return fmt.Sprint(rows[i][key]) < fmt.Sprint(rows[j][key])
	})
}

type reportSection struct {
	title   string
	header  []string
	columns []string
	rows    []map[string]any
}

func (r *TimelogReport) sections() []reportSection {
	return []reportSection{
		{"By Category", []string{"Category", "Hours", "Percentage"}, []string{"category", "hours", "percentage"}, r.ByCategory},
		{"By User", []string{"User", "Hours", "Task Count"}, []string{"user", "hours", "task_count"}, r.ByUser},
		{"By Task", []string{"Task ID", "Title", "Hours", "Timelogs"}, []string{"task_id", "title", "hours", "timelog_count"}, r.ByTask},
		{"By Day", []string{"Date", "Hours"}, []string{"date", "hours"}, r.ByDay},
		{"Monthly Trend", []string{"Month", "Hours", "Task Count"}, []string{"month", "hours", "task_count"}, r.MonthlyTrend},
	}
}

func (r *TimelogReport) summaryRows() [][]string {
	keys := make([]string, 0, len(r.Summary))
	for key := range r.Summary {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		rows = append(rows, []string{key, fmt.Sprint(r.Summary[key])})
	}
	return rows
}

func cellText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

// GenerateCSV renders the report as CSV with one block per section.
func (rg *ReportGenerator) GenerateCSV(report *TimelogReport) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"=== Timelog Report ==="}, {"=== Summary ==="}, {"Metric", "Value"}}
	records = append(records, report.summaryRows()...)

	for _, section := range report.sections() {
		records = append(records, []string{}, []string{"=== " + section.title + " ==="}, section.header)
		for _, row := range section.rows {
			record := make([]string, len(section.columns))
			for i, col := range section.columns {
				record[i] = cellText(row[col])
			}
			records = append(records, record)
		}
	}

	if err := w.WriteAll(records); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.String(), nil
}

// GenerateXLSX renders the report as a workbook with one sheet per section.
func (rg *ReportGenerator) GenerateXLSX(report *TimelogReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			rg.logger.Warn("failed to close workbook", "error", err)
		}
	}()

	const summarySheet = "Summary"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(summarySheet, "A1", &[]any{"Metric", "Value"}); err != nil {
		return nil, fmt.Errorf("failed to write summary: %w", err)
	}
	for i, row := range report.summaryRows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(summarySheet, cell, &[]any{row[0], report.Summary[row[0]]}); err != nil {
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}

	for _, section := range report.sections() {
		if _, err := f.NewSheet(section.title); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", section.title, err)
		}
		header := make([]any, len(section.header))
		for i, h := range section.header {
			header[i] = h
		}
		if err := f.SetSheetRow(section.title, "A1", &header); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", section.title, err)
		}
		for i, row := range section.rows {
			values := make([]any, len(section.columns))
			for j, col := range section.columns {
				values[j] = row[col]
			}
			cell, err := excelize.CoordinatesToCellName(1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(section.title, cell, &values); err != nil {
				return nil, fmt.Errorf("failed to write %s: %w", section.title, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func reportFilename(ext string, now time.Time) string {
	return fmt.Sprintf("wrike_timelog_report_%s.%s", now.Format("20060102_150405"), ext)
}

func (h *ToolHandlers) handleTimelogReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := req.GetString("format", FormatJSON)
	switch format {
	case FormatJSON, FormatCSV, FormatXLSX:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid format: %s (valid: json, csv, xlsx)", format)), nil
	}

	rg := NewReportGenerator(h.clientFor(ctx), h.logger)
	report, err := rg.Generate(ctx, timelogQueryArgs(req))
	if err != nil {
		return h.toolError("generate timelog report", err)
	}

	now := time.Now()
	switch format {
	case FormatCSV:
		content, err := rg.GenerateCSV(report)
		if err != nil {
			return h.toolError("generate timelog report", err)
		}
		return jsonResult(ReportFile{
			Format:   FormatCSV,
			Filename: reportFilename(FormatCSV, now),
			Encoding: "utf-8",
			Content:  content,
		})
	case FormatXLSX:
		content, err := rg.GenerateXLSX(report)
		if err != nil {
			return h.toolError("generate timelog report", err)
		}
		return jsonResult(ReportFile{
			Format:   FormatXLSX,
			Filename: reportFilename(FormatXLSX, now),
			Encoding: "base64",
			Content:  base64.StdEncoding.EncodeToString(content),
		})
	default:
		return jsonResult(report)
	}
}

// roundFloat rounds a float to the specified decimal places
func roundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
