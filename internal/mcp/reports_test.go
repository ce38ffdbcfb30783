package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ycho/wrike-mcp-server/internal/wrike"
)

const reportTimelogs = `{"kind":"timelogs","data":[
	{"id":"L1","taskId":"IEAAAAAAT1","userId":"KUAAAAAA1","categoryId":"CAT1","hours":3,"trackedDate":"2024-03-01"},
	{"id":"L2","taskId":"IEAAAAAAT1","userId":"KUAAAAAA2","categoryId":"CAT2","hours":1.5,"trackedDate":"2024-03-02"},
	{"id":"L3","taskId":"IEAAAAAAT2","userId":"KUAAAAAA1","hours":2,"trackedDate":"2024-04-10"}
]}`

func reportMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /timelogs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, reportTimelogs)
	})
	mux.HandleFunc("GET /timelog_categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"kind":"timelogCategories","data":[{"id":"CAT1","name":"Development"},{"id":"CAT2","name":"Meetings"}]}`)
	})
	mux.HandleFunc("GET /contacts/{ids}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KUAAAAAA1,KUAAAAAA2", r.PathValue("ids"))
		writeJSON(w, `{"kind":"contacts","data":[
			{"id":"KUAAAAAA1","firstName":"Ada","lastName":"Lovelace"},
			{"id":"KUAAAAAA2","firstName":"Alan","lastName":"Turing"}]}`)
	})
	mux.HandleFunc("GET /tasks/{ids}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"kind":"tasks","data":[{"id":"IEAAAAAAT1","title":"Build"},{"id":"IEAAAAAAT2","title":"Review"}]}`)
	})
	return mux
}

func generateTestReport(t *testing.T, mux *http.ServeMux) (*ReportGenerator, *TimelogReport) {
	t.Helper()
	h, _ := newTestHandlers(t, mux, HandlerOptions{})
	rg := NewReportGenerator(h.client, discardLogger())
	report, err := rg.Generate(context.Background(), wrike.TimelogQuery{})
	require.NoError(t, err)
	return rg, report
}

func TestGenerate_Aggregations(t *testing.T) {
	_, report := generateTestReport(t, reportMux(t))

	assert.Equal(t, 6.5, report.Summary["total_hours"])
	assert.Equal(t, 3, report.Summary["timelog_count"])
	assert.Equal(t, 2, report.Summary["contributors"])
	assert.Equal(t, "all", report.Filters["mode"])

	require.Len(t, report.ByCategory, 3)
	assert.Equal(t, "Development", report.ByCategory[0]["category"])
	assert.Equal(t, 3.0, report.ByCategory[0]["hours"])
	assert.Equal(t, uncategorized, report.ByCategory[1]["category"])

	require.Len(t, report.ByUser, 2)
	assert.Equal(t, "Ada Lovelace", report.ByUser[0]["user"])
	assert.Equal(t, 5.0, report.ByUser[0]["hours"])
	assert.Equal(t, 2, report.ByUser[0]["task_count"])

	require.Len(t, report.ByTask, 2)
	assert.Equal(t, "Build", report.ByTask[0]["title"])
	assert.Equal(t, 4.5, report.ByTask[0]["hours"])

	require.Len(t, report.ByDay, 3)
	assert.Equal(t, "2024-03-01", report.ByDay[0]["date"])

	require.Len(t, report.MonthlyTrend, 2)
	assert.Equal(t, "2024-03", report.MonthlyTrend[0]["month"])
	assert.Equal(t, 4.5, report.MonthlyTrend[0]["hours"])
}

func TestGenerate_NameLookupFailureKeepsIDs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /timelogs", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, reportTimelogs)
	})
	failing := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}
	mux.HandleFunc("GET /timelog_categories", failing)
	mux.HandleFunc("GET /contacts/{ids}", failing)
	mux.HandleFunc("GET /tasks/{ids}", failing)

	_, report := generateTestReport(t, mux)

	assert.Equal(t, "CAT1", report.ByCategory[0]["category"])
	assert.Equal(t, "KUAAAAAA1", report.ByUser[0]["user"])
	assert.Equal(t, "IEAAAAAAT1", report.ByTask[0]["title"])
}

func TestGenerateCSV(t *testing.T) {
	rg, report := generateTestReport(t, reportMux(t))

	content, err := rg.GenerateCSV(report)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(content))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Contains(t, records, []string{"total_hours", "6.5"})
	assert.Contains(t, records, []string{"=== By User ==="})
	assert.Contains(t, records, []string{"Ada Lovelace", "5", "2"})
	assert.Contains(t, records, []string{"2024-04", "2", "1"})
}

func TestGenerateXLSX(t *testing.T) {
	rg, report := generateTestReport(t, reportMux(t))

	content, err := rg.GenerateXLSX(report)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Summary", "By Category", "By User", "By Task", "By Day", "Monthly Trend"}, f.GetSheetList())

	header, err := f.GetCellValue("By User", "A1")
	require.NoError(t, err)
	assert.Equal(t, "User", header)

	user, err := f.GetCellValue("By User", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user)

	hours, err := f.GetCellValue("By User", "B2")
	require.NoError(t, err)
	assert.Equal(t, "5", hours)
}

func TestHandleTimelogReport_Formats(t *testing.T) {
	h, _ := newTestHandlers(t, reportMux(t), HandlerOptions{})

	t.Run("json", func(t *testing.T) {
		result := callTool(t, h, "wrike_timelog_report", nil)
		require.False(t, result.IsError, resultText(t, result))

		var report TimelogReport
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &report))
		assert.Equal(t, 6.5, report.Summary["total_hours"])
	})

	t.Run("xlsx", func(t *testing.T) {
		result := callTool(t, h, "wrike_timelog_report", map[string]any{"format": "xlsx"})
		require.False(t, result.IsError, resultText(t, result))

		var file ReportFile
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &file))
		assert.Equal(t, "base64", file.Encoding)
		assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))

		data, err := base64.StdEncoding.DecodeString(file.Content)
		require.NoError(t, err)
		_, err = excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
	})

	t.Run("csv", func(t *testing.T) {
		result := callTool(t, h, "wrike_timelog_report", map[string]any{"format": "csv"})
		require.False(t, result.IsError, resultText(t, result))

		var file ReportFile
		require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &file))
		assert.Equal(t, FormatCSV, file.Format)
		assert.Contains(t, file.Content, "Development")
	})

	t.Run("invalid", func(t *testing.T) {
		result := callTool(t, h, "wrike_timelog_report", map[string]any{"format": "pdf"})
		assert.True(t, result.IsError)
	})
}

func TestChunkIDs(t *testing.T) {
	ids := make([]string, 205)
	for i := range ids {
		ids[i] = "ID"
	}
	chunks := chunkIDs(ids, 100)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 100)
	assert.Len(t, chunks[2], 5)
	assert.Empty(t, chunkIDs(nil, 100))
}
