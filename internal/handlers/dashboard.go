package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/maniacmeyers/interview-maniac-app/internal/models"
	"github.com/maniacmeyers/interview-maniac-app/internal/repository"
)

type DashboardHandler struct {
	log *zap.Logger
}

func NewDashboardHandler(log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{log: log}
}

// ScoreChart renders the user's average-score history as a line chart page.
func (h *DashboardHandler) ScoreChart(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	history, err := repository.ListScoreHistory(c.Request.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to load score history", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load score history")
		return
	}

	dates := make([]string, len(history))
	averages := make([]opts.LineData, len(history))
	totals := make([]opts.LineData, len(history))
	for i, s := range history {
		dates[i] = s.CreatedAt.Format("Jan 02 15:04")
		averages[i] = opts.LineData{Value: s.AverageScore}
		totals[i] = opts.LineData{Value: s.TotalScore}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Story Score History",
			Subtitle: fmt.Sprintf("%d scored sessions", len(history)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score"}),
	)

	line.SetXAxis(dates).
		AddSeries("Average (0-5)", averages).
		AddSeries("Total (0-30)", totals)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := line.Render(c.Writer); err != nil {
		h.log.Error("Failed to render score chart", zap.Error(err))
	}
}
