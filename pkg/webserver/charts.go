package webserver

import (
	"bytes"
	"fmt"
	"net/http"

	"raceboardbot/pkg/duration"
	"raceboardbot/pkg/helper"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// lapTimesChartHandler renders a line chart (HTML) of every car's lap
// times over the race, one series per driver.
func (m *Manager) lapTimesChartHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := m.rm.Snapshot()
		if len(snapshot.Items) == 0 {
			writeJSONError(w, http.StatusNotFound, "no race data loaded")
			return
		}

		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{PageTitle: "Lap Times", Theme: "dark", Width: "1200px", Height: "700px"}),
			charts.WithTitleOpts(opts.Title{Title: "Tiempos por vuelta", Subtitle: fmt.Sprintf("%s ‣ %d vueltas", snapshot.EventName, snapshot.LapTotal)}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Name: "Vuelta"}),
			charts.WithYAxisOpts(opts.YAxis{Name: "Segundos", Scale: opts.Bool(true)}),
		)

		line.SetXAxis(lapAxis(snapshot.LapTotal))
		for _, item := range snapshot.Items {
			data := make([]opts.LineData, 0, snapshot.LapTotal)
			for _, lap := range item.History {
				if lap.IsZero() {
					continue
				}
				data = append(data, opts.LineData{Value: float64(lap.LapTime) / float64(duration.Second)})
			}
			line.AddSeries(helper.GetDriverCodeName(item.DriverName), data)
		}

		renderChart(w, line)
	}
}

// positionsChartHandler renders the position of every car lap by lap.
func (m *Manager) positionsChartHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := m.rm.Snapshot()
		if len(snapshot.Items) == 0 {
			writeJSONError(w, http.StatusNotFound, "no race data loaded")
			return
		}

		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{PageTitle: "Positions", Theme: "dark", Width: "1200px", Height: "700px"}),
			charts.WithTitleOpts(opts.Title{Title: "Posiciones por vuelta", Subtitle: snapshot.EventName}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Name: "Vuelta"}),
			charts.WithYAxisOpts(opts.YAxis{Name: "Posición", Min: 1.0, Max: float64(len(snapshot.Items))}),
		)

		line.SetXAxis(lapAxis(snapshot.LapTotal))
		for _, item := range snapshot.Items {
			data := make([]opts.LineData, 0, snapshot.LapTotal)
			for _, lap := range item.History {
				if lap.IsZero() {
					continue
				}
				data = append(data, opts.LineData{Value: lap.Position})
			}
			line.AddSeries(helper.GetDriverCodeName(item.DriverName), data)
		}

		renderChart(w, line)
	}
}

// gapsChartHandler renders the gap to the lap leader as the race goes
// on. The leader of lap n is whoever completed it with the lowest
// elapsed time, so a series crossing zero marks an overtake on track.
func (m *Manager) gapsChartHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := m.rm.Snapshot()
		if len(snapshot.Items) == 0 {
			writeJSONError(w, http.StatusNotFound, "no race data loaded")
			return
		}

		leaderElapsed := make(map[int]duration.Duration)
		for _, item := range snapshot.Items {
			for _, lap := range item.History {
				if lap.IsZero() {
					continue
				}
				if best, ok := leaderElapsed[lap.LapNumber]; !ok || lap.Elapsed < best {
					leaderElapsed[lap.LapNumber] = lap.Elapsed
				}
			}
		}

		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{PageTitle: "Gaps", Theme: "dark", Width: "1200px", Height: "700px"}),
			charts.WithTitleOpts(opts.Title{Title: "Diferencia con el líder", Subtitle: snapshot.EventName}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Name: "Vuelta"}),
			charts.WithYAxisOpts(opts.YAxis{Name: "Segundos"}),
		)

		line.SetXAxis(lapAxis(snapshot.LapTotal))
		for _, item := range snapshot.Items {
			data := make([]opts.LineData, 0, snapshot.LapTotal)
			for _, lap := range item.History {
				if lap.IsZero() {
					continue
				}
				gap := lap.Elapsed - leaderElapsed[lap.LapNumber]
				data = append(data, opts.LineData{Value: float64(gap) / float64(duration.Second)})
			}
			line.AddSeries(helper.GetDriverCodeName(item.DriverName), data)
		}

		renderChart(w, line)
	}
}

func lapAxis(lapTotal int) []string {
	axis := make([]string, lapTotal)
	for i := range axis {
		axis[i] = fmt.Sprintf("%d", i+1)
	}
	return axis
}

func renderChart(w http.ResponseWriter, line *charts.Line) {
	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
