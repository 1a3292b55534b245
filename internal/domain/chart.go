package domain

import "fmt"

// weekdayTicks are the x-axis labels for Weekdays, in the same order.
var weekdayTicks = []string{"Mon", "Tues", "Wed", "Thurs", "Fri", "Sat", "Sun"}

// Figure sizes in inches.
const (
	defaultFigureWidth   = 6.4
	defaultFigureHeight  = 4.8
	categoryFigureWidth  = 12
	categoryFigureHeight = 8
	categoryBottomMargin = 0.4
)

// LineChart is a single series plotted against nominal x ticks.
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	Ticks  []string
	Values []int
	Width  float64 // inches
	Height float64 // inches
	Path   string
}

// BarChart is one bar per label.
type BarChart struct {
	Title         string
	XLabel        string
	YLabel        string
	Labels        []string
	Values        []int
	LabelRotation float64 // degrees, counter-clockwise
	BottomMargin  float64 // inches of extra space under the tick labels
	Width         float64 // inches
	Height        float64 // inches
	Path          string
}

// ChartRenderer rasterizes chart views to the file named by their Path.
type ChartRenderer interface {
	RenderLine(chart LineChart) error
	RenderBar(chart BarChart) error
}

// LineSeries builds a line chart whose values follow the order of labels.
// Labels absent from t plot as zero. ticks, when non-nil, must have the same
// length as labels and replaces them on the x axis.
func LineSeries(t FrequencyTable, labels, ticks []string, path string) LineChart {
	if ticks == nil {
		ticks = labels
	}
	values := make([]int, len(labels))
	for i, l := range labels {
		values[i] = t.Count(l)
	}
	return LineChart{
		Ticks:  append([]string(nil), ticks...),
		Values: values,
		Width:  defaultFigureWidth,
		Height: defaultFigureHeight,
		Path:   path,
	}
}

// DayOfWeekChart plots incident counts Monday through Sunday.
func DayOfWeekChart(t FrequencyTable, path string) LineChart {
	return LineSeries(t, Weekdays, weekdayTicks, path)
}

// CategoryChart plots one bar per observed category. Labels are sorted so
// repeated runs draw identical images.
func CategoryChart(t FrequencyTable, region, year, path string) BarChart {
	labels := t.Labels()
	values := make([]int, len(labels))
	for i, l := range labels {
		values[i] = t[l]
	}
	return BarChart{
		Title:         fmt.Sprintf("Crime by Category: %s %s", region, year),
		XLabel:        "Category",
		YLabel:        "Count",
		Labels:        labels,
		Values:        values,
		LabelRotation: 90,
		BottomMargin:  categoryBottomMargin,
		Width:         categoryFigureWidth,
		Height:        categoryFigureHeight,
		Path:          path,
	}
}
