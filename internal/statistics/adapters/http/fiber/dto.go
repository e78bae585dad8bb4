package fiber

import (
	"bytes"
	"strconv"
)

// SeriesData renders as a JSON object keyed by 1-based bucket number, keys in
// bucket order: {"1": 3, "2": 0, ...}.
type SeriesData []float64

func (d SeriesData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strconv.Itoa(i + 1))
		buf.WriteString(`":`)
		buf.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

type StatisticsResponse struct {
	Type string     `json:"type" example:"days"`
	Data SeriesData `json:"data" swaggertype:"object,number" example:"1:3,2:0"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_time_interval"`
	Message string `json:"message" example:"Invalid time interval"`
}
