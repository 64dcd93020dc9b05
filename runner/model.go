package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RunRequest carries the four form fields verbatim. Validation is the
// compute service's job.
type RunRequest struct {
	NoiseEvents string `json:"noiseEvents"`
	TruePairs   string `json:"truePairs"`
	TimeWindow  string `json:"timeWindow"`
	AngleSep    string `json:"angleSep"`
}

// RunResult is the success payload of POST /run.
type RunResult struct {
	AllSkyPlotURL string        `json:"all_sky_plot_url"`
	Correlations  []Correlation `json:"correlations"`
}

// Correlation is one candidate pairing reported by the service. ID is a
// zero-based display index.
type Correlation struct {
	ID            int    `json:"id"`
	Probability   Scalar `json:"probability"`
	Event1ID      Scalar `json:"event1_id"`
	Event1Source  string `json:"event1_source"`
	Event2ID      Scalar `json:"event2_id"`
	Event2Source  string `json:"event2_source"`
	TimeSepHrs    Scalar `json:"time_sep_hrs"`
	AngSepDeg     Scalar `json:"ang_sep_deg"`
	DetailPlotURL string `json:"detail_plot_url"`
}

// ErrorPayload is the body of a non-2xx response.
type ErrorPayload struct {
	Error string `json:"error,omitempty"`
}

// Scalar holds a JSON string or number as display text. Numbers keep
// their literal JSON spelling.
type Scalar string

func (s Scalar) String() string {
	return string(s)
}

// UnmarshalJSON accepts strings, numbers and null.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("scalar must be a string or number, got %s", data)
	}
	*s = Scalar(num.String())
	return nil
}
