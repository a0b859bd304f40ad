package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/wxsign/outdoor_temp_display/sevenseg"
)

// noDataFloor is the conventional sentinel: the sensor reports a value
// at or below it when it has no reading.
const noDataFloor = -100.0

var sensorClient = &http.Client{Timeout: 5 * time.Second}

// fetchTemperature reads the ambient temperature from the local sensor
// endpoint. The payload is {"temperature": <celsius float>}; the value
// is rounded to the nearest integer and validated into the display
// domain before it may reach the encoder.
func fetchTemperature(client *http.Client, url string) (int, error) {
	resp, err := client.Get(url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("sensor returned %s", resp.Status)
	}

	var result struct {
		Temperature *float64 `json:"temperature"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("invalid sensor payload: %v", err)
	}
	if result.Temperature == nil {
		return 0, fmt.Errorf("sensor payload has no temperature field")
	}

	celsius := *result.Temperature
	if celsius <= noDataFloor {
		return 0, fmt.Errorf("sensor reports no data (%g)", celsius)
	}

	v := int(math.Round(celsius))
	if v < sevenseg.MinValue || v > sevenseg.MaxValue {
		return 0, fmt.Errorf("temperature %d outside displayable range [%d,%d]",
			v, sevenseg.MinValue, sevenseg.MaxValue)
	}
	return v, nil
}

// pollSensor periodically refreshes the published temperature sample.
// Any failure clears the sample; the render loop falls back to a
// symbolic state, it never sees an error.
func pollSensor(cfg Config, st *displayState) {
	interval := time.Duration(cfg.PollSeconds) * time.Second
	for {
		if v, err := fetchTemperature(sensorClient, cfg.SensorURL); err != nil {
			log.Printf("Could not get temperature: %v", err)
			st.clearTemperature()
		} else {
			st.setTemperature(v)
		}
		time.Sleep(interval)
	}
}
