package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func sensorServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchTemperature(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    int
		wantErr bool
	}{
		{"whole degrees", http.StatusOK, `{"temperature": 24}`, 24, false},
		{"rounds to nearest", http.StatusOK, `{"temperature": 21.4}`, 21, false},
		{"rounds negative", http.StatusOK, `{"temperature": -3.6}`, -4, false},
		{"zero", http.StatusOK, `{"temperature": 0.2}`, 0, false},
		{"no-data sentinel", http.StatusOK, `{"temperature": -127}`, 0, true},
		{"sentinel boundary", http.StatusOK, `{"temperature": -100}`, 0, true},
		{"too hot for display", http.StatusOK, `{"temperature": 120.5}`, 0, true},
		{"missing field", http.StatusOK, `{"humidity": 40}`, 0, true},
		{"malformed payload", http.StatusOK, `{"temperature":`, 0, true},
		{"server error", http.StatusInternalServerError, ``, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := sensorServer(t, tt.status, tt.body)
			got, err := fetchTemperature(srv.Client(), srv.URL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("fetchTemperature() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("fetchTemperature() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFetchTemperatureUnreachable(t *testing.T) {
	srv := sensorServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()
	if _, err := fetchTemperature(http.DefaultClient, url); err == nil {
		t.Error("fetchTemperature should fail when the sensor is unreachable")
	}
}
