package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/techtimes/techtimes/api"
	"github.com/techtimes/techtimes/internal/stats"
	"github.com/techtimes/techtimes/pkg/models"
	"github.com/techtimes/techtimes/pkg/repository/mock"
)

func setupStatsServer(t *testing.T) (*httptest.Server, *mock.Store) {
	t.Helper()
	store := mock.NewStore()
	sh := api.NewStatsHandler(stats.NewService(store, store, store, store), store, store)

	r := mux.NewRouter()
	r.HandleFunc("/v1/stats/monthly", sh.Monthly).Methods("GET")
	r.HandleFunc("/v1/stats/alltime", sh.AllTime).Methods("GET")
	r.HandleFunc("/v1/stats/period", sh.Period).Methods("GET")
	r.HandleFunc("/v1/streaks", sh.Streaks).Methods("GET")

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, store
}

func getJSON(t *testing.T, url string, out any) *http.Response {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	if out != nil && res.StatusCode == http.StatusOK {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return res
}

func TestMonthlyStatsEndpoint(t *testing.T) {
	srv, store := setupStatsServer(t)
	seedJob(t, store, "12345", "AB12 CDE", 12, "2023-01-10T09:00:00Z")

	var ms map[string]any
	res := getJSON(t, srv.URL+"/v1/stats/monthly?month=2023-01", &ms)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	if ms["month"] != "2023-01" {
		t.Errorf("month = %v, want 2023-01", ms["month"])
	}
	// 12 AW is 60 minutes
	if got := ms["soldHours"].(float64); got != 1.0 {
		t.Errorf("soldHours = %v, want 1", got)
	}
	if got := ms["targetHours"].(float64); got != 180 {
		t.Errorf("targetHours = %v, want 180", got)
	}
}

func TestAllTimeAndPeriodEndpoints(t *testing.T) {
	srv, store := setupStatsServer(t)
	seedJob(t, store, "12345", "AB12 CDE", 12, time.Now().UTC().Format(time.RFC3339))
	seedJob(t, store, "54321", "XY65 ZZZ", 6, "2023-01-10T09:00:00Z")

	var at map[string]any
	getJSON(t, srv.URL+"/v1/stats/alltime", &at)
	if int(at["totalJobs"].(float64)) != 2 || int(at["totalAw"].(float64)) != 18 {
		t.Errorf("alltime = %v", at)
	}

	var ps map[string]any
	getJSON(t, srv.URL+"/v1/stats/period?period=today", &ps)
	if int(ps["jobCount"].(float64)) != 1 || int(ps["totalAw"].(float64)) != 12 {
		t.Errorf("today = %v", ps)
	}

	res := getJSON(t, srv.URL+"/v1/stats/period?period=year", nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("bad period status = %d, want 400", res.StatusCode)
	}
	res = getJSON(t, srv.URL+"/v1/stats/period", nil)
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("missing period status = %d, want 400", res.StatusCode)
	}
}

func TestStreaksEndpoint(t *testing.T) {
	srv, store := setupStatsServer(t)
	seedJob(t, store, "12345", "AB12 CDE", 8, time.Now().UTC().Format(time.RFC3339))

	var sd map[string]any
	getJSON(t, srv.URL+"/v1/streaks", &sd)
	if sd["enabled"] != true {
		t.Fatalf("enabled = %v, want true", sd["enabled"])
	}
	if int(sd["currentStreak"].(float64)) < 1 {
		t.Errorf("currentStreak = %v, want >= 1", sd["currentStreak"])
	}
	if int(sd["weeklyTarget"].(float64)) != 5 {
		t.Errorf("weeklyTarget = %v, want 5", sd["weeklyTarget"])
	}

	off := false
	if _, err := store.UpdateSettings(context.Background(), models.SettingsPatch{StreaksEnabled: &off}); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	sd = nil
	getJSON(t, srv.URL+"/v1/streaks", &sd)
	if sd["enabled"] != false {
		t.Errorf("enabled = %v, want false", sd["enabled"])
	}
	if _, ok := sd["currentStreak"]; !ok {
		t.Errorf("disabled response missing streak fields: %v", sd)
	}
}
