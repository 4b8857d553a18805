package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medication-adherence/internal/adapters/auth/jwtauth"
	"medication-adherence/internal/platform/dates"
	"medication-adherence/internal/platform/metrics"
	"medication-adherence/internal/ports/auth"
	"medication-adherence/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type medicationBody struct {
	ID            string  `json:"id"`
	StockQuantity int     `json:"stock_quantity"`
	NeedsRefill   bool    `json:"needs_refill"`
	Frequency     string  `json:"frequency"`
	EndDate       *string `json:"end_date"`
}

type doseBody struct {
	ID            string `json:"id"`
	MedicationID  string `json:"medication_id"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
	Status        string `json:"status"`
	Notes         string `json:"notes"`
}

func TestHTTP_EndToEnd_DoseLifecycleAndAdherence(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	const owner = "patient-1"
	today := dates.Day(time.Now().UTC())
	day := func(offset int) string { return dates.Format(dates.AddDays(today, offset)) }

	// 1) crear medicación: 3 días, once_daily
	var created struct {
		Medication     medicationBody `json:"medication"`
		ScheduledDoses int            `json:"scheduled_doses"`
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/medications", owner, map[string]any{
			"drug_name":        "Lisinopril",
			"dosage_value":     10,
			"dosage_unit":      "mg",
			"frequency":        "once_daily",
			"start_date":       day(-2),
			"end_date":         day(0),
			"stock_quantity":   8,
			"refill_threshold": 7,
		})
		require.Equal(t, http.StatusCreated, st, string(body))
		require.NoError(t, json.Unmarshal(body, &created))
		assert.Equal(t, 3, created.ScheduledDoses)
		assert.False(t, created.Medication.NeedsRefill)
	}
	medID := created.Medication.ID

	// 2) dosis del rango, ordenadas
	var all []doseBody
	{
		st, body := doReq(t, ts.URL, "GET", "/doses?start="+day(-2)+"&end="+day(0), owner, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		require.NoError(t, json.Unmarshal(body, &all))
		require.Len(t, all, 3)
		assert.Equal(t, day(-2), all[0].ScheduledDate)
		assert.Equal(t, day(0), all[2].ScheduledDate)
	}

	// 3) hoy
	{
		st, body := doReq(t, ts.URL, "GET", "/doses/today", owner, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var got []doseBody
		require.NoError(t, json.Unmarshal(body, &got))
		require.Len(t, got, 1)
		assert.Equal(t, all[2].ID, got[0].ID)
		assert.Equal(t, "08:00", got[0].ScheduledTime)
	}

	// 4) taken / missed / taken
	mark(t, ts.URL, owner, all[0].ID, "taken", http.StatusOK)
	mark(t, ts.URL, owner, all[1].ID, "missed", http.StatusOK)
	{
		st, body := doReq(t, ts.URL, "POST", "/doses/"+all[2].ID+"/taken", owner, map[string]any{"notes": "after lunch"})
		require.Equal(t, http.StatusOK, st, string(body))
		var d doseBody
		require.NoError(t, json.Unmarshal(body, &d))
		assert.Equal(t, "taken", d.Status)
		assert.Equal(t, "after lunch", d.Notes)
	}

	// 5) segundo intento sobre una dosis terminal: 409 y el stock no se mueve
	mark(t, ts.URL, owner, all[2].ID, "taken", http.StatusConflict)
	{
		st, body := doReq(t, ts.URL, "GET", "/medications/"+medID, owner, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var m medicationBody
		require.NoError(t, json.Unmarshal(body, &m))
		assert.Equal(t, 6, m.StockQuantity)
		assert.True(t, m.NeedsRefill)
	}

	// 6) low-stock la lista
	{
		st, body := doReq(t, ts.URL, "GET", "/medications/low-stock", owner, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var got []medicationBody
		require.NoError(t, json.Unmarshal(body, &got))
		require.Len(t, got, 1)
		assert.Equal(t, medID, got[0].ID)
	}

	// 7) estadísticas: taken, missed, taken
	{
		st, body := doReq(t, ts.URL, "GET", "/adherence/stats?start="+day(-2)+"&end="+day(0), owner, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var stats struct {
			TotalDoses    int     `json:"total_doses"`
			TakenDoses    int     `json:"taken_doses"`
			MissedDoses   int     `json:"missed_doses"`
			AdherenceRate float64 `json:"adherence_rate"`
			CurrentStreak int     `json:"current_streak"`
			LongestStreak int     `json:"longest_streak"`
		}
		require.NoError(t, json.Unmarshal(body, &stats))
		assert.Equal(t, 3, stats.TotalDoses)
		assert.Equal(t, 2, stats.TakenDoses)
		assert.Equal(t, 1, stats.MissedDoses)
		assert.Equal(t, 66.67, stats.AdherenceRate)
		assert.Equal(t, 1, stats.CurrentStreak)
		assert.Equal(t, 1, stats.LongestStreak)
	}

	// 8) diario con un día extra sin dosis
	{
		st, body := doReq(t, ts.URL, "GET", "/adherence/daily?start="+day(-3)+"&end="+day(0), owner, nil)
		require.Equal(t, http.StatusOK, st, string(body))
		var got []struct {
			Date          string  `json:"date"`
			TotalDoses    int     `json:"total_doses"`
			TakenDoses    int     `json:"taken_doses"`
			AdherenceRate float64 `json:"adherence_rate"`
		}
		require.NoError(t, json.Unmarshal(body, &got))
		require.Len(t, got, 4)
		assert.Equal(t, day(-3), got[0].Date)
		assert.Equal(t, 0, got[0].TotalDoses)
		assert.Equal(t, float64(100), got[1].AdherenceRate)
		assert.Equal(t, float64(0), got[2].AdherenceRate)
	}
}

func TestHTTP_OtherUserSeesNotFound(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	today := dates.Format(dates.Day(time.Now().UTC()))
	medID := createMedication(t, ts.URL, "owner", map[string]any{
		"drug_name":    "Metformin",
		"dosage_value": 500,
		"dosage_unit":  "mg",
		"frequency":    "twice_daily",
		"start_date":   today,
		"end_date":     today,
	})

	st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/doses", "owner", nil)
	require.Equal(t, http.StatusOK, st, string(body))
	var doses []doseBody
	require.NoError(t, json.Unmarshal(body, &doses))
	require.Len(t, doses, 2)

	// ajeno e inexistente responden igual
	stForeign, bodyForeign := doReq(t, ts.URL, "POST", "/doses/"+doses[0].ID+"/taken", "intruder", nil)
	stMissing, bodyMissing := doReq(t, ts.URL, "POST", "/doses/does-not-exist/taken", "intruder", nil)
	assert.Equal(t, http.StatusNotFound, stForeign)
	assert.Equal(t, stMissing, stForeign)
	assert.JSONEq(t, string(bodyMissing), string(bodyForeign))

	for _, path := range []string{"/medications/" + medID, "/medications/" + medID + "/doses"} {
		st, _ := doReq(t, ts.URL, "GET", path, "intruder", nil)
		assert.Equal(t, http.StatusNotFound, st, path)
	}
	st, _ = doReq(t, ts.URL, "DELETE", "/medications/"+medID, "intruder", nil)
	assert.Equal(t, http.StatusNotFound, st)

	st, _ = doReq(t, ts.URL, "GET", "/medications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, st)
}

func TestHTTP_UpdateRegeneratesFuture(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	today := dates.Day(time.Now().UTC())
	day := func(offset int) string { return dates.Format(dates.AddDays(today, offset)) }

	medID := createMedication(t, ts.URL, "owner", map[string]any{
		"drug_name":    "Amoxicillin",
		"dosage_value": 1,
		"dosage_unit":  "capsule",
		"frequency":    "once_daily",
		"start_date":   day(-1),
		"end_date":     day(2),
	})

	var before []doseBody
	st, body := doReq(t, ts.URL, "GET", "/medications/"+medID+"/doses", "owner", nil)
	require.Equal(t, http.StatusOK, st, string(body))
	require.NoError(t, json.Unmarshal(body, &before))
	require.Len(t, before, 4)
	mark(t, ts.URL, "owner", before[0].ID, "taken", http.StatusOK)

	st, body = doReq(t, ts.URL, "PATCH", "/medications/"+medID, "owner", map[string]any{
		"frequency": "three_times_daily",
	})
	require.Equal(t, http.StatusOK, st, string(body))

	var after []doseBody
	st, body = doReq(t, ts.URL, "GET", "/medications/"+medID+"/doses", "owner", nil)
	require.Equal(t, http.StatusOK, st, string(body))
	require.NoError(t, json.Unmarshal(body, &after))

	// ayer: 1 taken intacta; hoy..+2: 3 días x 3 slots
	require.Len(t, after, 1+3*3)
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, "taken", after[0].Status)
	for _, d := range after[1:] {
		assert.Equal(t, "pending", d.Status)
		assert.GreaterOrEqual(t, d.ScheduledDate, day(0))
	}

	// end_date null la limpia; un campo desconocido es 400
	st, body = doReq(t, ts.URL, "PATCH", "/medications/"+medID, "owner", map[string]any{"end_date": nil})
	require.Equal(t, http.StatusOK, st, string(body))
	var m medicationBody
	require.NoError(t, json.Unmarshal(body, &m))
	assert.Nil(t, m.EndDate)

	st, _ = doReq(t, ts.URL, "PATCH", "/medications/"+medID, "owner", map[string]any{"nope": 1})
	assert.Equal(t, http.StatusBadRequest, st)

	// delete en cascada
	st, _ = doReq(t, ts.URL, "DELETE", "/medications/"+medID, "owner", nil)
	assert.Equal(t, http.StatusNoContent, st)
	st, _ = doReq(t, ts.URL, "GET", "/medications/"+medID+"/doses", "owner", nil)
	assert.Equal(t, http.StatusNotFound, st)
}

func TestHTTP_CreateValidation(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	st, body := doReq(t, ts.URL, "POST", "/medications", "owner", map[string]any{
		"drug_name":    "A",
		"dosage_value": 0,
		"dosage_unit":  "mg",
		"frequency":    "hourly",
		"start_date":   "2024-03-10",
		"end_date":     "2024-03-01",
	})
	require.Equal(t, http.StatusBadRequest, st, string(body))

	var resp struct {
		Error  string `json:"error"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "VALIDATION", resp.Error)

	fields := make([]string, 0, len(resp.Fields))
	for _, f := range resp.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"drug_name", "dosage_value", "frequency", "end_date"}, fields)

	st, _ = doReq(t, ts.URL, "POST", "/medications", "owner", map[string]any{
		"drug_name":    "Aspirin",
		"dosage_value": 100,
		"dosage_unit":  "mg",
		"frequency":    "once_daily",
		"start_date":   "10/03/2024",
	})
	assert.Equal(t, http.StatusBadRequest, st)

	st, _ = doReq(t, ts.URL, "GET", "/doses?start=2024-03-10&end=2024-03-01", "owner", nil)
	assert.Equal(t, http.StatusBadRequest, st)
}

func TestHTTP_OversizedWindowsRejected(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	fieldOf := func(body []byte) []string {
		var resp struct {
			Fields []struct {
				Field string `json:"field"`
			} `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(body, &resp))
		out := make([]string, 0, len(resp.Fields))
		for _, f := range resp.Fields {
			out = append(out, f.Field)
		}
		return out
	}

	st, body := doReq(t, ts.URL, "GET", "/adherence/daily?start=0001-01-02&end=9999-12-31", "owner", nil)
	require.Equal(t, http.StatusBadRequest, st, string(body))
	assert.Equal(t, []string{"end"}, fieldOf(body))

	st, _ = doReq(t, ts.URL, "GET", "/doses?start=2020-01-01&end=2024-01-01", "owner", nil)
	assert.Equal(t, http.StatusBadRequest, st)

	st, body = doReq(t, ts.URL, "POST", "/medications", "owner", map[string]any{
		"drug_name":    "Ibuprofen",
		"dosage_value": 200,
		"dosage_unit":  "mg",
		"frequency":    "every_6_hours",
		"start_date":   "2000-01-01",
		"end_date":     "9999-12-31",
	})
	require.Equal(t, http.StatusBadRequest, st, string(body))
	assert.Equal(t, []string{"end_date"}, fieldOf(body))

	st, body = doReq(t, ts.URL, "POST", "/medications", "owner", map[string]any{
		"drug_name":    "Ibuprofen",
		"dosage_value": 200,
		"dosage_unit":  "mg",
		"frequency":    "once_daily",
		"start_date":   "0001-01-01",
	})
	require.Equal(t, http.StatusBadRequest, st, string(body))
	assert.Equal(t, []string{"start_date"}, fieldOf(body))
	assert.Contains(t, string(body), "1900-01-01")

	// abierta desde hace décadas: la rechaza el generador, nada queda guardado
	st, body = doReq(t, ts.URL, "POST", "/medications", "owner", map[string]any{
		"drug_name":    "Ibuprofen",
		"dosage_value": 200,
		"dosage_unit":  "mg",
		"frequency":    "once_daily",
		"start_date":   "1950-01-01",
	})
	require.Equal(t, http.StatusBadRequest, st, string(body))
	assert.Equal(t, []string{"start_date"}, fieldOf(body))

	st, body = doReq(t, ts.URL, "GET", "/medications", "owner", nil)
	require.Equal(t, http.StatusOK, st)
	assert.JSONEq(t, "[]", string(body))
}

type panickyVerifier struct{}

func (panickyVerifier) Verify(context.Context, string) (auth.Claims, error) {
	panic("verifier exploded")
}

func TestHTTP_RecoversPanicInAuth(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: panickyVerifier{}}))
	defer ts.Close()

	req, err := http.NewRequest("GET", ts.URL+"/medications", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer whatever")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	// el server sigue vivo
	st, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)
}

func TestHTTP_BearerAuthAndSystemRoutes(t *testing.T) {
	cfg := jwtauth.Config{Secret: []byte("test-secret")}
	m := metrics.New()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: jwtauth.NewVerifier(cfg),
		Metrics:      m,
	}))
	defer ts.Close()

	// con verifier el header de debug no autentica
	st, _ := doReq(t, ts.URL, "GET", "/medications", "someone", nil)
	assert.Equal(t, http.StatusUnauthorized, st)

	tok, err := jwtauth.Sign(cfg, "patient-9", "", time.Hour)
	require.NoError(t, err)

	req, err := http.NewRequest("GET", ts.URL+"/medications", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	_ = res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))
	assert.JSONEq(t, "[]", string(body))

	st, body = doReq(t, ts.URL, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Equal(t, "ok", string(body))

	st, body = doReq(t, ts.URL, "GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.True(t, strings.Contains(string(body), "http_requests_total"))

	st, body = doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, st)
	assert.Contains(t, string(body), "/adherence/stats")
}

func TestHTTP_HealthReportsStorageFailure(t *testing.T) {
	st := router.MemoryStorage()
	st.Ping = func(_ context.Context) error { return errors.New("down") }

	ts := httptest.NewServer(router.NewRouter(router.Options{Storage: st}))
	defer ts.Close()

	code, _ := doReq(t, ts.URL, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func createMedication(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/medications", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create medication, got %d body=%s", st, string(body))
	}

	var resp struct {
		Medication struct {
			ID string `json:"id"`
		} `json:"medication"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Medication.ID == "" {
		t.Fatalf("create medication: missing id body=%s", string(body))
	}
	return resp.Medication.ID
}

func mark(t *testing.T, baseURL, userID, doseID, outcome string, want int) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/doses/"+doseID+"/"+outcome, userID, nil)
	if st != want {
		t.Fatalf("expected %d marking %s, got %d body=%s", want, outcome, st, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
