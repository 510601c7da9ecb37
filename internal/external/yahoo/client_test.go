package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonhee/golddash/backend/pkg/httputil"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

func newTestClient(baseURL string) *Client {
	log := logger.NewWithWriter(io.Discard)
	return NewClient(httputil.New(log), log, baseURL)
}

func chartBody(timestamps []int64, closes []string) string {
	ts := ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
		}
		ts += fmt.Sprintf("%d", t)
	}
	vals := ""
	for i, c := range closes {
		if i > 0 {
			vals += ","
		}
		vals += c
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"open":[%s],"high":[%s],"low":[%s],"close":[%s],"volume":[%s]}]}}],"error":null}}`,
		ts, vals, vals, vals, vals, volumesFor(len(closes)))
}

func volumesFor(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += "1000"
	}
	return out
}

func TestFetchDaily(t *testing.T) {
	day1 := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	var gotPath, gotQuery, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, chartBody([]int64{day1.Unix(), day2.Unix()}, []string{"2000.555", "2010.1"}))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	bars, err := client.FetchDaily(context.Background(), "GC=F", day1, day2)
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.Equal(t, "/v8/finance/chart/GC=F", gotPath)
	assert.Contains(t, gotQuery, "interval=1d")
	assert.Contains(t, gotQuery, fmt.Sprintf("period1=%d", day1.Unix()))
	// period2 is exclusive: one day past the requested end
	assert.Contains(t, gotQuery, fmt.Sprintf("period2=%d", day2.AddDate(0, 0, 1).Unix()))
	assert.Contains(t, gotUA, "Mozilla")

	assert.Equal(t, "2026-08-27", bars[0].Date)
	assert.Equal(t, 2000.56, bars[0].Close, "values rounded to 2 decimals")
	assert.Equal(t, int64(1000), bars[0].Volume)
	assert.Equal(t, "2026-08-28", bars[1].Date)
}

func TestFetchDailyErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    "boom",
			wantErr: "status 500",
		},
		{
			name:    "api error payload",
			status:  http.StatusOK,
			body:    `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`,
			wantErr: "delisted",
		},
		{
			name:    "empty result",
			status:  http.StatusOK,
			body:    `{"chart":{"result":[],"error":null}}`,
			wantErr: "no data",
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    "<html>blocked</html>",
			wantErr: "decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			_, err := client.FetchDaily(context.Background(), "GC=F", time.Now().AddDate(0, 0, -1), time.Now())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseChartSkipsNullBars(t *testing.T) {
	day1 := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	// Middle bar is all nulls (market holiday)
	body := fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%d,%d],"indicators":{"quote":[{"open":[2000,null],"high":[2005,null],"low":[1995,null],"close":[2001,null],"volume":[1000,null]}]}}],"error":null}}`,
		day1.Unix(), day2.Unix())

	bars, err := parseChart([]byte(body))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, "2026-08-27", bars[0].Date)
}

func TestParseChartSortsAscending(t *testing.T) {
	day1 := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	body := chartBody([]int64{day2.Unix(), day1.Unix()}, []string{"2010", "2000"})

	bars, err := parseChart([]byte(body))
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, "2026-08-27", bars[0].Date)
	assert.Equal(t, "2026-08-28", bars[1].Date)
}
