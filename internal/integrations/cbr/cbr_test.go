package cbr

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Dan9191/finance-advisor/internal/config"
	"github.com/beevik/etree"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyRateXML = `<?xml version="1.0" encoding="utf-8"?>
<soap:Envelope xmlns:soap="http://www.w3.org/2003/05/soap-envelope">
  <soap:Body>
    <KeyRateResponse xmlns="http://web.cbr.ru/">
      <KeyRateResult>
        <diffgram>
          <KeyRate>
            <KR><DT>2024-06-10T00:00:00+03:00</DT><Rate>16.00</Rate></KR>
            <KR><DT>2024-06-07T00:00:00+03:00</DT><Rate>15.50</Rate></KR>
          </KeyRate>
        </diffgram>
      </KeyRateResult>
    </KeyRateResponse>
  </soap:Body>
</soap:Envelope>`

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestGetKeyRate(t *testing.T) {
	var soapAction string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		soapAction = r.Header.Get("SOAPAction")
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "<fromDate>2024-05-11</fromDate>")
		assert.Contains(t, string(body), "<ToDate>2024-06-10</ToDate>")
		_, _ = w.Write([]byte(keyRateXML))
	}))
	defer server.Close()

	client := NewCBRClient(&config.Config{CBRURL: server.URL}, testLogger())
	client.now = func() time.Time { return time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC) }

	rate, err := client.GetKeyRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 21.0, rate)
	assert.Equal(t, "http://web.cbr.ru/KeyRate", soapAction)
}

func TestKeyRateEnvelope(t *testing.T) {
	client := NewCBRClient(&config.Config{}, testLogger())
	client.now = func() time.Time { return time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC) }

	body, err := client.keyRateEnvelope()
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(body))
	call := doc.FindElement("//Envelope/Body/KeyRate")
	require.NotNil(t, call)
	assert.Equal(t, "http://web.cbr.ru/", call.SelectAttrValue("xmlns", ""))
	assert.Equal(t, "2024-02-04", call.FindElement("fromDate").Text())
	assert.Equal(t, "2024-03-05", call.FindElement("ToDate").Text())
}

func TestGetKeyRateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"bad status", http.StatusBadGateway, ""},
		{"not xml", http.StatusOK, "<<<"},
		{"no rows", http.StatusOK, "<diffgram><KeyRate></KeyRate></diffgram>"},
		{"no rate", http.StatusOK, "<diffgram><KeyRate><KR><DT>x</DT></KR></KeyRate></diffgram>"},
		{"bad rate", http.StatusOK, "<diffgram><KeyRate><KR><Rate>abc</Rate></KR></KeyRate></diffgram>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewCBRClient(&config.Config{CBRURL: server.URL}, testLogger())
			_, err := client.GetKeyRate(context.Background())
			assert.Error(t, err)
		})
	}
}

type stubSource struct {
	rate float64
	err  error
}

func (s *stubSource) GetKeyRate(context.Context) (float64, error) {
	return s.rate, s.err
}

func TestRateCache(t *testing.T) {
	source := &stubSource{rate: 18.5}
	cache := NewRateCache(source, testLogger())
	fetchedAt := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return fetchedAt }

	_, ok := cache.Current()
	assert.False(t, ok)

	require.NoError(t, cache.Refresh(context.Background()))
	rate, ok := cache.Current()
	require.True(t, ok)
	assert.Equal(t, KeyRate{Rate: 18.5, FetchedAt: fetchedAt}, rate)

	// A failed refresh keeps the previous value
	source.err = errors.New("unavailable")
	assert.Error(t, cache.Refresh(context.Background()))
	rate, ok = cache.Current()
	require.True(t, ok)
	assert.Equal(t, 18.5, rate.Rate)
}

func TestRateCacheSchedule(t *testing.T) {
	cache := NewRateCache(&stubSource{rate: 1}, testLogger())
	scheduler := cron.New()

	_, err := cache.Schedule(scheduler, "@daily")
	assert.NoError(t, err)
	assert.Len(t, scheduler.Entries(), 1)

	_, err = cache.Schedule(scheduler, "not a schedule")
	assert.Error(t, err)
}
