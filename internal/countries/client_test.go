package countries

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// newTestClient wires a client to ts with its own transport so no
// keep-alive goroutines outlive the test.
func newTestClient(t *testing.T, ts *httptest.Server, opts ...Option) *Client {
	t.Helper()
	tr := &http.Transport{}
	t.Cleanup(tr.CloseIdleConnections)
	opts = append([]Option{WithBaseURL(ts.URL), WithHTTPClient(&http.Client{Transport: tr})}, opts...)
	return NewClient(opts...)
}

func startServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	t.Cleanup(func() { goleak.VerifyNone(t) })
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchAll_Success(t *testing.T) {
	var gotPath, gotQuery string
	ts := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleJSON))
	})

	list, err := newTestClient(t, ts).FetchAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/all", gotPath)
	assert.Empty(t, gotQuery)
	require.Len(t, list, 4)
	assert.Equal(t, "Peru", list[0].Name.Common)
	assert.Equal(t, int64(33000000), list[0].Population)
	assert.Equal(t, "PER", list[0].CCA3)
	assert.Equal(t, "https://flagcdn.com/w320/pe.png", list[0].Flags.PNG)
	assert.Equal(t, "Pretoria, Bloemfontein, Cape Town", list[2].CapitalLabel())
	assert.Empty(t, list[3].Capital)
}

func TestFetchAll_HTTPError(t *testing.T) {
	ts := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := newTestClient(t, ts).FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestFetchAll_MalformedPayload(t *testing.T) {
	ts := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":404,"message":"Not Found"}`))
	})

	_, err := newTestClient(t, ts).FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchAll_NullPayload(t *testing.T) {
	ts := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	list, err := newTestClient(t, ts).FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.Nil(t, list)
}

func TestFetchAll_EmptyArrayIsNotAnError(t *testing.T) {
	ts := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	list, err := newTestClient(t, ts).FetchAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFetchAll_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewClient(WithBaseURL(url)).FetchAll(context.Background())
	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestFetchAll_Timeout(t *testing.T) {
	ts := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	_, err := newTestClient(t, ts, WithTimeout(20*time.Millisecond)).FetchAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetchFailed)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient()
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c = NewClient(WithBaseURL("http://example.test/v3.1/"), WithBaseURL(""))
	assert.Equal(t, "http://example.test/v3.1", c.BaseURL())
}

func encodeFlag(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			c := color.RGBA{R: 255, A: 255}
			if y >= 2 {
				c = color.RGBA{B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestFetchFlag(t *testing.T) {
	flag := encodeFlag(t)
	ts := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/w320/pe.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(flag)
	})
	c := newTestClient(t, ts)

	img, err := c.FetchFlag(context.Background(), ts.URL+"/w320/pe.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())

	_, err = c.FetchFlag(context.Background(), ts.URL+"/missing.png")
	assert.ErrorIs(t, err, ErrFlagFailed)

	_, err = c.FetchFlag(context.Background(), "")
	assert.ErrorIs(t, err, ErrFlagFailed)
}

func TestFetchFlag_NotAnImage(t *testing.T) {
	ts := startServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>nope</html>"))
	})

	_, err := newTestClient(t, ts).FetchFlag(context.Background(), ts.URL+"/x.png")
	assert.ErrorIs(t, err, ErrFlagFailed)
}
