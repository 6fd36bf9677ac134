package hints

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/qalat/internal/resource"
)

func TestParse_Object(t *testing.T) {
	m, err := Parse([]byte(`{"ፀሐይ": "ቀን የምታበራ", "ባዶ": ""}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ፀሀይ": "ቀን የምታበራ"}, m)
}

func TestParse_Array(t *testing.T) {
	m, err := Parse([]byte(`[{"word": "ሰላም", "hint": "peace"}, {"word": ""}]`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"ሰላም": "peace"}, m)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"a":`))
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = Parse([]byte(`"just a string"`))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestSource_EmbeddedLookup(t *testing.T) {
	s := NewSource(resource.New(time.Second), "")
	h, ok, err := s.Lookup(context.Background(), "ፀሀይ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, h)

	_, ok, err = s.Lookup(context.Background(), "ቤተሰቦች")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSource_RetriesAfterFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"ሰላም": "peace"}`))
	}))
	defer srv.Close()

	s := NewSource(resource.New(time.Second), srv.URL)
	_, _, err := s.Lookup(context.Background(), "ሰላም")
	require.Error(t, err)

	h, ok, err := s.Lookup(context.Background(), "ሠላም")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "peace", h)

	// Cached after the first successful load.
	_, _, err = s.Lookup(context.Background(), "ሰላም")
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}
