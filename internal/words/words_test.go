package words

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/qalat/internal/resource"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"lines", "ሰላም\n\n# comment\n  እናት \n", []string{"ሰላም", "እናት"}},
		{"json array", ` ["ሰላም", " እናት", ""] `, []string{"ሰላም", "እናት"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse([]byte(tt.in)))
		})
	}
}

func TestDictionary_LengthFilterAndLookup(t *testing.T) {
	d := New(map[int][]string{
		3: {"ፀሐይ", "ሰላም", "ሰላም", "ቤት", "ቤተሰብ"},
		4: {},
	})
	assert.Equal(t, []string{"ፀሐይ", "ሰላም"}, d.Words(3))
	assert.Equal(t, 0, d.Len(4))
	assert.Equal(t, 0, d.Len(5))

	// Lookup goes through normalization on both sides.
	assert.True(t, d.Contains(3, "ፀሐይ"))
	assert.True(t, d.Contains(3, "ጸሀይ"))
	assert.True(t, d.Contains(3, "ሠላም"))
	assert.False(t, d.Contains(3, "ቤት"))
	assert.False(t, d.Contains(5, "ሰላም"))

	assert.Equal(t, []int{3}, d.Supported())
	assert.Equal(t, map[int]int{3: 2, 4: 0}, d.Stats())
}

func TestLoad_Embedded(t *testing.T) {
	d, err := Load(context.Background(), resource.New(time.Second), nil)
	require.NoError(t, err)
	for _, n := range Lengths {
		assert.NotZero(t, d.Len(n), "length %d", n)
	}
	assert.True(t, d.Contains(3, "ሰላም"))
	assert.True(t, d.Contains(5, "ኢትዮጵያ"))
}

func TestLoad_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), resource.New(time.Second), Sources{4: srv.URL})
	assert.Error(t, err)
}

func TestRandomPicker(t *testing.T) {
	ws := []string{"ሰላም", "እናት", "አባት"}
	for i := 0; i < 20; i++ {
		w, err := RandomPicker{}.Pick(ws, 3, "2024-01-01")
		require.NoError(t, err)
		assert.Contains(t, ws, w)
	}
	_, err := RandomPicker{}.Pick(nil, 3, "")
	assert.Error(t, err)
}
