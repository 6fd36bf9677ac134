package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/qalat/internal/daily"
	"github.com/robalobadob/qalat/internal/game"
	"github.com/robalobadob/qalat/internal/hints"
	"github.com/robalobadob/qalat/internal/play"
	"github.com/robalobadob/qalat/internal/resource"
	"github.com/robalobadob/qalat/internal/store"
	"github.com/robalobadob/qalat/internal/words"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootShowsHelp(t *testing.T) {
	out, err := runRoot(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "qalat")
}

func TestRootRejectsUnknownFlags(t *testing.T) {
	_, err := runRoot(t, "--no-such-flag")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	out, err := runRoot(t, "check", "ጸሀይ", "ፀሐይ")
	require.NoError(t, err)
	assert.Contains(t, out, "ጸ")
	assert.Contains(t, out, "blue correct correct")

	_, err = runRoot(t, "check", "ሰላም", "ሰላ")
	assert.Error(t, err)
}

func TestFamilyCommand(t *testing.T) {
	out, err := runRoot(t, "family", "ሉ")
	require.NoError(t, err)
	for _, g := range []string{"ለ", "ሉ", "ሊ", "ላ", "ሌ", "ል", "ሎ", "ሏ"} {
		assert.Contains(t, out, g)
	}

	_, err = runRoot(t, "family", "x")
	assert.Error(t, err)
}

func TestNormalizeCommand(t *testing.T) {
	out, err := runRoot(t, "normalize", "ሠላም", "ጸሐይ")
	require.NoError(t, err)
	assert.Contains(t, out, "ሠላም\tሰላም")
	assert.Contains(t, out, "ጸሐይ\tፀሀይ")
}

func TestWordsCommand(t *testing.T) {
	out, err := runRoot(t, "words")
	require.NoError(t, err)
	assert.Contains(t, out, "3 ፊደላት:")
	assert.Contains(t, out, "5 ፊደላት:")
}

type fixedPicker struct{ word string }

func (p fixedPicker) Pick([]string, int, string) (string, error) { return p.word, nil }

func newTestService() *play.Service {
	dict := words.New(map[int][]string{3: {"ፀሐይ", "ሰላም", "ሰማይ", "እናት"}})
	lock := daily.NewMemoryLock()
	eng := game.NewEngine(dict, lock, fixedPicker{"ፀሐይ"})
	return play.New(eng, store.NewMemoryStore(), hints.NewSource(resource.New(0), ""), lock)
}

func TestRunPlayWins(t *testing.T) {
	svc := newTestService()
	in := strings.NewReader("ሰላሰ\nሰላ\n:hint\nሰማይ\nጸሀይ\n")
	out := new(bytes.Buffer)

	require.NoError(t, runPlay(context.Background(), svc, "p1", 3, in, out))
	text := out.String()
	assert.Contains(t, text, "ያልታወቀ ቃል!")
	assert.Contains(t, text, "3 ፊደላት ያስገቡ")
	assert.Contains(t, text, "absent absent correct")
	assert.Contains(t, text, "ቃላት (3 ፊደላት) - 2/6")
}

func TestRunPlayResumesAndQuits(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	out := new(bytes.Buffer)
	require.NoError(t, runPlay(ctx, svc, "p1", 3, strings.NewReader("ሰማይ\n:quit\n"), out))

	out.Reset()
	require.NoError(t, runPlay(ctx, svc, "p1", 3, strings.NewReader(":share\n"), out))
	assert.Contains(t, out.String(), "Resuming 3-glyph round")
	assert.Contains(t, out.String(), "1/6")

	// Finishing locks the length for the rest of the day.
	require.NoError(t, runPlay(ctx, svc, "p1", 3, strings.NewReader("ፀሐይ\n"), new(bytes.Buffer)))
	out.Reset()
	require.NoError(t, runPlay(ctx, svc, "p1", 3, strings.NewReader(":reset\n"), out))
	assert.Contains(t, out.String(), "ቃሉ: ፀሀይ")
	assert.Contains(t, out.String(), "ዛሬ ተጫውተው ጨርሰዋል")
}
