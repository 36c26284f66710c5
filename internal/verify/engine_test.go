package verify_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"md5sum/internal/metrics"
	"md5sum/internal/verify"
)

func TestEngine_Check_TableDriven(t *testing.T) {
	boom := errors.New("permission denied")
	goodHex := md5Hex("good content")

	tests := []struct {
		name       string
		line       string
		want       verify.Outcome
		wantOpened []string
	}{
		{
			name:       "match",
			line:       goodHex + "  good.txt",
			want:       verify.MatchSuccess{Target: "good.txt"},
			wantOpened: []string{"good.txt"},
		},
		{
			name:       "match upper case binary",
			line:       strings.ToUpper(goodHex) + " *good.txt",
			want:       verify.MatchSuccess{Target: "good.txt"},
			wantOpened: []string{"good.txt"},
		},
		{
			name:       "empty file",
			line:       "d41d8cd98f00b204e9800998ecf8427e *empty.txt",
			want:       verify.MatchSuccess{Target: "empty.txt"},
			wantOpened: []string{"empty.txt"},
		},
		{
			name: "mismatch",
			line: goodHex + "  other.txt",
			want: verify.MatchFailed{
				Target:   "other.txt",
				Expected: goodHex,
				Computed: md5Hex("other content"),
			},
			wantOpened: []string{"other.txt"},
		},
		{
			name:       "bad format never opens",
			line:       goodHex + " good.txt",
			want:       verify.BadFormat{},
			wantOpened: nil,
		},
		{
			name:       "short digest never opens",
			line:       goodHex[1:] + "  good.txt",
			want:       verify.BadFormat{},
			wantOpened: nil,
		},
		{
			name:       "leading space",
			line:       " " + goodHex + "  good.txt",
			want:       verify.BadFormat{},
			wantOpened: nil,
		},
		{
			name:       "unreadable",
			line:       goodHex + "  locked.txt",
			want:       verify.ReadError{Target: "locked.txt", Err: boom},
			wantOpened: []string{"locked.txt"},
		},
		{
			name:       "empty name is a read error",
			line:       goodHex + "  ",
			wantOpened: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := &memOpener{
				files: map[string]string{
					"good.txt":  "good content",
					"other.txt": "other content",
					"empty.txt": "",
				},
				errs: map[string]error{"locked.txt": boom},
			}
			e := newEngine(t, opener, nil)

			got := e.Check(tt.line)

			if tt.want == nil {
				re, ok := got.(verify.ReadError)
				require.True(t, ok, "got %#v", got)
				assert.Equal(t, "", re.Target)
				assert.Error(t, re.Err)
			} else {
				assert.Equal(t, tt.want, got)
			}
			assert.Equal(t, tt.wantOpened, opener.opened)
		})
	}
}

func TestEngine_Check_SingleHexMutationIsMismatch(t *testing.T) {
	content := "payload"
	good := md5Hex(content)
	opener := &memOpener{files: map[string]string{"f": content}}
	e := newEngine(t, opener, nil)

	const hexDigits = "0123456789abcdef"
	for i := 0; i < len(good); i++ {
		for _, c := range hexDigits {
			if byte(c) == good[i] {
				continue
			}
			mutated := good[:i] + string(c) + good[i+1:]

			got := e.Check(mutated + "  f")

			_, ok := got.(verify.MatchFailed)
			require.True(t, ok, "position %d -> %c gave %#v", i, c, got)
		}
	}
}

func TestEngine_Digest_CountsStats(t *testing.T) {
	stats := &metrics.Stats{}
	opener := &memOpener{files: map[string]string{"a": "12345", "b": "678"}}
	e := newEngine(t, opener, stats)

	var progressed int64
	e.OnProgress = func(n int64) { progressed += n }

	d, err := e.Digest("a")
	require.NoError(t, err)
	assert.Equal(t, md5Hex("12345"), d.Hex())

	_, err = e.Digest("b")
	require.NoError(t, err)

	_, err = e.Digest("missing")
	require.Error(t, err)

	snap := stats.Snapshot()
	assert.Equal(t, int64(3), snap.Targets)
	assert.Equal(t, int64(8), snap.BytesHashed)
	assert.Equal(t, int64(8), progressed)
}
