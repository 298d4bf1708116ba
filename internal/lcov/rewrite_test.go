package lcov

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countHits re-derives the FNH/LH aggregates from the detail lines.
func countHits(t *testing.T, rec Record) (fnh, lh int) {
	t.Helper()
	for _, line := range rec {
		if strings.HasPrefix(line, "FNDA:") {
			count, err := functionDataCount(line)
			require.NoError(t, err)
			if count != 0 {
				fnh++
			}
		}
		if strings.HasPrefix(line, "DA:") {
			_, count, err := lineData(line)
			require.NoError(t, err)
			if count != 0 {
				lh++
			}
		}
	}
	return fnh, lh
}

func TestErase(t *testing.T) {
	base := Record{
		"SF:/src/lib/common/strings.c",
		"FN:10,helper",
		"FN:20,pub",
		"FNDA:3,helper",
		"FNDA:5,pub",
		"FNH:2",
		"DA:12,3",
		"DA:22,5",
		"LH:2",
	}

	t.Run("should zero the function and its lines and fix the totals", func(t *testing.T) {
		spans, err := base.Functions()
		require.NoError(t, err)

		out, err := Erase(base, spans[0]) // helper, lines 10-19
		require.NoError(t, err)

		assert.Equal(t, Record{
			"SF:/src/lib/common/strings.c",
			"FN:10,helper",
			"FN:20,pub",
			"FNDA:0,helper",
			"FNDA:5,pub",
			"FNH:1",
			"DA:12,0",
			"DA:22,5",
			"LH:1",
		}, out)
	})

	t.Run("should leave the input record untouched", func(t *testing.T) {
		spans, err := base.Functions()
		require.NoError(t, err)

		_, err = Erase(base, spans[0])
		require.NoError(t, err)
		assert.Equal(t, "FNDA:3,helper", base[3])
		assert.Equal(t, "FNH:2", base[5])
	})

	t.Run("should erase an open-ended span to the end of the file", func(t *testing.T) {
		rec := Record{
			"FN:20,last",
			"FNDA:5,last",
			"FNH:1",
			"DA:22,5",
			"DA:9000,2",
			"LH:2",
		}

		out, err := Erase(rec, FunctionSpan{Name: "last", Start: 20})
		require.NoError(t, err)
		assert.Contains(t, out, "DA:9000,0")
		assert.Contains(t, out, "LH:0")
	})

	t.Run("should not count already-zero lines against LH", func(t *testing.T) {
		rec := Record{
			"FN:10,f",
			"FNDA:1,f",
			"FNH:1",
			"DA:11,0",
			"DA:12,4",
			"LH:1",
		}

		out, err := Erase(rec, FunctionSpan{Name: "f", Start: 10})
		require.NoError(t, err)
		assert.Contains(t, out, "LH:0")
	})

	t.Run("aggregates should stay consistent over repeated erasure", func(t *testing.T) {
		rec := Record{
			"SF:/src/a.c",
			"FN:10,a",
			"FN:20,b",
			"FN:30,c",
			"FNDA:1,a",
			"FNDA:2,b",
			"FNDA:3,c",
			"FNH:3",
			"DA:11,1",
			"DA:21,2",
			"DA:22,0",
			"DA:31,3",
			"LH:3",
		}

		spans, err := rec.Functions()
		require.NoError(t, err)

		// Erase in reverse declaration order; composition must not
		// depend on order since spans never overlap.
		for i := len(spans) - 1; i >= 0; i-- {
			rec, err = Erase(rec, spans[i])
			require.NoError(t, err)

			fnh, lh := countHits(t, rec)
			assert.Contains(t, rec, "FNH:"+strconv.Itoa(fnh))
			assert.Contains(t, rec, "LH:"+strconv.Itoa(lh))
		}

		assert.Contains(t, rec, "FNH:0")
		assert.Contains(t, rec, "LH:0")
	})

	t.Run("should pass unknown tags through unchanged", func(t *testing.T) {
		rec := Record{
			"FN:10,f",
			"FNDA:1,f",
			"FNH:1",
			"BRDA:11,0,0,1",
			"DA:11,1",
			"LH:1",
		}

		out, err := Erase(rec, FunctionSpan{Name: "f", Start: 10})
		require.NoError(t, err)
		assert.Contains(t, out, "BRDA:11,0,0,1")
	})

	t.Run("should reject an erase that would drive FNH negative", func(t *testing.T) {
		rec := Record{
			"FNDA:1,f",
			"FNH:0",
		}

		_, err := Erase(rec, FunctionSpan{Name: "f", Start: 10})
		assert.ErrorContains(t, err, "FNH negative")
	})

	t.Run("should reject an erase that would drive LH negative", func(t *testing.T) {
		rec := Record{
			"FNDA:1,f",
			"FNH:1",
			"DA:11,1",
			"DA:12,1",
			"LH:1",
		}

		_, err := Erase(rec, FunctionSpan{Name: "f", Start: 10})
		assert.ErrorContains(t, err, "LH negative")
	})
}
