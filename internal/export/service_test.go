package export

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/papers-extractor/internal/common"
	"github.com/joseph-ayodele/papers-extractor/internal/testutil"
)

func TestRecordsXLSX(t *testing.T) {
	headers := []string{"path", "title", "has_data_section"}
	rows := [][]any{
		{"/p/a.pdf", "Labor and Asset Prices", 1},
		{"/p/b.pdf", "", 0},
		{"/p/c.pdf", strings.Repeat("x", excelize.TotalCellChars+10), 0},
	}

	b, err := NewService(testutil.Logger()).RecordsXLSX(headers, rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	require.Equal(t, []string{SheetName}, f.GetSheetList())
	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, got, 4)
	require.Equal(t, headers, got[0])
	require.Equal(t, []string{"/p/a.pdf", "Labor and Asset Prices", "1"}, got[1])
	require.Equal(t, "/p/b.pdf", got[2][0])
	require.Equal(t, "0", got[2][2])
	require.Equal(t, excelize.TotalCellChars, utf8.RuneCountInString(got[3][1]))

	panes, err := f.GetPanes(SheetName)
	require.NoError(t, err)
	require.True(t, panes.Freeze)
	require.Equal(t, 1, panes.YSplit)
}

func TestRecordsXLSX_HeaderOnly(t *testing.T) {
	b, err := NewService(testutil.Logger()).RecordsXLSX([]string{"path"}, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"path"}}, got)
}

func TestRecordsXLSX_NoHeaders(t *testing.T) {
	_, err := NewService(testutil.Logger()).RecordsXLSX(nil, nil)
	require.ErrorIs(t, err, common.ErrExport)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	require.Equal(t, "ab…", truncate("abcdef", 3))
	require.Equal(t, "é", truncate("éé", 1))
}
