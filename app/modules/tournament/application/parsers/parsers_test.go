package parsers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "roster.csv", want: "csv"},
		{name: "upper-case extension", filename: "ROSTER.CSV", want: "csv"},
		{name: "txt file", filename: "roster.txt", want: "txt"},
		{name: "xlsx file", filename: "roster.xlsx", want: "xlsx"},
		{name: "legacy xls file", filename: "roster.xls", wantErr: true},
		{name: "no extension", filename: "roster", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFileType)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVParser)
				require.True(t, ok)
			case "txt":
				_, ok := parser.(*TXTParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			default:
				t.Fatalf("unexpected parser type %q", tt.want)
			}
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	parser := NewCSVParser()
	tests := []struct {
		name    string
		data    string
		want    []string
		wantErr error
	}{
		{
			name: "name header column",
			data: "club,name\nNorth,Ada\nSouth,Bea\n",
			want: []string{"Ada", "Bea"},
		},
		{
			name: "no header uses first column",
			data: "Ada,11\nBea,9\n",
			want: []string{"Ada", "Bea"},
		},
		{
			name: "bom, crlf and blank rows",
			data: "\xEF\xBB\xBFName\r\nAda\r\n\r\n  Bea  \r\n",
			want: []string{"Ada", "Bea"},
		},
		{
			name: "semicolon delimiter",
			data: "Player Name;Team\nAda;A\nBea;B\n",
			want: []string{"Ada", "Bea"},
		},
		{
			name:    "header only",
			data:    "name\n",
			wantErr: ErrEmptyRoster,
		},
		{
			name:    "empty file",
			data:    "",
			wantErr: ErrEmptyRoster,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTXTParser_Parse(t *testing.T) {
	parser := NewTXTParser()

	got, err := parser.Parse([]byte("Ada\n\n  Bea \r\nCy\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada", "Bea", "Cy"}, got)

	_, err = parser.Parse([]byte("\n \n"))
	require.ErrorIs(t, err, ErrEmptyRoster)
}

func TestXLSXParser_Parse(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Seed", "Name"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{1, "Ada"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{2, "Bea"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{3, ""}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	got, err := NewXLSXParser().Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada", "Bea"}, got)
}

func TestXLSXParser_RejectsNonWorkbook(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("name\nAda\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open XLSX file")
}
