package export

import (
	"bytes"
	"encoding/json"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dbsmedya/goiconindex/internal/index"
)

func records(t *testing.T) []*index.Record {
	t.Helper()
	recs, err := index.Build(slices.Values([]string{"foo_1.png", "foo_2.png", "bar.svg"})).SortedList(index.SortByName)
	require.NoError(t, err)
	return recs
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "icons", records(t), FormatJSON))

	var doc struct {
		Source  string `json:"source"`
		Count   int    `json:"count"`
		Records []struct {
			Name               string   `json:"name"`
			Extension          string   `json:"extension"`
			RepresentativePath string   `json:"representative_path"`
			SizeSuffixes       []string `json:"size_suffixes"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "icons", doc.Source)
	assert.Equal(t, 2, doc.Count)
	assert.Equal(t, "bar", doc.Records[0].Name)
	assert.Equal(t, []string{""}, doc.Records[0].SizeSuffixes)
	assert.Equal(t, "foo.png", doc.Records[1].RepresentativePath)
	assert.Equal(t, []string{"_1", "_2"}, doc.Records[1].SizeSuffixes)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "icons", records(t), FormatYAML))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 2, doc["count"])

	recs, ok := doc["records"].([]interface{})
	require.True(t, ok)
	first := recs[0].(map[string]interface{})
	assert.Equal(t, "bar.svg", first["representative_path"])
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "empty", nil, FormatJSON))
	assert.Contains(t, buf.String(), `"records": []`)
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "icons", nil, "xml"))
	assert.Empty(t, buf.String())
}
