package xmlutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEstimateXML = `<?xml version="1.0" encoding="UTF-8"?>
<Estimate>
  <Header>
    <InsuredName>Jane Doe</InsuredName>
    <ClaimNumber>CLM-2024-001</ClaimNumber>
    <Deductible>1000.00</Deductible>
  </Header>
  <LineItems>
    <Item>
      <LineNumber>1</LineNumber>
      <Description>Paint walls and ceiling</Description>
      <RCV>237.59</RCV>
    </Item>
    <Item>
      <LineNumber>2</LineNumber>
      <Description>Clean subfloor</Description>
      <RCV>34.32</RCV>
    </Item>
  </LineItems>
</Estimate>`

func writeSampleXML(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "estimate.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleEstimateXML), 0600))
	return path
}

func TestGetOrEmpty(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		index    int
		expected string
	}{
		{
			name:     "valid index returns value",
			slice:    []string{"a", "b", "c"},
			index:    1,
			expected: "b",
		},
		{
			name:     "index out of bounds returns empty",
			slice:    []string{"a", "b"},
			index:    5,
			expected: "",
		},
		{
			name:     "empty slice returns empty",
			slice:    []string{},
			index:    0,
			expected: "",
		},
		{
			name:     "nil slice returns empty",
			slice:    nil,
			index:    0,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetOrEmpty(tt.slice, tt.index))
		})
	}
}

func TestLoadXMLFile(t *testing.T) {
	path := writeSampleXML(t)

	root, err := LoadXMLFile(path)
	require.NoError(t, err)
	assert.NotNil(t, root)
}

func TestLoadXMLFileMissing(t *testing.T) {
	_, err := LoadXMLFile(filepath.Join(t.TempDir(), "nope.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open XML file")
}

func TestLoadXMLFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.xml")
	require.NoError(t, os.WriteFile(path, []byte("<Estimate><unclosed>"), 0600))

	_, err := LoadXMLFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse XML file")
}

func TestLoadXML(t *testing.T) {
	root, err := LoadXML(strings.NewReader(sampleEstimateXML))
	require.NoError(t, err)
	assert.NotNil(t, root)
}

func TestExtractFromXML(t *testing.T) {
	root, err := LoadXML(strings.NewReader(sampleEstimateXML))
	require.NoError(t, err)

	descriptions, err := ExtractFromXML(root, "/Estimate/LineItems/Item/Description")
	require.NoError(t, err)
	assert.Equal(t, []string{"Paint walls and ceiling", "Clean subfloor"}, descriptions)

	missing, err := ExtractFromXML(root, "/Estimate/LineItems/Item/Room")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestExtractFromXMLBadPath(t *testing.T) {
	root, err := LoadXML(strings.NewReader(sampleEstimateXML))
	require.NoError(t, err)

	_, err = ExtractFromXML(root, "///")
	require.Error(t, err)
}

func TestExtractFirst(t *testing.T) {
	root, err := LoadXML(strings.NewReader(sampleEstimateXML))
	require.NoError(t, err)

	claim, err := ExtractFirst(root, "/Estimate/Header/ClaimNumber")
	require.NoError(t, err)
	assert.Equal(t, "CLM-2024-001", claim)

	missing, err := ExtractFirst(root, "/Estimate/Header/PolicyNumber")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestExists(t *testing.T) {
	root, err := LoadXML(strings.NewReader(sampleEstimateXML))
	require.NoError(t, err)

	found, err := Exists(root, "/Estimate/LineItems")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = Exists(root, "/Estimate/Categories")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExtractWithXPath(t *testing.T) {
	path := writeSampleXML(t)

	values, err := ExtractWithXPath(path, "/Estimate/LineItems/Item/LineNumber")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, values)
}

func TestDefaultEstimateXPaths(t *testing.T) {
	paths := DefaultEstimateXPaths()

	root, err := LoadXML(strings.NewReader(sampleEstimateXML))
	require.NoError(t, err)

	found, err := Exists(root, paths.Root)
	require.NoError(t, err)
	assert.True(t, found)

	insured, err := ExtractFirst(root, paths.Header.InsuredName)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", insured)

	items, err := ExtractFromXML(root, paths.Items+"/"+paths.Item.Description)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
