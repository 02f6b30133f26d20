package validator_test

import (
	"testing"

	"taskman-app/src/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	cv := validator.NewCustomValidator()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "有効なUUID", input: uuid.NewString(), wantErr: false},
		{name: "空文字列", input: "", wantErr: true},
		{name: "数値のみ", input: "12345", wantErr: true},
		{name: "SQLインジェクション", input: "1; DROP TABLE tasks", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cv.ValidateID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func TestSanitizeTags(t *testing.T) {
	cv := validator.NewCustomValidator()

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "通常のタグはそのまま",
			input:    []string{"backend", "設計"},
			expected: []string{"backend", "設計"},
		},
		{
			name:     "重複は除去される",
			input:    []string{"go", "go", "go"},
			expected: []string{"go"},
		},
		{
			name:     "空のタグと記号のみのタグは除外",
			input:    []string{"", "  ", "valid", "<script>"},
			expected: []string{"valid"},
		},
		{
			name:     "nilは空スライス",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cv.SanitizeTags(tt.input))
		})
	}
}

type sampleRequest struct {
	Title string `validate:"required,max=200,safe_text"`
}

func TestValidate_SafeText(t *testing.T) {
	cv := validator.NewCustomValidator()

	assert.NoError(t, cv.Validate(&sampleRequest{Title: "通常のタイトル"}))
	assert.Error(t, cv.Validate(&sampleRequest{Title: ""}))
	assert.Error(t, cv.Validate(&sampleRequest{Title: "x' OR 1=1 --"}))
}
