package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "catalog",
			objectType:  "chapter",
			identifier:  "biologie",
			expectedKey: "medqbank:catalog:chapter:biologie",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "catalog",
			objectType:  "chapter",
			identifier:  "biologie",
			paramsKey:   []string{},
			expectedKey: "medqbank:catalog:chapter:biologie",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "session",
			objectType:  "cursor",
			identifier:  "01J0",
			paramsKey:   []string{"u1", "v2"},
			expectedKey: "medqbank:session:cursor:01J0:u1_v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedKey, GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...))
		})
	}
}

func TestNamedKeys(t *testing.T) {
	assert.Equal(t, "medqbank:catalog:chapters:all", ChaptersKey())
	assert.Equal(t, "medqbank:catalog:modules:c1", ModulesKey("c1"))
	assert.Equal(t, "medqbank:session:questions:s1", SessionQuestionsKey("s1"))
	assert.Equal(t, "medqbank:session:cursor:s1:u1", CursorKey("s1", "u1"))
	assert.Equal(t, "medqbank:session:cursor:s1:anon", CursorKey("s1", ""))
	assert.Equal(t, "medqbank:auth:revoked:jti-1", RevokedTokenKey("jti-1"))
}
