package cache

import "strings"

const (
	GlobalKeyPrefix = "medqbank"

	ServiceCatalog = "catalog"
	ServiceSession = "session"
	ServiceAuth    = "auth"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

func ChaptersKey() string {
	return GenerateCacheKey(ServiceCatalog, "chapters", "all")
}

func ChapterKey(slug string) string {
	return GenerateCacheKey(ServiceCatalog, "chapter", slug)
}

func ModulesKey(chapterID string) string {
	return GenerateCacheKey(ServiceCatalog, "modules", chapterID)
}

func SessionQuestionsKey(sessionID string) string {
	return GenerateCacheKey(ServiceSession, "questions", sessionID)
}

// CursorKey scopes the player cursor to a viewer, so two users opening the
// same session don't share navigation state. Anonymous viewers share "anon".
func CursorKey(sessionID, viewerID string) string {
	if viewerID == "" {
		viewerID = "anon"
	}
	return GenerateCacheKey(ServiceSession, "cursor", sessionID, viewerID)
}

func RevokedTokenKey(tokenID string) string {
	return GenerateCacheKey(ServiceAuth, "revoked", tokenID)
}
